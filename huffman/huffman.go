// Package huffman implements Huffman entropy coding over byte-valued
// sources.  The compressed stream is the coding tree serialized in
// pre-order, immediately followed by the bit code for every source byte in
// original order; there is no length or checksum field, the decoder stops
// at the end of the bit stream.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffman

import (
	"io"

	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/pmdcosta/bitpress/bitstream"
)

var log = logging.MustGetLogger("bitpress/huffman")

// Compress Huffman-codes src into w: count frequencies, build the tree,
// derive the code table, then write the serialized tree and the code for
// each source byte.  It returns ErrEmptyInput for an empty source, which
// has no tree to build.
func Compress(w io.Writer, src []byte) error {
	if len(src) == 0 {
		return ErrEmptyInput
	}

	tree, err := Build(CountFrequencies(src))
	if err != nil {
		return err
	}
	codes := tree.Codes()
	log.Debugf("huffman: built tree with %d leaves for %d source bytes", tree.NumLeaves(), len(src))

	bw := bitstream.NewWriter(w)
	if err := tree.Serialize(bw); err != nil {
		return err
	}
	trace := log.IsEnabledFor(logging.DEBUG)
	for _, b := range src {
		if trace {
			log.Debugf("huffman: encode 0x%02x as %s", b, codes[b])
		}
		if err := codes[b].writeTo(bw); err != nil {
			return err
		}
	}
	return bw.Close()
}

// Decompress reads a serialized tree from r, then walks it bit by bit,
// branching left on 0 and right on 1 and emitting a byte at each leaf,
// until the stream ends.  A stream that ends partway into a code, or whose
// tree prefix is malformed, yields ErrCorrupt.
func Decompress(r io.Reader) ([]byte, error) {
	br := bitstream.NewReader(r)
	tree, err := ReadTree(br)
	if err != nil {
		return nil, err
	}
	log.Debugf("huffman: read tree with %d leaves", tree.NumLeaves())

	out := []byte{}
	root := tree.nodes[tree.root]
	if root.leaf {
		// Single-leaf tree: one bit per occurrence of the one value.
		for {
			_, err := br.ReadBit()
			if err == io.EOF {
				return out, nil
			}
			if err != nil {
				return nil, err
			}
			out = append(out, root.value)
		}
	}

	for {
		index := tree.root
		depth := 0
		for !tree.nodes[index].leaf {
			bit, err := br.ReadBit()
			if err == io.EOF {
				if depth == 0 {
					return out, nil
				}
				return nil, errors.WithMessage(ErrCorrupt, "stream ends inside a code")
			}
			if err != nil {
				return nil, err
			}
			if bit == 0 {
				index = tree.nodes[index].left
			} else {
				index = tree.nodes[index].right
			}
			depth++
		}
		out = append(out, tree.nodes[index].value)
	}
}
