package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/pmdcosta/bitpress/bitstream"
	"github.com/pmdcosta/bitpress/pqueue"
)

const (
	numByteValues = 256

	// maxNodes is the node count of a full binary tree with one leaf per
	// byte value.  A serialized tree describing more nodes is corrupt.
	maxNodes = 2*numByteValues - 1
)

// ErrEmptyInput is returned when a tree is requested for a source with no
// bytes, which has no leaves to build from.
var ErrEmptyInput = errors.New("huffman: empty input")

// ErrCorrupt is returned when a compressed stream cannot be a well-formed
// serialized tree followed by whole codes.
var ErrCorrupt = errors.New("huffman: corrupt compressed data")

// node is one slot in a Tree's arena.  Internal nodes hold arena indices of
// their two children; leaves hold a byte value.
type node struct {
	leaf  bool
	value byte
	left  int32
	right int32
}

// Tree is a Huffman coding tree.  Nodes live in a flat arena and refer to
// each other by index; every internal node has exactly two children.  A
// Tree is immutable once built or deserialized.
type Tree struct {
	nodes []node
	root  int32
}

// CountFrequencies scans src once and returns the number of occurrences of
// each byte value.
func CountFrequencies(src []byte) *[numByteValues]uint64 {
	var freqs [numByteValues]uint64
	for _, b := range src {
		freqs[b]++
	}
	return &freqs
}

// Build constructs the Huffman tree for the given frequency table.  Byte
// values with zero frequency get no leaf.  It returns ErrEmptyInput if
// every frequency is zero.
//
// Construction repeatedly extracts the two lowest-weight subtrees from a
// priority queue and joins them under a new internal node, first extraction
// on the left, until a single root remains.  Weights order the build and
// are not retained in the tree.
func Build(freqs *[numByteValues]uint64) (*Tree, error) {
	type weighted struct {
		index  int32
		weight uint64
	}

	t := &Tree{nodes: make([]node, 0, maxNodes)}
	q := pqueue.New(func(a, b weighted) bool { return a.weight < b.weight })

	for v := 0; v < numByteValues; v++ {
		if freqs[v] == 0 {
			continue
		}
		index := t.add(node{leaf: true, value: byte(v)})
		q.Insert(weighted{index: index, weight: freqs[v]})
	}
	if q.Empty() {
		return nil, ErrEmptyInput
	}

	for q.Len() > 1 {
		a, _ := q.ExtractMin()
		b, _ := q.ExtractMin()
		index := t.add(node{left: a.index, right: b.index})
		q.Insert(weighted{index: index, weight: a.weight + b.weight})
	}

	root, err := q.ExtractMin()
	if err != nil {
		return nil, err
	}
	t.root = root.index
	return t, nil
}

func (t *Tree) add(n node) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes)) - 1
}

// NumLeaves returns the number of distinct byte values coded by the tree.
func (t *Tree) NumLeaves() int {
	count := 0
	for _, n := range t.nodes {
		if n.leaf {
			count++
		}
	}
	return count
}

// Codes derives the code table: for each byte value with a leaf, the branch
// path from root to that leaf.  Byte values without a leaf keep the null
// code.  A single-leaf tree has no branches to encode with, so its leaf is
// assigned the one-bit code "0".
func (t *Tree) Codes() *[numByteValues]Code {
	var codes [numByteValues]Code
	root := t.nodes[t.root]
	if root.leaf {
		codes[root.value] = MakeCode(0)
		return &codes
	}
	t.derive(t.root, Code{}, &codes)
	return &codes
}

func (t *Tree) derive(index int32, prefix Code, codes *[numByteValues]Code) {
	n := t.nodes[index]
	if n.leaf {
		codes[n.value] = prefix
		return
	}
	t.derive(n.left, prefix.appended(0), codes)
	t.derive(n.right, prefix.appended(1), codes)
}

// Serialize writes the tree in pre-order: a 1 bit and the 8-bit byte value
// for a leaf, a 0 bit followed by the left then right subtree for an
// internal node.
func (t *Tree) Serialize(w *bitstream.Writer) error {
	return t.serializeNode(w, t.root)
}

func (t *Tree) serializeNode(w *bitstream.Writer, index int32) error {
	n := t.nodes[index]
	if n.leaf {
		if err := w.WriteBit(1); err != nil {
			return err
		}
		return w.WriteBits(8, uint32(n.value))
	}
	if err := w.WriteBit(0); err != nil {
		return err
	}
	if err := t.serializeNode(w, n.left); err != nil {
		return err
	}
	return t.serializeNode(w, n.right)
}

// ReadTree reconstructs a tree from the serialized form at the reader's
// current position, consuming exactly the bits Serialize wrote.  It returns
// ErrCorrupt when the stream ends inside the tree or describes more nodes
// than any byte-valued tree can have.
func ReadTree(r *bitstream.Reader) (*Tree, error) {
	t := &Tree{}
	root, err := t.readNode(r, 0)
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

func (t *Tree) readNode(r *bitstream.Reader, depth int) (int32, error) {
	// A tree over byte values has at most 256 leaves, so no valid path
	// from the root is longer than 255 branches.
	if depth > numByteValues-1 || len(t.nodes) >= maxNodes {
		return 0, errors.WithMessage(ErrCorrupt, "serialized tree too large")
	}

	bit, err := r.ReadBit()
	if err == io.EOF {
		return 0, errors.WithMessage(ErrCorrupt, "stream ends inside serialized tree")
	}
	if err != nil {
		return 0, err
	}

	if bit == 1 {
		value, err := r.ReadBits(8)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, errors.WithMessage(ErrCorrupt, "stream ends inside leaf value")
		}
		if err != nil {
			return 0, err
		}
		return t.add(node{leaf: true, value: byte(value)}), nil
	}

	left, err := t.readNode(r, depth+1)
	if err != nil {
		return 0, err
	}
	right, err := t.readNode(r, depth+1)
	if err != nil {
		return 0, err
	}
	return t.add(node{left: left, right: right}), nil
}

// Dump writes a programmer-readable debugging dump of the tree's code table
// to the given writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	codes := t.Codes()
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tNumLeaves() = %d\n", t.NumLeaves())
	for v := 0; v < numByteValues; v++ {
		if codes[v].Size() == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tCode(0x%02x) = %s\n", v, codes[v])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
