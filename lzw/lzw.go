// Package lzw implements Lempel-Ziv-Welch dictionary coding with
// fixed-width 12-bit codes.  Codes 0-255 are pre-bound to the single byte
// of the same value; codes 256 and up are assigned in increasing order as
// new sequences are observed, up to a dictionary of 4096 entries.  Once the
// dictionary is full no entries are added or replaced, and encoder and
// decoder rebuild identical dictionaries from the code stream alone.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Lempel%E2%80%93Ziv%E2%80%93Welch>
package lzw

import (
	"io"

	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/pmdcosta/bitpress/bitstream"
)

const (
	codeBits   = 12
	maxEntries = 1 << codeBits
	firstCode  = 256
)

// ErrCorrupt is returned when a compressed stream is not a well-formed
// sequence of whole 12-bit codes decodable against the dictionary built so
// far.
var ErrCorrupt = errors.New("lzw: corrupt compressed data")

var log = logging.MustGetLogger("bitpress/lzw")

// Compress LZW-codes src into w.  The output is a bare sequence of 12-bit
// codes, MSB-first, with no header; an empty source emits no codes.
func Compress(w io.Writer, src []byte) error {
	dict := make(map[string]uint32, maxEntries)
	for v := 0; v < firstCode; v++ {
		dict[string([]byte{byte(v)})] = uint32(v)
	}
	nextCode := uint32(firstCode)

	bw := bitstream.NewWriter(w)
	trace := log.IsEnabledFor(logging.DEBUG)

	// match is the longest dictionary entry matching the pending input.
	var match []byte
	for _, b := range src {
		extended := append(match, b)
		if _, ok := dict[string(extended)]; ok {
			match = extended
			continue
		}

		code := dict[string(match)]
		if trace {
			log.Debugf("lzw: emit %d for %q", code, match)
		}
		if err := bw.WriteBits(codeBits, code); err != nil {
			return err
		}
		if nextCode < maxEntries {
			dict[string(extended)] = nextCode
			nextCode++
			if nextCode == maxEntries {
				log.Debugf("lzw: dictionary full after %q", extended)
			}
		}
		match = append(match[:0], b)
	}

	if len(match) > 0 {
		code := dict[string(match)]
		if trace {
			log.Debugf("lzw: emit final %d for %q", code, match)
		}
		if err := bw.WriteBits(codeBits, code); err != nil {
			return err
		}
	}
	return bw.Close()
}

// Decompress reads 12-bit codes from r and rebuilds the byte sequence they
// describe, mirroring the encoder's dictionary as it goes.  The stream must
// end on a code boundary; a partial trailing code, a first code outside the
// single-byte range, or a code ahead of the dictionary yields ErrCorrupt.
func Decompress(r io.Reader) ([]byte, error) {
	entries := make([][]byte, firstCode, maxEntries)
	for v := 0; v < firstCode; v++ {
		entries[v] = []byte{byte(v)}
	}

	br := bitstream.NewReader(r)
	code, err := br.ReadBits(codeBits)
	if err == io.EOF {
		return []byte{}, nil
	}
	if err == io.ErrUnexpectedEOF {
		return nil, errors.WithMessage(ErrCorrupt, "stream ends inside a code")
	}
	if err != nil {
		return nil, err
	}
	if code >= firstCode {
		return nil, errors.WithMessagef(ErrCorrupt, "first code %d is not a literal byte", code)
	}

	prev := entries[code]
	out := append([]byte{}, prev...)

	for {
		code, err := br.ReadBits(codeBits)
		if err == io.EOF {
			return out, nil
		}
		if err == io.ErrUnexpectedEOF {
			return nil, errors.WithMessage(ErrCorrupt, "stream ends inside a code")
		}
		if err != nil {
			return nil, err
		}

		var seq []byte
		switch {
		case int(code) < len(entries):
			seq = entries[code]
		case int(code) == len(entries):
			// The canonical self-referential case: the encoder used
			// an entry it registered on this very step, which must
			// be the previous sequence plus its own first byte.
			seq = append(append([]byte{}, prev...), prev[0])
		default:
			return nil, errors.WithMessagef(ErrCorrupt, "code %d is ahead of the dictionary (next is %d)", code, len(entries))
		}

		out = append(out, seq...)
		if len(entries) < maxEntries {
			entry := append(append([]byte{}, prev...), seq[0])
			entries = append(entries, entry)
		}
		prev = seq
	}
}
