package huffman

import (
	"fmt"
	"strings"

	"github.com/pmdcosta/bitpress/bitstream"
)

// Code represents the sequence of branch decisions from the root of a Tree
// to one leaf: 0 for a left branch, 1 for a right branch, first decision
// first.  The zero value is the null code, assigned to byte values that do
// not occur in the source.
type Code struct {
	bits []byte
}

// MakeCode is a convenience function that constructs a Code from a sequence
// of branch bits.
func MakeCode(bits ...byte) Code {
	return Code{bits: bits}
}

// Size holds the number of bits in the code.  Only the null code has size
// zero; a degenerate single-leaf tree assigns its leaf a one-bit code.
func (hc Code) Size() int {
	return len(hc.bits)
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if len(hc.bits) == 0 {
		return "\"\""
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for _, bit := range hc.bits {
		sb.WriteByte('0' + bit)
	}
	sb.WriteByte('"')
	return sb.String()
}

var _ fmt.Stringer = Code{}

// appended returns the code extended by one more branch decision.  The
// receiver's storage is never shared with the result.
func (hc Code) appended(bit byte) Code {
	bits := make([]byte, len(hc.bits)+1)
	copy(bits, hc.bits)
	bits[len(hc.bits)] = bit
	return Code{bits: bits}
}

// writeTo emits the code's bits in order.
func (hc Code) writeTo(w *bitstream.Writer) error {
	for _, bit := range hc.bits {
		if err := w.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}
