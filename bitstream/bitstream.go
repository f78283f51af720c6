// Package bitstream adapts byte-oriented storage into an addressable
// sequence of bits.  Bits are packed most-significant-first within each
// byte, and the final byte of a stream is self-describing: scanning it from
// the least significant bit, a run of 1 bits terminated by the first 0 bit
// is padding, and everything above that 0 is payload.  A Writer always
// terminates its stream with such a marker, so a Reader can recover the
// exact bit count without a length field.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Bit_numbering>
package bitstream

import (
	"bufio"
	"io"
	mathbits "math/bits"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// MaxWidth is the largest bit count accepted by ReadBits and WriteBits.
const MaxWidth = 32

// ErrPadding is returned when the final byte of a stream carries no
// padding break bit, which cannot happen for streams produced by Writer.
var ErrPadding = errors.New("bitstream: final byte has no padding break bit")

// Reader consumes a byte stream bit by bit.  It buffers one byte of
// lookahead so that it knows, before handing out any bit of a byte, whether
// that byte is the stream's last and must be unpadded.
type Reader struct {
	src   *bufio.Reader
	cur   byte
	valid byte
}

// NewReader returns a Reader that consumes the bits of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

// fill loads the next byte into cur and determines how many of its bits are
// valid payload.  Interior bytes carry all 8 bits; the last byte (detected
// by lookahead, never by content) is unpadded first.
func (r *Reader) fill() error {
	b, err := r.src.ReadByte()
	if err == io.EOF {
		return io.EOF
	}
	if err != nil {
		return errors.Wrap(err, "bitstream: read")
	}

	_, err = r.src.Peek(1)
	switch err {
	case nil:
		r.cur = b
		r.valid = 8
		return nil
	case io.EOF:
		trailingOnes := byte(mathbits.TrailingZeros8(^b))
		if trailingOnes == 8 {
			return ErrPadding
		}
		r.cur = b
		r.valid = 7 - trailingOnes
		return nil
	default:
		return errors.Wrap(err, "bitstream: lookahead")
	}
}

// ReadBit returns the next bit of the stream, 0 or 1.  It returns io.EOF
// once every valid bit has been consumed; padding bits are never returned.
func (r *Reader) ReadBit() (byte, error) {
	for r.valid == 0 {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	bit := r.cur >> 7
	r.cur <<= 1
	r.valid--
	return bit, nil
}

// ReadBits reads the next n bits and packs them MSB-first into the low n
// bits of the result.  n must be in 1..MaxWidth.  If the stream ends before
// any bit is read the error is io.EOF; if it ends with some but not all of
// the n bits read, the error is io.ErrUnexpectedEOF, which callers treat as
// a framing error.
func (r *Reader) ReadBits(n int) (uint32, error) {
	assert.Assertf(n >= 1 && n <= MaxWidth, "bit count %d out of range 1..%d", n, MaxWidth)

	var v uint32
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err == io.EOF && i > 0 {
			return 0, io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint32(bit)
	}
	return v, nil
}

// Writer produces a byte stream bit by bit.  Close must be called to emit
// the padding marker; a Writer left unclosed produces a stream whose tail
// bits are unrecoverable.
type Writer struct {
	dst *bufio.Writer
	cur byte
	n   byte
}

// NewWriter returns a Writer that packs bits into w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{dst: bufio.NewWriter(w)}
}

// WriteBit appends a single bit to the stream.  bit must be 0 or 1.
func (w *Writer) WriteBit(bit byte) error {
	assert.Assertf(bit <= 1, "bit value %d is not 0 or 1", bit)

	w.cur = w.cur<<1 | bit
	w.n++
	if w.n == 8 {
		if err := w.dst.WriteByte(w.cur); err != nil {
			return errors.Wrap(err, "bitstream: write")
		}
		w.cur = 0
		w.n = 0
	}
	return nil
}

// WriteBits appends the low n bits of v, most significant first.  n must be
// in 1..MaxWidth and v must be representable in n bits.
func (w *Writer) WriteBits(n int, v uint32) error {
	assert.Assertf(n >= 1 && n <= MaxWidth, "bit count %d out of range 1..%d", n, MaxWidth)
	assert.Assertf(uint64(v) < uint64(1)<<uint(n), "value %d does not fit in %d bits", v, n)

	for i := n - 1; i >= 0; i-- {
		if err := w.WriteBit(byte(v >> uint(i) & 1)); err != nil {
			return err
		}
	}
	return nil
}

// Close terminates the stream with the padding marker and flushes the
// underlying writer.  With k pending bits (0 <= k < 8), the final byte is
// those k bits in the top positions, a 0 break bit, and 1s below; when the
// stream is byte aligned the marker is a full 0x7F byte, so the last byte
// of a closed stream is always padding-marked.
func (w *Writer) Close() error {
	final := w.cur<<(8-w.n) | (1<<(7-w.n) - 1)
	if err := w.dst.WriteByte(final); err != nil {
		return errors.Wrap(err, "bitstream: write padding")
	}
	w.cur = 0
	w.n = 0
	if err := w.dst.Flush(); err != nil {
		return errors.Wrap(err, "bitstream: flush")
	}
	return nil
}
