package bitpress

import (
	"bytes"

	"github.com/pmdcosta/bitpress/huffman"
	"github.com/pmdcosta/bitpress/lzw"
)

// CompressHuffman Huffman-codes src and returns the compressed stream: the
// serialized coding tree followed by the bit code for every source byte.
// It returns huffman.ErrEmptyInput for an empty source.
func CompressHuffman(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := huffman.Compress(&buf, src); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressHuffman reverses CompressHuffman.  Streams that are not a
// well-formed tree followed by whole codes yield huffman.ErrCorrupt.
func DecompressHuffman(data []byte) ([]byte, error) {
	return huffman.Decompress(bytes.NewReader(data))
}

// CompressLZW LZW-codes src and returns the compressed stream, a bare
// sequence of 12-bit codes.  Any source, including an empty one, can be
// compressed.
func CompressLZW(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lzw.Compress(&buf, src); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressLZW reverses CompressLZW.  Streams that are not a well-formed
// code sequence yield lzw.ErrCorrupt.
func DecompressLZW(data []byte) ([]byte, error) {
	return lzw.Decompress(bytes.NewReader(data))
}
