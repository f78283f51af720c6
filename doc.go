// Package bitpress implements lossless compression and decompression of
// byte streams with two classical algorithms: Lempel-Ziv-Welch dictionary
// coding and Huffman entropy coding, both carried over a bit-level channel
// with self-describing padding.
//
// The subpackages hold the working parts (bitstream, pqueue, huffman,
// lzw); this package wraps the two codecs in byte-slice entry points.
// Verbose diagnostics are emitted at DEBUG level through go-logging module
// names "bitpress/huffman" and "bitpress/lzw"; they never affect output.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Lempel%E2%80%93Ziv%E2%80%93Welch>
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package bitpress
