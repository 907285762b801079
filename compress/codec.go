// Package compress wraps the deflate codec the plugin binary format uses
// for compressed record bodies and for ByteArrayCompressed fields.
package compress

// Compressor compresses a byte slice, returning a newly allocated result.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor inflates a previously compressed byte slice back to its
// original contents. The caller supplies the original (uncompressed)
// size, which the plugin format always stores alongside the compressed
// bytes.
type Decompressor interface {
	Decompress(data []byte, uncompressedSize int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}
