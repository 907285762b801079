package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"

	"github.com/tesrec/plugin2text/errs"
)

// Level is the deflate compression level the original tool hard-codes
// for both compressed record bodies and ByteArrayCompressed fields.
const Level = 7

// Deflate is the Codec used throughout this module. The binary plugin
// format's compressed-record contract is fixed to zlib/deflate by the
// game engine that reads these files, so unlike the teacher library this
// package offers exactly one real implementation — see DESIGN.md Part 6
// for why lz4/zstd/s2 were not carried forward.
type Deflate struct {
	writerPool sync.Pool
}

// NewDeflate constructs a Deflate codec with a pooled flate.Writer.
func NewDeflate() *Deflate {
	return &Deflate{
		writerPool: sync.Pool{
			New: func() any {
				w, _ := flate.NewWriter(io.Discard, Level)
				return w
			},
		},
	}
}

// Compress deflates data at Level.
func (d *Deflate) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	fw, _ := d.writerPool.Get().(*flate.Writer)
	fw.Reset(&buf)
	defer d.writerPool.Put(fw)

	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompression, err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompression, err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates data, which must expand to exactly
// uncompressedSize bytes — the plugin format stores that size alongside
// the compressed payload precisely so callers can preallocate and
// validate it.
func (d *Deflate) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()

	out := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(fr, out); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompression, err)
	}
	var extra [1]byte
	if n, _ := fr.Read(extra[:]); n > 0 {
		return nil, fmt.Errorf("%w: stream expands past %d bytes", errs.ErrCompression, uncompressedSize)
	}

	return out, nil
}

// DecompressAll inflates data to exhaustion without a known target size,
// for contexts that don't carry an explicit uncompressed-size prefix
// (a ByteArrayCompressed field's text representation has none; the
// record-body prefix is handled by Decompress instead).
func (d *Deflate) DecompressAll(data []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()

	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompression, err)
	}
	return out, nil
}

var shared = NewDeflate()

// Shared returns the package-wide Deflate codec instance, analogous to
// the teacher's builtinCodecs map entries.
func Shared() *Deflate { return shared }
