package arena

import (
	"fmt"

	"github.com/tesrec/plugin2text/endian"
	"github.com/tesrec/plugin2text/errs"
)

// Reader is a bounds-checked sequential cursor over an immutable byte
// slice, used to walk a plugin's binary stream or a decompressed record
// body without copying it.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader wraps data for sequential little-endian reads.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, engine: endian.GetLittleEndianEngine()}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total length of the wrapped data.
func (r *Reader) Len() int { return len(r.data) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Done reports whether the cursor has consumed the entire buffer.
func (r *Reader) Done() bool { return r.pos >= len(r.data) }

// Advance returns the next n bytes and moves the cursor past them.
func (r *Reader) Advance(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncated, n, r.pos, len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Peek returns the next n bytes without moving the cursor.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: peek %d bytes at offset %d", errs.ErrTruncated, n, r.pos)
	}
	return r.data[r.pos : r.pos+n], nil
}

// Uint8 reads one byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Advance(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Advance(2)
	if err != nil {
		return 0, err
	}
	return r.engine.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Advance(4)
	if err != nil {
		return 0, err
	}
	return r.engine.Uint32(b), nil
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Advance(8)
	if err != nil {
		return 0, err
	}
	return r.engine.Uint64(b), nil
}

// Int8, Int16, Int32, Int64 are signed re-interpretations of the
// unsigned reads above.
func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// WString reads a 16-bit length prefix followed by that many bytes,
// the wire shape of a wstring (no trailing NUL).
func (r *Reader) WString() (string, error) {
	n, err := r.Uint16()
	if err != nil {
		return "", err
	}
	b, err := r.Advance(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Float32 reads an IEEE-754 single-precision float.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return float32FromBits(v), nil
}

// Writer is a sequential append cursor backed by a growable Buffer,
// used to assemble a plugin's binary stream or a record's decompressed
// field bytes before compression.
type Writer struct {
	buf    *Buffer
	engine endian.EndianEngine
}

// NewWriter creates a Writer with the given scratch capacity hint.
func NewWriter(capHint int) *Writer {
	return &Writer{buf: New(capHint), engine: endian.GetLittleEndianEngine()}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Checkpoint/Reset expose the underlying Buffer's LIFO scratch discipline.
func (w *Writer) Checkpoint() Checkpoint { return w.buf.Checkpoint() }
func (w *Writer) Reset(c Checkpoint)     { w.buf.Reset(c) }

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) { w.buf.Append(b) }

// Advance reserves n zeroed bytes and returns them for the caller to
// fill in place, mirroring the original tool's placeholder-then-backfill
// pattern for record headers whose size field isn't known until the
// body has been written.
func (w *Writer) Advance(n int) []byte { return w.buf.Grow(n) }

func (w *Writer) WriteUint8(v uint8) { w.buf.Append([]byte{v}) }

func (w *Writer) WriteUint16(v uint16) {
	dst := w.buf.Grow(2)
	w.engine.PutUint16(dst, v)
}

func (w *Writer) WriteUint32(v uint32) {
	dst := w.buf.Grow(4)
	w.engine.PutUint32(dst, v)
}

func (w *Writer) WriteUint64(v uint64) {
	dst := w.buf.Grow(8)
	w.engine.PutUint64(dst, v)
}

// WriteUint stores the low size bytes of v little-endian, for
// size ∈ {1, 2, 4, 8}; other sizes fall back to a byte-at-a-time copy,
// which field codecs use for odd-width packed values.
func (w *Writer) WriteUint(v uint64, size int) {
	switch size {
	case 1:
		w.WriteUint8(uint8(v))
	case 2:
		w.WriteUint16(uint16(v))
	case 4:
		w.WriteUint32(uint32(v))
	case 8:
		w.WriteUint64(v)
	default:
		for i := 0; i < size; i++ {
			w.WriteUint8(byte(v >> (8 * i)))
		}
	}
}

func (w *Writer) WriteInt8(v int8)   { w.WriteUint8(uint8(v)) }
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(float32Bits(v)) }
