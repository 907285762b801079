package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLittleEndianLayout(t *testing.T) {
	w := NewWriter(16)
	w.WriteUint8(0x01)
	w.WriteUint16(0x0302)
	w.WriteUint32(0x07060504)
	w.WriteUint64(0x0F0E0D0C0B0A0908)

	assert.Equal(t, []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
	}, w.Bytes())
}

func TestWriterWriteUintSizes(t *testing.T) {
	w := NewWriter(16)
	w.WriteUint(0x0201, 2)
	w.WriteUint(0x04030201, 4)
	w.WriteUint(0x030201, 3)

	assert.Equal(t, []byte{
		0x01, 0x02,
		0x01, 0x02, 0x03, 0x04,
		0x01, 0x02, 0x03,
	}, w.Bytes())
}

func TestWriterAdvanceBackfill(t *testing.T) {
	w := NewWriter(4)
	w.Advance(4)
	w.WriteBytes([]byte("body"))

	hdr := w.Bytes()[0:4]
	copy(hdr, []byte{1, 2, 3, 4})
	assert.Equal(t, []byte{1, 2, 3, 4, 'b', 'o', 'd', 'y'}, w.Bytes())
}

func TestReaderSequentialReads(t *testing.T) {
	data := []byte{
		0x2A,
		0x01, 0x02,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x80, 0x3F,
	}
	r := NewReader(data)

	v8, err := r.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x2A), v8)

	v16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v16)

	v32, err := r.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v32)

	f, err := r.Float32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), f)

	assert.True(t, r.Done())
}

func TestReaderWString(t *testing.T) {
	r := NewReader([]byte{0x05, 0x00, 'h', 'e', 'l', 'l', 'o'})
	s, err := r.WString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.True(t, r.Done())
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.Uint32()
	require.Error(t, err)

	r = NewReader([]byte{0x04, 0x00, 'a'})
	_, err = r.WString()
	require.Error(t, err)
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	b, err := r.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, 0, r.Pos())
	assert.Equal(t, 3, r.Remaining())
}

func TestWriterCheckpointResetLIFO(t *testing.T) {
	w := NewWriter(16)
	w.WriteBytes([]byte("keep"))

	outer := w.Checkpoint()
	w.WriteBytes([]byte("outer scratch"))

	inner := w.Checkpoint()
	w.WriteBytes([]byte("inner scratch"))
	w.Reset(inner)

	w.WriteBytes([]byte("!"))
	w.Reset(outer)

	w.WriteBytes([]byte("ed"))
	assert.Equal(t, []byte("keeped"), w.Bytes())
}
