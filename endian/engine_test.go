package endian

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLittleEndianPutAndRead(t *testing.T) {
	engine := GetLittleEndianEngine()

	b := make([]byte, 2)
	engine.PutUint16(b, 0x0201)
	assert.Equal(t, []byte{0x01, 0x02}, b)
	assert.Equal(t, uint16(0x0201), engine.Uint16(b))

	b = make([]byte, 4)
	engine.PutUint32(b, 0x04030201)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, b)
	assert.Equal(t, uint32(0x04030201), engine.Uint32(b))

	b = make([]byte, 8)
	engine.PutUint64(b, 0x0807060504030201)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, b)
	assert.Equal(t, uint64(0x0807060504030201), engine.Uint64(b))
}

func TestLittleEndianAppend(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint16(nil, 0xBBAA)
	buf = engine.AppendUint32(buf, 0x00CCDDEE)
	buf = engine.AppendUint64(buf, 1)

	require.Len(t, buf, 14)
	assert.Equal(t, []byte{0xAA, 0xBB}, buf[0:2])
	assert.Equal(t, []byte{0xEE, 0xDD, 0xCC, 0x00}, buf[2:6])
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, buf[6:14])
}
