package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeflateRoundTrip(t *testing.T) {
	codec := NewDeflate()
	cases := [][]byte{
		{},
		{0x00},
		[]byte("hello world"),
		bytesOfLen(4096),
	}
	for _, c := range cases {
		compressed, err := codec.Compress(c)
		require.NoError(t, err)
		decompressed, err := codec.Decompress(compressed, len(c))
		require.NoError(t, err)
		assert.Equal(t, c, decompressed)
	}
}

func TestDeflateDecompressAll(t *testing.T) {
	codec := NewDeflate()
	data := bytesOfLen(1024)
	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	decompressed, err := codec.DecompressAll(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestDeflateCompressDeterministic(t *testing.T) {
	codec := NewDeflate()
	data := bytesOfLen(2048)
	a, err := codec.Compress(data)
	require.NoError(t, err)
	b, err := codec.Compress(data)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func bytesOfLen(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i % 251)
	}
	return out
}
