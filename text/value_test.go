package text

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRLERoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01, 0x02, 0x03},
		{0x00, 0x00},
		{0xFF, 0xFF, 0xFF},
		{0x00, 0x01, 0x00, 0x00, 0x00, 0xFF},
		bytesRepeat(0x00, 93),
		bytesRepeat(0x00, 94),
		bytesRepeat(0x00, 185),
		bytesRepeat(0xFF, 93),
		bytesRepeat(0xFF, 94),
	}
	for _, c := range cases {
		enc := rleEncode(c)
		dec, err := rleDecode(enc)
		require.NoError(t, err)
		assert.Equal(t, c, dec, "round trip of %x via %q", c, enc)
	}
}

func TestRLEEscapeCount(t *testing.T) {
	for _, l := range []int{2, 93, 94, 185, 186} {
		run := bytesRepeat(0x00, l)
		enc := rleEncode(run)
		want := (l + maxRLERun - 1) / maxRLERun
		got := 0
		for i := 0; i < len(enc); i += 2 {
			got++
		}
		assert.Equal(t, want, got, "run length %d", l)
	}
}

func bytesRepeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestHexDumpRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x10, 0xAB}
	s := hexDump(data)
	assert.Equal(t, "00ff10ab", s)
	decoded, err := hexDecodeStrict(s)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestFormatFloatShortestRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 1, -1, 0.5, 3.14159, 100000, -0.001} {
		s := formatFloat(v)
		var got float32
		_, err := fmt.Sscanf(s, "%g", &got)
		require.NoError(t, err)
		assert.Equal(t, v, got, "formatFloat(%v) = %q", v, s)
	}
}
