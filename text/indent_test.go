package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineScannerIndentDepthSymmetric(t *testing.T) {
	src := "a\n  b\n  c\n    d\n  e\nf\n"
	sc := newLineScanner(src)

	line, err := sc.expectLine(0)
	require.NoError(t, err)
	assert.Equal(t, "a", line)

	cont, err := sc.tryContinueCurrentIndent(1)
	require.NoError(t, err)
	require.True(t, cont)
	line, err = sc.expectLine(1)
	require.NoError(t, err)
	assert.Equal(t, "b", line)

	line, err = sc.expectLine(1)
	require.NoError(t, err)
	assert.Equal(t, "c", line)

	cont, err = sc.tryContinueCurrentIndent(2)
	require.NoError(t, err)
	require.True(t, cont)
	line, err = sc.expectLine(2)
	require.NoError(t, err)
	assert.Equal(t, "d", line)

	// indent drops back to 1: the depth-2 scope ends cleanly (zero net
	// change once its caller also returns to depth 1).
	cont, err = sc.tryContinueCurrentIndent(2)
	require.NoError(t, err)
	assert.False(t, cont)

	cont, err = sc.tryContinueCurrentIndent(1)
	require.NoError(t, err)
	require.True(t, cont)
	line, err = sc.expectLine(1)
	require.NoError(t, err)
	assert.Equal(t, "e", line)

	cont, err = sc.tryContinueCurrentIndent(1)
	require.NoError(t, err)
	assert.False(t, cont)

	line, err = sc.expectLine(0)
	require.NoError(t, err)
	assert.Equal(t, "f", line)
}

func TestLineScannerRejectsDeeperIndent(t *testing.T) {
	sc := newLineScanner("a\n    b\n")
	_, err := sc.expectLine(0)
	require.NoError(t, err)
	_, err = sc.tryContinueCurrentIndent(1)
	require.Error(t, err)
}

func TestLineScannerExpectLineRejectsExtraSpace(t *testing.T) {
	sc := newLineScanner("  a\n")
	_, err := sc.expectLine(0)
	require.Error(t, err)
}
