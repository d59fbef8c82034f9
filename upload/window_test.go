package upload

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_BoundedRead(t *testing.T) {
	base := bytes.NewReader([]byte("0123456789"))

	window := NewWindow(base, 2, 3)
	data, err := io.ReadAll(window)

	require.NoError(t, err)
	assert.Equal(t, "234", string(data))

	// Exhausted window keeps yielding EOF even though the base has more.
	n, err := window.Read(make([]byte, 4))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestWindow_PastUnderlyingEOF(t *testing.T) {
	base := bytes.NewReader([]byte("01234"))

	window := NewWindow(base, 3, 10)
	data, err := io.ReadAll(window)

	require.NoError(t, err)
	assert.Equal(t, "34", string(data))
}

func TestWindow_SharedBaseAcrossWindows(t *testing.T) {
	base := bytes.NewReader([]byte("aaabbbccc"))

	first := NewWindow(base, 0, 3)
	second := NewWindow(base, 3, 3)
	third := NewWindow(base, 6, 3)

	// Interleave reads; each window repositions the base before reading.
	buf := make([]byte, 2)
	n, err := second.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "bb", string(buf[:n]))

	firstData, err := io.ReadAll(first)
	require.NoError(t, err)
	assert.Equal(t, "aaa", string(firstData))

	secondRest, err := io.ReadAll(second)
	require.NoError(t, err)
	assert.Equal(t, "b", string(secondRest))

	thirdData, err := io.ReadAll(third)
	require.NoError(t, err)
	assert.Equal(t, "ccc", string(thirdData))
}

func TestWindow_SeekIsWindowLocal(t *testing.T) {
	base := bytes.NewReader([]byte("0123456789"))
	window := NewWindow(base, 4, 4)

	pos, err := window.Seek(2, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pos)

	data, err := io.ReadAll(window)
	require.NoError(t, err)
	assert.Equal(t, "67", string(data))

	pos, err = window.Seek(-4, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	data, err = io.ReadAll(window)
	require.NoError(t, err)
	assert.Equal(t, "4567", string(data))

	_, err = window.Seek(-1, io.SeekStart)
	assert.Error(t, err)
}

func TestWindow_Size(t *testing.T) {
	window := NewWindow(bytes.NewReader(nil), 0, 42)
	assert.Equal(t, int64(42), window.Size())
}
