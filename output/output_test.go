package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := New(Config{Output: &buf})
	require.False(t, w.Compact())

	require.NoError(t, w.Write(map[string]any{"markup": "<Card />"}))
	require.Equal(t, "{\n  \"markup\": \"<Card />\"\n}\n", buf.String())
}

func TestWriterCompact(t *testing.T) {
	var buf bytes.Buffer
	w := New(Config{Output: &buf, Compact: true})
	require.True(t, w.Compact())

	require.NoError(t, w.Write([]int{1, 2}))
	require.Equal(t, "[1,2]\n", buf.String())
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	WriteError(&buf, errors.New("one of value or source is required"))
	require.Equal(t, "{\"error\":\"one of value or source is required\"}\n", buf.String())
}
