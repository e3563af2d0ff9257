package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputSwapsDestination(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}

	out := NewOutput(first)
	_, err := out.Write([]byte("before"))
	require.NoError(t, err)

	out.SetWriter(second)
	_, err = out.Write([]byte("after"))
	require.NoError(t, err)

	assert.Equal(t, "before", first.String())
	assert.Equal(t, "after", second.String())
}

func TestInterruptReaderPassesThrough(t *testing.T) {
	r := interruptReader{strings.NewReader("hello")}
	buf := make([]byte, 16)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestInterruptReaderSurfacesCtrlC(t *testing.T) {
	r := interruptReader{strings.NewReader("ab\x03cd")}
	buf := make([]byte, 16)
	_, err := r.Read(buf)
	assert.ErrorIs(t, err, ErrInterrupt)
}
