//go:build darwin || windows || linux

package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/clipboard"
)

func stubNativeWrite(t *testing.T, fn func(clipboard.Format, []byte) <-chan struct{}) {
	t.Helper()
	orig := writeNative
	writeNative = fn
	t.Cleanup(func() { writeNative = orig })
}

func TestNativeWriteRejected(t *testing.T) {
	stubNativeWrite(t, func(clipboard.Format, []byte) <-chan struct{} { return nil })

	err := nativeBackend{}.WriteText("hello")
	require.ErrorIs(t, err, ErrWrite)
}

func TestNativeWriteAccepted(t *testing.T) {
	var got []byte
	stubNativeWrite(t, func(f clipboard.Format, b []byte) <-chan struct{} {
		assert.Equal(t, clipboard.FmtText, f)
		got = b
		return make(chan struct{})
	})

	require.NoError(t, nativeBackend{}.WriteText("hello"))
	assert.Equal(t, "hello", string(got))
}
