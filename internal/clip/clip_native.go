//go:build darwin || windows || linux

package clip

import (
	"fmt"

	"golang.design/x/clipboard"
)

type nativeBackend struct{}

// writeNative is replaced in tests.
var writeNative = clipboard.Write

// openNative initialises golang.design/x/clipboard. Init fails without a
// display server or when built with CGO_ENABLED=0 on Linux and macOS.
func openNative() (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("native clipboard: %w", err)
	}
	return nativeBackend{}, nil
}

func (nativeBackend) Name() string { return "native" }

func (nativeBackend) ReadText() (string, error) {
	text := clipboard.Read(clipboard.FmtText)
	if text == nil {
		return "", fmt.Errorf("%w: no text", ErrUnavailable)
	}
	return string(text), nil
}

// WriteText reports ErrWrite when the write is rejected. clipboard.Write
// signals that with a nil channel; otherwise the channel fires once another
// application overwrites the content.
func (nativeBackend) WriteText(text string) error {
	if writeNative(clipboard.FmtText, []byte(text)) == nil {
		return fmt.Errorf("%w: native write rejected", ErrWrite)
	}
	return nil
}

func (nativeBackend) Close() {}
