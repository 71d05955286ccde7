// Package clip provides text access to the system clipboard. Backends:
//
//	native  golang.design/x/clipboard (X11, macOS, Windows)
//	command github.com/atotto/clipboard (xclip, xsel, wl-clipboard, pbcopy)
//	memory  in-process clipboard for headless hosts and tests
//
// Open("auto") tries them in that order.
package clip

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrUnavailable reports that the clipboard could not be read or does
	// not currently hold text.
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrWrite reports that writing to the clipboard failed.
	ErrWrite = errors.New("clipboard write failed")
)

// Reader reads the current clipboard text.
type Reader interface {
	// ReadText returns the clipboard text, or an error wrapping
	// ErrUnavailable when there is no text to read.
	ReadText() (string, error)
}

// Writer replaces the clipboard contents with text.
type Writer interface {
	// WriteText returns an error wrapping ErrWrite on failure.
	WriteText(text string) error
}

// Backend is a clipboard implementation.
type Backend interface {
	Reader
	Writer

	// Name returns a human-readable name for the backend.
	Name() string

	// Close releases any resources held by the backend.
	Close()
}

// Kind selects a backend implementation.
type Kind string

const (
	KindAuto    Kind = "auto"
	KindNative  Kind = "native"
	KindCommand Kind = "command"
	KindMemory  Kind = "memory"
)

// ParseKind converts s to a Kind. Unknown values are an error.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindAuto, nil
	case KindAuto, KindNative, KindCommand, KindMemory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown clipboard backend %q (want auto|native|command|memory)", s)
	}
}

// Open returns the backend for kind. With KindAuto it falls back through
// native, command and memory, logging why each unusable backend was skipped.
func Open(kind Kind) (Backend, error) {
	switch kind {
	case KindNative:
		return openNative()
	case KindCommand:
		return openCommand()
	case KindMemory:
		return NewMemory(), nil
	case KindAuto, "":
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", kind)
	}

	b, err := openNative()
	if err == nil {
		return b, nil
	}
	slog.Debug("native clipboard unavailable", "err", err)

	b, err = openCommand()
	if err == nil {
		return b, nil
	}
	slog.Warn("no system clipboard, running headless", "err", err)
	return NewMemory(), nil
}
