package clip

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// commandBackend shells out to the platform clipboard tools via
// atotto/clipboard. It works without cgo, which the native backend needs on
// Linux and macOS.
type commandBackend struct{}

func openCommand() (Backend, error) {
	if clipboard.Unsupported {
		return nil, fmt.Errorf("command clipboard: %w: no xclip, xsel or wl-clipboard in PATH", ErrUnavailable)
	}
	return commandBackend{}, nil
}

func (commandBackend) Name() string { return "command" }

func (commandBackend) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return text, nil
}

func (commandBackend) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (commandBackend) Close() {}
