//go:build !darwin && !windows && !linux

package clip

import "fmt"

func openNative() (Backend, error) {
	return nil, fmt.Errorf("native clipboard: %w: unsupported platform", ErrUnavailable)
}
