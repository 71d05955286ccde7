package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitUI stands in for the terminal UI: it blocks until ctx is cancelled or
// quit is closed.
func waitUI(quit <-chan struct{}) func(context.Context) error {
	return func(ctx context.Context) error {
		select {
		case <-ctx.Done():
		case <-quit:
		}
		return nil
	}
}

func TestRunAlongsideClosesUIWhenDaemonFails(t *testing.T) {
	boom := errors.New("socket gone")
	errc := make(chan error, 1)
	go func() {
		errc <- runAlongside(context.Background(),
			func(context.Context) error { return boom },
			waitUI(nil),
		)
	}()

	select {
	case err := <-errc:
		require.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("UI kept running after the daemon stopped")
	}
}

func TestRunAlongsideStopsDaemonWhenUIQuits(t *testing.T) {
	quit := make(chan struct{})
	stopped := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		errc <- runAlongside(context.Background(),
			func(ctx context.Context) error {
				<-ctx.Done()
				close(stopped)
				return nil
			},
			waitUI(quit),
		)
	}()

	close(quit)
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon kept running after the UI quit")
	}
	_, ok := <-stopped
	assert.False(t, ok)
}
