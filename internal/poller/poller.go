// Package poller watches the system clipboard and records each change in the
// history store.
package poller

import (
	"context"
	"log/slog"
	"time"

	"go.klb.dev/cliplog/internal/clip"
)

// Interval is the fixed clipboard poll period.
const Interval = 500 * time.Millisecond

// previewLen bounds clipboard text in debug logs.
const previewLen = 120

// Appender receives new clipboard contents. *history.Store satisfies it.
type Appender interface {
	Append(content string)
}

// Poller reads the clipboard every Interval and appends the content to the
// store whenever it differs from the last value it saw. Only the poller's
// own goroutine touches last, so it needs no lock.
type Poller struct {
	clipboard clip.Reader
	store     Appender
	interval  time.Duration
	last      string
}

// New returns a Poller reading from r and writing to s. It does not start
// polling; call Run.
func New(r clip.Reader, s Appender) *Poller {
	return &Poller{
		clipboard: r,
		store:     s,
		interval:  Interval,
	}
}

// Run polls until ctx is cancelled and then returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	slog.Info("clipboard poller started", "interval", p.interval)
	defer slog.Info("clipboard poller stopped")

	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			p.poll()
		}
	}
}

// poll performs one tick. Read failures (non-text content, clipboard owner
// gone, tool missing) skip the tick.
func (p *Poller) poll() bool {
	text, err := p.clipboard.ReadText()
	if err != nil {
		slog.Debug("clipboard read skipped", "err", err)
		return false
	}
	if text == "" || text == p.last {
		return false
	}
	p.store.Append(text)
	p.last = text
	logChange(text)
	return true
}

// logChange logs a recorded change at INFO and, at DEBUG, a short preview.
func logChange(text string) {
	slog.Info("clipboard changed", "bytes", len(text))
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	slog.Debug("clipboard entry", "preview", Preview(text, previewLen))
}

// Preview returns text cut to at most n runes, with an ellipsis when cut.
func Preview(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "…"
}
