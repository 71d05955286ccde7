package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/cliplog/internal/clip"
	"go.klb.dev/cliplog/internal/history"
)

func contents(s *history.Store) []string {
	var out []string
	for _, e := range s.Snapshot() {
		out = append(out, e.Content)
	}
	return out
}

func TestPollRecordsChanges(t *testing.T) {
	cb := clip.NewMemory()
	store := history.New(10)
	p := New(cb, store)

	cb.Set("x")
	assert.True(t, p.poll())
	assert.False(t, p.poll(), "same value must not be recorded twice")

	cb.Set("y")
	assert.True(t, p.poll())
	assert.Equal(t, []string{"x", "y"}, contents(store))
}

func TestPollScenario(t *testing.T) {
	cb := clip.NewMemory()
	store := history.New(10)
	p := New(cb, store)
	p.last = "x"

	cb.Set("x")
	assert.False(t, p.poll())
	assert.Equal(t, 0, store.Len())

	cb.Set("y")
	assert.True(t, p.poll())
	assert.Equal(t, []string{"y"}, contents(store))
}

func TestPollRecordsReappearingValue(t *testing.T) {
	cb := clip.NewMemory()
	store := history.New(10)
	p := New(cb, store)

	for _, v := range []string{"a", "b", "a"} {
		cb.Set(v)
		p.poll()
	}
	assert.Equal(t, []string{"a", "b", "a"}, contents(store))
}

func TestPollSkipsEmptyAndErrors(t *testing.T) {
	cb := clip.NewMemory()
	store := history.New(10)
	p := New(cb, store)

	// Nothing copied yet.
	assert.False(t, p.poll())

	cb.Set("")
	assert.False(t, p.poll())

	cb.Set("z")
	cb.FailReads(errors.New("not text"))
	assert.False(t, p.poll())
	assert.Equal(t, 0, store.Len())

	cb.FailReads(nil)
	assert.True(t, p.poll())
	assert.Equal(t, []string{"z"}, contents(store))
}

func TestRunStopsOnCancel(t *testing.T) {
	cb := clip.NewMemory()
	store := history.New(10)
	p := New(cb, store)
	p.interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	cb.Set("first")
	require.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	reads := cb.Reads()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, reads, cb.Reads(), "no reads after Run returned")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "héll…", Preview("héllo world", 4))
}
