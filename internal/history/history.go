// Package history implements the bounded clipboard history shared between
// the poller (sole writer) and the presentation layer (reader).
//
// The store is a FIFO: appends go to the end and, once the capacity is
// exceeded, the oldest entry is dropped. A single mutex guards the whole
// sequence; it is held only for the append, copy or index and never across
// clipboard I/O.
package history

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// MaxEntries is the fixed history capacity used by the daemon.
const MaxEntries = 100

// TimeLayout is the human-readable timestamp format used for display.
const TimeLayout = "2006-01-02 15:04:05"

// ErrNotFound is returned by Recall when the index is outside the current
// history, typically because entries were evicted after the caller took
// its snapshot.
var ErrNotFound = errors.New("history: entry not found")

// Entry is one recorded clipboard snapshot. Entries are never modified after
// they are appended.
type Entry struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Time renders the entry timestamp in local time at second precision.
func (e Entry) Time() string {
	return e.Timestamp.Local().Format(TimeLayout)
}

// Store is a concurrency-safe bounded log of clipboard entries, oldest first.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	max     int
	now     func() time.Time
}

// New returns an empty Store holding at most capacity entries. Values below
// one are treated as one.
func New(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		entries: make([]Entry, 0, capacity),
		max:     capacity,
		now:     time.Now,
	}
}

// Append records content with the current time. If the history is full the
// oldest entry is evicted. Empty content is ignored.
func (s *Store) Append(content string) {
	if content == "" {
		return
	}
	e := Entry{Content: content, Timestamp: s.now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == s.max {
		// Shift in place so the backing array never grows past max.
		copy(s.entries, s.entries[1:])
		s.entries[len(s.entries)-1] = e
		return
	}
	s.entries = append(s.entries, e)
}

// Snapshot returns a copy of the history, oldest first.
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Recall returns the entry at index in the current ordering.
func (s *Store) Recall(index int) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.entries) {
		return Entry{}, fmt.Errorf("%w: index %d, history has %d entries", ErrNotFound, index, len(s.entries))
	}
	return s.entries[index], nil
}

// Len returns the number of entries currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cap returns the capacity the store was created with.
func (s *Store) Cap() int { return s.max }
