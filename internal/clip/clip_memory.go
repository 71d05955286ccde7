package clip

import (
	"fmt"
	"sync"
)

// Memory is an in-process clipboard. It is the headless fallback and the
// fake used by tests: failures can be injected with FailReads and FailWrites.
type Memory struct {
	mu       sync.Mutex
	text     string
	has      bool
	readErr  error
	writeErr error
	reads    int
	writes   int
}

// NewMemory returns an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readErr != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, m.readErr)
	}
	if !m.has {
		return "", fmt.Errorf("%w: empty", ErrUnavailable)
	}
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return fmt.Errorf("%w: %w", ErrWrite, m.writeErr)
	}
	m.writes++
	m.text = text
	m.has = true
	return nil
}

func (m *Memory) Close() {}

// Set replaces the clipboard text as if another application had copied it.
func (m *Memory) Set(text string) {
	m.mu.Lock()
	m.text = text
	m.has = true
	m.mu.Unlock()
}

// Text returns the current contents and whether anything was ever set.
func (m *Memory) Text() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.has
}

// FailReads makes subsequent reads fail with err; nil restores reads.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	m.readErr = err
	m.mu.Unlock()
}

// FailWrites makes subsequent writes fail with err; nil restores writes.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	m.writeErr = err
	m.mu.Unlock()
}

// Writes returns the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Reads returns the number of read attempts.
func (m *Memory) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}
