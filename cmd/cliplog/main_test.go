package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/cliplog/internal/api"
	"go.klb.dev/cliplog/internal/clip"
	"go.klb.dev/cliplog/internal/daemon"
	"go.klb.dev/cliplog/internal/history"
	"go.klb.dev/cliplog/internal/ipc"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// startDaemon runs a daemon on a fresh socket with the memory backend and
// waits until it has recorded each of copies.
func startDaemon(t *testing.T, copies ...string) (string, *clip.Memory) {
	t.Helper()
	dir, err := os.MkdirTemp("", "cliplog")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "c.sock")

	ln, err := ipc.Listen(path)
	require.NoError(t, err)

	cb := clip.NewMemory()
	d := daemon.New(cb, "test")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx, ln)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	for i, c := range copies {
		cb.Set(c)
		want := i + 1
		require.Eventually(t, func() bool { return len(d.Service().Entries()) == want }, 5*time.Second, 20*time.Millisecond)
	}
	return path, cb
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cliplog dev\n", out)
}

func TestListRecallStatus(t *testing.T) {
	path, cb := startDaemon(t, "first", "second")

	out, err := execute(t, "list", "--socket", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "INDEX")
	assert.Contains(t, lines[1], `"first"`)
	assert.Contains(t, lines[2], `"second"`)

	out, err = execute(t, "list", "--socket", path, "--json")
	require.NoError(t, err)
	var resp api.ListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Entries, 2)

	out, err = execute(t, "recall", "0", "--socket", path)
	require.NoError(t, err)
	assert.Contains(t, out, "copied entry 0")
	text, _ := cb.Text()
	assert.Equal(t, "first", text)

	_, err = execute(t, "recall", "9", "--socket", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry 9")

	out, err = execute(t, "status", "--socket", path)
	require.NoError(t, err)
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "/ 100")

	out, err = execute(t, "status", "--socket", path, "--json")
	require.NoError(t, err)
	var st api.StatusResponse
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, "memory", st.Backend)
	assert.Equal(t, 2, st.Entries)
}

func TestRecallRejectsNonNumericIndex(t *testing.T) {
	_, err := execute(t, "recall", "abc", "--socket", "/nonexistent.sock")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}

func TestClientCommandsWithoutDaemon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.sock")
	for _, args := range [][]string{
		{"list", "--socket", path},
		{"status", "--socket", path},
		{"recall", "0", "--socket", path},
	} {
		_, err := execute(t, args...)
		require.ErrorIs(t, err, errNoDaemon, "%v", args)
	}
}

func TestPrintEntries(t *testing.T) {
	var buf bytes.Buffer
	printEntries(&buf, nil)
	assert.Equal(t, "History is empty.\n", buf.String())

	buf.Reset()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	printEntries(&buf, []history.Entry{{Content: "multi\nline", Timestamp: ts}})
	assert.Contains(t, buf.String(), "2024-01-02 03:04:05")
	assert.Contains(t, buf.String(), `"multi\nline"`)
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, &api.StatusResponse{
		Version:   "1.0",
		Backend:   "native",
		Entries:   3,
		Capacity:  100,
		StartedAt: time.Now().Add(-90 * time.Second),
	}, "/run/cliplog.sock")
	out := buf.String()
	assert.Contains(t, out, "native")
	assert.Contains(t, out, "3 / 100")
	assert.Contains(t, out, "1m ago")
}
