package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatText, ParseFormat("TINT"))
	assert.Equal(t, FormatText, ParseFormat("human"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatAuto, ParseFormat("yaml"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestAutoFormatIsJSONWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTTY(&buf))

	log := slog.New(NewHandler(&buf, FormatAuto, slog.LevelInfo))
	log.Debug("hidden")
	log.Info("clipboard changed", "bytes", 5)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "clipboard changed", rec["msg"])
	assert.EqualValues(t, 5, rec["bytes"])
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, FormatText, slog.LevelDebug))
	log.Debug("clipboard entry", "preview", "hello")
	assert.Contains(t, buf.String(), "clipboard entry")
	assert.Contains(t, buf.String(), "hello")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliplog.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("x\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fi.Size())
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}
