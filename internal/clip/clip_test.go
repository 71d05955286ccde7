package clip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "", want: KindAuto},
		{in: "auto", want: KindAuto},
		{in: " Native ", want: KindNative},
		{in: "command", want: KindCommand},
		{in: "MEMORY", want: KindMemory},
		{in: "x11", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenMemory(t *testing.T) {
	b, err := Open(KindMemory)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "memory", b.Name())
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open(Kind("bogus"))
	require.Error(t, err)
}

func TestMemoryEmptyIsUnavailable(t *testing.T) {
	m := NewMemory()
	_, err := m.ReadText()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, m.Reads())
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.WriteText("hello"))

	got, err := m.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, 1, m.Writes())

	m.Set("external")
	got, err = m.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "external", got)
	assert.Equal(t, 1, m.Writes(), "Set is not counted as a write")
}

func TestMemoryInjectedFailures(t *testing.T) {
	m := NewMemory()
	m.Set("x")

	boom := errors.New("boom")
	m.FailReads(boom)
	_, err := m.ReadText()
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, boom)

	m.FailWrites(boom)
	err = m.WriteText("y")
	require.ErrorIs(t, err, ErrWrite)
	text, _ := m.Text()
	assert.Equal(t, "x", text)

	m.FailReads(nil)
	m.FailWrites(nil)
	require.NoError(t, m.WriteText("y"))
	got, err := m.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "y", got)
}
