package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONToFallback(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(Settings{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, l.GetLevel())

	l.Debug().Str("k", "v").Msg("hello")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["message"])
	require.Equal(t, "v", line["k"])
}

func TestNewLogger_Discard(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(Settings{Format: "json", Discard: true}, &buf)
	require.NoError(t, err)
	l.Info().Msg("dropped")
	require.Zero(t, buf.Len())
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.log")
	l, err := NewLogger(Settings{Format: "json", File: path, Discard: true}, nil)
	require.NoError(t, err)
	l.Info().Msg("to file")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "to file")
}

func TestNewLogger_InvalidSettings(t *testing.T) {
	_, err := NewLogger(Settings{Level: "loud"}, nil)
	require.Error(t, err)
	_, err = NewLogger(Settings{Format: "xml"}, nil)
	require.Error(t, err)
}
