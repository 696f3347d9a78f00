package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smp/internal/platform/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewWithWriter(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.Log{Level: "info"}, &buf)
		log.Debug("hidden")
		log.Info("shown", "participant_id", "iso6523-actorid-upis::9915:test")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "shown", line["msg"])
		assert.Equal(t, "iso6523-actorid-upis::9915:test", line["participant_id"])
	})

	t.Run("text on request", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.Log{Level: "debug", Format: "text"}, &buf)
		log.Debug("visible")
		assert.True(t, strings.Contains(buf.String(), "msg=visible"))
	})
}
