package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToZapFields(t *testing.T) {
	assert.Nil(t, toZapFields(nil))

	fields := toZapFields(map[string]interface{}{
		"tool":  "list_all_services",
		"error": errors.New("boom"),
	})
	assert.Len(t, fields, 2)
}

func TestZapWrapper_WithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.With(map[string]interface{}{"tool": "find_services_by_keyword"}).
		Info("tool invoked", map[string]interface{}{"resultCount": 3})
	log.WithError(errors.New("provider down")).Error("send failed", nil)

	entries := logs.AllUntimed()
	assert.Len(t, entries, 2)
	assert.Equal(t, "tool invoked", entries[0].Message)
	assert.Equal(t, "find_services_by_keyword", entries[0].ContextMap()["tool"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["resultCount"])
	assert.Equal(t, "provider down", entries[1].ContextMap()["error"])
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"fatal", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, "json")
			assert.True(t, l.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNew_WritesToRequestedSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notchbot.log")

	l := New("info", "json", path)
	l.Info("offer sent", zap.String("reference", "ref-1"))
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"offer sent"`)
	assert.Contains(t, string(raw), `"reference":"ref-1"`)
}
