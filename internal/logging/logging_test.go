package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, New(&bytes.Buffer{}, tt.level).GetLevel())
		})
	}
}

func TestNew_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info")

	logger.Debug("hidden")
	logger.Info("match ended", "score", 1240, "victory", true)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "invaders")
	assert.Contains(t, out, "match ended")
	assert.Contains(t, out, "score=1240")
	assert.Contains(t, out, "victory=true")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing to see")
	assert.Greater(t, logger.GetLevel(), log.FatalLevel)
}
