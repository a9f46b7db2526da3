package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/picatz/dnslists/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "INFO", want: slog.LevelInfo},
		{name: "", want: slog.LevelInfo},
		{name: "warn", want: slog.LevelWarn},
		{name: " warning ", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "loud", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			level, err := logging.ParseLevel(test.name)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, level)
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	log := logging.New(&buf, slog.LevelWarn, true)
	log.Info("hidden")
	log.Warn("fetch failed", "source", "Curl")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "fetch failed")
	assert.Contains(t, out, "source=Curl")
	assert.NotContains(t, out, "\x1b[", "no color escapes when disabled")
}
