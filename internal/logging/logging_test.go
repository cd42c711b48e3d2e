package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetup_LevelSelection(t *testing.T) {
	restoreGlobals(t)

	tests := []struct {
		name string
		opts Options
		want zerolog.Level
	}{
		{"default", Options{}, zerolog.InfoLevel},
		{"named level", Options{Level: "warn"}, zerolog.WarnLevel},
		{"bad level", Options{Level: "loud"}, zerolog.InfoLevel},
		{"one v", Options{Level: "error", Verbosity: 1}, zerolog.InfoLevel},
		{"two v", Options{Verbosity: 2}, zerolog.DebugLevel},
		{"many v", Options{Verbosity: 5}, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Out = &bytes.Buffer{}
			Setup(tt.opts)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetup_JSONWhenNotTerminal(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	Setup(Options{Level: "debug", Out: &buf})

	logger := GetLogger("gedcom")
	logger.Debug().Int("records", 3).Msg("parsed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "gedcom", entry["component"])
	assert.Equal(t, "parsed", entry["message"])
	assert.EqualValues(t, 3, entry["records"])
}

func TestSetup_PrettyOutput(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	Setup(Options{Pretty: true, Out: &buf})
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}
