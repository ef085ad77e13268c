package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		SetupLoggerTo(&buf, tt.verbosity)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestGetLoggerAddsComponent(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	orig := log.Logger
	defer func() { log.Logger = orig }()

	var buf bytes.Buffer
	SetupLoggerTo(&buf, 0)
	l := GetLogger("render")
	l.Warn().Msg("careful")

	out := buf.String()
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "component=render")
	// Non-terminal writers get no color codes.
	assert.NotContains(t, out, "\x1b[")
}

func TestSetupLoggerFiltersBelowLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	orig := log.Logger
	defer func() { log.Logger = orig }()

	var buf bytes.Buffer
	SetupLoggerTo(&buf, 0)
	l := GetLogger("render")
	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}
