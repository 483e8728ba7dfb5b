package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithOptions_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithOptions("ayurveda-clinic", "production", "debug", "", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Str("patient_id", "p1").Msg("patient added")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ayurveda-clinic", line["service"])
	assert.Equal(t, "p1", line["patient_id"])
}

func TestInitLoggerWithOptions_ECS(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithOptions("ayurveda-clinic", "production", "info", LogFormatECS, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("started")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Contains(t, line, "ecs.version")
	assert.Equal(t, "started", line["message"])
}

func TestInitLoggerWithOptions_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithOptions("ayurveda-clinic", "production", "warn", "", &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestLoggerFromContext_NoSpan(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
}
