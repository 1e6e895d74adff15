package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

func TestNew_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Info().Str("company_id", "c-1").Msg("factura creada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "c-1", entry["company_id"])
	assert.Equal(t, "factura creada", entry["message"])
}

func TestNew_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí aparece")
	assert.NotZero(t, buf.Len())
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verbose", Output: &buf})

	log.Debug().Msg("oculto")
	assert.Zero(t, buf.Len())
	log.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}
