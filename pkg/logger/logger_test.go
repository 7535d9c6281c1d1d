package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cfdi-api/pkg/logger"
)

func TestNew_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	log.Info().Str("lote_id", "x1").Msg("lote procesado")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "x1", entry["lote_id"])
	assert.Equal(t, "lote procesado", entry["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	log.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())
	log.Warn().Msg("sí sale")
	assert.NotZero(t, buf.Len())
}

func TestChild_AgregaCampos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf})
	child := log.Child(log.With().Str("lote_id", "abc"))
	child.Info().Msg("hola")
	assert.Contains(t, buf.String(), `"lote_id":"abc"`)
}

func TestNop_NoEscribe(t *testing.T) {
	log := logger.Nop()
	assert.NotPanics(t, func() { log.Error().Msg("nada") })
}

func TestWrite_ComoWriter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Output: &buf})
	n, err := log.Write([]byte("200 GET /health\n"))
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Contains(t, buf.String(), `"message":"200 GET /health"`)
}
