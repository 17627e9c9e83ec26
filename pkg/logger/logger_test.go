package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "json", Output: &buf})

	log.Info("venda criada", "sale_id", "s1", "error", errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "venda criada", entry["msg"])
	assert.Equal(t, "s1", entry["sale_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "info", entry["level"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "error", Output: &buf})

	log.Debug("ignorado")
	log.Warn("ignorado")
	assert.Zero(t, buf.Len())

	log.Error("registrado")
	assert.Contains(t, buf.String(), "registrado")
}

func TestFieldsOddPairs(t *testing.T) {
	f := fields([]interface{}{"a", 1, "sobra"})
	assert.Equal(t, 1, f["a"])
	assert.Equal(t, "sobra", f["extra"])
}
