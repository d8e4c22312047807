package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewire/notewire/internal/config"
)

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.LoggingConfig{Level: "warn"}, &buf)
	require.NotNil(t, log)

	log.Info("should be filtered")
	assert.Zero(t, buf.Len(), "info should not pass a warn-level logger")

	log.Warn("kept", "pass", "ingest")
	require.NotZero(t, buf.Len())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be JSON")
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "ingest", entry["pass"])
}

func TestSetupUnknownLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := setup(config.LoggingConfig{Level: "chatty"}, &buf)

	log.Info("still logged")
	assert.NotZero(t, buf.Len(), "unknown level should fall back to info")
}
