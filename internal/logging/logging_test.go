package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(Config{Output: &buf})
	quiet.Debug("hidden")
	quiet.Info("hidden")
	assert.Empty(t, buf.String())

	quiet.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	New(Config{Output: &buf, Debug: true}).Debug("trace", "rule", "core")
	assert.Contains(t, buf.String(), "rule=core")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Output: &buf, JSON: true}).Error("resolution rejected", "kind", "DependencyCycle")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "DependencyCycle", entry["kind"])
}
