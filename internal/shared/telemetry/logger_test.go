package telemetry

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Info("analysis.status", map[string]any{"analysisId": "abc", "status": "completed"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "analysis.status", entry["msg"])
	assert.Equal(t, "abc", entry["analysisId"])
	assert.NotEmpty(t, entry["ts"])
}

func TestSetLevelFiltersInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("warn")
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetLevel("info")
	})

	Info("dropped", nil)
	assert.Zero(t, buf.Len())

	Warn("kept", nil)
	assert.Contains(t, buf.String(), `"level":"warning"`)
}
