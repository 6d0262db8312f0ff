package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel("info")
	})
	return &buf
}

func TestInfo_WritesJSONLine(t *testing.T) {
	buf := capture(t)
	SetLevel("info")

	Info("battle started", Fields{"battle_id": "abc", "round": 1})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "battle started", line["msg"])
	assert.Equal(t, "abc", line["battle_id"])
	assert.EqualValues(t, 1, line["round"])
	assert.Contains(t, line, "time")
}

func TestError_IncludesErrorText(t *testing.T) {
	buf := capture(t)

	Error("save failed", errors.New("disk full"), nil)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "disk full", line["error"])
}

func TestSetLevel_FiltersBelowThreshold(t *testing.T) {
	buf := capture(t)
	SetLevel("warn")

	Debug("hidden", nil)
	Info("hidden", nil)
	Warn("shown", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}
