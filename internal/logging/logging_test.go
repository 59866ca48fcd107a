package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "panel.log")

	for i := range 2 {
		log, closeFn, err := Open(path, false)
		require.NoError(t, err)
		log.Info().Int("run", i).Msg("started")
		log.Trace().Msg("hidden")
		require.NoError(t, closeFn())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "started", rec["message"])
	assert.EqualValues(t, 1, rec["run"])
	assert.Contains(t, rec, "time")
}

func TestOpenEmptyPath(t *testing.T) {
	log, closeFn, err := Open("", true)
	require.NoError(t, err)
	log.Info().Msg("discarded")
	assert.NoError(t, closeFn())
}

func TestTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	on := New(&buf, true)
	on.Trace().Msg("published")
	assert.Contains(t, buf.String(), `"level":"trace"`)

	buf.Reset()
	off := New(&buf, false)
	off.Trace().Msg("published")
	assert.Empty(t, buf.String())
}
