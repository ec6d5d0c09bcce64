package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/hachtel/internal/logging"
)

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	cfg := logging.Config{Level: "info", Format: logging.FormatJSON, Output: path}

	log, err := logging.New(cfg)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("estimation converged", zap.Int("iterations", 4))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug is below the configured level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "estimation converged", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 4, entry["iterations"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_Console(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	log, err := logging.New(logging.Config{Level: "debug", Format: "CONSOLE", Output: path, Development: true})
	require.NoError(t, err)
	log.Debug("iteration", zap.Float64("step_norm", 0.5))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG")
	assert.Contains(t, string(data), "iteration")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, logging.DefaultConfig().Validate())

	err := logging.Config{Level: "loud", Format: logging.FormatJSON}.Validate()
	assert.ErrorIs(t, err, logging.ErrBadLevel)

	err = logging.Config{Level: "info", Format: "xml"}.Validate()
	assert.ErrorIs(t, err, logging.ErrBadFormat)

	_, err = logging.New(logging.Config{Level: "info", Format: "xml"})
	assert.ErrorIs(t, err, logging.ErrBadFormat)
}

func TestNew_BadOutput(t *testing.T) {
	_, err := logging.New(logging.Config{
		Level:  "info",
		Format: logging.FormatJSON,
		Output: filepath.Join(t.TempDir(), "missing", "run.log"),
	})
	assert.Error(t, err)
}
