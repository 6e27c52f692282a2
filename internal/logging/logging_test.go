package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"artemis/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "artemis.log")

	logger, err := New(config.Logging{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("map fallback", zap.String("field", "Books"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"map fallback"`)
	assert.Contains(t, out, `"field":"Books"`)
	assert.Contains(t, out, `"timestamp":`)
	assert.Contains(t, out, `"caller":"logging/logging_test.go:`)
}

func TestNewInvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New(config.Logging{Level: "loud"})
	assert.Error(t, err)
}
