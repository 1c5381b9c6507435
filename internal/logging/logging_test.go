package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"cafes/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_ReplacesGlobals(t *testing.T) {
	logger, flush, err := logging.New(logging.Config{Mode: "production"})
	require.NoError(t, err)
	defer flush()

	assert.Same(t, logger, zap.L())
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNew_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes.log")

	_, flush, err := logging.New(logging.Config{Mode: "development", Filename: path})
	require.NoError(t, err)

	zap.S().Infow("cafe created", "id", 7)
	flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cafe created")
	assert.Contains(t, string(data), `"id":7`)
}
