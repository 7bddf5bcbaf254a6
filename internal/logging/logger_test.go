package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	logger, closer, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNew_InvalidFormat(t *testing.T) {
	_, _, err := New(Config{Level: "info", Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "recipes.log")

	logger, closer, err := New(Config{Level: "info", Format: "json", OutputFile: path})
	require.NoError(t, err)

	logger.WithField("component", "test").Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestRotateIfNeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0644))

	err := rotateIfNeeded(Config{OutputFile: path, MaxSize: 32, MaxBackups: 3})
	require.NoError(t, err)

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "current file should be rotated to .1")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRotateIfNeeded_BelowLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.log")
	require.NoError(t, os.WriteFile(path, []byte("small"), 0644))

	require.NoError(t, rotateIfNeeded(Config{OutputFile: path, MaxSize: 1024, MaxBackups: 3}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
}
