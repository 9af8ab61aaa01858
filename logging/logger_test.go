package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguxez/babyfood/config"
)

func TestNewLevel(t *testing.T) {
	logger, closer, err := New(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger, closer, err = New(config.LogConfig{})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestNewBadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := New(config.LogConfig{Level: "info", Dir: dir, Name: "tracker"})
	require.NoError(t, err)

	logger.WithField("count", 3).Info("loaded entries")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02"), "tracker.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded entries")
	assert.Contains(t, string(data), "count=3")
}

func TestNewLogstashHook(t *testing.T) {
	// UDP dial succeeds without a listener.
	logger, closer, err := New(config.LogConfig{Logstash: config.LogstashConfig{Enable: true, URL: "127.0.0.1:5959"}})
	require.NoError(t, err)
	defer closer.Close()

	assert.Len(t, logger.Hooks[logrus.InfoLevel], 1)
}
