package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data/rooms.csv", cfg.RoomsFile)
	assert.Equal(t, "data/courses.csv", cfg.CoursesFile)
	assert.Equal(t, "data/time_slots.csv", cfg.TimeSlotsFile)
	assert.Equal(t, 15, cfg.BufferMinutes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SATIS_ROOMS_FILE", "/tmp/rooms.csv")
	t.Setenv("SATIS_BUFFER_MINUTES", "30")
	t.Setenv("SATIS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rooms.csv", cfg.RoomsFile)
	assert.Equal(t, 30, cfg.BufferMinutes)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsNegativeBuffer(t *testing.T) {
	t.Setenv("SATIS_BUFFER_MINUTES", "-5")
	_, err := Load()
	assert.Error(t, err)
}
