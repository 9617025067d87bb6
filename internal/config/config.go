// Package config loads runtime settings from the environment with sensible
// defaults, using a SATIS_ prefix. A .env file is honoured when present.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the driver needs to run one optimize sequence.
// BufferMinutes and tolerance handling default to the engine's standard
// behaviour; they are configuration here so deployments can tune them
// without a rebuild.
type Config struct {
	RoomsFile     string
	CoursesFile   string
	TimeSlotsFile string
	ExportFile    string

	BufferMinutes int

	Log LogConfig
}

// LogConfig selects logger behaviour.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads the environment (and optional .env file) into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SATIS")
	v.AutomaticEnv()

	v.SetDefault("ROOMS_FILE", "data/rooms.csv")
	v.SetDefault("COURSES_FILE", "data/courses.csv")
	v.SetDefault("TIME_SLOTS_FILE", "data/time_slots.csv")
	v.SetDefault("EXPORT_FILE", "output/schedule.csv")
	v.SetDefault("BUFFER_MINUTES", 15)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	cfg := &Config{
		RoomsFile:     v.GetString("ROOMS_FILE"),
		CoursesFile:   v.GetString("COURSES_FILE"),
		TimeSlotsFile: v.GetString("TIME_SLOTS_FILE"),
		ExportFile:    v.GetString("EXPORT_FILE"),
		BufferMinutes: v.GetInt("BUFFER_MINUTES"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
	if cfg.BufferMinutes < 0 {
		return nil, fmt.Errorf("buffer minutes must be >= 0, got %d", cfg.BufferMinutes)
	}
	return cfg, nil
}
