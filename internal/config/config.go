package config

import (
	"os"
	"strconv"
	"time"

	"oncoviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig `validate:"required"`
	Data      DataConfig   `validate:"required"`
	Analysis  AnalysisConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port       string `validate:"required"`
	GinMode    string
	SessionTTL time.Duration
}

// DataConfig holds snapshot and display vocabulary settings
type DataConfig struct {
	SnapshotFile string
	DisplayFile  string
}

// AnalysisConfig holds cohort summary computation settings
type AnalysisConfig struct {
	MaxParallel int64
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    loadServerConfig(),
		Data:      loadDataConfig(),
		Analysis:  loadAnalysisConfig(),
		Profiling: loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:       getEnvOrDefault("PORT", "8050"),
		GinMode:    getEnvOrDefault("GIN_MODE", "debug"),
		SessionTTL: getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		SnapshotFile: getEnvOrDefault("SNAPSHOT_FILE", ""),
		DisplayFile:  getEnvOrDefault("DISPLAY_CONFIG", ""),
	}
}

func loadAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		MaxParallel: int64(getEnvIntOrDefault("SUMMARY_WORKERS", 4)),
	}
}

func loadProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analysis.MaxParallel < 1 {
		return errors.ConfigInvalid("SUMMARY_WORKERS must be at least 1")
	}
	if config.Server.SessionTTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
