package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"companydir/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Page      PageConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Host            string
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// Addr returns the host:port the web server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// DataConfig describes the spreadsheet the directory is loaded from
type DataConfig struct {
	File           string
	Sheet          string
	CategoryColumn string
}

// PageConfig holds presentation settings
type PageConfig struct {
	Title    string
	Intro    string // markdown
	PageSize int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

const (
	DefaultDataFile       = "Job1.xlsx"
	DefaultCategoryColumn = "Category"
	DefaultHost           = "127.0.0.1"
	DefaultPort           = "8051"
	DefaultPageSize       = 10
	MaxPageSize           = 500
)

// FromEnv reads configuration from environment variables without validating
// it, so callers can apply overrides (command-line flags) first.
func FromEnv() *Config {
	return &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Page:      *loadPageConfig(),
		Profiling: *loadProfilingConfig(),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:            getEnvOrDefault("HOST", DefaultHost),
		Port:            getEnvOrDefault("PORT", DefaultPort),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:           getEnvOrDefault("DATA_FILE", DefaultDataFile),
		Sheet:          getEnvOrDefault("DATA_SHEET", ""),
		CategoryColumn: getEnvOrDefault("CATEGORY_COLUMN", DefaultCategoryColumn),
	}
}

func loadPageConfig() *PageConfig {
	return &PageConfig{
		Title:    getEnvOrDefault("PAGE_TITLE", "Company Directory"),
		Intro:    getEnvOrDefault("PAGE_INTRO", ""),
		PageSize: getEnvIntOrDefault("PAGE_SIZE", DefaultPageSize),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

// Validate checks required fields and ranges
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.File) == "" {
		return errors.ConfigInvalid("data file path is required")
	}
	if strings.TrimSpace(c.Data.CategoryColumn) == "" {
		return errors.ConfigInvalid("category column is required")
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test, got " + strconv.Quote(c.Server.GinMode))
	}
	if !validPort(c.Server.Port) {
		return errors.ConfigInvalid("server port must be between 1 and 65535, got " + strconv.Quote(c.Server.Port))
	}
	if c.Profiling.Enabled && !validPort(c.Profiling.Port) {
		return errors.ConfigInvalid("profiling port must be between 1 and 65535, got " + strconv.Quote(c.Profiling.Port))
	}
	if c.Page.PageSize < 1 || c.Page.PageSize > MaxPageSize {
		return errors.ConfigInvalid("page size must be between 1 and " + strconv.Itoa(MaxPageSize))
	}
	return nil
}

func validPort(port string) bool {
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
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
