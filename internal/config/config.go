// Package config loads Body Signal settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/bodysignal/internal/services"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFileName = "bodysignal.yaml"
	EnvConfigPath   = "BODYSIGNAL_CONFIG"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server     ServerConfig       `yaml:"server"`
	Database   DatabaseConfig     `yaml:"database"`
	Log        LogConfig          `yaml:"log"`
	Calendar   CalendarConfig     `yaml:"calendar"`
	Thresholds services.Thresholds `yaml:"thresholds"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// Timezone is an IANA name used to map log timestamps to calendar days.
	Timezone        string        `yaml:"timezone"`
	DefaultLanguage string        `yaml:"default_language"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type CalendarConfig struct {
	// WeekStart is "sunday" or "monday".
	WeekStart    string `yaml:"week_start"`
	LookbackDays int    `yaml:"lookback_days"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Timezone:        "UTC",
			DefaultLanguage: "en",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: filepath.Join("data", "bodysignal.db"),
		},
		Log: LogConfig{
			Level: "info",
		},
		Calendar: CalendarConfig{
			WeekStart:    "sunday",
			LookbackDays: services.DefaultLookbackDays,
		},
		Thresholds: services.DefaultThresholds(),
	}
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(strings.TrimSpace(c.Server.Port))
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("%w: server.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: log.level must be debug, info, warn or error", ErrInvalidConfig)
	}
	if _, ok := parseWeekStart(c.Calendar.WeekStart); !ok {
		return fmt.Errorf("%w: calendar.week_start must be sunday or monday", ErrInvalidConfig)
	}
	if c.Calendar.LookbackDays < 1 || c.Calendar.LookbackDays > services.MaxLookbackDays {
		return fmt.Errorf("%w: calendar.lookback_days must be between 1 and %d", ErrInvalidConfig, services.MaxLookbackDays)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadFromFile reads a YAML file over the defaults. It does not validate.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge copies the non-zero fields of other into c. Thresholds are replaced
// as a whole when other carries any.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Server.Port != "" {
		c.Server.Port = other.Server.Port
	}
	if other.Server.Timezone != "" {
		c.Server.Timezone = other.Server.Timezone
	}
	if other.Server.DefaultLanguage != "" {
		c.Server.DefaultLanguage = other.Server.DefaultLanguage
	}
	if other.Server.ShutdownTimeout != 0 {
		c.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}

	if other.Database.Path != "" {
		c.Database.Path = other.Database.Path
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	if other.Calendar.WeekStart != "" {
		c.Calendar.WeekStart = other.Calendar.WeekStart
	}
	if other.Calendar.LookbackDays != 0 {
		c.Calendar.LookbackDays = other.Calendar.LookbackDays
	}

	if other.Thresholds != (services.Thresholds{}) {
		c.Thresholds = other.Thresholds
	}
}

// ApplyEnv overrides file values with the process environment.
func (c *Config) ApplyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Server.Timezone = getEnv("TZ", c.Server.Timezone)
	c.Server.DefaultLanguage = getEnv("DEFAULT_LANGUAGE", c.Server.DefaultLanguage)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Calendar.WeekStart = getEnv("WEEK_START", c.Calendar.WeekStart)
}

// ResolvePath picks the config file: the explicit flag value, then
// BODYSIGNAL_CONFIG, then bodysignal.yaml in the working directory.
func ResolvePath(flagValue string) string {
	if path := strings.TrimSpace(flagValue); path != "" {
		return path
	}
	return getEnv(EnvConfigPath, DefaultFileName)
}

// Load builds the effective config: defaults, file, environment, then
// validation. A missing file is not an error.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	config := DefaultConfig()
	fromFile, err := LoadFromFile(path)
	switch {
	case err == nil:
		config = fromFile
		logger.Debug("config file loaded", "path", path)
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("config file not found, using defaults", "path", path)
	default:
		return nil, err
	}

	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Location falls back to UTC for an unknown zone; Validate reports it.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func (c *Config) WeekStart() time.Weekday {
	weekday, _ := parseWeekStart(c.Calendar.WeekStart)
	return weekday
}

func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseWeekStart(raw string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	default:
		return time.Sunday, false
	}
}

func parseLevel(raw string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
