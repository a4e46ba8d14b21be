package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"athlete-monitor/internal/analysis"
	"athlete-monitor/internal/assessment"
)

// Config represents the application configuration
type Config struct {
	Strava  StravaConfig  `json:"strava"`
	Scoring ScoringConfig `json:"scoring"`
	Windows WindowConfig  `json:"windows"`
	Logging LoggingConfig `json:"logging"`
	Display DisplayConfig `json:"display"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ScoringConfig holds instrument thresholds chosen by the coach
type ScoringConfig struct {
	HooperBands assessment.HooperBands `json:"hooper_bands"`
}

// WindowConfig holds the history lengths used by reports, in days
type WindowConfig struct {
	HistoryDays int `json:"history_days"`
	FitnessDays int `json:"fitness_days"`
}

// LoggingConfig controls the application log
type LoggingConfig struct {
	Level string `json:"level"`
	JSON  bool   `json:"json"`
	File  string `json:"file"` // relative paths live in the config directory
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DateFormat     string `json:"date_format"`
	DefaultAthlete string `json:"default_athlete"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Scoring: ScoringConfig{
			HooperBands: assessment.DefaultHooperBands(),
		},
		Windows: WindowConfig{
			HistoryDays: 7,
			FitnessDays: 90,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "athlete-monitor.log",
		},
		Display: DisplayConfig{
			DateFormat: "Mon Jan 2",
		},
	}
}

// Load reads the configuration from ~/.athlete-monitor/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path and fills in defaults
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Scoring.HooperBands == (assessment.HooperBands{}) {
		c.Scoring.HooperBands = defaults.Scoring.HooperBands
	}
	if c.Windows.HistoryDays == 0 {
		c.Windows.HistoryDays = defaults.Windows.HistoryDays
	}
	if c.Windows.FitnessDays == 0 {
		c.Windows.FitnessDays = defaults.Windows.FitnessDays
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = defaults.Logging.File
	}
	if c.Display.DateFormat == "" {
		c.Display.DateFormat = defaults.Display.DateFormat
	}
}

// Save writes the configuration to ~/.athlete-monitor/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the configuration to path
func SaveTo(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}

	return SaveTo(path, &example)
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	var err error

	if bandErr := c.Scoring.HooperBands.Validate(); bandErr != nil {
		err = multierr.Append(err, fmt.Errorf("scoring.hooper_bands: %w", bandErr))
	}

	if c.Windows.HistoryDays < 2 || c.Windows.HistoryDays > analysis.ChronicDays {
		err = multierr.Append(err, fmt.Errorf("windows.history_days must be between 2 and %d, got %d", analysis.ChronicDays, c.Windows.HistoryDays))
	}
	if c.Windows.FitnessDays < analysis.ChronicDays {
		err = multierr.Append(err, fmt.Errorf("windows.fitness_days must be at least %d, got %d", analysis.ChronicDays, c.Windows.FitnessDays))
	}

	if _, levelErr := logrus.ParseLevel(c.Logging.Level); levelErr != nil {
		err = multierr.Append(err, fmt.Errorf("logging.level: %w", levelErr))
	}

	return err
}

// ValidateStrava checks that Strava credentials have been filled in
func (c *Config) ValidateStrava() error {
	var err error
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		err = multierr.Append(err, errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api"))
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		err = multierr.Append(err, errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api"))
	}
	return err
}

// LogPath resolves the log file location
func (c *Config) LogPath() (string, error) {
	if c.Logging.File == "" || filepath.IsAbs(c.Logging.File) {
		return c.Logging.File, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Logging.File), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".athlete-monitor"), nil
}
