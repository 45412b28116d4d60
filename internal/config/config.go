// Package config provides configuration management for prefedit.
// It uses Viper for configuration file handling and supports YAML format.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/pkg/utils"
	"github.com/spf13/viper"
)

const (
	appName   = "prefedit"
	envPrefix = "PREFEDIT"

	maxRecentFiles = 10
)

// Config represents the application configuration.
type Config struct {
	Version  string       `mapstructure:"version"`
	Store    StoreConfig  `mapstructure:"store"`
	Schema   SchemaConfig `mapstructure:"schema"`
	Log      LogConfig    `mapstructure:"log"`
	Settings Settings     `mapstructure:"settings"`
}

// StoreConfig locates the preference database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// SchemaConfig locates the preference schema. An empty path selects the
// built-in schema.
type SchemaConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Settings holds application-wide settings.
type Settings struct {
	// RecentFiles are export and import paths, most recent first.
	RecentFiles []string `mapstructure:"recent_files"`
}

// Load reads the configuration from the default config file location.
// Environment variables prefixed with PREFEDIT_ override file values, and a
// missing file yields the defaults.
func Load() (*Config, error) {
	v := viper.New()

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, apperrors.NewConfigInvalidError("failed to read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigInvalidError("failed to parse config", err)
	}

	cfg.Store.Path = utils.ExpandHome(cfg.Store.Path)
	cfg.Schema.Path = utils.ExpandHome(cfg.Schema.Path)
	cfg.Log.File = utils.ExpandHome(cfg.Log.File)

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return apperrors.NewConfigInvalidError("store.path must not be empty", nil)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.NewConfigInvalidError(
			fmt.Sprintf("log.level %q must be one of debug, info, warn, error", c.Log.Level), nil)
	}

	if c.Log.MaxSizeMB <= 0 {
		return apperrors.NewConfigInvalidError(fmt.Sprintf("log.max_size_mb must be positive, got %d", c.Log.MaxSizeMB), nil)
	}
	if c.Log.MaxBackups < 0 {
		return apperrors.NewConfigInvalidError(fmt.Sprintf("log.max_backups must not be negative, got %d", c.Log.MaxBackups), nil)
	}

	return nil
}

// Save writes the configuration to the default config file location.
// It uses an atomic write pattern: writes to a temp file first, then renames.
// A backup of the existing config is created before overwriting.
func (c *Config) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := utils.EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	backupPath := configPath + ".bak"

	if _, err := os.Stat(configPath); err == nil {
		if err := createBackup(configPath, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)

	v.Set("version", c.Version)
	v.Set("store.path", c.Store.Path)
	v.Set("schema.path", c.Schema.Path)
	v.Set("log.level", c.Log.Level)
	v.Set("log.file", c.Log.File)
	v.Set("log.max_size_mb", c.Log.MaxSizeMB)
	v.Set("log.max_backups", c.Log.MaxBackups)
	v.Set("settings.recent_files", c.Settings.RecentFiles)

	tempPath := configPath + ".tmp.yaml"

	if err := v.WriteConfigAs(tempPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// RestoreFromBackup restores the configuration from the backup file.
// Returns an error if no backup exists.
func RestoreFromBackup() error {
	configDir, err := getConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	backupPath := configPath + ".bak"

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("no backup file found")
	}

	if err := os.Rename(backupPath, configPath); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}

	return nil
}

// HasBackup returns true if a backup file exists.
func HasBackup() (bool, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return false, fmt.Errorf("failed to get config directory: %w", err)
	}

	_, err = os.Stat(filepath.Join(configDir, "config.yaml.bak"))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// createBackup creates a backup of the existing config file.
// It overwrites any existing backup to keep only the most recent one.
func createBackup(configPath, backupPath string) error {
	srcFile, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	dstFile, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dstFile.Close()

	if _, err := dstFile.ReadFrom(srcFile); err != nil {
		return fmt.Errorf("failed to copy config to backup: %w", err)
	}

	return dstFile.Sync()
}

// AddRecentFile moves path to the front of the recent files list, dropping
// duplicates and keeping at most ten entries.
func (c *Config) AddRecentFile(path string) {
	result := []string{path}
	for _, p := range c.Settings.RecentFiles {
		if p != path {
			result = append(result, p)
		}
	}
	if len(result) > maxRecentFiles {
		result = result[:maxRecentFiles]
	}
	c.Settings.RecentFiles = result
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() (string, error) {
	return getConfigDir()
}

var getConfigDir = func() (string, error) {
	return filepath.Join(xdg.ConfigHome, appName), nil
}

func defaultStorePath() string {
	return filepath.Join(xdg.DataHome, appName, "prefs.db")
}

func defaultLogFile() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	v.SetDefault("store.path", defaultStorePath())
	v.SetDefault("schema.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", defaultLogFile())
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("settings.recent_files", []string{})
}

// newConfigWithDefaults creates a new Config with default values.
func newConfigWithDefaults() *Config {
	return &Config{
		Version: "1.0",
		Store:   StoreConfig{Path: defaultStorePath()},
		Log: LogConfig{
			Level:      "info",
			File:       defaultLogFile(),
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Settings: Settings{RecentFiles: []string{}},
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return newConfigWithDefaults()
}
