// Package config loads and persists the application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/MatheusOtenio/Pink-Note/internal/constant"
)

const configFileName = "pinknote"

// Config is everything read at startup. It lives in an optional
// pinknote.yaml inside the data directory. The storage locations may also be
// set through PINKNOTE_DB_PATH and PINKNOTE_STORAGE_ROOT; nothing else is
// read from the environment.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
	Appearance AppearanceConfig `mapstructure:"appearance"`

	dataDir string
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type StorageConfig struct {
	// Backend is "disk" or "s3".
	Backend string   `mapstructure:"backend"`
	Root    string   `mapstructure:"root"`
	S3      S3Config `mapstructure:"s3"`
}

type S3Config struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
}

type LogConfig struct {
	FilePath string `mapstructure:"file_path"`
	Level    string `mapstructure:"level"`
	Pretty   bool   `mapstructure:"pretty"`
}

type AppearanceConfig struct {
	Theme    string `mapstructure:"theme"`
	FontSize int    `mapstructure:"font_size"`
}

// DefaultDataDir is where the database, attachments, logs and config file
// live unless configured otherwise.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "pinknote")
}

// Load reads the configuration from dataDir, falling back to defaults for
// anything the config file does not set. An empty dataDir means the default
// data directory. A missing config file is not an error.
func Load(dataDir string) (*Config, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	v := viper.New()
	setDefaults(v, dataDir)

	v.SetConfigName(configFileName)
	v.AddConfigPath(dataDir)

	bindEnv(v, "database.path", "PINKNOTE_DB_PATH")
	bindEnv(v, "storage.root", "PINKNOTE_STORAGE_ROOT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.dataDir = dataDir
	return &cfg, nil
}

// Save writes the active configuration back to the data directory so edits
// made through the settings screen survive restarts.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	v := viper.New()
	v.Set("database.path", c.Database.Path)
	v.Set("storage.backend", c.Storage.Backend)
	v.Set("storage.root", c.Storage.Root)
	v.Set("storage.s3.access_key", c.Storage.S3.AccessKey)
	v.Set("storage.s3.secret_key", c.Storage.S3.SecretKey)
	v.Set("storage.s3.endpoint", c.Storage.S3.Endpoint)
	v.Set("storage.s3.region", c.Storage.S3.Region)
	v.Set("storage.s3.bucket", c.Storage.S3.Bucket)
	v.Set("log.file_path", c.Log.FilePath)
	v.Set("log.level", c.Log.Level)
	v.Set("log.pretty", c.Log.Pretty)
	v.Set("appearance.theme", c.Appearance.Theme)
	v.Set("appearance.font_size", c.Appearance.FontSize)

	path := filepath.Join(c.dataDir, configFileName+".yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// DataDir is the directory this configuration was loaded from.
func (c *Config) DataDir() string { return c.dataDir }

func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("database.path", filepath.Join(dataDir, constant.DefaultDatabaseFileName))
	v.SetDefault("storage.backend", "disk")
	v.SetDefault("storage.root", filepath.Join(dataDir, "attachments"))
	v.SetDefault("log.file_path", filepath.Join(dataDir, "pinknote.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("appearance.theme", "light")
	v.SetDefault("appearance.font_size", 12)
}

func bindEnv(v *viper.Viper, key, envVar string) {
	// viper's BindEnv only fails on an empty key.
	_ = v.BindEnv(key, envVar)
}
