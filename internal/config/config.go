// Package config resolves chorewheel settings from an optional YAML file and
// CHOREWHEEL_* environment variables. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user directory holding the database and config file.
	Dir = ".chorewheel"

	defaultDBName = "chorewheel.db"
	defaultAddr   = ":8080"
)

// Config holds runtime settings.
type Config struct {
	DBPath    string `yaml:"db_path"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Addr      string `yaml:"addr"`
	Backup    Backup `yaml:"backup"`
}

// Backup configures offsite copies of the history to S3-compatible storage.
// Uploads are disabled unless bucket, keys and passphrase are all set.
type Backup struct {
	Endpoint      string        `yaml:"endpoint"`
	Bucket        string        `yaml:"bucket"`
	Region        string        `yaml:"region"`
	AccessKey     string        `yaml:"access_key"`
	SecretKey     string        `yaml:"secret_key"`
	Prefix        string        `yaml:"prefix"`
	Passphrase    string        `yaml:"passphrase"`
	Interval      time.Duration `yaml:"interval"`
	RetentionDays int           `yaml:"retention_days"`
}

// Default returns settings rooted at home.
func Default(home string) Config {
	return Config{
		DBPath:    filepath.Join(home, Dir, defaultDBName),
		LogLevel:  "info",
		LogFormat: "text",
		Addr:      defaultAddr,
		Backup: Backup{
			Region:        "us-east-1",
			Prefix:        "chorewheel/",
			Interval:      24 * time.Hour,
			RetentionDays: 30,
		},
	}
}

// DefaultPath is where Load looks when no config file is given.
func DefaultPath(home string) string {
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is only an error when required is true.
func Load(path string, required bool, home string, getenv func(string) string) (Config, error) {
	cfg := Default(home)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	if v := getenv("CHOREWHEEL_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := getenv("CHOREWHEEL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("CHOREWHEEL_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := getenv("CHOREWHEEL_ADDR"); v != "" {
		c.Addr = v
	}

	for name, field := range map[string]*string{
		"CHOREWHEEL_BACKUP_ENDPOINT":   &c.Backup.Endpoint,
		"CHOREWHEEL_BACKUP_BUCKET":     &c.Backup.Bucket,
		"CHOREWHEEL_BACKUP_REGION":     &c.Backup.Region,
		"CHOREWHEEL_BACKUP_ACCESS_KEY": &c.Backup.AccessKey,
		"CHOREWHEEL_BACKUP_SECRET_KEY": &c.Backup.SecretKey,
		"CHOREWHEEL_BACKUP_PREFIX":     &c.Backup.Prefix,
		"CHOREWHEEL_BACKUP_PASSPHRASE": &c.Backup.Passphrase,
	} {
		if v := getenv(name); v != "" {
			*field = v
		}
	}
	if v := getenv("CHOREWHEEL_BACKUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CHOREWHEEL_BACKUP_INTERVAL: %w", err)
		}
		c.Backup.Interval = d
	}
	if v := getenv("CHOREWHEEL_BACKUP_RETENTION_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHOREWHEEL_BACKUP_RETENTION_DAYS: %w", err)
		}
		c.Backup.RetentionDays = n
	}
	return nil
}
