package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr string

	StorageBackend string
	NotesFile      string
	DocumentName   string

	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads settings from the environment and, when path is not empty,
// from the config file at path. Environment variables win over the file.
// Unparsable numbers and durations fall back to their defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return Config{
		HTTPAddr:        getString(v, "HTTP_ADDR", ":8080"),
		StorageBackend:  getString(v, "STORAGE_BACKEND", BackendFile),
		NotesFile:       getString(v, "NOTES_FILE", "notes.json"),
		DocumentName:    getString(v, "NOTES_DOCUMENT", "notes"),
		DatabaseURL:     getString(v, "DATABASE_URL", ""),
		MaxOpenConns:    getInt(v, "DB_MAX_OPEN", 20),
		MaxIdleConns:    getInt(v, "DB_MAX_IDLE", 10),
		ConnMaxLifetime: getDuration(v, "DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime: getDuration(v, "DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		LogLevel:        getString(v, "LOG_LEVEL", "info"),
		LogFormat:       getString(v, "LOG_FORMAT", "text"),
	}, nil
}

func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendFile:
		if c.NotesFile == "" {
			return fmt.Errorf("NOTES_FILE is required for the %s backend", BackendFile)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	s := v.GetString(key)
	if s == "" {
		return def
	}
	return s
}

func getInt(v *viper.Viper, key string, def int) int {
	s := v.GetString(key)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	s := v.GetString(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
