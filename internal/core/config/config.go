package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Dataset  DatasetConfig  `koanf:"dataset"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

// DatasetConfig selects where the sales snapshot is loaded from.
type DatasetConfig struct {
	SourceType string `koanf:"source_type"` // postgres | csv
	CSVPath    string `koanf:"csv_path"`
	// MappingPath optionally points to a YAML file remapping CSV headers to
	// record fields. Empty means the default Kaggle-style header set.
	MappingPath string `koanf:"mapping_path"`
}

type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

// CacheConfig controls the query-result cache that sits in front of the
// engine. TTL-bound; entries also die with the snapshot version they were
// computed against.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	TTL     string `koanf:"ttl"` // Go duration, e.g. "5m"
}

func (c CacheConfig) TTLDuration() (time.Duration, error) {
	return time.ParseDuration(c.TTL)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Dataset.SourceType {
	case "csv":
		if strings.TrimSpace(c.Dataset.CSVPath) == "" {
			return fmt.Errorf("dataset.csv_path is required for the csv source")
		}
		if _, err := os.Stat(c.Dataset.CSVPath); err != nil {
			return fmt.Errorf("dataset.csv_path %q is not accessible: %w", c.Dataset.CSVPath, err)
		}
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the postgres source")
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	default:
		return fmt.Errorf("unsupported dataset.source_type %q (must be postgres or csv)", c.Dataset.SourceType)
	}

	ttl, err := c.Cache.TTLDuration()
	if err != nil {
		return fmt.Errorf("invalid cache.ttl %q: %w", c.Cache.TTL, err)
	}
	if ttl <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}

	return nil
}

// Load parses config from defaults, an optional YAML file, and SALESCOPE_*
// environment variables, then validates the result.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.mode":             "release",
		"dataset.source_type":     "csv",
		"dataset.csv_path":        "./data/sales_data.csv",
		"dataset.mapping_path":    "",
		"database.dsn":            "",
		"database.max_open_conns": 25,
		"database.max_idle_conns": 25,
		"database.auto_migrate":   true,
		"cache.enabled":           true,
		"cache.ttl":               "5m",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("SALESCOPE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SALESCOPE_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
