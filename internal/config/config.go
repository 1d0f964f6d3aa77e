package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/saadjs/nurse-aid/internal/app"
	"github.com/saadjs/nurse-aid/internal/service"
)

type Config struct {
	DBPath        string  `mapstructure:"db_path"`
	ReportDir     string  `mapstructure:"report_dir"`
	LogLevel      string  `mapstructure:"log_level"`
	LogFormat     string  `mapstructure:"log_format"`
	LookupURL     string  `mapstructure:"lookup_url"`
	LowSupplyDays float64 `mapstructure:"low_supply_days"`
}

// Load reads the YAML file at path over the built-in defaults. A missing
// file is not an error; an empty path means the default location. Settings
// come only from the file and command flags, never the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
	v.SetDefault("lookup_url", service.DefaultLookupURL)
	v.SetDefault("low_supply_days", 7)

	explicit := path != ""
	if !explicit {
		p, err := app.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || os.IsNotExist(err) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DBPath == "" {
		p, err := app.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be \"console\" or \"json\", got %q", c.LogFormat)
	}
	if c.LowSupplyDays < 0 {
		return fmt.Errorf("low_supply_days must be >= 0")
	}
	return nil
}

// ResolvedReportDir is ReportDir, or the reports folder beside the database.
func (c *Config) ResolvedReportDir() string {
	if c.ReportDir != "" {
		return c.ReportDir
	}
	return app.ReportDirFor(c.DBPath)
}
