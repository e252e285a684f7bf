package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	DB       DBConfig       `mapstructure:"db"`
	Log      LogConfig      `mapstructure:"log"`
	Timezone string         `mapstructure:"timezone"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
	Debug bool   `mapstructure:"debug"`
}

// CalendarConfig points at the Google OAuth client file and the cached token.
type CalendarConfig struct {
	Credentials string `mapstructure:"credentials"`
	Token       string `mapstructure:"token"`
	Name        string `mapstructure:"name"`
}

// DefaultHome is ~/.planwise, or ./.planwise when the home directory is
// unknown.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".planwise"
	}
	return filepath.Join(home, ".planwise")
}

// Load resolves configuration from defaults, an optional YAML file and
// PLANWISE_* environment variables, in increasing order of precedence.
// With an empty path, config.yaml is looked up in home; a missing file is
// not an error.
func Load(path, home string) (*Config, error) {
	if home == "" {
		home = DefaultHome()
	}
	v := viper.New()

	v.SetDefault("db.path", filepath.Join(home, "planwise.db"))
	v.SetDefault("log.dir", filepath.Join(home, "logs"))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.debug", false)
	v.SetDefault("timezone", "Local")
	v.SetDefault("calendar.credentials", filepath.Join(home, "credentials.json"))
	v.SetDefault("calendar.token", filepath.Join(home, "token.json"))
	v.SetDefault("calendar.name", "primary")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("PLANWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("config: db.path must not be empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. "Local" and "" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
