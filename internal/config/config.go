package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/idilsaglam/tally/internal/model"
)

// Backends accepted by store.backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	Store   StoreConfig
	Log     LogConfig
	UI      UIConfig
	Credits CreditsConfig
}

// StoreConfig selects where preferences live.
type StoreConfig struct {
	Backend   string
	Dir       string
	Namespace string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string
}

// CreditsConfig overrides the credits screen text.
type CreditsConfig struct {
	Title string
	Lines []string
}

func defaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tally")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "tally")
}

// Load reads configuration from file and env. Env var overrides use prefix
// TALLY_. path, when set, names the config file; otherwise $TALLY_CONFIG or
// config.toml in the default directory is used. A missing file is not an
// error.
func Load(path string) (Config, error) {
	v := viper.New()

	dir := defaultDir()

	// default values
	v.SetDefault("store.backend", BackendJSON)
	v.SetDefault("store.dir", dir)
	v.SetDefault("store.namespace", model.Namespace)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "tally.log"))
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("credits.title", "")
	v.SetDefault("credits.lines", []string{})

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("TALLY_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TALLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Namespace) == "" {
		return errors.New("store.namespace: must not be empty")
	}
	return nil
}
