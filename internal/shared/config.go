package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v9"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Values from the environment (PRESETX_*) override values from the file.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Log     LogConfig     `toml:"log"`
}

// BackendConfig contains the preset backend connection settings.
type BackendConfig struct {
	BaseURL           string        `toml:"base_url" env:"PRESETX_BASE_URL"`
	Timeout           time.Duration `toml:"timeout" env:"PRESETX_TIMEOUT"`
	RequestsPerSecond float64       `toml:"requests_per_second" env:"PRESETX_REQUESTS_PER_SECOND"`
	Burst             int           `toml:"burst" env:"PRESETX_BURST"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" env:"PRESETX_LOG_LEVEL"`
	File  string `toml:"file" env:"PRESETX_LOG_FILE"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides config values with any PRESETX_* environment variables that are set.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LogLevel parses the configured level, falling back to [log.InfoLevel].
func (c LogConfig) LogLevel() log.Level {
	if c.Level == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
