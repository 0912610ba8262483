package enrs

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables a host application usually wants to set once
// at startup, loadable from a YAML file. Zero values mean "use the
// default".
type Config struct {
	// InitialCapacity pre-allocates entity bookkeeping.
	InitialCapacity int `yaml:"initial_capacity"`
	// Workers is the default parallel iteration worker count;
	// 0 means runtime.GOMAXPROCS.
	Workers int `yaml:"workers"`
	// LogLevel enables structured logging of structural events when set
	// to a zap level name ("debug", "info", ...). Empty or "off" disables
	// logging entirely.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: 1024,
	}
}

// LoadConfig reads a YAML configuration file, applying defaults for
// omitted fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("ecs: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("ecs: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid field, if any.
func (c Config) Validate() error {
	if c.InitialCapacity < 0 {
		return fmt.Errorf("ecs: initial_capacity must not be negative, got %d", c.InitialCapacity)
	}
	if c.Workers < 0 {
		return fmt.Errorf("ecs: workers must not be negative, got %d", c.Workers)
	}
	if c.LogLevel != "" && c.LogLevel != "off" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("ecs: invalid log_level %q: %w", c.LogLevel, err)
		}
	}
	return nil
}

// buildLogger constructs the logger implied by LogLevel.
func (c Config) buildLogger() (*zap.Logger, error) {
	if c.LogLevel == "" || c.LogLevel == "off" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("ecs: invalid log_level %q: %w", c.LogLevel, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// NewRegistryFromConfig builds a Registry from a validated Config.
func NewRegistryFromConfig(c Config) (*Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger, err := c.buildLogger()
	if err != nil {
		return nil, err
	}
	opts := []Option{WithLogger(logger)}
	if c.InitialCapacity > 0 {
		opts = append(opts, WithCapacity(c.InitialCapacity))
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return NewRegistry(opts...), nil
}
