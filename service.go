package fatkit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/sirupsen/logrus"
)

// Global instance
var (
	defaultController Controller
	defaultOnce       sync.Once
	defaultErr        error
)

// Builder provides a way to create Controller instances with custom config
// prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// New creates a new Controller using the builder's prefix
func (b *Builder) New() (Controller, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global controller instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// Init initializes the global controller instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultController, defaultErr = New(cfg)
	})

	return defaultErr
}

// Default returns the global controller, initializing it from the
// environment on first use.
func Default() (Controller, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return defaultController, nil
}

// New creates a controller with the given config
func New(cfg *Config) (Controller, error) {
	// Validation
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		logrus.SetLevel(level)
	}

	// Create the driver using the factory
	drv, err := CreateDriver(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	var c Controller = NewController(drv)

	// Wrap read-only if configured
	if cfg.ReadOnly {
		c = NewReadOnlyController(c)
	}

	return c, nil
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if cfg.Driver == "" {
		return errors.New("driver is required")
	}
	return nil
}
