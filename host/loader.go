package host

import (
	"fmt"
	"os"

	apptemplate "github.com/Emurgo/node-cardano-wallet/application/template"
	"github.com/Emurgo/node-cardano-wallet/application/validation"
	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
	"github.com/Emurgo/node-cardano-wallet/infrastructure/parser"
)

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	templateEngine  ports.TemplateEngine
	parser          ports.ConfigParser
	strictTemplates bool // Fail on missing template keys
	validate        bool
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		parser:          parser.NewYamlConfigParser(),
		strictTemplates: true,
		validate:        true,
	}
}

// Loader orchestrates the config loading pipeline: render, parse, validate.
type Loader struct {
	validator *validation.StructValidator
	config    loaderConfig
}

// LoaderOption configures the Loader.
type LoaderOption func(*loaderConfig)

// WithParser sets a custom config parser.
func WithParser(p ports.ConfigParser) LoaderOption {
	return func(c *loaderConfig) {
		c.parser = p
	}
}

// WithTemplateEngine sets a template engine.
func WithTemplateEngine(t ports.TemplateEngine) LoaderOption {
	return func(c *loaderConfig) {
		c.templateEngine = t
	}
}

// WithStrictTemplates enables/disables strict template mode.
// When enabled (default), rendering fails if a referenced key is missing.
func WithStrictTemplates(enabled bool) LoaderOption {
	return func(c *loaderConfig) {
		c.strictTemplates = enabled
	}
}

// WithValidation enables/disables config validation in Load.
// Callers that override fields after loading disable it and validate the
// merged config themselves; host.New does so for every config it is given.
func WithValidation(enabled bool) LoaderOption {
	return func(c *loaderConfig) {
		c.validate = enabled
	}
}

// NewLoader creates a new Loader with defaults.
func NewLoader(opts ...LoaderOption) *Loader {
	cfg := defaultLoaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.templateEngine == nil {
		cfg.templateEngine = apptemplate.New(apptemplate.WithStrict(cfg.strictTemplates))
	}
	return &Loader{config: cfg, validator: validation.New()}
}

// Load renders, parses and, unless disabled, validates a configuration document.
func (l *Loader) Load(raw []byte, vars map[string]string) (*entities.BridgeConfig, error) {
	data, err := l.config.templateEngine.Render(raw, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}

	cfg, err := l.config.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if !l.config.validate {
		return cfg, nil
	}
	if err := l.validator.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads the configuration file at path.
func (l *Loader) LoadFile(path string, vars map[string]string) (*entities.BridgeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return l.Load(raw, vars)
}
