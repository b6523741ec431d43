package host

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// Config is the declarative host configuration.
type Config = entities.BridgeConfig

type options struct {
	config     *Config
	configErr  error
	logger     *slog.Logger
	registerer prometheus.Registerer
	engine     ports.Engine
	middleware []hostcall.Middleware
}

// Option configures a Host.
type Option func(*options)

// WithConfig sets the configuration. It is validated by New.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = &cfg
		o.configErr = nil
	}
}

// WithConfigFile loads the configuration from a YAML file, resolving
// {{.vars.key}} placeholders from vars.
func WithConfigFile(path string, vars map[string]string) Option {
	return func(o *options) {
		o.config, o.configErr = NewLoader().LoadFile(path, vars)
	}
}

// WithLogger sets the logger shared by the engine, bridge and middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics registers per-operation call metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithEngine uses engine instead of the one the configuration selects.
// The host takes ownership and closes it.
func WithEngine(engine ports.Engine) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithMiddleware appends middleware after the builtin chain.
func WithMiddleware(mw ...hostcall.Middleware) Option {
	return func(o *options) {
		o.middleware = append(o.middleware, mw...)
	}
}
