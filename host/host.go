package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Emurgo/node-cardano-wallet/application/validation"
	"github.com/Emurgo/node-cardano-wallet/application/wallet"
	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
	"github.com/Emurgo/node-cardano-wallet/infrastructure/builtin"
	"github.com/Emurgo/node-cardano-wallet/infrastructure/wazero"
)

// Host owns an engine and the table and façade built over it.
type Host struct {
	config Config
	engine ports.Engine
	table  *hostcall.Table
	client *wallet.Client
	logger *slog.Logger
}

var _ ports.Invoker = (*Host)(nil)

// New creates a host. Without options it uses the builtin engine with
// default limits.
func New(ctx context.Context, opts ...Option) (*Host, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.configErr != nil {
		return nil, o.configErr
	}
	cfg := entities.DefaultBridgeConfig()
	if o.config != nil {
		cfg = *o.config
	}

	v := validation.New()
	if o.engine == nil {
		if err := v.ValidateConfig(&cfg); err != nil {
			return nil, err
		}
	}

	engine := o.engine
	if engine == nil {
		var err error
		engine, err = newEngine(ctx, cfg, o.logger)
		if err != nil {
			return nil, err
		}
	}

	var reporter ports.FaultReporter = hostcall.NewSlogFaultReporter(o.logger)
	if cfg.QuietFaults || Quiet() {
		reporter = hostcall.SilentFaultReporter{}
	}

	bridge := hostcall.NewBridge(engine,
		hostcall.WithLogger(o.logger),
		hostcall.WithFaultReporter(reporter),
		hostcall.WithMaxCapacity(cfg.MaxCapacity),
		hostcall.WithMaxTextLength(cfg.MaxTextLength),
		hostcall.WithStrictUTF8(cfg.StrictUTF8),
	)

	chain := []hostcall.Middleware{
		hostcall.FaultRecoveryMiddleware(),
		hostcall.LoggingMiddleware(o.logger),
	}
	if o.registerer != nil {
		metrics, err := hostcall.NewMetrics(o.registerer)
		if err != nil {
			_ = engine.Close(ctx)
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		chain = append(chain, metrics.Middleware())
	}
	chain = append(chain, o.middleware...)

	table, err := hostcall.NewTable(bridge, hostcall.WithMiddleware(chain...), hostcall.WithCatalog())
	if err != nil {
		_ = engine.Close(ctx)
		return nil, err
	}

	o.logger.DebugContext(ctx, "wallet host ready", "engine", engine.Name(), "operations", len(table.Names()))
	return &Host{
		config: cfg,
		engine: engine,
		table:  table,
		client: wallet.New(table, v),
		logger: o.logger,
	}, nil
}

func newEngine(ctx context.Context, cfg Config, logger *slog.Logger) (ports.Engine, error) {
	switch cfg.Engine {
	case entities.EngineWasm:
		opts := []wazero.Option{
			wazero.WithLogger(logger),
			wazero.WithMemoryLimitPages(cfg.MemoryLimitPages),
		}
		if cfg.CacheDir != "" {
			opts = append(opts, wazero.WithCompilationCacheDir(cfg.CacheDir))
		}
		engine, err := wazero.NewFromFile(ctx, cfg.WasmPath, opts...)
		if err != nil {
			return nil, fmt.Errorf("load wallet engine %s: %w", cfg.WasmPath, err)
		}
		return engine, nil
	default:
		return builtin.New(builtin.WithLogger(logger)), nil
	}
}

// Config returns the effective configuration.
func (h *Host) Config() Config {
	return h.config
}

// Engine returns the native engine.
func (h *Host) Engine() ports.Engine {
	return h.engine
}

// Table returns the operation table.
func (h *Host) Table() *hostcall.Table {
	return h.table
}

// Client returns the typed façade.
func (h *Host) Client() *wallet.Client {
	return h.client
}

// Invoke implements ports.Invoker.
func (h *Host) Invoke(ctx context.Context, name string, req entities.Request) (entities.Result, error) {
	return h.table.Invoke(ctx, name, req)
}

// Close releases the engine.
func (h *Host) Close(ctx context.Context) error {
	return h.engine.Close(ctx)
}
