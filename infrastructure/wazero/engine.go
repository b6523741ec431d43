package wazero

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/Emurgo/node-cardano-wallet/domain/ports"
	"github.com/Emurgo/node-cardano-wallet/internal/abi"
)

// Name identifies the wasm engine.
const Name = "wasm"

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("wasm engine is closed")

type config struct {
	logger           *slog.Logger
	cacheDir         string
	allocExport      string
	deallocExport    string
	memoryLimitPages uint32
	allocationLimit  uint64
	callTimeout      time.Duration
}

func defaultConfig() config {
	return config{
		logger:        slog.Default(),
		allocExport:   "alloc",
		deallocExport: "dealloc",
		callTimeout:   30 * time.Second,
	}
}

// Option configures an Engine.
type Option func(*config)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMemoryLimitPages caps guest memory in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *config) {
		c.memoryLimitPages = pages
	}
}

// WithCompilationCacheDir persists compiled guest code in dir.
func WithCompilationCacheDir(dir string) Option {
	return func(c *config) {
		c.cacheDir = dir
	}
}

// WithAllocator overrides the names of the guest allocator exports
// (default "alloc" and "dealloc").
func WithAllocator(alloc, dealloc string) Option {
	return func(c *config) {
		c.allocExport = alloc
		c.deallocExport = dealloc
	}
}

// WithAllocationLimit bounds the guest memory one call may allocate.
func WithAllocationLimit(n uint64) Option {
	return func(c *config) {
		c.allocationLimit = n
	}
}

// WithCallTimeout bounds a single guest call. Zero disables the timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(c *config) {
		c.callTimeout = d
	}
}

// Engine runs the wallet engine guest. Calls are serialised on one guest
// instance, which is replaced after a trap.
type Engine struct {
	cfg      config
	runtime  wazero.Runtime
	cache    wazero.CompilationCache
	compiled wazero.CompiledModule
	module   api.Module
	entries  map[string]ports.EntryPoint
	mu       sync.Mutex
	closed   bool
}

// NewFromFile loads the guest module at path.
func NewFromFile(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wasm module: %w", err)
	}
	return New(ctx, wasm, opts...)
}

// New compiles the guest module. The guest must export memory and the
// allocator pair; wallet exports it lacks are simply not provided.
func New(ctx context.Context, wasm []byte, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var cache wazero.CompilationCache
	rtConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if cfg.cacheDir != "" {
		var err error
		cache, err = wazero.NewCompilationCacheWithDir(cfg.cacheDir)
		if err != nil {
			return nil, fmt.Errorf("create compilation cache: %w", err)
		}
		rtConfig = rtConfig.WithCompilationCache(cache)
	}
	if cfg.memoryLimitPages > 0 {
		rtConfig = rtConfig.WithMemoryLimitPages(cfg.memoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)
	e := &Engine{cfg: cfg, runtime: rt, cache: cache}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = e.closeRuntime(ctx)
		return nil, fmt.Errorf("instantiate WASI: %w", err)
	}

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		_ = e.closeRuntime(ctx)
		return nil, fmt.Errorf("compile wasm module: %w", err)
	}
	e.compiled = compiled

	if err := e.checkAllocator(); err != nil {
		_ = e.closeRuntime(ctx)
		return nil, err
	}
	e.entries = e.bindExports()

	cfg.logger.DebugContext(ctx, "wasm engine ready", "exports", len(e.entries))
	return e, nil
}

func (e *Engine) checkAllocator() error {
	defs := e.compiled.ExportedFunctions()
	alloc, ok := defs[e.cfg.allocExport]
	if !ok || len(alloc.ParamTypes()) != 1 || len(alloc.ResultTypes()) != 1 {
		return fmt.Errorf("guest must export %s(size) -> ptr", e.cfg.allocExport)
	}
	if dealloc, ok := defs[e.cfg.deallocExport]; ok && len(dealloc.ParamTypes()) != 2 {
		return fmt.Errorf("guest export %s must take (ptr, size)", e.cfg.deallocExport)
	}
	if _, ok := e.compiled.ExportedMemories()["memory"]; !ok {
		return errors.New("guest must export its memory as \"memory\"")
	}
	return nil
}

// bindExports creates entry points for the wallet exports with a matching signature.
func (e *Engine) bindExports() map[string]ports.EntryPoint {
	defs := e.compiled.ExportedFunctions()
	entries := make(map[string]ports.EntryPoint)
	for name, spec := range exports {
		name, spec := name, spec
		def, ok := defs[name]
		if !ok {
			continue
		}
		if len(def.ParamTypes()) != len(spec.args) || len(def.ResultTypes()) != spec.resultCount() {
			e.cfg.logger.Warn("ignoring wasm export with unexpected signature",
				"export", name,
				"params", len(def.ParamTypes()),
				"results", len(def.ResultTypes()),
			)
			continue
		}
		entries[name] = func(ctx context.Context, args ports.Args) (int32, error) {
			return e.call(ctx, name, spec, args)
		}
	}
	return entries
}

// Name implements ports.Engine.
func (e *Engine) Name() string {
	return Name
}

// EntryPoint implements ports.Engine.
func (e *Engine) EntryPoint(name string) (ports.EntryPoint, bool) {
	ep, ok := e.entries[name]
	return ep, ok
}

// Exports returns the names of the provided entry points.
func (e *Engine) Exports() []string {
	names := make([]string, 0, len(e.entries))
	for name := range e.entries {
		names = append(names, name)
	}
	return names
}

// Close releases the guest instance and the runtime.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.module = nil
	return e.closeRuntime(ctx)
}

func (e *Engine) closeRuntime(ctx context.Context) error {
	err := e.runtime.Close(ctx)
	if e.cache != nil {
		err = errors.Join(err, e.cache.Close(ctx))
	}
	return err
}

// instance returns the live guest instance, instantiating one if needed.
func (e *Engine) instance(ctx context.Context) (api.Module, error) {
	if e.module != nil && !e.module.IsClosed() {
		return e.module, nil
	}
	mod, err := e.runtime.InstantiateModule(ctx, e.compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, fmt.Errorf("instantiate wasm module: %w", err)
	}
	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("call _initialize: %w", err)
		}
	}
	e.module = mod
	return mod, nil
}

// discard drops the guest instance after a trap.
func (e *Engine) discard(ctx context.Context, export string, cause error) {
	e.cfg.logger.DebugContext(ctx, "discarding wasm instance after trap", "export", export, "error", cause)
	if e.module != nil {
		_ = e.module.Close(context.WithoutCancel(ctx))
		e.module = nil
	}
}

func (e *Engine) call(ctx context.Context, name string, spec export, args ports.Args) (int32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, ErrClosed
	}
	if len(args.Inputs) != spec.inputs {
		return ports.StatusFailure, nil
	}

	if e.cfg.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.callTimeout)
		defer cancel()
	}

	mod, err := e.instance(ctx)
	if err != nil {
		return 0, err
	}
	arena := abi.NewArena(abi.GuestAllocator{
		AllocFn:   mod.ExportedFunction(e.cfg.allocExport),
		DeallocFn: mod.ExportedFunction(e.cfg.deallocExport),
	}, mod.Memory(), e.cfg.allocationLimit)

	status, err := e.invoke(ctx, mod, arena, name, spec, args)
	if err != nil {
		arena.Abandon()
		e.discard(ctx, name, err)
		return 0, fmt.Errorf("wasm %s: %w", name, err)
	}
	if err := arena.Free(ctx); err != nil {
		e.discard(ctx, name, err)
	}
	return status, nil
}

func (e *Engine) invoke(ctx context.Context, mod api.Module, arena *abi.Arena, name string, spec export, args ports.Args) (int32, error) {
	ptrs := make([]uint32, len(args.Inputs))
	for i, in := range args.Inputs {
		ptr, err := arena.Write(ctx, in.Bytes())
		if err != nil {
			return 0, err
		}
		ptrs[i] = ptr
	}
	capacity := uint32(args.Output.Len()) //nolint:gosec // G115: bounded by the bridge capacity limit
	out, err := arena.Alloc(ctx, capacity)
	if err != nil {
		return 0, err
	}

	params := make([]uint64, len(spec.args))
	for i, a := range spec.args {
		switch a.kind {
		case argInPtr:
			params[i] = api.EncodeU32(ptrs[a.input])
		case argInLen:
			params[i] = api.EncodeU32(uint32(args.Inputs[a.input].Len())) //nolint:gosec // G115: wasm32 lengths
		case argIndex:
			params[i] = api.EncodeU32(args.Index)
		case argOutPtr:
			params[i] = api.EncodeU32(out)
		}
	}

	results, err := mod.ExportedFunction(name).Call(ctx, params...)
	if err != nil {
		return 0, err
	}
	status := mapStatus(spec.result, results, int32(capacity)) //nolint:gosec // G115: capacity fits int32

	// Never read past the output region; the bridge rejects the length.
	if status <= 0 || uint32(status) > capacity {
		return status, nil
	}
	data, err := arena.Read(out, uint32(status))
	if err != nil {
		return 0, err
	}
	if _, err := args.Output.CopyFrom(data); err != nil {
		return 0, err
	}
	return status, nil
}

func mapStatus(kind resultKind, results []uint64, capacity int32) int32 {
	switch kind {
	case resultVoid:
		return capacity
	case resultZeroOK:
		if api.DecodeI32(results[0]) == 0 {
			return capacity
		}
		return ports.StatusFailure
	case resultBool:
		if api.DecodeI32(results[0]) != 0 {
			return capacity
		}
		return ports.StatusDerivationImpossible
	default:
		return api.DecodeI32(results[0])
	}
}
