package entities

// Engine names accepted by BridgeConfig.
const (
	EngineBuiltin = "builtin"
	EngineWasm    = "wasm"
)

// Default bridge limits.
const (
	DefaultMaxCapacity   = 256 << 20
	DefaultMaxTextLength = 64 << 20
)

// BridgeConfig is the declarative configuration of a bridge host.
// It is typically loaded from YAML and checked with struct validation tags.
type BridgeConfig struct {
	// Engine selects the native engine implementation.
	Engine string `yaml:"engine" json:"engine" validate:"required,oneof=builtin wasm"`

	// WasmPath is the wallet engine module, required for the wasm engine.
	WasmPath string `yaml:"wasm_path,omitempty" json:"wasm_path,omitempty" validate:"required_if=Engine wasm"`

	// CacheDir enables the wazero compilation cache when set.
	CacheDir string `yaml:"cache_dir,omitempty" json:"cache_dir,omitempty"`

	// MemoryLimitPages caps guest memory in 64 KiB pages. Zero keeps the wazero default.
	MemoryLimitPages uint32 `yaml:"memory_limit_pages,omitempty" json:"memory_limit_pages,omitempty" validate:"lte=65536"`

	// QuietFaults suppresses fault reports; faults are still returned as errors.
	QuietFaults bool `yaml:"quiet_faults" json:"quiet_faults"`

	// MaxCapacity bounds the output region allocated for a single call.
	MaxCapacity uint64 `yaml:"max_capacity" json:"max_capacity" validate:"gte=4096"`

	// MaxTextLength bounds the text results handed back to the host.
	MaxTextLength int `yaml:"max_text_length" json:"max_text_length" validate:"gte=1"`

	// StrictUTF8 rejects text results that are not valid UTF-8.
	StrictUTF8 bool `yaml:"strict_utf8" json:"strict_utf8"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultBridgeConfig returns the builtin engine with default limits.
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		Engine:        EngineBuiltin,
		MaxCapacity:   DefaultMaxCapacity,
		MaxTextLength: DefaultMaxTextLength,
		LogLevel:      "info",
	}
}
