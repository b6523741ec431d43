package ports

import (
	"context"

	"github.com/Emurgo/node-cardano-wallet/buffer"
)

// Status codes returned by entry points. Any positive value is the number
// of bytes written to the output region.
const (
	// StatusFailure is the generic failure status. Zero and every other
	// non-positive value not listed here are failures as well.
	StatusFailure int32 = -1

	// StatusDerivationImpossible reports a mathematically impossible derivation.
	StatusDerivationImpossible int32 = -2
)

// Args are the borrowed arguments of one entry point call.
// The views are valid only until the entry point returns.
type Args struct {
	Inputs []buffer.View
	Output buffer.MutView
	Index  uint32
}

// EntryPoint is one native engine function. It writes at most
// Output.Len() bytes and returns the written length or a status.
// A returned error is an engine fault (e.g. a trap) and is handled like a panic.
type EntryPoint func(ctx context.Context, args Args) (int32, error)

// Engine resolves named entry points of a native wallet engine.
type Engine interface {
	// Name identifies the engine in logs and errors.
	Name() string

	// EntryPoint returns the entry point with the given name.
	EntryPoint(name string) (EntryPoint, bool)

	// Close releases the engine's resources.
	Close(ctx context.Context) error
}
