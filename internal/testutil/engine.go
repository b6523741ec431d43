// Package testutil provides fake engines and assertions shared by tests.
package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
)

// FakeEngine is a ports.Engine with scripted entry points that counts calls.
type FakeEngine struct {
	name    string
	entries map[string]ports.EntryPoint
	calls   map[string]int
	closed  bool
	mu      sync.Mutex
}

// NewFakeEngine creates an engine without entry points.
func NewFakeEngine(name string) *FakeEngine {
	return &FakeEngine{
		name:    name,
		entries: make(map[string]ports.EntryPoint),
		calls:   make(map[string]int),
	}
}

// On scripts an entry point.
func (f *FakeEngine) On(entry string, ep ports.EntryPoint) *FakeEngine {
	f.entries[entry] = ep
	return f
}

// Name implements ports.Engine.
func (f *FakeEngine) Name() string { return f.name }

// EntryPoint implements ports.Engine.
func (f *FakeEngine) EntryPoint(name string) (ports.EntryPoint, bool) {
	ep, ok := f.entries[name]
	if !ok {
		return nil, false
	}
	return func(ctx context.Context, args ports.Args) (int32, error) {
		f.mu.Lock()
		f.calls[name]++
		f.mu.Unlock()
		return ep(ctx, args)
	}, true
}

// Close implements ports.Engine.
func (f *FakeEngine) Close(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Closed reports whether Close was called.
func (f *FakeEngine) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Calls returns how often entry was called.
func (f *FakeEngine) Calls(entry string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[entry]
}

// Panic returns an entry point that panics with v.
func Panic(v any) ports.EntryPoint {
	return func(context.Context, ports.Args) (int32, error) {
		panic(v)
	}
}

// Text returns an entry point that writes s and reports its length.
func Text(s string) ports.EntryPoint {
	return func(_ context.Context, args ports.Args) (int32, error) {
		n, err := args.Output.CopyFrom([]byte(s))
		if err != nil {
			return 0, err
		}
		return int32(n), nil //nolint:gosec // G115: bounded by the output capacity
	}
}

// Envelope returns an entry point that writes a successful result envelope
// around the JSON result.
func Envelope(result string) ports.EntryPoint {
	return Text(`{"failed":false,"loc":"","msg":"","result":` + result + `}`)
}

// RequireKind asserts that err is a domain error of the given kind.
func RequireKind(t *testing.T, err error, kind string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, errors.KindOf(err), "error: %v", err)
}

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}
