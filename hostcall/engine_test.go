package hostcall

import (
	"context"
	"sync"

	"github.com/Emurgo/node-cardano-wallet/domain/ports"
)

// fakeEngine counts calls per entry point so tests can assert that
// rejected requests never reach the engine.
type fakeEngine struct {
	entries map[string]ports.EntryPoint
	calls   map[string]int
	mu      sync.Mutex
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		entries: make(map[string]ports.EntryPoint),
		calls:   make(map[string]int),
	}
}

func (f *fakeEngine) on(entry string, ep ports.EntryPoint) *fakeEngine {
	f.entries[entry] = ep
	return f
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) EntryPoint(name string) (ports.EntryPoint, bool) {
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

func (f *fakeEngine) Close(context.Context) error { return nil }

func (f *fakeEngine) count(entry string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[entry]
}

func (f *fakeEngine) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// fill writes b over the whole output region.
func fill(b byte) ports.EntryPoint {
	return func(_ context.Context, args ports.Args) (int32, error) {
		out := args.Output.Bytes()
		for i := range out {
			out[i] = b
		}
		return int32(len(out)), nil
	}
}

// reply writes data and reports n as the written length.
func reply(data []byte, n int32) ports.EntryPoint {
	return func(_ context.Context, args ports.Args) (int32, error) {
		out := args.Output.Bytes()
		copy(out, data)
		return n, nil
	}
}

func status(s int32) ports.EntryPoint {
	return func(context.Context, ports.Args) (int32, error) {
		return s, nil
	}
}

// allEntries registers fill(0x11) for every catalog entry point.
func allEntries(f *fakeEngine) *fakeEngine {
	for _, op := range Catalog() {
		f.on(op.Entry, fill(0x11))
	}
	return f
}

func catalogOp(name string) Operation {
	for _, op := range Catalog() {
		if op.Name == name {
			return op
		}
	}
	panic("no catalog operation " + name)
}
