package wazero

import (
	"bytes"
	"context"
	stdErrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

func uleb(n int) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func vec(items ...[]byte) []byte {
	out := uleb(len(items))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func section(id byte, payload []byte) []byte {
	return append(append([]byte{id}, uleb(len(payload))...), payload...)
}

func name(s string) []byte {
	return append(uleb(len(s)), s...)
}

func exportFunc(n string, idx byte) []byte {
	return append(name(n), 0x00, idx)
}

// body wraps code in a function body without locals.
func body(code ...byte) []byte {
	b := append([]byte{0x00}, code...)
	b = append(b, 0x0b)
	return append(uleb(len(b)), b...)
}

// guestOptions tunes the assembled guest.
type guestOptions struct {
	withoutAlloc bool
}

// testGuest assembles a small guest exporting a bump allocator and a few
// wallet entry points with scripted behaviour.
func testGuest(opts guestOptions) []byte {
	const (
		i32 = 0x7f
		t0  = 0x00 // (i32) -> i32
		t1  = 0x01 // (i32, i32) -> ()
		t2  = 0x02 // (i32, i32, i32) -> i32
	)
	types := vec(
		[]byte{0x60, 0x01, i32, 0x01, i32},
		[]byte{0x60, 0x02, i32, i32, 0x00},
		[]byte{0x60, 0x03, i32, i32, i32, 0x01, i32},
	)
	funcs := vec([]byte{t0}, []byte{t1}, []byte{t2}, []byte{t2}, []byte{t2}, []byte{t2}, []byte{t1})
	memory := vec([]byte{0x00, 0x04})
	globals := vec([]byte{i32, 0x01, 0x41, 0x80, 0x08, 0x0b})

	allocName := "alloc"
	if opts.withoutAlloc {
		allocName = "malloc"
	}
	exps := vec(
		append(name("memory"), 0x02, 0x00),
		exportFunc(allocName, 0),
		exportFunc("dealloc", 1),
		exportFunc(hostcall.EntryXWalletAccount, 2),
		exportFunc(hostcall.EntryXWalletMove, 3),
		exportFunc(hostcall.EntryXWalletSpend, 4),
		exportFunc(hostcall.EntryWalletDerivePublic, 5),
		exportFunc(hostcall.EntryWalletToPublic, 6),
	)

	code := []byte{0x07}
	code = append(code,
		// alloc: return the bump pointer, then advance it by size
		body(0x23, 0x00, 0x23, 0x00, 0x20, 0x00, 0x6a, 0x24, 0x00)...)
	code = append(code, body()...) // dealloc
	code = append(code,
		// account: copy the params into the output and return their length
		body(0x20, 0x02, 0x20, 0x00, 0x20, 0x01, 0xfc, 0x0a, 0x00, 0x00, 0x20, 0x01)...)
	code = append(code, body(0x00)...)                   // move: unreachable
	code = append(code, body(0x41, 0xa0, 0x8d, 0x06)...) // spend: 100000
	code = append(code, body(0x41, 0x00)...)             // derive_public: false
	code = append(code,
		// to_public: 64 bytes of 0xab
		body(0x20, 0x01, 0x41, 0xab, 0x01, 0x41, 0xc0, 0x00, 0xfc, 0x0b, 0x00)...)

	var mod []byte
	mod = append(mod, 0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00)
	mod = append(mod, section(1, types)...)
	mod = append(mod, section(3, funcs)...)
	mod = append(mod, section(5, memory)...)
	mod = append(mod, section(6, globals)...)
	mod = append(mod, section(7, exps)...)
	mod = append(mod, section(10, code)...)
	return mod
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(context.Background(), testGuest(guestOptions{}), WithMemoryLimitPages(16))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close(context.Background()) })
	return e
}

func newTestTable(t *testing.T) *hostcall.Table {
	t.Helper()
	table, err := hostcall.NewTable(hostcall.NewBridge(newTestEngine(t)), hostcall.WithCatalog())
	require.NoError(t, err)
	return table
}

func textReq(s string, hints ...uint32) entities.Request {
	return entities.Request{Inputs: [][]byte{[]byte(s)}, Hints: hints}
}

func TestEngine_BindsMatchingExports(t *testing.T) {
	e := newTestEngine(t)

	assert.ElementsMatch(t, []string{
		hostcall.EntryXWalletAccount,
		hostcall.EntryXWalletMove,
		hostcall.EntryXWalletSpend,
		hostcall.EntryWalletDerivePublic,
		hostcall.EntryWalletToPublic,
	}, e.Exports())
	assert.Equal(t, Name, e.Name())

	_, ok := e.EntryPoint(hostcall.EntryWalletSign)
	assert.False(t, ok)
}

func TestEngine_TextRoundTrip(t *testing.T) {
	table := newTestTable(t)

	params := `{"wallet":{"root_cached_key":"00"},"account":0}`
	res, err := table.Invoke(context.Background(), hostcall.OpWalletNewAccount, textReq(params))
	require.NoError(t, err)
	assert.Equal(t, entities.OutputText, res.Encoding)
	assert.Equal(t, params, res.Text)
}

func TestEngine_TrapIsContained(t *testing.T) {
	table := newTestTable(t)
	ctx := context.Background()

	_, err := table.Invoke(ctx, hostcall.OpWalletMove, textReq("{}", 1))
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, errors.ErrNativeFailure))
	assert.Equal(t, errors.KindNative, errors.KindOf(err))

	// A fresh instance serves the next call.
	res, err := table.Invoke(ctx, hostcall.OpWalletNewAccount, textReq(`"again"`))
	require.NoError(t, err)
	assert.Equal(t, `"again"`, res.Text)
}

func TestEngine_QuietTrapsLeaveNoWarnings(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	e, err := New(context.Background(), testGuest(guestOptions{}), WithLogger(logger))
	require.NoError(t, err)
	defer e.Close(context.Background())

	bridge := hostcall.NewBridge(e,
		hostcall.WithLogger(logger),
		hostcall.WithFaultReporter(hostcall.SilentFaultReporter{}),
	)
	table, err := hostcall.NewTable(bridge, hostcall.WithMiddleware(hostcall.LoggingMiddleware(logger)), hostcall.WithCatalog())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = table.Invoke(context.Background(), hostcall.OpWalletMove, textReq("{}", 1))
		require.ErrorIs(t, err, errors.ErrNativeFailure)
	}
	assert.Empty(t, logs.String())
}

func TestEngine_OversizedLengthIsRejected(t *testing.T) {
	table := newTestTable(t)

	_, err := table.Invoke(context.Background(), hostcall.OpWalletSpend, textReq("{}", 0, 0))
	require.Error(t, err)

	var capErr *errors.CapacityExceeded
	require.True(t, stdErrors.As(err, &capErr))
	assert.Equal(t, int64(100000), capErr.Written)
	assert.Equal(t, int64(66560), capErr.Capacity)
}

func TestEngine_DerivePublicFalseIsDerivationImpossible(t *testing.T) {
	table := newTestTable(t)

	_, err := table.Invoke(context.Background(), hostcall.OpHdWalletDerivePublic, entities.Request{
		Inputs: [][]byte{make([]byte, entities.XPubSize)},
		Index:  1,
	})
	assert.True(t, stdErrors.Is(err, errors.ErrDerivationImpossible))
}

func TestEngine_VoidExportFillsOutput(t *testing.T) {
	table := newTestTable(t)

	res, err := table.Invoke(context.Background(), hostcall.OpHdWalletToPublic, entities.Request{
		Inputs: [][]byte{make([]byte, entities.XPrvSize)},
	})
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xab}, entities.XPubSize), res.Bytes)
}

func TestEngine_MissingExportIsNativeFailure(t *testing.T) {
	table := newTestTable(t)

	_, err := table.Invoke(context.Background(), hostcall.OpHdWalletSign, entities.Request{
		Inputs: [][]byte{make([]byte, entities.XPrvSize), []byte("msg")},
	})
	assert.True(t, stdErrors.Is(err, errors.ErrNativeFailure))
}

func TestEngine_CallAfterClose(t *testing.T) {
	e, err := New(context.Background(), testGuest(guestOptions{}))
	require.NoError(t, err)
	require.NoError(t, e.Close(context.Background()))
	require.NoError(t, e.Close(context.Background()))

	table, err := hostcall.NewTable(hostcall.NewBridge(e), hostcall.WithCatalog())
	require.NoError(t, err)
	_, err = table.Invoke(context.Background(), hostcall.OpHdWalletToPublic, entities.Request{
		Inputs: [][]byte{make([]byte, entities.XPrvSize)},
	})
	assert.True(t, stdErrors.Is(err, errors.ErrNativeFailure))
}

func TestNew_RejectsBadModules(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, []byte("not wasm"))
	assert.Error(t, err)

	_, err = New(ctx, testGuest(guestOptions{withoutAlloc: true}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alloc")

	e, err := New(ctx, testGuest(guestOptions{withoutAlloc: true}), WithAllocator("malloc", "dealloc"))
	require.NoError(t, err)
	assert.NoError(t, e.Close(ctx))
}

func TestNewFromFile_MissingFile(t *testing.T) {
	_, err := NewFromFile(context.Background(), t.TempDir()+"/missing.wasm")
	assert.Error(t, err)
}
