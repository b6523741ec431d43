package hostcall

import (
	"context"
	stdErrors "errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
)

func TestNewTable_Empty(t *testing.T) {
	table, err := NewTable(NewBridge(newFakeEngine()))
	require.NoError(t, err)
	assert.Empty(t, table.Names())
}

func TestNewTable_NilBridge(t *testing.T) {
	_, err := NewTable(nil)
	require.Error(t, err)
}

func TestNewTable_Catalog(t *testing.T) {
	table, err := NewTable(NewBridge(newFakeEngine()), WithCatalog())
	require.NoError(t, err)

	names := table.Names()
	assert.Len(t, names, 18)
	assert.True(t, sort.StringsAreSorted(names))
	_, ok := table.Operation("wallet_unknown")
	assert.False(t, ok)

	op, ok := table.Operation(OpHdWalletDerivePublic)
	require.True(t, ok)
	assert.Equal(t, EntryWalletDerivePublic, op.Entry)

	described := table.Describe()
	require.Len(t, described, 18)
	assert.Equal(t, names[0], described[0].Name)
}

func TestNewTable_InvalidOperations(t *testing.T) {
	valid := catalogOp(OpHdWalletFromSeed)
	noPolicy := valid
	noPolicy.Policy = nil
	noEntry := valid
	noEntry.Entry = ""
	noName := valid
	noName.Name = ""

	tests := []struct {
		name    string
		ops     []Operation
		wantErr string
	}{
		{"duplicate", []Operation{valid, valid}, "duplicate operation name"},
		{"no policy", []Operation{noPolicy}, "has no size policy"},
		{"no entry", []Operation{noEntry}, "has no entry point"},
		{"no name", []Operation{noName}, "cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(NewBridge(newFakeEngine()), WithOperations(tt.ops...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTable_Invoke(t *testing.T) {
	table, err := NewTable(NewBridge(allEntries(newFakeEngine())), WithCatalog())
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		res, err := table.Invoke(context.Background(), OpHdWalletToPublic,
			entities.Request{Inputs: [][]byte{make([]byte, entities.XPrvSize)}})
		require.NoError(t, err)
		assert.Len(t, res.Bytes, entities.XPubSize)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := table.Invoke(context.Background(), "hdwallet_unknown", entities.Request{})
		require.Error(t, err)
		assert.True(t, stdErrors.Is(err, errors.ErrNotFound))
	})
}

func TestTable_MiddlewareOrder(t *testing.T) {
	var order []string
	trace := func(tag string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, req entities.Request) (entities.Result, error) {
				order = append(order, tag+"-before:"+operationName(ctx))
				res, err := next(ctx, req)
				order = append(order, tag+"-after")
				return res, err
			}
		}
	}

	table, err := NewTable(NewBridge(allEntries(newFakeEngine())),
		WithMiddleware(trace("a")),
		WithMiddleware(trace("b")),
		WithOperations(catalogOp(OpHdWalletFromSeed)),
	)
	require.NoError(t, err)

	_, err = table.Invoke(context.Background(), OpHdWalletFromSeed,
		entities.Request{Inputs: [][]byte{make([]byte, entities.SeedSize)}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a-before:" + OpHdWalletFromSeed,
		"b-before:" + OpHdWalletFromSeed,
		"b-after",
		"a-after",
	}, order)
}
