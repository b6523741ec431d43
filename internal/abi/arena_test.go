package abi

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bumpGuest is an in-memory guest with a bump allocator.
type bumpGuest struct {
	mem     []byte
	next    uint32
	freed   []uint32
	failing bool
}

func newBumpGuest(size int) *bumpGuest {
	return &bumpGuest{mem: make([]byte, size), next: 16}
}

func (g *bumpGuest) Alloc(_ context.Context, size uint32) (uint32, error) {
	if g.failing {
		return 0, errors.New("trap")
	}
	ptr := g.next
	g.next += size
	return ptr, nil
}

func (g *bumpGuest) Dealloc(_ context.Context, ptr, _ uint32) error {
	g.freed = append(g.freed, ptr)
	return nil
}

func (g *bumpGuest) Read(offset, n uint32) ([]byte, bool) {
	if uint64(offset)+uint64(n) > uint64(len(g.mem)) {
		return nil, false
	}
	return g.mem[offset : offset+n], true
}

func (g *bumpGuest) Write(offset uint32, v []byte) bool {
	if uint64(offset)+uint64(len(v)) > uint64(len(g.mem)) {
		return false
	}
	copy(g.mem[offset:], v)
	return true
}

func TestArena_WriteRead(t *testing.T) {
	g := newBumpGuest(256)
	a := NewArena(g, g, 0)
	ctx := context.Background()

	p1, err := a.Write(ctx, []byte("seed"))
	require.NoError(t, err)
	p2, err := a.Write(ctx, nil)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2, "empty inputs get their own pointer")

	got, err := a.Read(p1, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("seed"), got)

	got[0] = 'X'
	again, _ := a.Read(p1, 4)
	assert.Equal(t, []byte("seed"), again, "reads are copies")

	assert.Equal(t, uint64(5), a.Allocated())
	require.NoError(t, a.Free(ctx))
	assert.Equal(t, []uint32{p2, p1}, g.freed)
	assert.Equal(t, make([]byte, 4), g.mem[p1:p1+4], "freed regions are zeroed")
	assert.Zero(t, a.Allocated())
}

func TestArena_Limit(t *testing.T) {
	g := newBumpGuest(256)
	a := NewArena(g, g, 8)

	_, err := a.Alloc(context.Background(), 6)
	require.NoError(t, err)
	_, err = a.Alloc(context.Background(), 3)

	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, uint64(3), limitErr.Requested)
	assert.Equal(t, uint64(6), limitErr.Current)
	assert.Equal(t, uint64(8), limitErr.Limit)
}

func TestArena_OutOfRange(t *testing.T) {
	g := newBumpGuest(32)
	a := NewArena(g, g, 0)

	_, err := a.Write(context.Background(), make([]byte, 64))
	assert.ErrorContains(t, err, "out of guest memory")

	_, err = a.Read(30, 8)
	assert.ErrorContains(t, err, "out of guest memory")
}

func TestArena_AllocFailures(t *testing.T) {
	g := newBumpGuest(32)
	g.failing = true
	a := NewArena(g, g, 0)

	_, err := a.Alloc(context.Background(), 4)
	assert.ErrorContains(t, err, "guest alloc(4)")

	g.failing = false
	g.next = 0
	_, err = a.Alloc(context.Background(), 4)
	assert.ErrorContains(t, err, "null pointer")
}

func TestArena_Abandon(t *testing.T) {
	g := newBumpGuest(64)
	a := NewArena(g, g, 0)
	_, err := a.Alloc(context.Background(), 4)
	require.NoError(t, err)

	a.Abandon()
	require.NoError(t, a.Free(context.Background()))
	assert.Empty(t, g.freed)
}
