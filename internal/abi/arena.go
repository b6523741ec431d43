// Package abi moves call arguments in and out of a guest's linear memory.
//
// The wallet engine guest exports an allocator pair (alloc/dealloc). An
// Arena tracks every allocation made for one call so that all of them are
// released together when the call ends, and bounds the bytes a single call
// may pin in guest memory.
package abi

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// DefaultAllocationLimit is the maximum number of bytes one call may allocate.
const DefaultAllocationLimit = 512 << 20

// Allocator allocates and frees guest memory.
type Allocator interface {
	Alloc(ctx context.Context, size uint32) (uint32, error)
	Dealloc(ctx context.Context, ptr, size uint32) error
}

// Memory is the part of api.Memory the arena needs.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
}

// LimitError reports an allocation above the arena limit.
type LimitError struct {
	Requested uint64
	Current   uint64
	Limit     uint64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("guest allocation failed: requested %d bytes, current %d bytes, limit %d bytes",
		e.Requested, e.Current, e.Limit)
}

type allocation struct {
	ptr, size uint32
}

// Arena tracks the guest allocations of a single call.
// It is not safe for concurrent use.
type Arena struct {
	alloc  Allocator
	mem    Memory
	allocs []allocation
	total  uint64
	limit  uint64
}

// NewArena creates an arena. A zero limit selects DefaultAllocationLimit.
func NewArena(alloc Allocator, mem Memory, limit uint64) *Arena {
	if limit == 0 {
		limit = DefaultAllocationLimit
	}
	return &Arena{alloc: alloc, mem: mem, limit: limit}
}

// Alloc reserves size bytes in the guest. Empty regions still get a
// distinct one-byte allocation so every argument has a valid pointer.
func (a *Arena) Alloc(ctx context.Context, size uint32) (uint32, error) {
	n := max(size, 1)
	if a.total+uint64(n) > a.limit {
		return 0, &LimitError{Requested: uint64(n), Current: a.total, Limit: a.limit}
	}
	ptr, err := a.alloc.Alloc(ctx, n)
	if err != nil {
		return 0, fmt.Errorf("guest alloc(%d): %w", n, err)
	}
	if ptr == 0 {
		return 0, fmt.Errorf("guest alloc(%d) returned a null pointer", n)
	}
	a.allocs = append(a.allocs, allocation{ptr: ptr, size: n})
	a.total += uint64(n)
	return ptr, nil
}

// Write allocates a region and copies data into it.
func (a *Arena) Write(ctx context.Context, data []byte) (uint32, error) {
	ptr, err := a.Alloc(ctx, uint32(len(data))) //nolint:gosec // G115: bounded by the arena limit
	if err != nil {
		return 0, err
	}
	if !a.mem.Write(ptr, data) {
		return 0, fmt.Errorf("write of %d bytes at 0x%x is out of guest memory", len(data), ptr)
	}
	return ptr, nil
}

// Read returns a copy of n bytes at ptr.
func (a *Arena) Read(ptr, n uint32) ([]byte, error) {
	data, ok := a.mem.Read(ptr, n)
	if !ok {
		return nil, fmt.Errorf("read of %d bytes at 0x%x is out of guest memory", n, ptr)
	}
	out := make([]byte, n)
	copy(out, data)
	return out, nil
}

// Allocated returns the number of bytes currently held by the arena.
func (a *Arena) Allocated() uint64 {
	return a.total
}

// Free zeroes and releases every allocation in reverse order, so key
// material does not linger in guest memory.
func (a *Arena) Free(ctx context.Context) error {
	var errs []error
	for i := len(a.allocs) - 1; i >= 0; i-- {
		a.mem.Write(a.allocs[i].ptr, make([]byte, a.allocs[i].size))
		if err := a.alloc.Dealloc(ctx, a.allocs[i].ptr, a.allocs[i].size); err != nil {
			errs = append(errs, err)
		}
	}
	a.allocs = nil
	a.total = 0
	return errors.Join(errs...)
}

// Abandon forgets every allocation without calling into the guest.
// Used when the guest instance is discarded.
func (a *Arena) Abandon() {
	a.allocs = nil
	a.total = 0
}

// GuestAllocator calls a guest's exported alloc(size) -> ptr and
// dealloc(ptr, size) functions.
type GuestAllocator struct {
	AllocFn   api.Function
	DeallocFn api.Function
}

// Alloc implements Allocator.
func (g GuestAllocator) Alloc(ctx context.Context, size uint32) (uint32, error) {
	res, err := g.AllocFn.Call(ctx, api.EncodeU32(size))
	if err != nil {
		return 0, err
	}
	if len(res) == 0 {
		return 0, errors.New("alloc returned no results")
	}
	return api.DecodeU32(res[0]), nil
}

// Dealloc implements Allocator.
func (g GuestAllocator) Dealloc(ctx context.Context, ptr, size uint32) error {
	if g.DeallocFn == nil {
		return nil
	}
	_, err := g.DeallocFn.Call(ctx, api.EncodeU32(ptr), api.EncodeU32(size))
	return err
}
