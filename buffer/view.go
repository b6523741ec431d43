package buffer

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

var (
	// ErrReleased is the panic value raised when a view is used after its
	// scope was released.
	ErrReleased = errors.New("buffer: view used after its scope was released")

	// ErrAliased is returned when a borrow would overlap a live exclusive borrow.
	ErrAliased = errors.New("buffer: borrow overlaps a live exclusive borrow")
)

// SizeError reports a sized access larger than the view.
type SizeError struct {
	Requested int
	Size      int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("buffer: requested %d bytes from a view of %d bytes", e.Requested, e.Size)
}

// region is the raw address range covered by one borrow.
type region struct {
	start, end uintptr
	mut        bool
}

func (r region) overlaps(o region) bool {
	if r.start == r.end || o.start == o.end {
		return false
	}
	return r.start < o.end && o.start < r.end
}

func regionOf(b []byte, mut bool) region {
	start := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return region{start: start, end: start + uintptr(len(b)), mut: mut}
}

// Scope owns the lifetime of the views it hands out.
// The zero value is ready to use.
type Scope struct {
	mu       sync.Mutex
	borrows  []region
	released atomic.Bool
}

// NewScope opens an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// Borrow returns a read-only view over b. Shared borrows may overlap each
// other but not a live writable borrow.
func (s *Scope) Borrow(b []byte) (View, error) {
	if err := s.track(regionOf(b, false)); err != nil {
		return View{}, err
	}
	return View{data: b, scope: s}, nil
}

// BorrowMut returns an exclusive writable view over b.
func (s *Scope) BorrowMut(b []byte) (MutView, error) {
	if err := s.track(regionOf(b, true)); err != nil {
		return MutView{}, err
	}
	return MutView{data: b, scope: s}, nil
}

func (s *Scope) track(r region) error {
	if s.released.Load() {
		return ErrReleased
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, live := range s.borrows {
		if (live.mut || r.mut) && live.overlaps(r) {
			return ErrAliased
		}
	}
	s.borrows = append(s.borrows, r)
	return nil
}

// Release invalidates every view of the scope. Releasing twice is a no-op.
func (s *Scope) Release() {
	if s.released.Swap(true) {
		return
	}
	s.mu.Lock()
	s.borrows = nil
	s.mu.Unlock()
}

// Released reports whether Release has been called.
func (s *Scope) Released() bool {
	return s.released.Load()
}

func (s *Scope) check() {
	if s == nil || s.released.Load() {
		panic(ErrReleased)
	}
}

// With opens a scope, runs fn and releases the scope when fn returns or panics.
func With(fn func(*Scope) error) error {
	s := NewScope()
	defer s.Release()
	return fn(s)
}

// View is a read-only, non-owning view of a byte region. Slices obtained from
// a view must not be retained after the scope is released.
type View struct {
	data  []byte
	scope *Scope
}

// Len returns the size of the region fixed at acquisition.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the whole region.
func (v View) Bytes() []byte {
	v.scope.check()
	return v.data
}

// Slice returns the first n bytes of the region.
func (v View) Slice(n int) ([]byte, error) {
	v.scope.check()
	if n < 0 || n > len(v.data) {
		return nil, &SizeError{Requested: n, Size: len(v.data)}
	}
	return v.data[:n], nil
}

// MutView is an exclusive writable view of a byte region.
type MutView struct {
	data  []byte
	scope *Scope
}

// Len returns the size of the region fixed at acquisition.
func (v MutView) Len() int {
	return len(v.data)
}

// Bytes returns the whole writable region.
func (v MutView) Bytes() []byte {
	v.scope.check()
	return v.data
}

// SizedSlice returns the first n writable bytes of the region.
func (v MutView) SizedSlice(n int) ([]byte, error) {
	v.scope.check()
	if n < 0 || n > len(v.data) {
		return nil, &SizeError{Requested: n, Size: len(v.data)}
	}
	return v.data[:n], nil
}

// CopyFrom writes src at the start of the region and returns the number of
// bytes written. Nothing is written when src does not fit.
func (v MutView) CopyFrom(src []byte) (int, error) {
	dst, err := v.SizedSlice(len(src))
	if err != nil {
		return 0, err
	}
	return copy(dst, src), nil
}
