// Package buffer provides scoped, non-owning views over caller-owned byte
// slices for the duration of a single engine call.
//
// A Scope hands out read-only views (Borrow) and exclusive writable views
// (BorrowMut). A writable view never overlaps another live view of the same
// scope. Once the scope is released every view it produced is dead: any
// further access panics with ErrReleased.
//
//	err := buffer.With(func(s *buffer.Scope) error {
//	    in, err := s.Borrow(seed)
//	    if err != nil {
//	        return err
//	    }
//	    out, err := s.BorrowMut(dst)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = out.CopyFrom(in.Bytes())
//	    return err
//	})
package buffer
