package host

import (
	"sync"
	"sync/atomic"
)

var (
	initOnce    sync.Once
	quietFaults atomic.Bool
)

// Init suppresses fault reports for every host created afterwards.
// Faults are still returned to callers as errors. Only the first call has
// an effect; it reports whether this call was the one that took effect.
func Init() bool {
	first := false
	initOnce.Do(func() {
		quietFaults.Store(true)
		first = true
	})
	return first
}

// Quiet reports whether Init has run.
func Quiet() bool {
	return quietFaults.Load()
}
