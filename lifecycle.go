package gonigmo

import (
	"sync"
	"sync/atomic"

	"github.com/coregx/gonigmo/prefilter"
)

// Process-wide engine state. Init probes the CPU and installs the prefilter
// dispatch; End restores the scalar defaults.
var (
	lifecycleMu sync.Mutex
	initialized atomic.Bool
)

// Init performs the process-wide engine setup. It is called by Compile, so
// calling it explicitly is only needed to move the cost to startup. Calling
// it again before End is a no-op.
func Init() {
	if initialized.Load() {
		return
	}
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()
	if initialized.Load() {
		return
	}
	prefilter.Configure(prefilter.Detect())
	initialized.Store(true)
}

// End tears down the process-wide state. Compiled patterns stay usable on
// the portable code paths; the next Compile or Init sets the state up again.
func End() {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()
	prefilter.Configure(prefilter.Features{})
	initialized.Store(false)
}

// Initialized reports whether Init has run since the last End.
func Initialized() bool {
	return initialized.Load()
}
