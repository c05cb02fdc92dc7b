package prefilter

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Features are the CPU capabilities prefilters dispatch on.
type Features struct {
	// VectorIndexByte is set when bytes.IndexByte runs on vector units, so
	// a few IndexByte passes beat one scalar table scan.
	VectorIndexByte bool
}

// Detect probes the running CPU.
func Detect() Features {
	return Features{
		VectorIndexByte: cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD,
	}
}

var vectorIndexByte atomic.Bool

// Configure installs f process-wide. Until called, prefilters use the
// scalar paths.
func Configure(f Features) {
	vectorIndexByte.Store(f.VectorIndexByte)
}

// Active returns the installed features.
func Active() Features {
	return Features{VectorIndexByte: vectorIndexByte.Load()}
}
