// Package conv holds checked integer narrowing for instruction indexes.
package conv

import "math"

// IntToUint32 converts n to uint32. It panics if n does not fit; a program
// that large cannot be addressed by the executors.
func IntToUint32(n int) uint32 {
	// Compare as uint so the bound is representable on 32-bit platforms.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("conv: int value out of uint32 range")
	}
	return uint32(n)
}
