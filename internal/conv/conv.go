// Package conv provides safe integer conversion helpers for the compiler.
//
// Register ids are tracked as plain ints while compiling (the natural type
// for a growing counter). Before the compiler stores one in an Instruction
// it passes it through IntToUint32, which panics if the id does not fit
// the uint32 range, so a pattern with an absurd number of bounded
// repetitions fails loudly.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
