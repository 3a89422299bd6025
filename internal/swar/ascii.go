// Package swar provides a pure-Go, SIMD-free ASCII check for the bytes of
// a string, used to pick a cheaper byte-indexed matching path for the
// common case of all-ASCII input without decoding it rune by rune first.
//
// The technique is SWAR (SIMD within a register): eight bytes are loaded
// into a uint64 and tested for any set high bit in one shot, rather than
// branching per byte. golang.org/x/sys/cpu is consulted only to decide
// whether to test sixteen bytes per loop iteration instead of eight (when
// the CPU reports AVX2); no assembly is involved.
package swar

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// chunkSize is widened to 16 bytes on platforms AVX2 detection tells us
// have enough register width to benefit from it; it stays at the
// universally safe 8-byte uint64 chunk otherwise.
var chunkSize = 8

func init() {
	if cpu.X86.HasAVX2 {
		chunkSize = 16
	}
}

const highBits64 = uint64(0x8080808080808080)

// IsASCII reports whether every byte of s is < 0x80.
func IsASCII(s string) bool {
	n := len(s)
	i := 0

	for i+chunkSize <= n {
		if chunkSize == 16 {
			lo := binary.LittleEndian.Uint64([]byte(s[i : i+8]))
			hi := binary.LittleEndian.Uint64([]byte(s[i+8 : i+16]))
			if lo&highBits64 != 0 || hi&highBits64 != 0 {
				return false
			}
		} else {
			chunk := binary.LittleEndian.Uint64([]byte(s[i : i+8]))
			if chunk&highBits64 != 0 {
				return false
			}
		}
		i += chunkSize
	}

	for ; i < n; i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
