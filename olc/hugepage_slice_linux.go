//go:build linux

package olc

import "unsafe"

// unsafeUint32Slice reinterprets a mmap'd byte buffer of length n*4 as a
// []uint32 of length n, mirroring the unsafe.Pointer arithmetic
// fusion.kmerIndexShard uses over its own mmap'd region.
func unsafeUint32Slice(data []byte, n int) []uint32 {
	if len(data) < n*4 {
		panic("olc: hugepage buffer too small")
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), n)
}
