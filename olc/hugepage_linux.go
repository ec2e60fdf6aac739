//go:build linux

package olc

import (
	"github.com/grailbio/base/log"
	"golang.org/x/sys/unix"
)

// hugeTableThreshold is the element count above which newBucketTable backs
// the FM-index bucket table with an anonymous, huge-page-advised mapping
// instead of a plain Go slice. Small tables aren't worth the syscalls.
const hugeTableThreshold = 1 << 20 // 1Mi uint32 buckets == 4MiB

// newBucketTable allocates a zeroed []uint32 of length n. For large bucket
// tables it mmaps an anonymous region and madvises it for transparent huge
// pages, the same MAP_ANON + MADV_HUGEPAGE trick fusion.kmerIndex.initShard
// uses for its shard tables, to cut TLB misses when repeatedly scanning
// buckets during FindCandidates.
func newBucketTable(n int) []uint32 {
	if n <= hugeTableThreshold {
		return make([]uint32, n)
	}
	const uint32Size = 4
	data, err := unix.Mmap(-1, 0, n*uint32Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		log.Printf("olc: hugepage mmap failed (%v), falling back to a plain slice", err)
		return make([]uint32, n)
	}
	if err := unix.Madvise(data, unix.MADV_HUGEPAGE); err != nil {
		log.Debug.Printf("olc: madvise(MADV_HUGEPAGE) failed: %v", err)
	}
	return unsafeUint32Slice(data, n)
}
