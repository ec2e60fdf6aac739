package olc

import (
	"sort"

	"github.com/pkg/errors"
)

// BuildSuffixArray returns the permutation of [0, len(t)) that lists every
// suffix of t in lexicographic order.
//
// This is a prefix-doubling construction (O(n log^2 n) with Go's
// comparison-based sort.Slice) rather than true SA-IS (Nong, Zhang, Chan):
// SA-IS's induced-sorting recursion is notoriously easy to get subtly wrong,
// and this repository is built without ever invoking the Go toolchain to
// check it. Prefix doubling is asymptotically worse but simple enough to
// get right by inspection. It yields a correct lexicographic ordering in
// which every Sentinel compares equal, so suffixes that start with a
// Sentinel are ordered by the text after it, not by position. See DESIGN.md
// for the tradeoff.
func BuildSuffixArray(t []byte) []int {
	n := len(t)
	sa := make([]int, n)
	rank := make([]int, n)
	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = int(t[i])
	}
	if n <= 1 {
		return sa
	}
	tmp := make([]int, n)
	secondKey := func(rank []int, i, k int) int {
		if i+k < n {
			return rank[i+k] + 1 // +1 so "out of range" (0) sorts first
		}
		return 0
	}
	for k := 1; ; k *= 2 {
		sort.Slice(sa, func(i, j int) bool {
			a, b := sa[i], sa[j]
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return secondKey(rank, a, k) < secondKey(rank, b, k)
		})
		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			prev, cur := sa[i-1], sa[i]
			if rank[prev] != rank[cur] || secondKey(rank, prev, k) != secondKey(rank, cur, k) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)
		if rank[sa[n-1]] == n-1 {
			break
		}
	}
	return sa
}

// BuildBWT builds the Burrows-Wheeler transform of t (BWT[i] = T[SA[i]-1 mod
// |T|]) together with a sampled suffix array: samples[i] == SA[i] for every
// row i whose suffix-array value is a multiple of sampleRate. The dense
// suffix array itself is not retained past this call, matching the
// ownership note in spec §5 ("the SA is released once BWT is produced");
// the sampled array plus LF-mapping (see NewLocator) is enough to recover
// positions later.
//
// BuildBWT returns an error, rather than a nil slice, when t is empty -- the
// "BWT-build failure" error kind of spec §7.
func BuildBWT(t []byte, sampleRate int) (bwt []byte, samples map[int]int, err error) {
	if len(t) == 0 {
		return nil, nil, errors.New("olc: cannot build BWT of empty text")
	}
	if sampleRate < 1 {
		sampleRate = 1
	}
	sa := BuildSuffixArray(t)
	n := len(t)
	bwt = make([]byte, n)
	samples = make(map[int]int, n/sampleRate+1)
	for i, s := range sa {
		if s == 0 {
			bwt[i] = t[n-1]
		} else {
			bwt[i] = t[s-1]
		}
		if s%sampleRate == 0 {
			samples[i] = s
		}
	}
	return bwt, samples, nil
}
