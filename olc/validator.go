package olc

import (
	"encoding/binary"
	"sort"
	"sync"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/log"
)

// alignCacheKey identifies one (read_one, read_two, type, len_one, len_two)
// alignment request: candidates for the same canonical pair can arrive from
// either strand/BFS root, and seahashing the triple (plus the claimed
// lengths, since those determine what actually gets aligned) lets repeat
// requests skip redoing the same banded DP -- the same "hash the bytes,
// shard/dedupe on it" idea bamprovider.concurrentMap uses for its record
// cache, applied to a cache key instead of a shard index.
type alignCacheKey uint64

func alignKey(canon Overlap) alignCacheKey {
	var buf [20]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(canon.ReadOne))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(canon.ReadTwo))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(canon.Type))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(canon.LenOne))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(canon.LenTwo))
	return alignCacheKey(seahash.Sum64(buf[:]))
}

// alignCache memoizes banded edit distances within a single Validate call.
// Guarded by a mutex only because future callers may parallelize the
// validate loop per candidate; today's implementation is sequential.
type alignCache struct {
	mu   sync.Mutex
	seen map[alignCacheKey]int
}

func newAlignCache() *alignCache {
	return &alignCache{seen: make(map[alignCacheKey]int)}
}

func (c *alignCache) get(canon Overlap, a, b []byte, maxEdits int) int {
	key := alignKey(canon)
	c.mu.Lock()
	if d, ok := c.seen[key]; ok {
		c.mu.Unlock()
		return d
	}
	c.mu.Unlock()
	d := editDistanceBanded(a, b, maxEdits)
	c.mu.Lock()
	c.seen[key] = d
	c.mu.Unlock()
	return d
}

// editDistanceBanded computes the edit distance between a and b, restricted
// to a diagonal band of half-width maxEdits. It follows the same
// diagonal/down/right DP shape as util.Levenshtein, generalized to unequal
// lengths (our two sides can differ once insertions/deletions are involved)
// and banded for speed, since we only ever care whether the true distance is
// within budget. If the true distance exceeds maxEdits the returned value is
// only a lower bound of maxEdits+1, never an exact distance.
func editDistanceBanded(a, b []byte, maxEdits int) int {
	na, nb := len(a), len(b)
	if abs(na-nb) > maxEdits {
		return maxEdits + 1
	}
	const inf = 1 << 20
	prev := make([]int, nb+1)
	curr := make([]int, nb+1)
	for j := 0; j <= nb; j++ {
		if j <= maxEdits {
			prev[j] = j
		} else {
			prev[j] = inf
		}
	}
	for i := 1; i <= na; i++ {
		lo := i - maxEdits
		if lo < 0 {
			lo = 0
		}
		hi := i + maxEdits
		if hi > nb {
			hi = nb
		}
		for j := 0; j < lo; j++ {
			curr[j] = inf
		}
		if lo == 0 {
			if i <= maxEdits {
				curr[0] = i
			} else {
				curr[0] = inf
			}
		}
		start := lo
		if start < 1 {
			start = 1
		}
		for j := start; j <= hi; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			v := prev[j-1] + cost
			if up := prev[j] + 1; up < v {
				v = up
			}
			if left := curr[j-1] + 1; left < v {
				v = left
			}
			curr[j] = v
		}
		for j := hi + 1; j <= nb; j++ {
			curr[j] = inf
		}
		prev, curr = curr, prev
	}
	if prev[nb] > maxEdits {
		return maxEdits + 1
	}
	return prev[nb]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sidesFor returns the actual base sequences that must be aligned to verify
// o, in the orientation the overlap's Type implies. EB and BE are
// same-orientation overlaps (read_two's forward strand lines up directly
// against read_one's); BB and EE each need one side reverse-complemented,
// since both reads contribute the same kind of end.
func sidesFor(corpus *Corpus, o Overlap) (a, b []byte) {
	r1 := corpus.Get(o.ReadOne)
	r2 := corpus.Get(o.ReadTwo)
	switch o.Type {
	case EB:
		a = suffixOf(r1.Bases, o.LenOne)
		b = prefixOf(r2.Bases, o.LenTwo)
	case BE:
		a = prefixOf(r1.Bases, o.LenOne)
		b = suffixOf(r2.Bases, o.LenTwo)
	case BB:
		a = reverseComplement(prefixOf(r1.Bases, o.LenOne))
		b = prefixOf(r2.Bases, o.LenTwo)
	case EE:
		a = suffixOf(r1.Bases, o.LenOne)
		b = reverseComplement(suffixOf(r2.Bases, o.LenTwo))
	default:
		panic("olc: sidesFor: unknown overlap type")
	}
	return a, b
}

func prefixOf(bases []byte, n int) []byte {
	if n > len(bases) {
		n = len(bases)
	}
	return bases[:n]
}

func suffixOf(bases []byte, n int) []byte {
	if n > len(bases) {
		n = len(bases)
	}
	return bases[len(bases)-n:]
}

// canonKey identifies an unordered (read pair, type) for cross-strand
// dedup: two raw candidates that reach the same pair of reads from opposite
// query directions canonicalize to the same key once ReadOne < ReadTwo.
type canonKey struct {
	lo, hi int
	typ    OverlapType
}

// betterOverlap reports whether a should replace b as the kept overlap for
// a (pair, type) key: highest Score wins, ties broken by larger
// LenOne+LenTwo, remaining ties broken by smaller ReadOne (spec §4.5 step
// 2's tie-break chain).
func betterOverlap(a, b Overlap) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if al, bl := a.LenOne+a.LenTwo, b.LenOne+b.LenTwo; al != bl {
		return al > bl
	}
	return a.ReadOne < b.ReadOne
}

// Validate re-verifies every raw candidate with a real banded alignment,
// drops the ones that don't hold up, canonicalizes surviving overlaps so
// ReadOne < ReadTwo, and deduplicates to the single best-scoring overlap per
// (pair, type) (spec §4.5).
func Validate(candidates *OverlapSet, corpus *Corpus, opts Opts) *OverlapSet {
	cache := newAlignCache()
	best := make(map[canonKey]Overlap)
	rejected := 0

	for _, cand := range candidates.Overlaps {
		canon := cand
		if canon.ReadOne > canon.ReadTwo {
			canon = canon.flipped()
		}

		a, b := sidesFor(corpus, canon)
		// Band: ceil(MaxErrorRate * longer side) + Slack.
		longer := canon.LenOne
		if canon.LenTwo > longer {
			longer = canon.LenTwo
		}
		band := opts.MaxErrorRate * float64(longer)
		budget := int(band) + opts.Slack
		if float64(int(band)) < band {
			budget++
		}
		d := cache.get(canon, a, b, budget)
		if d > budget {
			rejected++
			continue
		}
		canon.Score = -d

		key := canonKey{canon.ReadOne, canon.ReadTwo, canon.Type}
		if cur, exists := best[key]; !exists || betterOverlap(canon, cur) {
			best[key] = canon
		}
	}

	out := &OverlapSet{Overlaps: make([]Overlap, 0, len(best))}
	for _, o := range best {
		out.Add(o)
	}
	sort.Slice(out.Overlaps, func(i, j int) bool {
		oi, oj := out.Overlaps[i], out.Overlaps[j]
		if oi.ReadOne != oj.ReadOne {
			return oi.ReadOne < oj.ReadOne
		}
		if oi.ReadTwo != oj.ReadTwo {
			return oi.ReadTwo < oj.ReadTwo
		}
		return oi.Type < oj.Type
	})
	log.Printf("olc: validate: %d candidates in, %d rejected, %d surviving overlaps", len(candidates.Overlaps), rejected, out.Len())
	return out
}
