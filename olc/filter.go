package olc

import (
	"context"

	"github.com/grailbio/base/log"
)

// candKey identifies one (subject read, subject strand, overlap type)
// triple reachable from a single query (read, strand) backward search. Per
// spec §4.4's ordering note, only the best-scoring hit per triple survives a
// single search.
type candKey struct {
	readPrime   int
	strandPrime Strand
	typ         OverlapType
}

// fmNode is one state in the backward-search BFS: an FM-index row interval
// together with how much of the query and of the candidate prefix it has
// consumed so far.
type fmNode struct {
	lo, hi int // current SA interval
	qDepth int // bases consumed from the query read (from its end, backward)
	patLen int // bases consumed from the candidate's prefix
	edits  int
}

// maxFilterNodes bounds the BFS queue to guard against pathological
// branching on repetitive corpora; it's a safety valve, not a tuning knob a
// caller is expected to hit on realistic read sets.
const maxFilterNodes = 200000

// overlapType derives the EB/BE/BB/EE classification from which strand of
// the query read (sR) supplied the matched suffix and which strand of the
// candidate read (sRp) supplied the matched prefix. A forward-strand query
// contributes its End; a reverse-strand query (whose "suffix" is the
// reverse complement's tail) contributes its Beginning. Symmetrically for
// the candidate's Beginning/End under sRp.
func overlapType(sR, sRp Strand) OverlapType {
	endOfR := sR == Forward
	beginOfRp := sRp == Forward
	switch {
	case endOfR && beginOfRp:
		return EB
	case endOfR && !beginOfRp:
		return EE
	case !endOfR && beginOfRp:
		return BB
	default:
		return BE
	}
}

// FindCandidates runs the suffix-prefix filter (spec §4.4) over both
// strands of every read in corpus, returning every surviving candidate
// overlap. The search backward-extends the FM-index's SA interval one
// symbol at a time, away from each read's 3' end, along four axes: match
// and substitute consume one query base each (substitute at a one-edit
// cost); insert-in-pattern consumes a candidate base without consuming a
// query base (the candidate has an extra base); delete-from-pattern
// consumes a query base without narrowing the SA interval (the candidate is
// missing a base the query has). Cumulative edits are pruned against
// opts.editBudget of the longer side consumed so far.
//
// ctx is checked once per read, before both of its strand searches, not inside the inner
// search loop, matching spec §5's "implementations may check a flag between
// stages" -- this is a coarser cancellation grain than per-node, suited to a
// caller embedding the pipeline in a larger service rather than to
// fine-grained interactive cancellation.
func FindCandidates(ctx context.Context, corpus *Corpus, fm FMIndex, loc *Locator, opts Opts) *OverlapSet {
	out := &OverlapSet{}
	for rid := 0; rid < corpus.Size(); rid++ {
		select {
		case <-ctx.Done():
			log.Printf("olc: FindCandidates: %v, stopping after read %d/%d", ctx.Err(), rid, corpus.Size())
			return out
		default:
		}
		r := corpus.Get(rid)
		for _, hit := range searchStrand(rid, Forward, r.Bases, fm, loc, opts) {
			out.Add(hit)
		}
		for _, hit := range searchStrand(rid, Reverse, r.RevComp, fm, loc, opts) {
			out.Add(hit)
		}
	}
	return out
}

// searchStrand runs the BFS for a single (queryReadID, strand) query,
// deduping to the best (lowest-edit, then longest) hit per candKey.
func searchStrand(queryReadID int, strand Strand, query []byte, fm FMIndex, loc *Locator, opts Opts) []Overlap {
	n := len(query)
	if n == 0 {
		return nil
	}
	maxVal := fm.MaxVal()
	maxInsert := opts.editBudget(n)

	best := make(map[candKey]Overlap)
	queue := []fmNode{{lo: 0, hi: fm.Size(), qDepth: 0, patLen: 0, edits: 0}}
	processed := 0

	budgetFor := func(a, b int) int {
		l := a
		if b > l {
			l = b
		}
		return opts.editBudget(l)
	}

	extend := func(lo, hi int, c byte) (int, int) {
		newLo := fm.Less(c) + fm.Rank(c, lo)
		newHi := fm.Less(c) + fm.Rank(c, hi)
		return newLo, newHi
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		processed++
		if processed > maxFilterNodes {
			log.Debug.Printf("olc: FindCandidates: node budget exceeded for read %d strand %s, truncating search", queryReadID, strand)
			break
		}

		if node.qDepth < n {
			want := query[n-1-node.qDepth]

			// match: no edit cost.
			if lo, hi := extend(node.lo, node.hi, want); lo < hi {
				if budgetFor(node.qDepth+1, node.patLen+1) >= node.edits {
					queue = append(queue, fmNode{lo, hi, node.qDepth + 1, node.patLen + 1, node.edits})
				}
			}
			// substitute: any of the other AlphabetSize-1 symbols, one edit.
			for c := byte(1); c <= byte(maxVal); c++ {
				if c == want {
					continue
				}
				ne := node.edits + 1
				if ne > budgetFor(node.qDepth+1, node.patLen+1) {
					continue
				}
				if lo, hi := extend(node.lo, node.hi, c); lo < hi {
					queue = append(queue, fmNode{lo, hi, node.qDepth + 1, node.patLen + 1, ne})
				}
			}
			// delete-from-pattern: candidate is missing a base the query has.
			ne := node.edits + 1
			if ne <= budgetFor(node.qDepth+1, node.patLen) {
				queue = append(queue, fmNode{node.lo, node.hi, node.qDepth + 1, node.patLen, ne})
			}
		}

		// insert-in-pattern: candidate has a base the query doesn't, bounded
		// by maxInsert extra candidate bases beyond the query's own length.
		if node.patLen < n+maxInsert {
			ne := node.edits + 1
			if ne <= budgetFor(node.qDepth, node.patLen+1) {
				for c := byte(1); c <= byte(maxVal); c++ {
					if lo, hi := extend(node.lo, node.hi, c); lo < hi {
						queue = append(queue, fmNode{lo, hi, node.qDepth, node.patLen + 1, ne})
					}
				}
			}
		}

		if node.patLen == 0 || min(node.qDepth, node.patLen) < opts.MinOverlap {
			continue
		}
		for row := node.lo; row < node.hi; row++ {
			readPrime, strandPrime, offset, ok := loc.LocateRead(row)
			if !ok || offset != 0 {
				continue
			}
			if readPrime == queryReadID && strandPrime == strand && node.qDepth == n {
				continue // trivial whole-read self overlap
			}
			typ := overlapType(strand, strandPrime)
			key := candKey{readPrime, strandPrime, typ}
			cand := Overlap{
				ReadOne: queryReadID, ReadTwo: readPrime,
				LenOne: node.qDepth, LenTwo: node.patLen,
				Type:  typ,
				Score: -node.edits,
			}
			if cur, exists := best[key]; !exists ||
				cand.Score > cur.Score ||
				(cand.Score == cur.Score && cand.LenOne+cand.LenTwo > cur.LenOne+cur.LenTwo) {
				best[key] = cand
			}
		}
	}

	results := make([]Overlap, 0, len(best))
	for _, o := range best {
		results = append(results, o)
	}
	return results
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
