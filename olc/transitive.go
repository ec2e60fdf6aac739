package olc

// eqWithin reports whether x and y agree to within eps, the same symmetric
// tolerance check unitigging.cpp's eq() uses for comparing summed hangs.
func eqWithin(x, y, eps float64) bool {
	return y <= x+eps && x <= y+eps
}

// isTransitive reports whether edge o1 (between A and B) is explained by
// the two-hop path A-C-B through o2 (A to C) and o3 (C to B): same Suf
// polarity on the shared endpoints, and the two hang sums agreeing with
// o1's own hangs to within the overlap's error tolerance. This is Myers'
// transitive-edge test, read off layout/unitigging.cpp's isTransitive
// condition for condition.
func isTransitive(o1, o2, o3 Overlap, opts Opts, readLen func(int) int) bool {
	a := o1.ReadOne
	b := o1.ReadTwo
	c := o2.ReadOne
	if c == a {
		c = o2.ReadTwo
	}
	if o1.Suf(a) == o3.Suf(c) {
		return false
	}
	if o1.Suf(a) != o2.Suf(a) {
		return false
	}
	if o2.Suf(b) != o3.Suf(b) {
		return false
	}
	eps := opts.hangTolerance(o1.Length())
	sumA := float64(o2.Hang(a, readLen) + o3.Hang(c, readLen))
	if !eqWithin(sumA, float64(o1.Hang(a, readLen)), eps) {
		return false
	}
	sumB := float64(o2.Hang(c, readLen) + o3.Hang(b, readLen))
	if !eqWithin(sumB, float64(o1.Hang(b, readLen)), eps) {
		return false
	}
	return true
}

// RemoveTransitiveEdges drops every overlap in g that's implied by a
// two-hop path through some third read, per Myers' string-graph
// transitive-edge reduction. For each overlap A-B it merge-walks A's and
// B's neighbour lists (already sorted by other-endpoint id) looking for a
// common third read C, and tests isTransitive on the resulting triangle.
// It returns the surviving overlaps as a fresh OverlapSet; g itself is left
// untouched, since the contig builder works from the returned set directly
// rather than from graph adjacency.
func RemoveTransitiveEdges(g *OverlapGraph, corpus *Corpus, opts Opts) *OverlapSet {
	readLen := func(r int) int { return corpus.Get(r).Len() }

	n := g.NumReads()
	lists := make([][]edge, n)
	for r := 0; r < n; r++ {
		lists[r] = g.neighborList(r)
	}

	all := g.AllOverlaps()
	erased := make([]bool, len(all))
	for i, o1 := range all {
		v1, v2 := lists[o1.ReadOne], lists[o1.ReadTwo]
		i1, i2 := 0, 0
		for i1 < len(v1) && i2 < len(v2) {
			switch {
			case v1[i1].to == v2[i2].to:
				// Only i2 advances on a match, matching
				// unitigging.cpp's merge-walk: i1 stays anchored so a run
				// of same-keyed v2 entries (more than one overlap to the
				// same third read) is each tested against it.
				if isTransitive(o1, v1[i1].o, v2[i2].o, opts, readLen) {
					erased[i] = true
				}
				i2++
			case v1[i1].to < v2[i2].to:
				i1++
			default:
				i2++
			}
		}
	}

	survivors := &OverlapSet{}
	for i, o := range all {
		if !erased[i] {
			survivors.Add(o)
		}
	}
	return survivors
}
