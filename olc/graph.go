package olc

import "sort"

// edge is one directed arc in the overlap graph: the read on the other end,
// the overlap that justifies it, and which of that read's two ends the arc
// leaves from (its own Suf side).
type edge struct {
	to   int
	o    Overlap
	from int // 0 = Beginning, 1 = End: which end of the owning read this edge leaves
}

// OverlapGraph is the string graph built from a validated OverlapSet: one
// node per read, two adjacency lists per node (one per end), each sorted by
// decreasing overlap length. Transitive-edge removal walks neighborList,
// which is ordered by neighbour id instead.
type OverlapGraph struct {
	opts  Opts
	n     int
	alive []bool
	adj   [][2][]edge // adj[r][0] = edges off r's Beginning, adj[r][1] = edges off r's End
}

// NewOverlapGraph builds a graph over n reads from a validated overlap set.
// Every overlap contributes one edge entry to each endpoint's adjacency
// list, from its own Suf side, to the other read.
func NewOverlapGraph(n int, overlaps *OverlapSet, opts Opts) *OverlapGraph {
	g := &OverlapGraph{
		opts:  opts,
		n:     n,
		alive: make([]bool, n),
		adj:   make([][2][]edge, n),
	}
	for i := range g.alive {
		g.alive[i] = true
	}
	for _, o := range overlaps.Overlaps {
		g.addHalf(o.ReadOne, o.ReadTwo, o, o.Suf(o.ReadOne))
		g.addHalf(o.ReadTwo, o.ReadOne, o, o.Suf(o.ReadTwo))
	}
	g.Finalize()
	return g
}

func (g *OverlapGraph) addHalf(owner, other int, o Overlap, side int) {
	g.adj[owner][side] = append(g.adj[owner][side], edge{to: other, o: o, from: side})
}

// Finalize sorts every adjacency list by decreasing overlap length (mean of
// LenOne/LenTwo).
func (g *OverlapGraph) Finalize() {
	for r := 0; r < g.n; r++ {
		for side := 0; side < 2; side++ {
			edges := g.adj[r][side]
			sort.Slice(edges, func(i, j int) bool {
				li, lj := edges[i].o.Length(), edges[j].o.Length()
				if li != lj {
					return li > lj
				}
				return edges[i].to < edges[j].to
			})
		}
	}
}

// NumReads returns the number of nodes in the graph.
func (g *OverlapGraph) NumReads() int { return g.n }

// Alive reports whether read r is still part of the graph (hasn't been
// dropped by containment removal).
func (g *OverlapGraph) Alive(r int) bool { return g.alive[r] }

// Kill marks r as no longer part of the graph. It does not remove r's edges
// from neighbours' adjacency lists; callers (containment removal) must skip
// dead endpoints when walking edges.
func (g *OverlapGraph) Kill(r int) { g.alive[r] = false }

// Edges returns r's adjacency list for the given side (0 = Beginning, 1 =
// End), sorted by decreasing overlap length.
func (g *OverlapGraph) Edges(r, side int) []edge { return g.adj[r][side] }

// Degree returns the number of live-endpoint edges off r's given side.
func (g *OverlapGraph) Degree(r, side int) int {
	n := 0
	for _, e := range g.adj[r][side] {
		if g.alive[e.to] {
			n++
		}
	}
	return n
}

// setEdges replaces r's adjacency list for side, used by containment and
// transitive-edge removal to drop entries in place.
func (g *OverlapGraph) setEdges(r, side int, edges []edge) { g.adj[r][side] = edges }

// AllOverlaps returns every distinct overlap still present in the graph,
// each reported exactly once (from its ReadOne endpoint's adjacency list,
// regardless of which side it lives on there).
func (g *OverlapGraph) AllOverlaps() []Overlap {
	var out []Overlap
	for r := 0; r < g.n; r++ {
		for side := 0; side < 2; side++ {
			for _, e := range g.adj[r][side] {
				if e.o.ReadOne == r {
					out = append(out, e.o)
				}
			}
		}
	}
	return out
}

// neighborList returns every edge touching r, from either side, merged and
// sorted by the other endpoint's read id. RemoveTransitiveEdges merge-walks
// two of these lists together to find a common third read.
func (g *OverlapGraph) neighborList(r int) []edge {
	all := make([]edge, 0, len(g.adj[r][0])+len(g.adj[r][1]))
	all = append(all, g.adj[r][0]...)
	all = append(all, g.adj[r][1]...)
	sort.Slice(all, func(i, j int) bool { return all[i].to < all[j].to })
	return all
}
