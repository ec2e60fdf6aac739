package olc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRemoveTransitiveEdgesDropsRedundantTriangle builds the classic
// scenario D triangle (spec §8.D): three reads where a direct overlap
// between the two ends of a two-hop chain is implied by the chain itself,
// and must be dropped.
func TestRemoveTransitiveEdgesDropsRedundantTriangle(t *testing.T) {
	opts := DefaultOpts
	c := NewCorpus(opts)
	c.Add(encode(t, strings.Repeat("A", 100)), 0)
	c.Add(encode(t, strings.Repeat("A", 100)), 1)
	c.Add(encode(t, strings.Repeat("A", 100)), 2)

	overlaps := &OverlapSet{}
	overlaps.Add(Overlap{ReadOne: 0, ReadTwo: 1, LenOne: 60, LenTwo: 60, Type: EB}) // A-C
	overlaps.Add(Overlap{ReadOne: 1, ReadTwo: 2, LenOne: 60, LenTwo: 60, Type: BB}) // C-B
	overlaps.Add(Overlap{ReadOne: 0, ReadTwo: 2, LenOne: 20, LenTwo: 20, Type: EB}) // direct A-B, implied by the above

	g := NewOverlapGraph(3, overlaps, opts)
	survivors := RemoveTransitiveEdges(g, c, opts)

	_, ok := findOverlap(survivors.Overlaps, 0, 2)
	require.False(t, ok, "direct edge implied by the two-hop chain should be removed")
	_, ok = findOverlap(survivors.Overlaps, 0, 1)
	require.True(t, ok, "chain edge A-C should survive")
	_, ok = findOverlap(survivors.Overlaps, 1, 2)
	require.True(t, ok, "chain edge C-B should survive")
}

// TestRemoveTransitiveEdgesKeepsIndependentEdges covers the non-triangle
// case: a simple linear chain (spec §8.B) has no third read forming a
// redundant shortcut, so nothing should be removed.
func TestRemoveTransitiveEdgesKeepsIndependentEdges(t *testing.T) {
	opts := DefaultOpts
	c := NewCorpus(opts)
	c.Add(encode(t, strings.Repeat("A", 100)), 0)
	c.Add(encode(t, strings.Repeat("A", 100)), 1)
	c.Add(encode(t, strings.Repeat("A", 100)), 2)

	overlaps := &OverlapSet{}
	overlaps.Add(Overlap{ReadOne: 0, ReadTwo: 1, LenOne: 40, LenTwo: 40, Type: EB})
	overlaps.Add(Overlap{ReadOne: 1, ReadTwo: 2, LenOne: 40, LenTwo: 40, Type: EB})

	g := NewOverlapGraph(3, overlaps, opts)
	survivors := RemoveTransitiveEdges(g, c, opts)
	require.Equal(t, 2, survivors.Len())
}

// TestRemoveTransitiveEdgesIsIdempotent checks spec §8 property 9: running
// the reducer again on its own output changes nothing.
func TestRemoveTransitiveEdgesIsIdempotent(t *testing.T) {
	opts := DefaultOpts
	c := NewCorpus(opts)
	c.Add(encode(t, strings.Repeat("A", 100)), 0)
	c.Add(encode(t, strings.Repeat("A", 100)), 1)
	c.Add(encode(t, strings.Repeat("A", 100)), 2)

	overlaps := &OverlapSet{}
	overlaps.Add(Overlap{ReadOne: 0, ReadTwo: 1, LenOne: 60, LenTwo: 60, Type: EB})
	overlaps.Add(Overlap{ReadOne: 1, ReadTwo: 2, LenOne: 60, LenTwo: 60, Type: BB})
	overlaps.Add(Overlap{ReadOne: 0, ReadTwo: 2, LenOne: 20, LenTwo: 20, Type: EB})

	g := NewOverlapGraph(3, overlaps, opts)
	once := RemoveTransitiveEdges(g, c, opts)

	g2 := NewOverlapGraph(3, once, opts)
	twice := RemoveTransitiveEdges(g2, c, opts)

	require.Equal(t, once.Len(), twice.Len())
	for _, o := range once.Overlaps {
		_, ok := findOverlap(twice.Overlaps, o.ReadOne, o.ReadTwo)
		require.True(t, ok, "edge %d-%d dropped by a second pass", o.ReadOne, o.ReadTwo)
	}
}

func TestIsTransitiveRejectsMismatchedPolarity(t *testing.T) {
	readLen := func(int) int { return 100 }
	o1 := Overlap{ReadOne: 0, ReadTwo: 2, LenOne: 20, LenTwo: 20, Type: EB}
	o2 := Overlap{ReadOne: 0, ReadTwo: 1, LenOne: 60, LenTwo: 60, Type: EB}
	o3 := Overlap{ReadOne: 1, ReadTwo: 2, LenOne: 60, LenTwo: 60, Type: EB} // wrong polarity vs the BB case
	require.False(t, isTransitive(o1, o2, o3, DefaultOpts, readLen))
}
