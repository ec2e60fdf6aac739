package olc

import (
	"testing"

	"github.com/antzucaro/matchr"
	"github.com/stretchr/testify/require"
)

func TestEditDistanceBandedMatchesExactStrings(t *testing.T) {
	a := encode(t, "ACGTACGTACGT")
	require.Equal(t, 0, editDistanceBanded(a, a, 5))
}

func TestEditDistanceBandedCountsSingleSubstitution(t *testing.T) {
	a := encode(t, "ACGTACGTACGT")
	b := encode(t, "ACGTAAGTACGT")
	require.Equal(t, 1, editDistanceBanded(a, b, 5))
}

func TestEditDistanceBandedMatchesLevenshteinOracle(t *testing.T) {
	cases := []struct{ a, b string }{
		{"ACGTACGTACGT", "ACGTACGTACGT"},
		{"ACGTACGTACGT", "ACGTACGTACGA"},
		{"ACGTACGTACGT", "ACGTACCGTACGT"},
		{"ACGTACGTACGT", "ACGACGTACGT"},
		{"GATTACA", "GATACA"},
	}
	for _, tc := range cases {
		a, b := encode(t, tc.a), encode(t, tc.b)
		got := editDistanceBanded(a, b, len(tc.a)+len(tc.b))
		want := matchr.Levenshtein(tc.a, tc.b)
		require.Equal(t, want, got, "a=%q b=%q", tc.a, tc.b)
	}
}

func TestEditDistanceBandedRespectsMaxEdits(t *testing.T) {
	a := encode(t, "AAAAAAAAAA")
	b := encode(t, "CCCCCCCCCC")
	d := editDistanceBanded(a, b, 2)
	require.Greater(t, d, 2) // exceeds the band: must report "too far", not a wrong small number
}

func TestValidateKeepsGoodOverlapAndRejectsBad(t *testing.T) {
	opts := DefaultOpts
	c := NewCorpus(opts)
	overlap := "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	c.Add(encode(t, "TTTTTTTTTTTTTTTTTTTT"+overlap), 0) // read 0
	c.Add(encode(t, overlap+"GGGGGGGGGGGGGGGGGGGG"), 1) // read 1, genuinely overlaps read 0
	c.Add(encode(t, "CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"), 2) // unrelated

	candidates := &OverlapSet{}
	candidates.Add(Overlap{ReadOne: 0, ReadTwo: 1, LenOne: len(overlap), LenTwo: len(overlap), Type: EB, Score: 0})
	candidates.Add(Overlap{ReadOne: 0, ReadTwo: 2, LenOne: 20, LenTwo: 20, Type: EB, Score: 0})

	out := Validate(candidates, c, opts)
	_, ok := findOverlap(out.Overlaps, 0, 1)
	require.True(t, ok)
	_, ok = findOverlap(out.Overlaps, 0, 2)
	require.False(t, ok, "unrelated reads must not validate as an overlap")
}

func TestValidateCanonicalizesReadOrder(t *testing.T) {
	opts := DefaultOpts
	c := NewCorpus(opts)
	overlap := "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	c.Add(encode(t, "TTTTTTTTTTTTTTTTTTTT"+overlap), 0)
	c.Add(encode(t, overlap+"GGGGGGGGGGGGGGGGGGGG"), 1)

	candidates := &OverlapSet{}
	// Present the pair in reverse (ReadOne > ReadTwo); Validate must canonicalize.
	candidates.Add(Overlap{ReadOne: 1, ReadTwo: 0, LenOne: len(overlap), LenTwo: len(overlap), Type: BE, Score: 0})

	out := Validate(candidates, c, opts)
	require.Len(t, out.Overlaps, 1)
	require.Equal(t, 0, out.Overlaps[0].ReadOne)
	require.Equal(t, 1, out.Overlaps[0].ReadTwo)
}

func TestAlignCacheIsConsistentAcrossCalls(t *testing.T) {
	cache := newAlignCache()
	a := encode(t, "ACGTACGTACGT")
	b := encode(t, "ACGTAAGTACGT")
	canon := Overlap{ReadOne: 0, ReadTwo: 1, LenOne: 12, LenTwo: 12, Type: EB}
	d1 := cache.get(canon, a, b, 5)
	d2 := cache.get(canon, a, b, 5)
	require.Equal(t, d1, d2)
	require.Equal(t, 1, d1)
}
