package olcdump

import (
	"strings"
	"testing"

	"github.com/grailbio/bio-olc/olc"
	"github.com/stretchr/testify/require"
)

func newCorpus(t *testing.T, seqs ...string) *olc.Corpus {
	c := olc.NewCorpus(olc.DefaultOpts)
	for i, s := range seqs {
		codes := make([]byte, len(s))
		for j := range s {
			codes[j] = olc.EncodeBase(s[j])
		}
		_, ok := c.Add(codes, i*10) // origID distinct from the internal id
		require.True(t, ok)
	}
	return c
}

func TestWriteOverlapsFormatsOneLinePerOverlap(t *testing.T) {
	c := newCorpus(t, strings.Repeat("A", 50), strings.Repeat("A", 50))
	overlaps := &olc.OverlapSet{}
	overlaps.Add(olc.Overlap{ReadOne: 0, ReadTwo: 1, LenOne: 30, LenTwo: 30, Type: olc.EB, Score: -2})

	var buf strings.Builder
	require.NoError(t, WriteOverlaps(&buf, overlaps, c))
	require.Equal(t, "0 10 30 30 EB -2\n", buf.String())
}

func TestWriteOverlapsEmptySetWritesNothing(t *testing.T) {
	c := newCorpus(t)
	var buf strings.Builder
	require.NoError(t, WriteOverlaps(&buf, &olc.OverlapSet{}, c))
	require.Empty(t, buf.String())
}

func TestWriteContigsSkipsDeadContigsAndTagsStrand(t *testing.T) {
	c := newCorpus(t, strings.Repeat("A", 50), strings.Repeat("A", 50))
	overlaps := &olc.OverlapSet{}
	overlaps.Add(olc.Overlap{ReadOne: 0, ReadTwo: 1, LenOne: 30, LenTwo: 30, Type: olc.BB})
	contigs := olc.BuildContigs(2, overlaps)
	contigs = append(contigs, &olc.Contig{}) // zero Contig is dead

	var buf strings.Builder
	require.NoError(t, WriteContigs(&buf, contigs, c))
	require.Equal(t, "10- 0+\n", buf.String())
}

func TestWriteContigsNilContigsWritesNothing(t *testing.T) {
	c := newCorpus(t)
	var buf strings.Builder
	require.NoError(t, WriteContigs(&buf, nil, c))
	require.Empty(t, buf.String())
}
