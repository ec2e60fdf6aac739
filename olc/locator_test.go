package olc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildPipeline(t *testing.T, reads ...string) (*Corpus, *Text, FMIndex, *Locator) {
	t.Helper()
	opts := DefaultOpts
	opts.BucketSize = 4
	c := NewCorpus(opts)
	for i, s := range reads {
		_, ok := c.Add(encode(t, s), i)
		require.True(t, ok)
	}
	text := BuildText(c)
	bwt, samples, err := BuildBWT(text.Bytes, opts.BucketSize)
	require.NoError(t, err)
	fm := NewBucketedFMIndex(bwt, opts.AlphabetSize, opts.BucketSize)
	loc := NewLocator(fm, samples, text)
	return c, text, fm, loc
}

func TestLocatorRecoversEveryPosition(t *testing.T) {
	_, text, fm, loc := buildPipeline(t, "ACGTACGT", "TTGGCCAA")
	for row := 0; row < fm.Size(); row++ {
		readID, strand, offset, ok := loc.LocateRead(row)
		if !ok {
			continue
		}
		// Check that LocateRead agrees with Text.Locate applied to the text
		// offset that locate reports for this row.
		wantReadID, wantStrand, wantOffset, wantOK := text.Locate(loc.locate(row))
		require.True(t, wantOK)
		require.Equal(t, wantReadID, readID)
		require.Equal(t, wantStrand, strand)
		require.Equal(t, wantOffset, offset)
	}
}

func TestLocatorAgreesWithSuffixArray(t *testing.T) {
	_, text, fm, loc := buildPipeline(t, "ACGTACGT", "TTGGCCAA", "ACGTTTGG")
	sa := BuildSuffixArray(text.Bytes)
	for row := 0; row < fm.Size(); row++ {
		require.Equal(t, sa[row], loc.locate(row), "row %d", row)
	}
}
