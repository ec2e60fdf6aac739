package olc

// Locator recovers, for a row in the FM-index's sorted-suffix order, which
// (read, strand, offset) that suffix starts at. It combines a sparsely
// sampled suffix array with LF-mapping (backward stepping through the
// FM-index) to fill the gap between samples, the same "psa + count + fo"
// shape soniakeys/bio's BWT.AllIndex uses, generalized from counting
// pattern occurrences to locating read boundaries.
type Locator struct {
	fm      FMIndex
	samples map[int]int // row -> text offset, for rows whose suffix starts at a sampled position
	text    *Text
}

// NewLocator builds a Locator from an FM-index and the sample map BuildBWT
// produced alongside it.
func NewLocator(fm FMIndex, samples map[int]int, text *Text) *Locator {
	return &Locator{fm: fm, samples: samples, text: text}
}

// locate returns the text offset SA[row] for the given FM-index row,
// walking LF-mapping steps until it reaches a sampled row.
func (l *Locator) locate(row int) int {
	steps := 0
	for {
		if off, ok := l.samples[row]; ok {
			return off + steps
		}
		c := l.fm.At(row)
		row = l.fm.Less(c) + l.fm.Rank(c, row)
		steps++
	}
}

// LocateRead returns the read id, strand and within-segment offset that the
// suffix at FM-index row row starts at. ok is false if that suffix starts
// exactly on a Sentinel (shouldn't happen for rows returned from a valid
// backward-search interval, but callers should still check).
func (l *Locator) LocateRead(row int) (readID int, strand Strand, offset int, ok bool) {
	return l.text.Locate(l.locate(row))
}
