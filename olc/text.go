package olc

// Strand distinguishes a read's original orientation from its reverse
// complement inside the concatenated text.
type Strand int

const (
	// Forward is the read as ingested.
	Forward Strand = iota
	// Reverse is the read's reverse complement.
	Reverse
)

func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// segment records where one (read, strand) pair lives inside Text.Bytes.
type segment struct {
	readID int
	strand Strand
	start  int // offset of the first base in Text.Bytes
	length int // number of bases, not counting the trailing sentinel
}

// Text is the conceptual string T of spec §3: every read followed by its
// reverse complement, each terminated by a Sentinel byte distinct by
// position. Built once from a Corpus; consumed by BuildBWT and then, via the
// sampled suffix array, by the suffix-prefix filter to recover which read a
// backward-search hit belongs to.
type Text struct {
	Bytes    []byte
	segments []segment
	// posSegment[i] is the index into segments owning text position i, or -1
	// if position i holds a Sentinel.
	posSegment []int32
}

// BuildText concatenates every read and its reverse complement, in
// insertion order, into one Text: r0 $ rc(r0) $ r1 $ rc(r1) ... $.
func BuildText(c *Corpus) *Text {
	n := c.Size()
	total := 0
	for i := 0; i < n; i++ {
		total += 2 * (c.Get(i).Len() + 1)
	}
	t := &Text{
		Bytes:      make([]byte, 0, total),
		segments:   make([]segment, 0, 2*n),
		posSegment: make([]int32, 0, total),
	}
	addSegment := func(readID int, strand Strand, bases []byte) {
		segIdx := int32(len(t.segments))
		start := len(t.Bytes)
		t.Bytes = append(t.Bytes, bases...)
		for range bases {
			t.posSegment = append(t.posSegment, segIdx)
		}
		t.Bytes = append(t.Bytes, Sentinel)
		t.posSegment = append(t.posSegment, -1)
		t.segments = append(t.segments, segment{readID: readID, strand: strand, start: start, length: len(bases)})
	}
	for i := 0; i < n; i++ {
		r := c.Get(i)
		addSegment(i, Forward, r.Bases)
		addSegment(i, Reverse, r.RevComp)
	}
	return t
}

// Len returns the length of the concatenated text, including sentinels.
func (t *Text) Len() int { return len(t.Bytes) }

// Locate maps a text offset to the (read, strand, offset-within-segment) it
// belongs to. ok is false if pos addresses a Sentinel byte.
func (t *Text) Locate(pos int) (readID int, strand Strand, offset int, ok bool) {
	segIdx := t.posSegment[pos]
	if segIdx < 0 {
		return 0, 0, 0, false
	}
	seg := t.segments[segIdx]
	return seg.readID, seg.strand, pos - seg.start, true
}

// SegmentLen returns the length (in bases) of the read/strand segment
// starting at text offset pos. pos must be the start of a segment (offset
// 0).
func (t *Text) SegmentLen(pos int) int {
	segIdx := t.posSegment[pos]
	if segIdx < 0 {
		panic("olc: SegmentLen called on a sentinel position")
	}
	return t.segments[segIdx].length
}
