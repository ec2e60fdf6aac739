package olc

// OverlapType encodes which ends of the two reads participate in an
// overlap: End-of-1-to-Beginning-of-2, Beginning-of-1-to-End-of-2,
// Beginning-to-Beginning, End-to-End.
type OverlapType int

const (
	EB OverlapType = iota
	BE
	BB
	EE
)

func (t OverlapType) String() string {
	switch t {
	case EB:
		return "EB"
	case BE:
		return "BE"
	case BB:
		return "BB"
	case EE:
		return "EE"
	default:
		return "?"
	}
}

// Overlap is a suffix-prefix overlap between two reads. ReadOne/ReadTwo are
// internal read ids (see Corpus); before Validate's canonicalization step,
// ReadOne < ReadTwo is not assumed.
type Overlap struct {
	ReadOne, ReadTwo int
	LenOne, LenTwo   int
	Type             OverlapType
	// Score is the negative edit count (0 is a perfect match); higher is
	// better.
	Score int
}

// flipped returns the overlap obtained by swapping ReadOne and ReadTwo,
// with Type adjusted so the geometric meaning is preserved: EB and BE swap
// (the end that was "of read one" is now "of read two"), BB and EE are
// symmetric under the swap.
func (o Overlap) flipped() Overlap {
	t := o.Type
	switch t {
	case EB:
		t = BE
	case BE:
		t = EB
	}
	return Overlap{
		ReadOne: o.ReadTwo, ReadTwo: o.ReadOne,
		LenOne: o.LenTwo, LenTwo: o.LenOne,
		Type:  t,
		Score: o.Score,
	}
}

// Suf reports whether the overlap touches the suffix (end) side of read r,
// as opposed to the prefix (beginning) side. It is derived on demand from
// (Type, which endpoint r is), never stored, per the "Suf/Hang are derived
// functions" design note.
func (o Overlap) Suf(r int) int {
	isOne := r == o.ReadOne
	switch o.Type {
	case EB:
		if isOne {
			return 1
		}
		return 0
	case BE:
		if isOne {
			return 0
		}
		return 1
	case BB:
		return 0
	case EE:
		return 1
	}
	panic("olc: Overlap.Suf: unknown type")
}

// Hang returns the overhang length, in bases, of the side of r not covered
// by the overlap: the part of r that dangles past the other read. It is
// read_len - overlap_len on the side identified by Suf(r).
func (o Overlap) Hang(r int, readLen func(int) int) int {
	var overlapLen int
	if r == o.ReadOne {
		overlapLen = o.LenOne
	} else {
		overlapLen = o.LenTwo
	}
	return readLen(r) - overlapLen
}

// Length returns the mean of LenOne and LenTwo, used as the reference
// length for error-rate/overhang tolerance checks.
func (o Overlap) Length() float64 {
	return float64(o.LenOne+o.LenTwo) / 2
}

// Other returns the read id on the other side of r in this overlap. r must
// be one of ReadOne or ReadTwo.
func (o Overlap) Other(r int) int {
	if r == o.ReadOne {
		return o.ReadTwo
	}
	return o.ReadOne
}

// OverlapSet is an unordered collection of overlaps/candidates. It is the
// type shared by FindCandidates' raw output and Validate's filtered output;
// ownership of the Overlap values transfers from one to the other rather
// than being copied (spec §5's ownership note).
type OverlapSet struct {
	Overlaps []Overlap
}

// Add appends o to the set.
func (s *OverlapSet) Add(o Overlap) { s.Overlaps = append(s.Overlaps, o) }

// Len returns the number of overlaps in the set.
func (s *OverlapSet) Len() int { return len(s.Overlaps) }
