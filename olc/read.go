package olc

import (
	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
)

// Sentinel is the reserved end-of-string marker, both in a Read's encoding
// and in the concatenated text built by BuildText. It sorts before every
// base.
const Sentinel byte = 0

// Base codes. Reads are stored as dense byte codes rather than ASCII so that
// the BWT/FM-index alphabet is exactly {Sentinel, BaseA, BaseC, BaseG, BaseT}.
const (
	BaseA byte = 1
	BaseC byte = 2
	BaseG byte = 3
	BaseT byte = 4
)

// complementCode[c] is the Watson-Crick complement of base code c;
// complementCode[Sentinel] is Sentinel.
var complementCode = [5]byte{Sentinel, BaseT, BaseG, BaseC, BaseA}

// EncodeBase maps an IUPAC ASCII byte to a base code. Non-ACGT bytes
// (including 'N'/'n' and anything else) map to 0, which the caller must
// treat as "invalid" -- Corpus ingest never stores a 0 inside a read, only
// as the separator between reads in the concatenated text.
var encodeTable = func() [256]byte {
	var t [256]byte
	t['A'], t['a'] = BaseA, BaseA
	t['C'], t['c'] = BaseC, BaseC
	t['G'], t['g'] = BaseG, BaseG
	t['T'], t['t'] = BaseT, BaseT
	return t
}()

// EncodeBase maps an ASCII base letter to its code, or 0 if unrecognized.
func EncodeBase(b byte) byte { return encodeTable[b] }

var decodeTable = [5]byte{'$', 'A', 'C', 'G', 'T'}

// DecodeBase maps a base code back to its ASCII letter ('$' for the
// sentinel).
func DecodeBase(c byte) byte { return decodeTable[c] }

// reverseComplement returns the reverse complement of codes: each base is
// complemented via complementCode and the result reversed, for our dense
// 0..4 code alphabet.
func reverseComplement(codes []byte) []byte {
	n := len(codes)
	rc := make([]byte, n)
	for i, c := range codes {
		rc[n-1-i] = complementCode[c]
	}
	return rc
}

// Read is an immutable record for one ingested sequence: its bases, its
// precomputed reverse complement, its dense internal id, and the id it had
// in the input FASTA.
type Read struct {
	Bases   []byte // base codes, length == Len()
	RevComp []byte // reverse complement of Bases, same length
	ID      int    // dense 0..N-1, insertion order
	OrigID  int    // position in the input FASTA
}

// Len returns the number of bases in the read.
func (r *Read) Len() int { return len(r.Bases) }

// Corpus holds an ordered, immutable-after-construction sequence of reads.
// It owns all read and reverse-complement bytes; nothing is freed or
// mutated once Add stops being called.
type Corpus struct {
	opts        Opts
	reads       []Read
	totalBases  uint64
	dropped     int
	fingerprint uint64
	fpValid     bool
}

// NewCorpus creates an empty corpus governed by opts (in particular,
// opts.MinReadSize).
func NewCorpus(opts Opts) *Corpus {
	return &Corpus{opts: opts}
}

// Add appends a read, computing and storing its reverse complement and
// assigning it the next dense internal id. bases must already be encoded
// base codes (see EncodeBase); a byte equal to Sentinel anywhere in bases is
// a caller bug, not a runtime-checked condition.
//
// Reads shorter than opts.MinReadSize are dropped and never receive an id;
// Add returns (0, false) in that case.
func (c *Corpus) Add(bases []byte, origID int) (id int, ok bool) {
	if len(bases) < c.opts.MinReadSize {
		c.dropped++
		log.Debug.Printf("olc: dropping read %d, length %d < MinReadSize %d", origID, len(bases), c.opts.MinReadSize)
		return 0, false
	}
	cp := make([]byte, len(bases))
	copy(cp, bases)
	r := Read{
		Bases:   cp,
		RevComp: reverseComplement(cp),
		ID:      len(c.reads),
		OrigID:  origID,
	}
	c.reads = append(c.reads, r)
	c.totalBases += uint64(len(bases))
	c.fpValid = false
	return r.ID, true
}

// Get returns the read with the given internal id.
func (c *Corpus) Get(id int) *Read { return &c.reads[id] }

// Size returns the number of reads held in the corpus.
func (c *Corpus) Size() int { return len(c.reads) }

// Dropped returns the number of reads rejected by Add for being too short.
func (c *Corpus) Dropped() int { return c.dropped }

// Fingerprint returns a content hash of the corpus, stable across runs over
// the same reads in the same order. It is meant for log lines and
// cross-run comparisons, not for security purposes.
func (c *Corpus) Fingerprint() uint64 {
	if c.fpValid {
		return c.fingerprint
	}
	h := uint64(c.opts.AlphabetSize)
	for i := range c.reads {
		rh := farm.Hash64WithSeed(c.reads[i].Bases, uint64(c.reads[i].OrigID))
		h = rh ^ (h*1099511628211 + uint64(i))
	}
	c.fingerprint = h
	c.fpValid = true
	return h
}

// Summary logs a one-line ingest summary in the style of the teacher's
// per-stage progress lines.
func (c *Corpus) Summary() {
	log.Printf("olc: corpus: %d reads, %d bases, %d dropped, fingerprint=%x",
		c.Size(), c.totalBases, c.dropped, c.Fingerprint())
}
