package fasta

import (
	"github.com/grailbio/bio-olc/olc"
)

// ToReads walks every sequence in f, in file order, encoding each one into
// olc's dense base alphabet and feeding it to a new Corpus. Bytes outside
// {A,C,G,T} (either case) -- most commonly 'N' runs -- are mapped to 'A'
// before encoding rather than dropping the read outright; this is the
// "implementation choice, must be documented" fallback spec.md §6 allows
// for non-ACGT input.
func ToReads(f Fasta, opts olc.Opts) (*olc.Corpus, error) {
	corpus := olc.NewCorpus(opts)
	for origID, name := range f.SeqNames() {
		length, err := f.Len(name)
		if err != nil {
			return nil, err
		}
		seq, err := f.Get(name, 0, length)
		if err != nil {
			return nil, err
		}
		bases := make([]byte, len(seq))
		for i := 0; i < len(seq); i++ {
			c := olc.EncodeBase(seq[i])
			if c == olc.Sentinel {
				c = olc.BaseA
			}
			bases[i] = c
		}
		corpus.Add(bases, origID)
	}
	return corpus, nil
}
