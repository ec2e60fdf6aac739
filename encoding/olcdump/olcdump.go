// Package olcdump writes the two plain-text output formats spec.md §6
// defines: one line per overlap, and (optionally) one line per contig. It
// has no BAM/PAM coupling, mirroring encoding/fasta's "thin, alphabet-level
// I/O, not a genomic-format binding" shape.
package olcdump

import (
	"bufio"
	"fmt"
	"io"

	"github.com/grailbio/bio-olc/olc"
	"github.com/pkg/errors"
)

// WriteOverlaps writes one line per overlap to w:
//
//	<orig_id_1> <orig_id_2> <len_1> <len_2> <TYPE> <score>
//
// in the order overlaps.Overlaps already holds (Validate leaves that order
// stable and deterministic).
func WriteOverlaps(w io.Writer, overlaps *olc.OverlapSet, corpus *olc.Corpus) error {
	bw := bufio.NewWriter(w)
	for _, o := range overlaps.Overlaps {
		origOne := corpus.Get(o.ReadOne).OrigID
		origTwo := corpus.Get(o.ReadTwo).OrigID
		if _, err := fmt.Fprintf(bw, "%d %d %d %d %s %d\n",
			origOne, origTwo, o.LenOne, o.LenTwo, o.Type, o.Score); err != nil {
			return errors.Wrap(err, "olcdump: writing overlap line")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "olcdump: flushing overlap dump")
	}
	return nil
}

// WriteContigs writes one line per live contig to w: the contig's reads in
// layout order, each as "<orig_id>[+|-]", space-separated.
func WriteContigs(w io.Writer, contigs []*olc.Contig, corpus *olc.Corpus) error {
	bw := bufio.NewWriter(w)
	for _, c := range contigs {
		if !c.Alive() {
			continue
		}
		reads := c.Reads()
		for i, r := range reads {
			if i > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return errors.Wrap(err, "olcdump: writing contig line")
				}
			}
			sign := byte('+')
			if r.Strand == olc.Reverse {
				sign = '-'
			}
			if _, err := fmt.Fprintf(bw, "%d%c", corpus.Get(r.ID).OrigID, sign); err != nil {
				return errors.Wrap(err, "olcdump: writing contig line")
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "olcdump: writing contig line")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "olcdump: flushing contig dump")
	}
	return nil
}
