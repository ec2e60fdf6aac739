// Command olc-overlap runs the overlap and layout stages of an
// Overlap-Layout-Consensus assembler over a FASTA file of reads: it builds a
// BWT/FM-index, finds candidate suffix-prefix overlaps, validates them with
// banded alignment, reduces the resulting string graph (containments,
// transitive edges), and optionally lays out contigs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bio-olc/encoding/fasta"
	"github.com/grailbio/bio-olc/encoding/olcdump"
	"github.com/grailbio/bio-olc/olc"
	"github.com/klauspost/compress/gzip"
)

func usage() {
	fmt.Fprintln(os.Stderr, `
olc-overlap finds suffix-prefix overlaps between reads in a FASTA file and
lays them out into contigs.

Usage:
  olc-overlap [flags] <fasta_in> <overlaps_out> [contigs_out]

  Required Positional Arguments:
    fasta_in       FASTA file of input reads.
    overlaps_out   Overlap dump, one line per overlap. A ".gz" suffix
                   compresses the output.

  Optional Positional Argument:
    contigs_out    Contig dump, one line per contig.
`)
	panic("")
}

// exitInputOpen and exitEmptyOrBWTFail are the two non-zero exit codes spec.md
// §7 defines.
const (
	exitOK             = 0
	exitInputOpen      = 1
	exitEmptyOrBWTFail = 2
)

func openOutput(ctx context.Context, path string) (io.WriteCloser, func(), error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	w := f.Writer(ctx)
	if strings.HasSuffix(path, ".gz") {
		gw := gzip.NewWriter(w)
		return gw, func() {
			if err := gw.Close(); err != nil {
				log.Panic(err)
			}
			if err := f.Close(ctx); err != nil {
				log.Panic(err)
			}
		}, nil
	}
	wc, ok := w.(io.WriteCloser)
	if !ok {
		wc = nopCloser{w}
	}
	return wc, func() {
		if err := f.Close(ctx); err != nil {
			log.Panic(err)
		}
	}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func run(ctx context.Context, fastaInPath, overlapsOutPath, contigsOutPath string, opts olc.Opts) int {
	in, err := file.Open(ctx, fastaInPath)
	if err != nil {
		log.Printf("olc-overlap: open %s: %v", fastaInPath, err)
		return exitInputOpen
	}
	defer func() { _ = in.Close(ctx) }()

	f, err := fasta.New(in.Reader(ctx), fasta.OptClean)
	if err != nil {
		log.Printf("olc-overlap: parse %s: %v", fastaInPath, err)
		return exitInputOpen
	}

	corpus, err := fasta.ToReads(f, opts)
	if err != nil {
		log.Printf("olc-overlap: read %s: %v", fastaInPath, err)
		return exitInputOpen
	}
	corpus.Summary()
	if corpus.Size() < 2 {
		log.Printf("olc-overlap: %d reads after filtering, need at least 2", corpus.Size())
		return exitEmptyOrBWTFail
	}

	log.Printf("olc-overlap: building BWT")
	text := olc.BuildText(corpus)
	bwt, samples, err := olc.BuildBWT(text.Bytes, opts.BucketSize)
	if err != nil {
		log.Printf("olc-overlap: %v", err)
		return exitEmptyOrBWTFail
	}

	log.Printf("olc-overlap: building FM-index")
	fm := olc.NewBucketedFMIndex(bwt, opts.AlphabetSize, opts.BucketSize)
	loc := olc.NewLocator(fm, samples, text)

	log.Printf("olc-overlap: finding candidates")
	candidates := olc.FindCandidates(ctx, corpus, fm, loc, opts)
	log.Printf("olc-overlap: %d candidates", candidates.Len())

	log.Printf("olc-overlap: validating overlaps")
	validated := olc.Validate(candidates, corpus, opts)
	log.Printf("olc-overlap: %d overlaps survived validation", validated.Len())

	graph := olc.NewOverlapGraph(corpus.Size(), validated, opts)

	log.Printf("olc-overlap: removing containments")
	killed := olc.RemoveContainments(graph, corpus)
	log.Printf("olc-overlap: %d reads contained", killed)

	log.Printf("olc-overlap: removing transitive edges")
	survivors := olc.RemoveTransitiveEdges(graph, corpus, opts)
	log.Printf("olc-overlap: %d edges survived transitive-edge removal", survivors.Len())

	overlapsOut, cleanupOverlaps, err := openOutput(ctx, overlapsOutPath)
	if err != nil {
		log.Printf("olc-overlap: create %s: %v", overlapsOutPath, err)
		return exitInputOpen
	}
	if err := olcdump.WriteOverlaps(overlapsOut, validated, corpus); err != nil {
		log.Panic(err)
	}
	cleanupOverlaps()

	if contigsOutPath != "" {
		log.Printf("olc-overlap: building contigs")
		contigs := olc.BuildContigs(corpus.Size(), survivors)
		log.Printf("olc-overlap: %d contigs", len(contigs))
		contigsOut, cleanupContigs, err := openOutput(ctx, contigsOutPath)
		if err != nil {
			log.Printf("olc-overlap: create %s: %v", contigsOutPath, err)
			return exitInputOpen
		}
		if err := olcdump.WriteContigs(contigsOut, contigs, corpus); err != nil {
			log.Panic(err)
		}
		cleanupContigs()
	}

	log.Printf("olc-overlap: done")
	return exitOK
}

func main() {
	flag.Usage = usage

	opts := olc.DefaultOpts
	flag.IntVar(&opts.MinReadSize, "min-read-size", olc.DefaultOpts.MinReadSize, "Drop reads shorter than this many bases.")
	flag.Float64Var(&opts.MaxErrorRate, "max-error-rate", olc.DefaultOpts.MaxErrorRate, "Fraction of edits tolerated per unit of matched overlap length.")
	flag.IntVar(&opts.Slack, "slack", olc.DefaultOpts.Slack, "Additive edit/overhang tolerance on top of max-error-rate*length.")
	flag.IntVar(&opts.MinOverlap, "min-overlap", olc.DefaultOpts.MinOverlap, "Minimum matched overlap length, in bases.")
	flag.IntVar(&opts.BucketSize, "bucket-size", olc.DefaultOpts.BucketSize, "FM-index rank-bucket granularity and suffix-array sample modulus.")
	flag.IntVar(&opts.AlphabetSize, "alphabet-size", olc.DefaultOpts.AlphabetSize, "Number of non-sentinel symbols in the read alphabet.")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if n := flag.NArg(); n < 2 || n > 3 {
		log.Fatal("exactly two or three arguments (<fasta_in> <overlaps_out> [contigs_out]) are required")
	}
	fastaInPath := flag.Arg(0)
	overlapsOutPath := flag.Arg(1)
	contigsOutPath := ""
	if flag.NArg() >= 3 {
		contigsOutPath = flag.Arg(2)
	}

	code := run(ctx, fastaInPath, overlapsOutPath, contigsOutPath, opts)
	log.Printf("olc-overlap: exiting %d", code)
	os.Exit(code)
}
