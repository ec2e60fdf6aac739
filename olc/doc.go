// Package olc implements the overlap and layout stages of an
// Overlap-Layout-Consensus genome assembler.
//
// Given a set of DNA reads it builds a Burrows-Wheeler transform and
// FM-index over the reads and their reverse complements (Corpus, BuildBWT,
// FMIndex), uses the FM-index as an approximate substring-search oracle to
// enumerate suffix-prefix overlap candidates (FindCandidates), re-verifies
// and deduplicates those candidates with banded alignment (Validate),
// reduces the resulting overlap set to a string graph with no containment
// or transitive edges (RemoveContainments, RemoveTransitiveEdges), and
// finally merges unambiguous chains of reads into contigs (BuildContigs).
//
// Consensus/polishing, paired-end and long-read specific heuristics,
// chimera detection and scaffolding are out of scope. FASTA parsing, CLI
// flag handling and output formatting live in sibling packages
// (encoding/fasta, encoding/olcdump, cmd/olc-overlap) that treat this
// package as a library.
package olc
