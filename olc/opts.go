package olc

// Opts collects the tunable parameters of the overlap/layout pipeline.
// Every stage (Corpus, FindCandidates, Validate, RemoveTransitiveEdges) takes
// a copy of Opts rather than reading global state, so a single process can
// run multiple independent pipelines concurrently.
type Opts struct {
	// MinReadSize drops reads shorter than this many bases at ingest. They
	// never receive an internal id.
	MinReadSize int

	// MaxErrorRate is the fraction of edits allowed per unit of matched
	// overlap length (epsilon in spec terms).
	MaxErrorRate float64

	// Slack is additive tolerance (alpha) added on top of
	// MaxErrorRate*length when comparing edit counts or overhangs against a
	// budget, so short overlaps aren't unfairly rejected by rounding.
	Slack int

	// MinOverlap is the minimum matched length, in bases, for a candidate to
	// be considered at all.
	MinOverlap int

	// BucketSize is both the FM-index rank-bucket granularity (BucketedFMIndex)
	// and the suffix-array sampling modulus used for position recovery.
	BucketSize int

	// AlphabetSize is the number of non-sentinel symbols in the read
	// alphabet. Bases are encoded densely as 1..AlphabetSize, with 0
	// reserved for the sentinel.
	AlphabetSize int
}

// DefaultOpts holds the default tunables, matching spec §6.
var DefaultOpts = Opts{
	MinReadSize:  0,
	MaxErrorRate: 0.04,
	Slack:        3,
	MinOverlap:   40,
	BucketSize:   32,
	AlphabetSize: 4,
}

// editBudget returns the maximum number of edits tolerated for a match of
// the given length under o's error rate and slack.
func (o Opts) editBudget(length int) int {
	return int(o.MaxErrorRate*float64(length)) + o.Slack
}

// hangTolerance returns the maximum disagreement, in bases, tolerated
// between two overhang sums for an edge of the given mean length.
func (o Opts) hangTolerance(length float64) float64 {
	return o.MaxErrorRate*length + float64(o.Slack)
}
