package core

// Counters holds per-run search statistics. The search engine does not
// populate, update or finalize a Counters value: it keeps only its own
// node count, reported through search.Progress.
type Counters struct {
	Solutions           int64
	Guesses             int64
	Backtracks          int64
	NodesSearched       int64
	ConstraintsProcessed int64
	ValuesTried         int64
	BranchesIgnored     int64
	TimeMs              int64
	PuzzleSetupTimeMs   int64
}

// Clone returns a copy, used when a progress snapshot must outlive the
// engine's own mutable counters.
func (c Counters) Clone() Counters { return c }

// Add accumulates another counters snapshot into c (used for estimate-mode
// sampling, where several trial branches contribute partial counts).
func (c *Counters) Add(o Counters) {
	c.Solutions += o.Solutions
	c.Guesses += o.Guesses
	c.Backtracks += o.Backtracks
	c.NodesSearched += o.NodesSearched
	c.ConstraintsProcessed += o.ConstraintsProcessed
	c.ValuesTried += o.ValuesTried
	c.BranchesIgnored += o.BranchesIgnored
}
