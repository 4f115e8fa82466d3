package validate

import "context"

// Status is the outcome of a single check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// CheckResult holds the outcome of a single check. Immutable once produced.
type CheckResult struct {
	Name    string
	Status  Status
	Message string
	Metrics map[string]float64
}

// Run is the ordered sequence of results produced by one invocation of the
// engine. Results appear in declaration order, which is also execution order.
type Run struct {
	Results []CheckResult
}

// Append adds a result to the run.
func (r *Run) Append(res CheckResult) {
	r.Results = append(r.Results, res)
}

// Check is a single named, independent, non-mutating probe.
type Check interface {
	Name() string
	Run(ctx context.Context) CheckResult
}

// Policy selects how the engine reacts to a failing check.
type Policy int

const (
	// PolicyAggregate runs every check regardless of earlier failures.
	PolicyAggregate Policy = iota
	// PolicyFailFast stops at the first Fail and returns immediately.
	PolicyFailFast
)
