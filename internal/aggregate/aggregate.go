// Package aggregate derives the overall verdict of a validation run.
package aggregate

import "github.com/hijacksecurity/PravdaPlus/internal/validate"

// Verdict is the derived summary of a validation run. It is computed on
// demand and never stored.
type Verdict struct {
	PassCount int
	FailCount int
	WarnCount int
	ExitCode  int
}

// Summarize folds over the run and tallies the outcomes. The exit code is 0
// exactly when no check failed; warnings never affect it. Pure function, no
// side effects.
func Summarize(run validate.Run) Verdict {
	var v Verdict
	for _, result := range run.Results {
		switch result.Status {
		case validate.StatusPass:
			v.PassCount++
		case validate.StatusWarn:
			v.WarnCount++
		case validate.StatusFail:
			v.FailCount++
		}
	}
	if v.FailCount > 0 {
		v.ExitCode = 1
	}
	return v
}
