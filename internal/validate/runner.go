package validate

import (
	"context"

	"github.com/hijacksecurity/PravdaPlus/pkg/logging"
)

// Execute runs the checks strictly in order, one at a time, and returns the
// accumulated run. Under PolicyFailFast the run stops at the first Fail; a
// Warn never stops it. The caller selects the policy, never the checks.
func Execute(ctx context.Context, checks []Check, policy Policy) Run {
	var run Run
	for _, check := range checks {
		logging.Debug("Validation", "Running check %s", check.Name())
		result := check.Run(ctx)
		run.Append(result)

		switch result.Status {
		case StatusFail:
			logging.Error("Validation", nil, "Check %s failed: %s", check.Name(), result.Message)
			if policy == PolicyFailFast {
				return run
			}
		case StatusWarn:
			logging.Warn("Validation", "Check %s warned: %s", check.Name(), result.Message)
		default:
			logging.Debug("Validation", "Check %s passed", check.Name())
		}
	}
	return run
}
