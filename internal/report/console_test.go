package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hijacksecurity/PravdaPlus/internal/aggregate"
	"github.com/hijacksecurity/PravdaPlus/internal/tunnel"
	"github.com/hijacksecurity/PravdaPlus/internal/validate"
)

func sampleRun() validate.Run {
	var run validate.Run
	run.Append(validate.CheckResult{
		Name:    "api-health",
		Status:  validate.StatusPass,
		Message: `{"status": "healthy"}`,
	})
	run.Append(validate.CheckResult{
		Name:    "news-listing",
		Status:  validate.StatusPass,
		Message: "5 articles returned",
		Metrics: map[string]float64{"articles": 5},
	})
	return run
}

func TestReport_HealthyRunListsEndpoints(t *testing.T) {
	var buf bytes.Buffer
	run := sampleRun()
	verdict := aggregate.Summarize(run)

	endpoints := []tunnel.Endpoint{
		{Role: "frontend", URL: "http://localhost:8080"},
		{Role: "api", URL: "http://localhost:8000"},
	}
	NewConsoleReporter(&buf).Report(run, verdict, endpoints)

	out := buf.String()
	assert.Contains(t, out, "api-health")
	assert.Contains(t, out, "articles=5")
	assert.Contains(t, out, "Summary: 2 passed, 0 failed, 0 warnings")
	assert.Contains(t, out, "http://localhost:8000")
	assert.Contains(t, out, "http://localhost:8080")

	// Endpoints are listed sorted by role.
	assert.Less(t, strings.Index(out, "api "), strings.Index(out, "frontend "))
}

func TestReport_FailedRunOmitsEndpoints(t *testing.T) {
	var buf bytes.Buffer
	run := sampleRun()
	run.Append(validate.CheckResult{
		Name:    "transform",
		Status:  validate.StatusFail,
		Message: "no sample available",
	})
	verdict := aggregate.Summarize(run)

	NewConsoleReporter(&buf).Report(run, verdict, []tunnel.Endpoint{
		{Role: "api", URL: "http://localhost:8000"},
	})

	out := buf.String()
	assert.Contains(t, out, "Summary: 2 passed, 1 failed, 0 warnings")
	assert.NotContains(t, out, "http://localhost:8000")
}

func TestReport_ResultsAppearInRunOrder(t *testing.T) {
	var buf bytes.Buffer
	run := sampleRun()
	verdict := aggregate.Summarize(run)

	NewConsoleReporter(&buf).Report(run, verdict, nil)

	out := buf.String()
	assert.Less(t, strings.Index(out, "api-health"), strings.Index(out, "news-listing"))
}

func TestReport_DoesNotAlterVerdict(t *testing.T) {
	var buf bytes.Buffer
	run := sampleRun()
	verdict := aggregate.Summarize(run)
	before := verdict

	NewConsoleReporter(&buf).Report(run, verdict, nil)

	assert.Equal(t, before, verdict)
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporter(&buf).Banner(aggregate.Verdict{ExitCode: 0})
	assert.Contains(t, buf.String(), "Smoke test passed")

	buf.Reset()
	NewConsoleReporter(&buf).Banner(aggregate.Verdict{FailCount: 1, ExitCode: 1})
	assert.Contains(t, buf.String(), "Smoke test failed")
}
