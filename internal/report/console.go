// Package report renders validation runs for a human operator. It is purely
// presentational and never alters the verdict or exit code.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hijacksecurity/PravdaPlus/internal/aggregate"
	"github.com/hijacksecurity/PravdaPlus/internal/tunnel"
	"github.com/hijacksecurity/PravdaPlus/internal/validate"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ConsoleReporter writes check results and the trailing summary to an
// operator-facing stream in check order.
type ConsoleReporter struct {
	out io.Writer
}

func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

func glyph(status validate.Status) string {
	switch status {
	case validate.StatusPass:
		return passStyle.Render("✅")
	case validate.StatusWarn:
		return warnStyle.Render("⚠️")
	default:
		return failStyle.Render("❌")
	}
}

// Report renders every result in run order, then the summary line and, when
// the run is fully healthy, the set of reachable endpoints.
func (r *ConsoleReporter) Report(run validate.Run, verdict aggregate.Verdict, endpoints []tunnel.Endpoint) {
	for _, result := range run.Results {
		line := fmt.Sprintf("%s %s: %s", glyph(result.Status), result.Name, result.Message)
		if len(result.Metrics) > 0 {
			line += " (" + formatMetrics(result.Metrics) + ")"
		}
		fmt.Fprintln(r.out, line)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Summary: %d passed, %d failed, %d warnings\n",
		verdict.PassCount, verdict.FailCount, verdict.WarnCount)

	if verdict.ExitCode == 0 {
		fmt.Fprintln(r.out, "\nDeployment is healthy. Reachable endpoints:")
		sorted := make([]tunnel.Endpoint, len(endpoints))
		copy(sorted, endpoints)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Role < sorted[j].Role })
		for _, ep := range sorted {
			fmt.Fprintf(r.out, "  %-12s %s\n", ep.Role, ep.URL)
		}
	}
}

// Banner prints the terse single-line outcome used by the smoke entry point.
func (r *ConsoleReporter) Banner(verdict aggregate.Verdict) {
	if verdict.ExitCode == 0 {
		fmt.Fprintln(r.out, passStyle.Render("✅ Smoke test passed"))
		return
	}
	fmt.Fprintln(r.out, failStyle.Render("❌ Smoke test failed"))
}

func formatMetrics(metrics map[string]float64) string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, metrics[k]))
	}
	return strings.Join(parts, ", ")
}
