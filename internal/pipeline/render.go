package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/regulint/trueup/internal/model"
)

// Renderer serializes reports. All output is deterministic: identical
// reports render to identical bytes.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON serializes the report as JSON.
func (r *Renderer) RenderJSON(report *model.OverallReport, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// RenderMarkdown renders the report as a reviewer-facing document.
func (r *Renderer) RenderMarkdown(report *model.OverallReport) []byte {
	var b strings.Builder

	b.WriteString("# Truing-Up Analysis: Generation SBU\n\n")
	if report.FiscalYear != "" {
		fmt.Fprintf(&b, "**Fiscal year:** %s  \n", report.FiscalYear)
	}
	fmt.Fprintf(&b, "**Pages:** %d  \n", report.Pages)
	fmt.Fprintf(&b, "**Constants:** %s  \n", report.ConstantsVersion)
	fmt.Fprintf(&b, "**Overall:** %s  \n", report.Overall)
	fmt.Fprintf(&b, "**Total excess:** %.2f crore\n\n", report.TotalExcess)
	if report.Degraded {
		b.WriteString("> Some tables or heuristics could not be evaluated; findings below are partial.\n\n")
	}

	b.WriteString("| Line Item | Severity | Claimed | Expected | Excess | Action |\n")
	b.WriteString("|---|---|---:|---:|---:|---|\n")
	for _, item := range report.Items {
		severity := string(item.Severity)
		if item.Status == model.StatusSkipped {
			severity = "skipped"
		}
		fmt.Fprintf(&b, "| %s | %s | %.2f | %.2f | %.2f | %s |\n",
			item.Title, severity, item.Claimed, item.Expected, item.Excess, item.Recommendation.Action)
	}
	b.WriteString("\n")

	for _, item := range report.Items {
		if item.Status == model.StatusSkipped {
			fmt.Fprintf(&b, "## %s\n\nNot evaluated: %s\n\n", item.Title, item.SkipReason)
			continue
		}
		fmt.Fprintf(&b, "## %s (%s)\n\n", item.Title, item.Severity)
		fmt.Fprintf(&b, "%s\n\n", item.Recommendation.Reason)
		for _, res := range item.Results {
			if res.Status == model.StatusSkipped {
				fmt.Fprintf(&b, "- `%s`: skipped (%s)\n", res.ID, res.SkipReason)
				continue
			}
			fmt.Fprintf(&b, "- `%s` %s: expected %.2f, claimed %.2f (%+.1f%%). %s\n",
				res.ID, res.Severity, res.Expected, res.Claimed, res.DeviationPct, res.Rationale)
		}
		if len(item.Recommendation.NextSteps) > 0 {
			b.WriteString("\nNext steps:\n")
			for _, step := range item.Recommendation.NextSteps {
				fmt.Fprintf(&b, "1. %s\n", step)
			}
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "Generated with constants %s. Findings are screening aids, not determinations.\n",
			report.ConstantsVersion)
	}
	return []byte(b.String())
}

// WriteSummary prints the one-screen console summary.
func (r *Renderer) WriteSummary(w io.Writer, report *model.OverallReport) {
	fmt.Fprintf(w, "Overall: %s  total excess %.2f crore", report.Overall, report.TotalExcess)
	if report.Degraded {
		fmt.Fprint(w, "  (degraded)")
	}
	fmt.Fprintln(w)
	for _, item := range report.Items {
		if item.Status == model.StatusSkipped {
			fmt.Fprintf(w, "  %-28s %-8s %s\n", item.Title, "skipped", item.SkipReason)
			continue
		}
		fmt.Fprintf(w, "  %-28s %-8s claimed %10.2f  expected %10.2f  %s\n",
			item.Title, item.Severity, item.Claimed, item.Expected, item.Recommendation.Action)
	}
}
