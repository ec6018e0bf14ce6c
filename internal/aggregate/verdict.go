// Package aggregate folds heuristic results into per-item verdicts and the
// overall report, and derives the staff recommendation for each item.
package aggregate

import (
	"fmt"
	"math"

	"github.com/regulint/trueup/internal/model"
)

// BuildReport assembles the final report from the mapped dataset and the
// evaluated heuristic bank. Items follow the canonical ordering; nothing
// time-dependent enters the report.
func BuildReport(data *model.Dataset, results []model.HeuristicResult, md ReportMeta) *model.OverallReport {
	byItem := make(map[model.LineItem][]model.HeuristicResult)
	for _, r := range results {
		byItem[r.Item] = append(byItem[r.Item], r)
	}

	report := &model.OverallReport{
		FiscalYear:       md.FiscalYear,
		DocumentType:     md.DocumentType,
		Pages:            md.Pages,
		ConstantsVersion: md.ConstantsVersion,
		Overall:          model.SeverityGreen,
		Unit:             "crore",
	}
	for _, li := range model.LineItemOrder {
		verdict := buildVerdict(li, data, byItem[li])
		report.Items = append(report.Items, verdict)
		if verdict.Status == model.StatusComputed {
			report.Overall = report.Overall.Worse(verdict.Severity)
			report.TotalExcess += verdict.Excess
		} else {
			report.Degraded = true
		}
		if verdict.Confidence == model.ConfidenceFallback {
			report.Degraded = true
		}
	}
	report.TotalExcess = math.Round(report.TotalExcess*100) / 100
	if len(data.MissingTables) > 0 {
		report.Degraded = true
	}
	return report
}

// ReportMeta carries document-level fields into the report.
type ReportMeta struct {
	FiscalYear       string
	DocumentType     string
	Pages            int
	ConstantsVersion string
}

// buildVerdict folds one item's heuristic results. The item severity is
// the worst computed result; an item whose heuristics all skipped is
// itself skipped, never silently green.
func buildVerdict(li model.LineItem, data *model.Dataset, results []model.HeuristicResult) model.LineItemVerdict {
	v := model.LineItemVerdict{
		Item:       li,
		Title:      li.Title(),
		Status:     model.StatusComputed,
		Severity:   model.SeverityGreen,
		Confidence: model.ConfidenceExact,
		Results:    results,
	}
	if rec, ok := data.Item(li); ok {
		v.Claimed = rec.Claimed
		v.Confidence = rec.Confidence
	}

	computed := 0
	for _, r := range results {
		if r.Status != model.StatusComputed {
			continue
		}
		computed++
		v.Severity = v.Severity.Worse(r.Severity)
		v.Excess += r.Excess
		// The first monetary result is the item's primary recomputation;
		// later ones check components and consistency.
		if v.Expected == 0 && r.Unit != "percent" {
			v.Expected = r.Expected
		}
	}
	v.Excess = math.Round(v.Excess*100) / 100

	if computed == 0 {
		v.Status = model.StatusSkipped
		v.Severity = ""
		v.SkipReason = skipSummary(li, data, results)
	}
	v.Recommendation = recommend(v, data)
	return v
}

func skipSummary(li model.LineItem, data *model.Dataset, results []model.HeuristicResult) string {
	if rec, present := data.Items[li]; present && rec.Status == model.StatusSkipped {
		return rec.SkipReason
	}
	if len(results) > 0 {
		return results[0].SkipReason
	}
	return fmt.Sprintf("no heuristics produced a result for %s", li)
}
