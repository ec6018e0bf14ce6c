package aggregate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regulint/trueup/internal/model"
)

func computedResult(id string, item model.LineItem, sev model.Severity, excess float64) model.HeuristicResult {
	return model.HeuristicResult{
		ID: id, Item: item, Status: model.StatusComputed,
		Severity: sev, Excess: excess, Unit: "crore",
	}
}

func dataset() *model.Dataset {
	return &model.Dataset{
		Items: map[model.LineItem]*model.LineItemRecord{
			model.ItemROE: {Item: model.ItemROE, Claimed: 125, Status: model.StatusComputed, Confidence: model.ConfidenceExact},
			model.ItemOM:  {Item: model.ItemOM, Claimed: 185, Status: model.StatusComputed, Confidence: model.ConfidenceExact},
		},
		Schedules: map[model.Schedule]*model.ScheduleRecord{},
	}
}

func TestVerdictTakesWorstSeverity(t *testing.T) {
	results := []model.HeuristicResult{
		computedResult("OM-NORM-01", model.ItemOM, model.SeverityGreen, 0),
		computedResult("OM-APPORT-01", model.ItemOM, model.SeverityRed, 12.5),
		computedResult("EMP-PAYREV-01", model.ItemOM, model.SeverityYellow, 3.0),
	}
	v := buildVerdict(model.ItemOM, dataset(), results)

	assert.Equal(t, model.StatusComputed, v.Status)
	assert.Equal(t, model.SeverityRed, v.Severity)
	assert.Equal(t, 15.5, v.Excess)
}

func TestVerdictSkippedWhenAllHeuristicsSkip(t *testing.T) {
	results := []model.HeuristicResult{
		model.Skipped("ROE-01", model.ItemROE, "line item roe not mapped"),
	}
	v := buildVerdict(model.ItemROE, &model.Dataset{Items: map[model.LineItem]*model.LineItemRecord{}}, results)

	assert.Equal(t, model.StatusSkipped, v.Status)
	assert.Empty(t, v.Severity, "a skipped item carries no verdict")
	assert.Equal(t, model.ActionReview, v.Recommendation.Action)
}

func TestVerdictMixedSkips(t *testing.T) {
	results := []model.HeuristicResult{
		computedResult("OM-NORM-01", model.ItemOM, model.SeverityGreen, 0),
		model.Skipped("OM-APPORT-01", model.ItemOM, "schedule om-detail unavailable"),
	}
	v := buildVerdict(model.ItemOM, dataset(), results)
	assert.Equal(t, model.StatusComputed, v.Status, "one computed result is enough for a verdict")
	assert.Equal(t, model.SeverityGreen, v.Severity)
}

func TestBuildReport(t *testing.T) {
	data := dataset()
	results := []model.HeuristicResult{
		computedResult("ROE-01", model.ItemROE, model.SeverityYellow, 8.62),
		computedResult("OM-NORM-01", model.ItemOM, model.SeverityGreen, 0),
	}
	report := BuildReport(data, results, ReportMeta{
		FiscalYear: "2024-25", DocumentType: "truing-up-petition",
		Pages: 120, ConstantsVersion: "kserc-fy2024-25",
	})

	require.Len(t, report.Items, len(model.LineItemOrder))
	assert.Equal(t, model.SeverityYellow, report.Overall)
	assert.Equal(t, 8.62, report.TotalExcess)
	assert.True(t, report.Degraded, "items without results leave the report degraded")

	for i, li := range model.LineItemOrder {
		assert.Equal(t, li, report.Items[i].Item, "items follow canonical order")
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	build := func() []byte {
		data := dataset()
		results := []model.HeuristicResult{
			computedResult("ROE-01", model.ItemROE, model.SeverityYellow, 8.62),
		}
		report := BuildReport(data, results, ReportMeta{Pages: 10, ConstantsVersion: "v"})
		raw, err := json.Marshal(report)
		require.NoError(t, err)
		return raw
	}
	assert.Equal(t, build(), build(), "identical inputs must serialize to identical bytes")
}

func TestRecommendationUpgrades(t *testing.T) {
	data := dataset()
	data.Items[model.ItemOM].Narrative = &model.VarianceExplanation{
		Reasons:        []string{"due to pay revision arrears"},
		SupportingDocs: []string{"Annexure-12"},
	}

	v := model.LineItemVerdict{
		Item: model.ItemOM, Status: model.StatusComputed,
		Severity: model.SeverityRed, Excess: 12.5,
		Results: []model.HeuristicResult{computedResult("OM-NORM-01", model.ItemOM, model.SeverityRed, 12.5)},
	}
	rec := recommend(v, data)
	assert.Equal(t, model.ActionReviewPriority, rec.Action, "a documented explanation softens scrutinize by one notch")
	assert.Contains(t, rec.Modifiers, "supporting documents cited")

	// Same verdict without narrative stays at full scrutiny.
	bare := recommend(v, dataset())
	assert.Equal(t, model.ActionScrutinize, bare.Action)
	assert.Contains(t, bare.NextSteps, "request a written variance explanation from the licensee")
}

func TestRecommendationGreen(t *testing.T) {
	v := model.LineItemVerdict{
		Item: model.ItemROE, Status: model.StatusComputed,
		Severity: model.SeverityGreen,
	}
	rec := recommend(v, dataset())
	assert.Equal(t, model.ActionAccept, rec.Action)
	assert.Empty(t, rec.NextSteps)
}
