package aggregate

import (
	"fmt"

	"github.com/regulint/trueup/internal/model"
)

// recommend derives the staff action for a verdict. The base action comes
// from severity; the filing's own narrative can soften it one notch when
// the explanation is concrete and documented, never more.
func recommend(v model.LineItemVerdict, data *model.Dataset) model.Recommendation {
	if v.Status == model.StatusSkipped {
		return model.Recommendation{
			Action: model.ActionReview,
			Reason: "could not be evaluated from the filing; manual check required",
			NextSteps: []string{
				"locate the source table in the petition and verify the claimed amount manually",
			},
		}
	}

	rec := model.Recommendation{}
	switch v.Severity {
	case model.SeverityGreen:
		rec.Action = model.ActionAccept
		rec.Reason = "claim within tolerance of the normative recomputation"
	case model.SeverityYellow:
		rec.Action = model.ActionReview
		rec.Reason = fmt.Sprintf("claim deviates moderately from the normative value (excess %.2f crore)", v.Excess)
	default:
		rec.Action = model.ActionScrutinize
		rec.Reason = fmt.Sprintf("claim substantially exceeds the normative value (excess %.2f crore)", v.Excess)
	}

	narrative := itemNarrative(v.Item, data)
	quality := explanationQuality(narrative)
	if narrative != nil {
		if narrative.ForceMajeure {
			rec.Modifiers = append(rec.Modifiers, "force majeure claimed")
		}
		if len(narrative.SupportingDocs) > 0 {
			rec.Modifiers = append(rec.Modifiers, "supporting documents cited")
		}
		if len(narrative.RegulatoryRefs) > 0 {
			rec.Modifiers = append(rec.Modifiers, "regulatory provisions cited")
		}
	}
	if quality >= 2 {
		switch rec.Action {
		case model.ActionScrutinize:
			rec.Action = model.ActionReviewPriority
			rec.Reason += "; filing offers a documented explanation worth weighing first"
		case model.ActionReview:
			rec.Action = model.ActionAcceptConditional
			rec.Reason += "; documented explanation may account for the variance"
		}
	}

	rec.NextSteps = nextSteps(v, narrative)
	return rec
}

func itemNarrative(li model.LineItem, data *model.Dataset) *model.VarianceExplanation {
	if rec, ok := data.Items[li]; ok {
		return rec.Narrative
	}
	return nil
}

// explanationQuality scores how substantiated the filing's own variance
// explanation is: one point each for concrete reasons, cited documents and
// cited regulatory provisions.
func explanationQuality(n *model.VarianceExplanation) int {
	if n == nil {
		return 0
	}
	score := 0
	if len(n.Reasons) > 0 {
		score++
	}
	if len(n.SupportingDocs) > 0 {
		score++
	}
	if len(n.RegulatoryRefs) > 0 {
		score++
	}
	return score
}

func nextSteps(v model.LineItemVerdict, narrative *model.VarianceExplanation) []string {
	if v.Severity == model.SeverityGreen {
		return nil
	}
	var steps []string
	for _, r := range v.Results {
		if r.Status == model.StatusComputed && r.Severity != model.SeverityGreen {
			steps = append(steps, fmt.Sprintf("verify %s: %s", r.ID, r.Rationale))
		}
	}
	if narrative != nil && narrative.ForceMajeure {
		steps = append(steps, "validate the force majeure claim against survey and insurance records")
	}
	if narrative == nil {
		steps = append(steps, "request a written variance explanation from the licensee")
	}
	return steps
}
