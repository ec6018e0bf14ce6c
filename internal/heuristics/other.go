package heuristics

import (
	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/model"
)

// boundedClaim implements the documentation-gated pattern shared by the
// residual line items: a zero claim is clean, a documented claim passes at
// the given severity, an undocumented claim is disallowed in full.
func boundedClaim(claimed float64, documented bool, whenDocumented model.Severity, undocumentedNote string) model.HeuristicResult {
	r := model.HeuristicResult{
		Status:  model.StatusComputed,
		Claimed: round2(claimed),
		Unit:    "crore",
	}
	switch {
	case claimed <= 0:
		r.Severity = model.SeverityGreen
		r.Expected = r.Claimed
		r.Rationale = "no amount claimed"
	case documented:
		r.Severity = whenDocumented
		r.Expected = r.Claimed
		r.Rationale = "claim supported by documentation on record"
	default:
		r.Severity = model.SeverityRed
		r.Expected = 0
		r.Excess = r.Claimed
		r.Rationale = undocumentedNote
	}
	return r
}

// intangiblesClaim disallows intangible asset write-offs that arrive
// without the supporting asset register.
func intangiblesClaim() Definition {
	return Definition{
		ID:        "INTANG-01",
		Item:      model.ItemIntangibles,
		Constants: []string{constants.KeyIntangDocs},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemIntangibles)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			documented := mustConst(in, constants.KeyIntangDocs) != 0
			return boundedClaim(claimed, documented, model.SeverityYellow,
				"no asset register or amortization detail filed for the intangibles claim"), nil
		},
	}
}

// otherExpensesClaim gates the residual expenses bucket on flood-damage
// documentation and write-off orders.
func otherExpensesClaim() Definition {
	return Definition{
		ID:        "OTHER-EXP-01",
		Item:      model.ItemOtherExp,
		Constants: []string{constants.KeyOtherFloodDocs, constants.KeyOtherWriteoffs},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemOtherExp)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			documented := mustConst(in, constants.KeyOtherFloodDocs) != 0 &&
				mustConst(in, constants.KeyOtherWriteoffs) != 0
			return boundedClaim(claimed, documented, model.SeverityYellow,
				"flood damage claims lack survey reports or board write-off orders"), nil
		},
	}
}

// exceptionalItemsClaim requires both a separate account code and
// supporting documentation. Even a documented exceptional claim stays
// yellow: by nature it needs individual review.
func exceptionalItemsClaim() Definition {
	return Definition{
		ID:        "EXC-01",
		Item:      model.ItemExceptional,
		Constants: []string{constants.KeyExcAccountCode, constants.KeyExcDocs},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemExceptional)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			documented := mustConst(in, constants.KeyExcAccountCode) != 0 &&
				mustConst(in, constants.KeyExcDocs) != 0
			return boundedClaim(claimed, documented, model.SeverityYellow,
				"exceptional items lack a separate account code or supporting documentation"), nil
		},
	}
}
