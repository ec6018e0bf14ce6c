package heuristics

import (
	"fmt"

	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/model"
)

// roeReturn recomputes the allowable return on equity from the approved
// equity base and rate, and compares it to the claimed amount.
func roeReturn() Definition {
	return Definition{
		ID:        "ROE-01",
		Item:      model.ItemROE,
		Constants: []string{constants.KeyROERate, constants.KeyROEEquityBase},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemROE)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			rate := mustConst(in, constants.KeyROERate)
			base := mustConst(in, constants.KeyROEEquityBase)
			expected := base * rate
			rationale := fmt.Sprintf("equity base %.2f at %.2f%% yields %.2f", base, rate*100, expected)
			return finding(in, "ROE-01", expected, claimed, "crore", rationale), nil
		},
	}
}
