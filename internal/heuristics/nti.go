package heuristics

import (
	"fmt"

	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/model"
)

// nonTariffIncome checks the declared non-tariff income against the higher
// of the approved baseline and the audited-accounts figure net of allowed
// exclusions. The direction is inverted relative to cost heuristics:
// understating income inflates the revenue requirement, so the excess is
// the shortfall of claimed below expected.
func nonTariffIncome() Definition {
	return Definition{
		ID:        "NTI-01",
		Item:      model.ItemNTI,
		Constants: []string{constants.KeyNTIBaseline},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemNTI)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			accounts, err := scheduleValue(in, model.ScheduleNTIDetail, "accounts_income")
			if err != nil {
				return model.HeuristicResult{}, err
			}
			exclusions, _ := in.Data.ScheduleValue(model.ScheduleNTIDetail, "exclusions")
			baseline := mustConst(in, constants.KeyNTIBaseline)

			expected := accounts - exclusions
			basis := "audited accounts net of exclusions"
			if baseline > expected {
				expected = baseline
				basis = "approved baseline"
			}

			rationale := fmt.Sprintf("declared income checked against %s %.2f", basis, expected)
			r := finding(in, "NTI-01", expected, claimed, "crore", rationale)
			if claimed < expected {
				r.Excess = round2(expected - claimed)
				// Any shortfall past the green tolerance is an
				// understatement, never a mere deviation.
				if r.Severity != model.SeverityGreen {
					r.Severity = model.SeverityRed
				}
			} else {
				r.Excess = 0
				r.Severity = model.SeverityGreen
			}
			return r, nil
		},
	}
}
