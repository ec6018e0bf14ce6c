package heuristics

import (
	"fmt"

	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/model"
)

// masterTrustBond apportions the company-wide master trust bond interest
// to the generation unit by its employee share and compares the claim.
func masterTrustBond() Definition {
	return Definition{
		ID:        "MT-BOND-01",
		Item:      model.ItemMasterTrust,
		Constants: []string{constants.KeyMTBondCompanyTotal, constants.KeyEmployeeRatio},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemMasterTrust)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			companyTotal, ok := in.Data.ScheduleValue(model.ScheduleMasterTrust, "mtbond_company_total")
			if !ok {
				companyTotal = mustConst(in, constants.KeyMTBondCompanyTotal)
			}
			ratio := mustConst(in, constants.KeyEmployeeRatio)
			expected := companyTotal * ratio / 100

			rationale := fmt.Sprintf("company bond interest %.2f apportioned at employee share %.2f%%",
				companyTotal, ratio)
			return finding(in, "MT-BOND-01", expected, claimed, "crore", rationale), nil
		},
	}
}
