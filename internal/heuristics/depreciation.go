package heuristics

import (
	"fmt"

	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/model"
)

// depreciationGeneration rebuilds the depreciation allowance from the asset
// vintage split. Land and consumer-funded assets earn no depreciation, so
// their value comes off both vintage bases before the rates apply. Assets
// added during the year accrue at half the annual rate.
func depreciationGeneration() Definition {
	return Definition{
		ID:        "DEP-GEN-01",
		Item:      model.ItemDepreciation,
		Constants: []string{constants.KeyDepRatePre2011, constants.KeyDepRatePost2011},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemDepreciation)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			gfaPre, err := scheduleValue(in, model.ScheduleDepreciation, "gfa_pre_2011")
			if err != nil {
				return model.HeuristicResult{}, err
			}
			gfaPost, err := scheduleValue(in, model.ScheduleDepreciation, "gfa_post_2011")
			if err != nil {
				return model.HeuristicResult{}, err
			}
			additions, err := scheduleValue(in, model.ScheduleDepreciation, "additions")
			if err != nil {
				return model.HeuristicResult{}, err
			}
			land, landOK := in.Data.ScheduleValue(model.ScheduleLandValues, "land")
			grants, grantsOK := in.Data.ScheduleValue(model.ScheduleGrants, "grants")

			ratePre := mustConst(in, constants.KeyDepRatePre2011)
			ratePost := mustConst(in, constants.KeyDepRatePost2011)

			preBase := gfaPre - land - grants
			if preBase < 0 {
				preBase = 0
			}
			postBase := gfaPost - land - grants
			if postBase < 0 {
				postBase = 0
			}
			expected := preBase*ratePre + postBase*ratePost + additions*ratePost/2

			rationale := fmt.Sprintf(
				"pre-2011 base %.2f at %.2f%% plus post-2011 base %.2f at %.2f%% plus additions %.2f at half rate",
				preBase, ratePre*100, postBase, ratePost*100, additions)
			if !landOK || !grantsOK {
				rationale += "; land or grant deductions unavailable, treated as zero"
			}
			r := finding(in, "DEP-GEN-01", expected, claimed, "crore", rationale)
			if !landOK || !grantsOK {
				// Base may be overstated without the deductions; do not
				// let that alone clear the claim.
				if r.Severity == model.SeverityGreen {
					r.Severity = model.SeverityYellow
				}
			}
			return r, nil
		},
	}
}
