package heuristics

import (
	"fmt"

	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/model"
)

// omInflationIndex recomputes the weighted CPI/WPI escalation from raw
// index values and checks the filing's published factor against it. Both
// over- and understatement are flagged; no monetary excess attaches.
func omInflationIndex() Definition {
	return Definition{
		ID:   "OM-INFL-01",
		Item: model.ItemOM,
		Constants: []string{
			constants.KeyCPIPrev, constants.KeyCPICurrent,
			constants.KeyWPIPrev, constants.KeyWPICurrent,
			constants.KeyCPIWeight, constants.KeyWPIWeight,
			constants.KeyInflFY2425,
		},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			cpiPrev := mustConst(in, constants.KeyCPIPrev)
			cpiCur := mustConst(in, constants.KeyCPICurrent)
			wpiPrev := mustConst(in, constants.KeyWPIPrev)
			wpiCur := mustConst(in, constants.KeyWPICurrent)
			if cpiPrev == 0 || wpiPrev == 0 {
				return model.HeuristicResult{}, fmt.Errorf("previous-year index values must be non-zero")
			}
			cpiDelta := (cpiCur - cpiPrev) / cpiPrev * 100
			wpiDelta := (wpiCur - wpiPrev) / wpiPrev * 100
			expected := mustConst(in, constants.KeyCPIWeight)*cpiDelta + mustConst(in, constants.KeyWPIWeight)*wpiDelta
			published := mustConst(in, constants.KeyInflFY2425)

			rationale := fmt.Sprintf("CPI delta %.2f%%, WPI delta %.2f%%, weighted %.2f%% vs published %.2f%%",
				cpiDelta, wpiDelta, expected, published)
			r := finding(in, "OM-INFL-01", expected, published, "percent", rationale)
			r.Excess = 0
			return r, nil
		},
	}
}

// normativeOM chains the base-year allowance through three years of
// weighted escalation.
func normativeOM(in Input) float64 {
	base := mustConst(in, constants.KeyOMBaseYear)
	for _, key := range []string{constants.KeyInflFY2223, constants.KeyInflFY2324, constants.KeyInflFY2425} {
		base *= 1 + mustConst(in, key)/100
	}
	return base
}

var omChainConstants = []string{
	constants.KeyOMBaseYear,
	constants.KeyInflFY2223,
	constants.KeyInflFY2324,
	constants.KeyInflFY2425,
}

// omNormative compares the claimed O&M total to the escalated base-year
// allowance.
func omNormative() Definition {
	return Definition{
		ID:        "OM-NORM-01",
		Item:      model.ItemOM,
		Constants: omChainConstants,
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemOM)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			expected := normativeOM(in)
			rationale := fmt.Sprintf("base-year allowance %.2f escalated through three years to %.2f",
				mustConst(in, constants.KeyOMBaseYear), expected)
			return finding(in, "OM-NORM-01", expected, claimed, "crore", rationale), nil
		},
	}
}

// omApportionment splits the normative O&M allowance into its employee,
// R&M and A&G shares and checks each actual component against its share.
// The verdict is the worst component band; the excess is the sum of the
// components above their shares.
func omApportionment() Definition {
	componentRatios := []struct {
		name string
		key  string
	}{
		{"employee_actual", constants.KeyOMRatioEmp},
		{"rm_actual", constants.KeyOMRatioRM},
		{"ag_actual", constants.KeyOMRatioAG},
	}
	consts := append([]string{}, omChainConstants...)
	for _, c := range componentRatios {
		consts = append(consts, c.key)
	}
	return Definition{
		ID:        "OM-APPORT-01",
		Item:      model.ItemOM,
		Constants: consts,
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			approved := normativeOM(in)
			bands := in.Bands.For("OM-APPORT-01")

			severity := model.SeverityGreen
			totalExcess, totalActual, totalShare := 0.0, 0.0, 0.0
			detail := ""
			for _, c := range componentRatios {
				actual, err := scheduleValue(in, model.ScheduleOMDetail, c.name)
				if err != nil {
					return model.HeuristicResult{}, err
				}
				share := approved * mustConst(in, c.key)
				severity = severity.Worse(bands.Classify(deviationPct(actual, share)))
				if actual > share {
					totalExcess += actual - share
				}
				totalActual += actual
				totalShare += share
				if detail != "" {
					detail += ", "
				}
				detail += fmt.Sprintf("%s %.2f vs share %.2f", c.name, actual, share)
			}

			r := finding(in, "OM-APPORT-01", totalShare, totalActual, "crore",
				"component actuals against apportioned allowance: "+detail)
			r.Severity = severity
			r.Excess = round2(totalExcess)
			return r, nil
		},
	}
}

// employeePayRevision checks the employee cost component against its
// apportioned share. Exceeding the share without an implemented pay
// revision has no regulatory basis and is flagged red outright.
func employeePayRevision() Definition {
	consts := append([]string{constants.KeyOMRatioEmp, constants.KeyOMPayRevision}, omChainConstants...)
	return Definition{
		ID:        "EMP-PAYREV-01",
		Item:      model.ItemOM,
		Constants: consts,
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			actual, err := scheduleValue(in, model.ScheduleOMDetail, "employee_actual")
			if err != nil {
				return model.HeuristicResult{}, err
			}
			share := normativeOM(in) * mustConst(in, constants.KeyOMRatioEmp)
			payRevision := mustConst(in, constants.KeyOMPayRevision) != 0

			rationale := fmt.Sprintf("employee cost %.2f against apportioned share %.2f", actual, share)
			r := finding(in, "EMP-PAYREV-01", share, actual, "crore", rationale)
			if actual > share && !payRevision {
				r.Severity = model.SeverityRed
				r.Rationale += "; no pay revision implemented in the period"
			}
			return r, nil
		},
	}
}
