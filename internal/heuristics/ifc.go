package heuristics

import (
	"fmt"
	"math"

	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/model"
)

// loanContinuityTolerance is the rounding slack, in crore, allowed between
// opening plus net movement and the stated closing balance.
const loanContinuityTolerance = 1.0

// ifcLongTermLoans recomputes interest on long-term loans from average
// balances at the weighted average rate, and checks the loan schedule's
// internal continuity. Balances come from the filing's loan schedule when
// mapped, otherwise from the approved constants.
func ifcLongTermLoans() Definition {
	return Definition{
		ID:   "IFC-LTL-01",
		Item: model.ItemIFC,
		Constants: []string{
			constants.KeyLoanOpening, constants.KeyLoanAdditions,
			constants.KeyLoanRepayments, constants.KeyLoanClosing,
			constants.KeyLoanAvgRate,
		},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := scheduleValue(in, model.ScheduleIFCDetail, "ltl_claimed")
			if err != nil {
				return model.HeuristicResult{}, err
			}
			balance := func(name, key string) float64 {
				if v, ok := in.Data.ScheduleValue(model.ScheduleIFCDetail, name); ok {
					return v
				}
				return mustConst(in, key)
			}
			opening := balance("loan_opening", constants.KeyLoanOpening)
			additions := balance("loan_additions", constants.KeyLoanAdditions)
			repayments := balance("loan_repayments", constants.KeyLoanRepayments)
			closing := balance("loan_closing", constants.KeyLoanClosing)
			rate := mustConst(in, constants.KeyLoanAvgRate)

			expected := (opening + closing) / 2 * rate / 100
			rationale := fmt.Sprintf("average balance %.2f at %.2f%% yields %.2f",
				(opening+closing)/2, rate, expected)
			r := finding(in, "IFC-LTL-01", expected, claimed, "crore", rationale)

			drift := math.Abs(opening + additions - repayments - closing)
			if drift > loanContinuityTolerance {
				r.Severity = r.Severity.Worse(model.SeverityYellow)
				r.Rationale += fmt.Sprintf("; loan schedule continuity breaks by %.2f", drift)
			}
			return r, nil
		},
	}
}

// ifcWorkingCapital recomputes normative interest on working capital from
// one month of O&M plus one percent of opening gross fixed assets.
func ifcWorkingCapital() Definition {
	consts := append([]string{constants.KeyIWCRate, constants.KeyGFAOpeningExclLand}, omChainConstants...)
	return Definition{
		ID:        "IFC-WC-01",
		Item:      model.ItemIFC,
		Constants: consts,
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := scheduleValue(in, model.ScheduleIFCDetail, "wc_claimed")
			if err != nil {
				return model.HeuristicResult{}, err
			}
			gfa, ok := in.Data.ScheduleValue(model.ScheduleGFAAdditions, "gfa_opening")
			if !ok {
				gfa = mustConst(in, constants.KeyGFAOpeningExclLand)
			}
			rate := mustConst(in, constants.KeyIWCRate)
			principal := normativeOM(in)/12 + 0.01*gfa
			expected := principal * rate / 100

			rationale := fmt.Sprintf("working capital %.2f (one month O&M plus 1%% of GFA %.2f) at %.2f%%",
				principal, gfa, rate)
			return finding(in, "IFC-WC-01", expected, claimed, "crore", rationale), nil
		},
	}
}

// ifcProvidentFund recomputes interest on GPF balances at the declared
// rate, scaled to the unit's allocation share.
func ifcProvidentFund() Definition {
	return Definition{
		ID:   "IFC-GPF-01",
		Item: model.ItemIFC,
		Constants: []string{
			constants.KeyGPFOpening, constants.KeyGPFClosing,
			constants.KeyGPFRate, constants.KeyGPFAllocationRatio,
		},
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := scheduleValue(in, model.ScheduleIFCDetail, "gpf_claimed")
			if err != nil {
				return model.HeuristicResult{}, err
			}
			opening := mustConst(in, constants.KeyGPFOpening)
			closing := mustConst(in, constants.KeyGPFClosing)
			rate := mustConst(in, constants.KeyGPFRate)
			allocation := mustConst(in, constants.KeyGPFAllocationRatio)

			expected := (opening + closing) / 2 * rate / 100 * allocation / 100
			rationale := fmt.Sprintf("average GPF balance %.2f at %.2f%%, %.2f%% allocated to generation",
				(opening+closing)/2, rate, allocation)
			return finding(in, "IFC-GPF-01", expected, claimed, "crore", rationale), nil
		},
	}
}

// ifcOtherCharges treats bank and other charges as an audited pass-through
// but rejects guarantee commission outright: government guarantee fees on
// bonds are not a pass-through cost of the generation business.
func ifcOtherCharges() Definition {
	return Definition{
		ID:   "IFC-OTH-02",
		Item: model.ItemIFC,
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			bank, bankOK := in.Data.ScheduleValue(model.ScheduleIFCDetail, "bank_charges")
			gbi, gbiOK := in.Data.ScheduleValue(model.ScheduleIFCDetail, "gbi")
			if !bankOK && !gbiOK {
				return model.HeuristicResult{}, fmt.Errorf("no bank charge or guarantee rows in IFC schedule")
			}
			r := finding(in, "IFC-OTH-02", bank, bank+gbi, "crore",
				fmt.Sprintf("bank charges %.2f accepted as pass-through", bank))
			if gbi > 0 {
				r.Severity = model.SeverityRed
				r.Excess = round2(gbi)
				r.Rationale += fmt.Sprintf("; guarantee commission %.2f is not an allowable charge", gbi)
			}
			return r, nil
		},
	}
}
