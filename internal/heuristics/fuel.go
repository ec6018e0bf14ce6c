package heuristics

import (
	"fmt"

	"github.com/regulint/trueup/internal/model"
)

// fuelStationTotals cross-checks the claimed cost of fuel against the sum
// of the per-station fuel schedule. Fuel is a pass-through cost; the check
// is internal consistency, not a normative recomputation.
func fuelStationTotals() Definition {
	return Definition{
		ID:   "FUEL-01",
		Item: model.ItemFuel,
		Evaluate: func(in Input) (model.HeuristicResult, error) {
			claimed, err := claimedValue(in, model.ItemFuel)
			if err != nil {
				return model.HeuristicResult{}, err
			}
			expected, ok := in.Data.ScheduleValue(model.ScheduleFuelDetail, "fuel_total")
			source := "station schedule total row"
			if !ok {
				expected, ok = in.Data.ScheduleValue(model.ScheduleFuelDetail, "fuel_station_sum")
				source = "sum of per-station rows"
			}
			if !ok {
				return model.HeuristicResult{}, fmt.Errorf("fuel schedule has neither total nor station rows")
			}
			rationale := fmt.Sprintf("claimed fuel cost checked against %s %.2f", source, expected)
			return finding(in, "FUEL-01", expected, claimed, "crore", rationale), nil
		},
	}
}
