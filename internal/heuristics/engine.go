// Package heuristics holds the regulatory plausibility checks applied to a
// mapped filing. Each heuristic recomputes a normative expectation from
// constants and supporting schedules and compares it to the claimed value.
package heuristics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/regulint/trueup/internal/constants"
	"github.com/regulint/trueup/internal/model"
)

// Input is everything a heuristic may read. Heuristics never mutate it.
type Input struct {
	Data      *model.Dataset
	Constants *constants.Registry
	Bands     model.BandsConfig
}

// Definition is one registered heuristic.
type Definition struct {
	ID        string
	Item      model.LineItem
	Constants []string // registry names that must be present
	Evaluate  func(in Input) (model.HeuristicResult, error)
}

// Definitions returns the full heuristic bank in report order.
func Definitions() []Definition {
	return []Definition{
		roeReturn(),
		depreciationGeneration(),
		fuelStationTotals(),
		omInflationIndex(),
		omNormative(),
		omApportionment(),
		employeePayRevision(),
		ifcLongTermLoans(),
		ifcWorkingCapital(),
		ifcProvidentFund(),
		ifcOtherCharges(),
		masterTrustBond(),
		nonTariffIncome(),
		intangiblesClaim(),
		otherExpensesClaim(),
		exceptionalItemsClaim(),
	}
}

// RequiredConstants is the union of every definition's constant names,
// sorted, for up-front registry validation.
func RequiredConstants() []string {
	seen := make(map[string]bool)
	for _, def := range Definitions() {
		for _, name := range def.Constants {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Engine evaluates the heuristic bank against one filing.
type Engine struct {
	defs []Definition
}

func NewEngine() *Engine {
	return &Engine{defs: Definitions()}
}

// EvaluateAll runs every heuristic and returns results in bank order. A
// heuristic that cannot run is reported skipped; evaluation errors never
// abort the run.
func (e *Engine) EvaluateAll(ctx context.Context, in Input) ([]model.HeuristicResult, error) {
	results := make([]model.HeuristicResult, len(e.defs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i, def := range e.defs {
		i, def := i, def
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := e.evaluate(def, in)
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) evaluate(def Definition, in Input) model.HeuristicResult {
	if err := in.Constants.Validate(def.Constants); err != nil {
		return model.Skipped(def.ID, def.Item, err.Error())
	}
	r, err := def.Evaluate(in)
	if err != nil {
		return model.Skipped(def.ID, def.Item, err.Error())
	}
	r.ID = def.ID
	r.Item = def.Item
	return r
}

// finding assembles a computed result, classifying severity from the
// relative deviation of claimed over expected.
func finding(in Input, id string, expected, claimed float64, unit, rationale string) model.HeuristicResult {
	dev := deviationPct(claimed, expected)
	r := model.HeuristicResult{
		Status:       model.StatusComputed,
		Expected:     round2(expected),
		Claimed:      round2(claimed),
		DeviationPct: round2(dev),
		Unit:         unit,
		Rationale:    rationale,
		Severity:     in.Bands.For(id).Classify(dev),
	}
	if claimed > expected {
		r.Excess = round2(claimed - expected)
	}
	return r
}

func deviationPct(claimed, expected float64) float64 {
	if expected == 0 {
		if claimed == 0 {
			return 0
		}
		return math.Copysign(100, claimed)
	}
	return (claimed - expected) / math.Abs(expected) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// claimedValue reads the claimed amount for a line item, failing with a
// skip-worthy error when the item was not mapped.
func claimedValue(in Input, li model.LineItem) (float64, error) {
	rec, ok := in.Data.Item(li)
	if !ok {
		return 0, fmt.Errorf("line item %s not mapped", li)
	}
	return rec.Claimed, nil
}

// scheduleValue reads one named supporting value, failing when absent.
func scheduleValue(in Input, s model.Schedule, name string) (float64, error) {
	v, ok := in.Data.ScheduleValue(s, name)
	if !ok {
		return 0, fmt.Errorf("schedule %s: value %q unavailable", s, name)
	}
	return v, nil
}

func mustConst(in Input, name string) float64 {
	// Definitions list their constants and the engine validates them
	// before Evaluate runs, so a miss here is a programming error.
	v, err := in.Constants.Value(name)
	if err != nil {
		panic(err)
	}
	return v
}
