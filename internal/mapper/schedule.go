package mapper

import (
	"fmt"
	"strings"

	"github.com/regulint/trueup/internal/model"
)

// pick selects which numeric cell of a matched row becomes the field value.
type pick int

const (
	pickLast  pick = iota // rightmost numeric cell, usually the total
	pickFirst             // leftmost numeric cell
)

// fieldSpec extracts one named value from one table.
type fieldSpec struct {
	name    string
	table   model.TableID
	rowAny  []string // lowercase caption cues, any matches
	mustNot []string
	pick    pick

	// sum adds the picked cell of every matching row instead of stopping
	// at the first. Used for per-station fuel totals and NTI exclusions.
	sum bool

	optional bool
}

// scheduleSpec maps one canonical schedule to its fields. A schedule may
// read from several physical tables; Source names the primary one.
type scheduleSpec struct {
	schedule model.Schedule
	source   model.TableID
	fields   []fieldSpec
}

func scheduleSpecs() []scheduleSpec {
	return []scheduleSpec{
		{
			schedule: model.ScheduleDepreciation,
			source:   model.TableDepSchedule,
			fields: []fieldSpec{
				// First numeric cell is the opening GFA column; the
				// depreciation amount itself sits further right.
				{name: "gfa_pre_2011", table: model.TableDepSchedule, rowAny: []string{"prior to 01.04.2011", "upto 31.03.2011", "before 2011"}, pick: pickFirst},
				{name: "gfa_post_2011", table: model.TableDepSchedule, rowAny: []string{"after 01.04.2011", "from 01.04.2011", "after 2011"}, pick: pickFirst},
				{name: "additions", table: model.TableDepSchedule, rowAny: []string{"additions during", "additions"}, mustNot: []string{"deletion"}, pick: pickFirst},
				{name: "land", table: model.TableDepSchedule, rowAny: []string{"land"}, pick: pickFirst, optional: true},
				{name: "grants", table: model.TableDepSchedule, rowAny: []string{"grant", "consumer contribution"}, pick: pickFirst, optional: true},
			},
		},
		{
			schedule: model.ScheduleLandValues,
			source:   model.TableLandValues,
			fields: []fieldSpec{
				{name: "land", table: model.TableLandValues, rowAny: []string{"sbu-g", "generation", "total"}},
			},
		},
		{
			schedule: model.ScheduleGrants,
			source:   model.TableGrants,
			fields: []fieldSpec{
				{name: "grants", table: model.TableGrants, rowAny: []string{"sbu-g", "generation", "total"}},
			},
		},
		{
			schedule: model.ScheduleGFAAdditions,
			source:   model.TableGFABySBU,
			fields: []fieldSpec{
				{name: "gfa_opening", table: model.TableGFABySBU, rowAny: []string{"sbu-g", "generation"}, pick: pickFirst},
				{name: "gfa_closing", table: model.TableGFABySBU, rowAny: []string{"sbu-g", "generation"}, optional: true},
				{name: "gfa_opening_gen", table: model.TableGFAGenON, rowAny: []string{"opening", "total"}, pick: pickFirst, optional: true},
			},
		},
		{
			schedule: model.ScheduleFuelDetail,
			source:   model.TableFuelStations,
			fields: []fieldSpec{
				{name: "fuel_total", table: model.TableFuelStations, rowAny: []string{"total"}},
				{name: "fuel_station_sum", table: model.TableFuelStations, rowAny: []string{"station", "ccp", "dgp", "kdpp", "bdpp"}, sum: true, optional: true},
			},
		},
		{
			schedule: model.ScheduleOMDetail,
			source:   model.TableOMSummary,
			fields: []fieldSpec{
				{name: "om_actual_total", table: model.TableOMSummary, rowAny: []string{"total", "net o&m"}},
				{name: "employee_actual", table: model.TableEmployeeCost, rowAny: []string{"total", "net employee"}},
				{name: "rm_actual", table: model.TableRMExpenses, rowAny: []string{"total"}},
				{name: "ag_actual", table: model.TableAGExpenses, rowAny: []string{"total"}},
			},
		},
		{
			schedule: model.ScheduleIFCDetail,
			source:   model.TableIFCSBUG,
			fields: []fieldSpec{
				{name: "ltl_claimed", table: model.TableIFCSBUG, rowAny: []string{"long term loan", "long-term loan", "term loans"}},
				{name: "wc_claimed", table: model.TableIFCSBUG, rowAny: []string{"working capital"}},
				{name: "gpf_claimed", table: model.TableIFCSBUG, rowAny: []string{"gpf", "provident fund"}},
				{name: "bank_charges", table: model.TableIFCSBUG, rowAny: []string{"bank charges", "other charges"}, optional: true},
				{name: "gbi", table: model.TableIFCSBUG, rowAny: []string{"guarantee", "gbi"}, optional: true},
				{name: "loan_opening", table: model.TableLoanSummary, rowAny: []string{"opening balance", "opening"}},
				{name: "loan_additions", table: model.TableLoanSummary, rowAny: []string{"additions", "drawal", "availed"}, optional: true},
				{name: "loan_repayments", table: model.TableLoanSummary, rowAny: []string{"repayment"}, optional: true},
				{name: "loan_closing", table: model.TableLoanSummary, rowAny: []string{"closing balance", "closing"}},
			},
		},
		{
			schedule: model.ScheduleMasterTrust,
			source:   model.TableMTBondInt,
			fields: []fieldSpec{
				{name: "mtbond_claimed", table: model.TableMTBondInt, rowAny: []string{"sbu-g", "generation"}, optional: true},
				{name: "mtbond_company_total", table: model.TableMTBondInt, rowAny: []string{"total", "interest on bonds", "bond"}},
			},
		},
		{
			schedule: model.ScheduleNTIDetail,
			source:   model.TableNTIAccounts,
			fields: []fieldSpec{
				{name: "accounts_income", table: model.TableNTIAccounts, rowAny: []string{"total"}},
				{name: "exclusions", table: model.TableNTIAccounts, rowAny: []string{"less"}, sum: true, optional: true},
				{name: "nti_claimed", table: model.TableNTISummary, rowAny: []string{"sbu-g", "generation", "total"}, optional: true},
			},
		},
		{
			schedule: model.ScheduleIntangibles,
			source:   model.TableIntangiblesA,
			fields: []fieldSpec{
				{name: "intangibles_claimed", table: model.TableIntangiblesA, rowAny: []string{"total", "intangible"}},
				{name: "intangibles_gross", table: model.TableIntangiblesB, rowAny: []string{"total", "intangible"}, optional: true},
			},
		},
	}
}

// MapSchedules resolves every schedule spec against the extracted tables.
// A schedule whose primary table is missing, or whose required fields all
// fail, comes back skipped with a reason.
func MapSchedules(tables map[model.TableID]*model.RawTable) map[model.Schedule]*model.ScheduleRecord {
	out := make(map[model.Schedule]*model.ScheduleRecord)
	for _, spec := range scheduleSpecs() {
		out[spec.schedule] = mapSchedule(spec, tables)
	}
	applyFallbacks(out)
	return out
}

func mapSchedule(spec scheduleSpec, tables map[model.TableID]*model.RawTable) *model.ScheduleRecord {
	rec := &model.ScheduleRecord{
		Schedule:   spec.schedule,
		Source:     spec.source,
		Values:     make(map[string]float64),
		Confidence: model.ConfidenceExact,
		Status:     model.StatusComputed,
	}
	var missing []string
	for _, f := range spec.fields {
		t, ok := tables[f.table]
		if !ok {
			if !f.optional {
				missing = append(missing, fmt.Sprintf("%s (table %s absent)", f.name, f.table))
			}
			continue
		}
		v, ok, detail := extractField(t, f)
		if !ok {
			if !f.optional {
				if detail == "" {
					detail = fmt.Sprintf("no matching row in %s", f.table)
				}
				missing = append(missing, fmt.Sprintf("%s (%s)", f.name, detail))
			}
			continue
		}
		rec.Values[f.name] = v
	}
	if len(rec.Values) == 0 || len(missing) > 0 && len(rec.Values) < requiredCount(spec)/2 {
		rec.Status = model.StatusSkipped
		rec.SkipReason = strings.Join(missing, "; ")
		if rec.SkipReason == "" {
			rec.SkipReason = fmt.Sprintf("no values extracted from table %s", spec.source)
		}
	}
	return rec
}

func requiredCount(spec scheduleSpec) int {
	n := 0
	for _, f := range spec.fields {
		if !f.optional {
			n++
		}
	}
	return n
}

// extractField resolves one named value. The third result carries a detail
// for the miss report when a matching row held a flagged cell.
func extractField(t *model.RawTable, f fieldSpec) (float64, bool, string) {
	total, found := 0.0, false
	detail := ""
	for ri := range t.Rows {
		text := strings.ToLower(t.RowText(ri))
		if !containsAny(text, f.rowAny) || containsAny(text, f.mustNot) {
			continue
		}
		v, ok := pickCell(t.Rows[ri], f.pick)
		if !ok {
			if bad, flagged := mismatchText(t.Rows[ri]); flagged {
				detail = fmt.Sprintf("unreadable value %q in %s", bad, f.table)
			}
			continue
		}
		if !f.sum {
			return v, true, ""
		}
		total += v
		found = true
	}
	return total, found, detail
}

func mismatchText(row []model.RawCell) (string, bool) {
	for _, c := range row {
		if c.Mismatch {
			return c.Text, true
		}
	}
	return "", false
}

func pickCell(row []model.RawCell, p pick) (float64, bool) {
	if p == pickFirst {
		for _, c := range row {
			if c.HasValue {
				return c.Value, true
			}
		}
		return 0, false
	}
	for i := len(row) - 1; i >= 0; i-- {
		if row[i].HasValue {
			return row[i].Value, true
		}
	}
	return 0, false
}

// applyFallbacks fills gaps between schedules. Land and grant values live
// in their own tables in some filings and only as depreciation-schedule
// columns in others; values recovered this way are marked fallback-derived.
func applyFallbacks(schedules map[model.Schedule]*model.ScheduleRecord) {
	dep := schedules[model.ScheduleDepreciation]
	promote := func(target model.Schedule, name string) {
		rec := schedules[target]
		if rec != nil && rec.Status == model.StatusComputed {
			if _, ok := rec.Values[name]; ok {
				return
			}
		}
		v, ok := dep.Value(name)
		if !ok {
			return
		}
		schedules[target] = &model.ScheduleRecord{
			Schedule:   target,
			Source:     model.TableDepSchedule,
			Values:     map[string]float64{name: v},
			Confidence: model.ConfidenceFallback,
			Status:     model.StatusComputed,
		}
	}
	promote(model.ScheduleLandValues, "land")
	promote(model.ScheduleGrants, "grants")

	// A generation-only GFA table can stand in for the per-SBU summary.
	gfa := schedules[model.ScheduleGFAAdditions]
	if gfa.Status == model.StatusComputed {
		if _, ok := gfa.Values["gfa_opening"]; !ok {
			if v, ok := gfa.Values["gfa_opening_gen"]; ok {
				gfa.Values["gfa_opening"] = v
				gfa.Confidence = model.ConfidenceFallback
			}
		}
	}
}
