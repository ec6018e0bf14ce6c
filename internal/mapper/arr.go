// Package mapper turns raw table grids into canonical records. It owns all
// knowledge of which caption means which line item and which schedule row
// feeds which named value.
package mapper

import (
	"fmt"
	"strings"

	"github.com/regulint/trueup/internal/model"
)

// captionSpec matches an ARR summary row to a line item. Match order
// matters: more specific captions are listed first so "depreciation" does
// not swallow rows that belong to intangibles.
type captionSpec struct {
	item    model.LineItem
	any     []string
	mustNot []string
}

var arrCaptions = []captionSpec{
	{item: model.ItemIntangibles, any: []string{"intangible"}},
	{item: model.ItemMasterTrust, any: []string{"master trust"}},
	{item: model.ItemROE, any: []string{"return on equity"}},
	{item: model.ItemDepreciation, any: []string{"depreciation"}, mustNot: []string{"intangible"}},
	{item: model.ItemFuel, any: []string{"cost of fuel", "fuel cost", "generation of electricity"}},
	{item: model.ItemOM, any: []string{"o&m expenses", "operation and maintenance"}},
	{item: model.ItemIFC, any: []string{"interest and finance"}, mustNot: []string{"master trust"}},
	{item: model.ItemNTI, any: []string{"non-tariff income", "non tariff income"}},
	{item: model.ItemOtherExp, any: []string{"other expenses"}},
	{item: model.ItemExceptional, any: []string{"exceptional"}},
}

// arrColumns maps header cues to the four financial columns.
type arrColumns struct {
	approved   int
	actuals    int
	claimed    int
	difference int
}

// MapARR extracts the ten line-item rows from the ARR summary grid.
// Items whose row cannot be found, or whose row holds fewer than two
// usable values, come back skipped rather than failing the whole table.
func MapARR(t *model.RawTable) (map[model.LineItem]*model.LineItemRecord, error) {
	cols, headerEnd, err := discoverColumns(t)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", t.ID, err)
	}

	items := make(map[model.LineItem]*model.LineItemRecord, len(arrCaptions))
	claimed := make(map[int]bool) // rows already assigned to an item
	for _, spec := range arrCaptions {
		rec := &model.LineItemRecord{
			Item:       spec.item,
			Unit:       t.Unit,
			Confidence: model.ConfidenceExact,
			Status:     model.StatusComputed,
		}
		ri := findRow(t, headerEnd, spec, claimed)
		if ri < 0 {
			rec.Status = model.StatusSkipped
			rec.SkipReason = fmt.Sprintf("row not found in table %s", t.ID)
			items[spec.item] = rec
			continue
		}
		claimed[ri] = true

		row := readFinancialRow(t.Rows[ri], cols)
		if countValues(row) < 2 {
			rec.Status = model.StatusSkipped
			rec.SkipReason = fmt.Sprintf("row %q has fewer than two numeric values", truncate(t.RowText(ri), 60)) +
				mismatchNote(t.Rows[ri], cols)
			items[spec.item] = rec
			continue
		}
		rec.Row = row
		if row.Claimed != nil {
			rec.Claimed = *row.Claimed
		} else if row.Actuals != nil {
			rec.Claimed = *row.Actuals
			rec.Confidence = model.ConfidenceFallback
		} else {
			rec.Status = model.StatusSkipped
			rec.SkipReason = "no truing-up or actuals value in row" + mismatchNote(t.Rows[ri], cols)
		}
		items[spec.item] = rec
	}
	return items, nil
}

// discoverColumns finds the header and resolves which physical column
// carries each financial value. Filings reorder and retitle these columns
// between years, so indices are never hardcoded. Headers printed across
// stacked physical rows are re-flowed into one logical row first.
func discoverColumns(t *model.RawTable) (arrColumns, int, error) {
	cols := arrColumns{approved: -1, actuals: -1, claimed: -1, difference: -1}
	limit := len(t.Rows)
	if limit > 8 {
		limit = 8
	}
	for ri := 0; ri < limit; ri++ {
		labels, end := headerLabels(t, ri, limit)
		joined := strings.ToLower(strings.Join(labels, " "))
		if !strings.Contains(joined, "approved") && !strings.Contains(joined, "truing") {
			continue
		}
		for ci, label := range labels {
			label = strings.ToLower(label)
			switch {
			case strings.Contains(label, "approved"):
				cols.approved = ci
			case strings.Contains(label, "truing") || strings.Contains(label, "sought"):
				cols.claimed = ci
			case strings.Contains(label, "actual"):
				cols.actuals = ci
			case strings.Contains(label, "difference") || strings.Contains(label, "deviation"):
				cols.difference = ci
			}
		}
		if cols.claimed >= 0 || cols.actuals >= 0 {
			return cols, end, nil
		}
	}
	return cols, 0, fmt.Errorf("no header row with claim columns in first %d rows", limit)
}

// headerLabels merges up to three stacked header rows, column by column,
// into one logical label row. The first row carrying parsed values ends
// the header zone.
func headerLabels(t *model.RawTable, start, limit int) ([]string, int) {
	labels := make([]string, len(t.Rows[start]))
	end := start
	for ri := start; ri < limit && ri < start+3; ri++ {
		row := t.Rows[ri]
		if rowHasValues(row) {
			break
		}
		for ci, cell := range row {
			if ci >= len(labels) || cell.Text == "" {
				continue
			}
			if labels[ci] != "" {
				labels[ci] += " "
			}
			labels[ci] += cell.Text
		}
		end = ri + 1
	}
	return labels, end
}

func rowHasValues(row []model.RawCell) bool {
	for _, c := range row {
		if c.HasValue {
			return true
		}
	}
	return false
}

func findRow(t *model.RawTable, start int, spec captionSpec, taken map[int]bool) int {
	for ri := start; ri < len(t.Rows); ri++ {
		if taken[ri] {
			continue
		}
		text := strings.ToLower(t.RowText(ri))
		if !containsAny(text, spec.any) || containsAny(text, spec.mustNot) {
			continue
		}
		return ri
	}
	return -1
}

func readFinancialRow(row []model.RawCell, cols arrColumns) model.FinancialRow {
	pick := func(ci int) *float64 {
		if ci < 0 || ci >= len(row) || !row[ci].HasValue {
			return nil
		}
		v := row[ci].Value
		return &v
	}
	return model.FinancialRow{
		Approved:   pick(cols.approved),
		Actuals:    pick(cols.actuals),
		Claimed:    pick(cols.claimed),
		Difference: pick(cols.difference),
	}
}

func countValues(r model.FinancialRow) int {
	n := 0
	for _, p := range []*float64{r.Approved, r.Actuals, r.Claimed, r.Difference} {
		if p != nil {
			n++
		}
	}
	return n
}

// mismatchNote reports the first flagged cell among the financial columns
// of a row, so skip reasons name the unreadable text.
func mismatchNote(row []model.RawCell, cols arrColumns) string {
	for _, ci := range []int{cols.claimed, cols.actuals, cols.approved, cols.difference} {
		if ci >= 0 && ci < len(row) && row[ci].Mismatch {
			return fmt.Sprintf("; unreadable value %q", row[ci].Text)
		}
	}
	return ""
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
