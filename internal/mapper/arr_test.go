package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regulint/trueup/internal/extract"
	"github.com/regulint/trueup/internal/model"
)

func row(cells ...string) []model.RawCell {
	out := make([]model.RawCell, len(cells))
	for i, s := range cells {
		out[i] = extract.Classify(s, "")
	}
	return out
}

func arrTable() *model.RawTable {
	return &model.RawTable{
		ID:   model.TableARRSummary,
		Unit: "crore",
		Rows: [][]model.RawCell{
			row("Particulars", "ARR Approved", "Actuals", "Truing up sought", "Difference"),
			row("Return on Equity", "116.38", "120.00", "120.00", "3.62"),
			row("Depreciation", "180.20", "190.00", "190.00", "9.80"),
			row("Cost of Fuel", "95.00", "92.00", "92.00", "(3.00)"),
			row("O&M Expenses", "178.16", "185.00", "185.00", "6.84"),
			row("Interest and Finance Charges", "210.00", "230.00", "230.00", "20.00"),
			row("Interest on Master Trust Bonds", "28.59", "30.00", "30.00", "1.41"),
			row("Non-Tariff Income", "11.35", "9.00", "9.00", "(2.35)"),
			row("Intangible Assets written off", "-", "2.50", "2.50", "2.50"),
			row("Other Expenses", "-", "-", "-", "-"),
			row("Exceptional Items", "-", "1.00", "", "1.00"),
		},
	}
}

func TestMapARR(t *testing.T) {
	items, err := MapARR(arrTable())
	require.NoError(t, err)
	require.Len(t, items, len(model.LineItemOrder))

	roe := items[model.ItemROE]
	require.Equal(t, model.StatusComputed, roe.Status)
	assert.Equal(t, 120.00, roe.Claimed)
	assert.Equal(t, model.ConfidenceExact, roe.Confidence)
	require.NotNil(t, roe.Row.Approved)
	assert.Equal(t, 116.38, *roe.Row.Approved)
	require.NotNil(t, roe.Row.Difference)
	assert.Equal(t, 3.62, *roe.Row.Difference)

	fuel := items[model.ItemFuel]
	require.NotNil(t, fuel.Row.Difference)
	assert.Equal(t, -3.00, *fuel.Row.Difference, "parenthesized difference reads negative")

	// Depreciation must not swallow the intangibles row.
	assert.Equal(t, 190.00, items[model.ItemDepreciation].Claimed)
	assert.Equal(t, 2.50, items[model.ItemIntangibles].Claimed)

	// All placeholders: too few values to trust.
	other := items[model.ItemOtherExp]
	assert.Equal(t, model.StatusSkipped, other.Status)
	assert.Contains(t, other.SkipReason, "fewer than two")

	// No truing column value, actuals stands in at reduced confidence.
	exc := items[model.ItemExceptional]
	require.Equal(t, model.StatusComputed, exc.Status)
	assert.Equal(t, 1.00, exc.Claimed)
	assert.Equal(t, model.ConfidenceFallback, exc.Confidence)
}

func TestMapARRNoHeader(t *testing.T) {
	table := &model.RawTable{
		ID:   model.TableARRSummary,
		Rows: [][]model.RawCell{row("just", "some", "cells")},
	}
	_, err := MapARR(table)
	assert.ErrorContains(t, err, "no header row")
}

func TestMapARRSplitHeader(t *testing.T) {
	table := &model.RawTable{
		ID:   model.TableARRSummary,
		Unit: "crore",
		Rows: [][]model.RawCell{
			row("Particulars", "ARR", "", "Truing up", "Difference"),
			row("", "Approved", "Actuals", "sought", ""),
			row("Return on Equity", "116.38", "120.00", "120.00", "3.62"),
		},
	}
	items, err := MapARR(table)
	require.NoError(t, err)

	roe := items[model.ItemROE]
	require.Equal(t, model.StatusComputed, roe.Status)
	assert.Equal(t, 120.00, roe.Claimed, "stacked header lines re-flow into one logical row")
	require.NotNil(t, roe.Row.Approved)
	assert.Equal(t, 116.38, *roe.Row.Approved)
	require.NotNil(t, roe.Row.Actuals)
	assert.Equal(t, 120.00, *roe.Row.Actuals)
}

func TestMapARRReportsUnreadableValues(t *testing.T) {
	rows := [][]model.RawCell{
		row("Particulars", "ARR Approved", "Actuals", "Truing up sought"),
		row("Return on Equity", "116.38", "12O.00", "1I9.95"),
	}
	rows[1][2] = extract.Classify("12O.00", model.CellNumeric)
	rows[1][3] = extract.Classify("1I9.95", model.CellNumeric)
	table := &model.RawTable{ID: model.TableARRSummary, Unit: "crore", Rows: rows}

	items, err := MapARR(table)
	require.NoError(t, err)

	roe := items[model.ItemROE]
	require.Equal(t, model.StatusSkipped, roe.Status)
	assert.Contains(t, roe.SkipReason, "unreadable value")
	assert.Contains(t, roe.SkipReason, "1I9.95", "the flagged claim cell is named")
}

func TestMapARRReorderedColumns(t *testing.T) {
	table := &model.RawTable{
		ID:   model.TableARRSummary,
		Unit: "crore",
		Rows: [][]model.RawCell{
			row("Particulars", "Truing up sought", "ARR Approved", "Actuals"),
			row("Return on Equity", "120.00", "116.38", "118.00"),
		},
	}
	items, err := MapARR(table)
	require.NoError(t, err)

	roe := items[model.ItemROE]
	require.Equal(t, model.StatusComputed, roe.Status)
	assert.Equal(t, 120.00, roe.Claimed, "columns are resolved by header text, not position")
	require.NotNil(t, roe.Row.Approved)
	assert.Equal(t, 116.38, *roe.Row.Approved)
}
