package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandsClassify(t *testing.T) {
	bands := DefaultBands()

	tests := []struct {
		name      string
		deviation float64
		want      Severity
	}{
		{"zero deviation", 0, SeverityGreen},
		{"at green boundary", 2.0, SeverityGreen},
		{"just above green", 2.01, SeverityYellow},
		{"at yellow boundary", 10.0, SeverityYellow},
		{"above yellow", 10.1, SeverityRed},
		{"large overstatement", 55.0, SeverityRed},
		{"negative within green", -1.5, SeverityGreen},
		{"negative beyond yellow", -12.0, SeverityRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bands.Classify(tt.deviation))
		})
	}
}

func TestSeverityWorse(t *testing.T) {
	assert.Equal(t, SeverityRed, SeverityGreen.Worse(SeverityRed))
	assert.Equal(t, SeverityRed, SeverityRed.Worse(SeverityYellow))
	assert.Equal(t, SeverityYellow, SeverityGreen.Worse(SeverityYellow))
	assert.Equal(t, SeverityGreen, SeverityGreen.Worse(SeverityGreen))
}

func TestBandsConfigFor(t *testing.T) {
	cfg := BandsConfig{
		Default:   DefaultBands(),
		Overrides: map[string]Bands{"ROE-01": {Green: 0.5, Yellow: 5.0}},
	}
	assert.Equal(t, Bands{Green: 0.5, Yellow: 5.0}, cfg.For("ROE-01"))
	assert.Equal(t, DefaultBands(), cfg.For("FUEL-01"))
}

func TestDatasetItem(t *testing.T) {
	d := &Dataset{Items: map[LineItem]*LineItemRecord{
		ItemROE:  {Item: ItemROE, Claimed: 120, Status: StatusComputed},
		ItemFuel: {Item: ItemFuel, Status: StatusSkipped, SkipReason: "row not found"},
	}}

	rec, ok := d.Item(ItemROE)
	assert.True(t, ok)
	assert.Equal(t, 120.0, rec.Claimed)

	_, ok = d.Item(ItemFuel)
	assert.False(t, ok, "skipped item must not read as mapped")

	_, ok = d.Item(ItemNTI)
	assert.False(t, ok)
}
