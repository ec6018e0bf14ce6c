// Package extract turns located page regions into normalized table grids.
// It knows nothing about what the tables mean; classification of cells and
// monetary-unit normalization is as far as it goes.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/regulint/trueup/internal/model"
)

// placeholders are cell texts that mean "no value", as printed in filings.
var placeholders = map[string]bool{
	"": true, "-": true, "--": true, "—": true, "–": true,
	"na": true, "n.a.": true, "n/a": true, "nil": true, "..": true,
}

var currencyPrefix = regexp.MustCompile(`(?i)^(rs\.?|inr|₹)\s*`)

// ParseNumber parses a printed financial value. Accountancy conventions
// apply: thousands separators, parenthesized negatives, currency prefixes
// and a trailing percent sign. The second result is false for placeholder
// cells and non-numeric text.
func ParseNumber(s string) (float64, model.CellKind, bool) {
	s = strings.TrimSpace(s)
	if placeholders[strings.ToLower(s)] {
		return 0, model.CellText, false
	}

	kind := model.CellNumeric
	if stripped := currencyPrefix.ReplaceAllString(s, ""); stripped != s {
		s = strings.TrimSpace(stripped)
		kind = model.CellCurrency
	}
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		kind = model.CellPercent
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, model.CellText, false
	}
	if negative {
		v = -v
	}
	return v, kind, true
}

// Classify builds a RawCell from raw text, flagging cells whose content
// fails the expected kind.
func Classify(text string, expect model.CellKind) model.RawCell {
	cell := model.RawCell{Text: strings.TrimSpace(text)}
	v, kind, ok := ParseNumber(cell.Text)
	if ok {
		cell.Kind = kind
		cell.Value = v
		cell.HasValue = true
	} else {
		cell.Kind = model.CellText
	}
	if expect != "" && expect != model.CellText && !cell.HasValue && !placeholders[strings.ToLower(cell.Text)] {
		cell.Mismatch = true
	}
	return cell
}

var unitPatterns = []struct {
	re     *regexp.Regexp
	factor float64
}{
	{regexp.MustCompile(`(?i)rs\.?\s*(?:in\s*)?crore`), 1},
	{regexp.MustCompile(`(?i)₹\s*(?:in\s*)?crore`), 1},
	{regexp.MustCompile(`(?i)rs\.?\s*(?:in\s*)?lakh`), 0.01},
	{regexp.MustCompile(`(?i)₹\s*(?:in\s*)?lakh`), 0.01},
}

// DetectUnit scans heading text for a monetary-unit annotation and returns
// the factor converting table values to crore. Tables without an annotation
// are assumed to already be in crore, the petition's dominant unit.
func DetectUnit(text string) (string, float64) {
	for _, up := range unitPatterns {
		if up.re.MatchString(text) {
			return "crore", up.factor
		}
	}
	return "crore", 1
}
