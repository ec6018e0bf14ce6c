package document

import (
	"fmt"
	"regexp"
	"strings"
)

// Metadata is what the opening pages of a filing reveal about it.
type Metadata struct {
	DocumentType string // "truing-up-petition" or "unknown"
	FiscalYear   string // e.g. "2024-25", empty when not detected
	Pages        int
}

var fiscalYearPattern = regexp.MustCompile(`(?i)(?:FY\s*|financial year\s*|year\s*)?(20\d{2})\s*[-–]\s*(\d{2,4})`)

// Sniff inspects the first few pages for the petition type and fiscal year.
// Detection failure is not an error; downstream consumers treat unknown
// metadata as a degraded-confidence signal, not a fatal one.
func Sniff(r Reader, maxPages int) (Metadata, error) {
	md := Metadata{DocumentType: "unknown", Pages: r.NumPages()}
	if maxPages > r.NumPages() {
		maxPages = r.NumPages()
	}
	for n := 1; n <= maxPages; n++ {
		p, err := r.Page(n)
		if err != nil {
			return md, fmt.Errorf("sniff page %d: %w", n, err)
		}
		text := strings.ToLower(p.Text)
		if md.DocumentType == "unknown" &&
			(strings.Contains(text, "truing up") || strings.Contains(text, "truing-up") || strings.Contains(text, "true up")) {
			md.DocumentType = "truing-up-petition"
		}
		if md.FiscalYear == "" {
			if m := fiscalYearPattern.FindStringSubmatch(p.Text); m != nil {
				md.FiscalYear = normalizeFiscalYear(m[1], m[2])
			}
		}
		if md.DocumentType != "unknown" && md.FiscalYear != "" {
			break
		}
	}
	return md, nil
}

// normalizeFiscalYear renders both "2024-25" and "2024-2025" as "2024-25".
func normalizeFiscalYear(start, end string) string {
	if len(end) == 4 {
		end = end[2:]
	}
	return start + "-" + end
}
