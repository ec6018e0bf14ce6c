package locate

import (
	"regexp"
	"strings"

	"github.com/regulint/trueup/internal/document"
	"github.com/regulint/trueup/internal/model"
)

// Fingerprint describes how one table announces itself on a page. Most
// tables carry a printed number ("Table 5.27"); the ARR summary does not
// and is matched by the density of its line-item captions instead.
type Fingerprint struct {
	ID      model.TableID
	Numbers []string // printed table numbers, matched as "Table <n>"

	// TitleAny narrows a number match: at least one cue must appear on the
	// heading row or the row below it. Empty means the number is enough.
	TitleAny []string

	// Keywords drive content-only matching when Numbers is empty. A page
	// matches when at least MinKeywords of them appear.
	Keywords    []string
	MinKeywords int

	// InChapter restricts the search to the generation chapter span.
	InChapter bool
}

// numberOnly tables print per-SBU variants of the same schedule elsewhere
// in the petition, so every fingerprint here is chapter-agnostic except the
// content-matched ARR summary, which exists once per SBU.
func Fingerprints() []Fingerprint {
	return []Fingerprint{
		{
			ID:        model.TableARRSummary,
			InChapter: true,
			Keywords: []string{
				"return on equity",
				"depreciation",
				"interest and finance charges",
				"cost of fuel",
				"o&m expenses",
				"operation and maintenance",
				"interest on working capital",
				"master trust",
				"non-tariff income",
				"intangible assets",
				"other expenses",
				"exceptional items",
				"aggregate revenue requirement",
			},
			MinKeywords: 7,
		},
		{ID: model.TableFuelStations, Numbers: []string{"G9", "G-9"}, TitleAny: []string{"fuel"}},
		{ID: model.TableIFCSBUG, Numbers: []string{"G10", "G-10"}, TitleAny: []string{"interest", "finance"}},
		{ID: model.TableIFCSummary, Numbers: []string{"5.1"}, TitleAny: []string{"interest", "finance"}},
		{ID: model.TableLoanSummary, Numbers: []string{"5.3"}, TitleAny: []string{"loan"}},
		{ID: model.TableGFABySBU, Numbers: []string{"5.7"}, TitleAny: []string{"gross fixed assets", "gfa"}},
		{ID: model.TableGFAGenON, Numbers: []string{"5.8"}, TitleAny: []string{"gross fixed assets", "gfa", "generation"}},
		{ID: model.TableMTBondInt, Numbers: []string{"5.17"}, TitleAny: []string{"bond", "master trust"}},
		{ID: model.TableIFCDetail, Numbers: []string{"5.22"}, TitleAny: []string{"interest", "finance"}},
		{ID: model.TableDepSchedule, Numbers: []string{"5.27"}, TitleAny: []string{"depreciation"}},
		{ID: model.TableLandValues, Numbers: []string{"5.28"}, TitleAny: []string{"land"}},
		{ID: model.TableGrants, Numbers: []string{"5.29"}, TitleAny: []string{"grant", "contribution"}},
		{ID: model.TableOMSummary, Numbers: []string{"5.37"}, TitleAny: []string{"o&m", "operation and maintenance"}},
		{ID: model.TableEmployeeCost, Numbers: []string{"5.38"}, TitleAny: []string{"employee"}},
		{ID: model.TableRMExpenses, Numbers: []string{"5.39"}, TitleAny: []string{"repair", "maintenance", "r&m"}},
		{ID: model.TableAGExpenses, Numbers: []string{"5.40"}, TitleAny: []string{"administrative", "general", "a&g"}},
		{ID: model.TableIntangiblesA, Numbers: []string{"5.48A", "5.48 A", "5.48(A)"}, TitleAny: []string{"intangible"}},
		{ID: model.TableIntangiblesB, Numbers: []string{"5.48B", "5.48 B", "5.48(B)"}, TitleAny: []string{"intangible"}},
		{ID: model.TableNTIAccounts, Numbers: []string{"5.49"}, TitleAny: []string{"income", "non-tariff"}},
		{ID: model.TableNTISummary, Numbers: []string{"5.51"}, TitleAny: []string{"non-tariff"}},
	}
}

// headerCues must accompany a keyword match for the ARR summary: the same
// captions appear in narrative text, but only the table has the claim
// columns alongside them.
var headerCues = []string{"approved", "actual"}

// match reports whether the page carries the fingerprinted table heading
// and returns the heading row's position when it does.
func (fp Fingerprint) match(p *document.Page, rowTolerance float64) (bool, float64) {
	if len(fp.Numbers) > 0 {
		return fp.matchNumber(p, rowTolerance)
	}
	return fp.matchContent(p)
}

func (fp Fingerprint) matchNumber(p *document.Page, rowTolerance float64) (bool, float64) {
	rows := document.ClusterRows(p.Words, rowTolerance)
	pattern := fp.numberPattern()
	for i, row := range rows {
		text := strings.ToLower(rowText(row))
		if !pattern.MatchString(text) {
			continue
		}
		if len(fp.TitleAny) == 0 || containsAny(text, fp.TitleAny) {
			return true, row[0].Y
		}
		// Some schedules break the title onto the next row.
		if i+1 < len(rows) && containsAny(strings.ToLower(rowText(rows[i+1])), fp.TitleAny) {
			return true, row[0].Y
		}
	}
	return false, 0
}

func (fp Fingerprint) matchContent(p *document.Page) (bool, float64) {
	text := strings.ToLower(p.Text)
	hits := 0
	for _, kw := range fp.Keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	if hits < fp.MinKeywords {
		return false, 0
	}
	for _, cue := range headerCues {
		if !strings.Contains(text, cue) {
			return false, 0
		}
	}
	rows := document.ClusterRows(p.Words, 3.0)
	if len(rows) == 0 {
		return false, 0
	}
	return true, rows[0][0].Y
}

func (fp Fingerprint) numberPattern() *regexp.Regexp {
	alts := make([]string, len(fp.Numbers))
	for i, n := range fp.Numbers {
		alts[i] = regexp.QuoteMeta(strings.ToLower(n))
	}
	return regexp.MustCompile(`table\s*(?:no\.?\s*)?[-:]?\s*(?:` + strings.Join(alts, "|") + `)\b`)
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

func rowText(row []document.Word) string {
	parts := make([]string, len(row))
	for i, w := range row {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}
