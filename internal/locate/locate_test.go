package locate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regulint/trueup/internal/document"
	"github.com/regulint/trueup/internal/model"
)

type fakeReader struct {
	pages []*document.Page
}

func (f *fakeReader) NumPages() int { return len(f.pages) }

func (f *fakeReader) Page(n int) (*document.Page, error) { return f.pages[n-1], nil }

func (f *fakeReader) Close() error { return nil }

// page lays lines out top to bottom with 20pt spacing, tokens left to
// right, mimicking what the PDF layer produces.
func page(num int, lines ...string) *document.Page {
	var words []document.Word
	for i, line := range lines {
		y := 800 - float64(i)*20
		x := 50.0
		for _, tok := range strings.Fields(line) {
			w := float64(len(tok)) * 5
			words = append(words, document.Word{Text: tok, X: x, Y: y, W: w})
			x += w + 4
		}
	}
	return &document.Page{Number: num, Text: strings.Join(lines, "\n"), Words: words}
}

func petitionReader() *fakeReader {
	return &fakeReader{pages: []*document.Page{
		page(1,
			"CHAPTER 1 Introduction",
			"This petition seeks truing up of accounts for FY 2024-25.",
		),
		page(2,
			"CHAPTER 2 Truing up of SBU-G",
			"The generation business unit submits its revenue requirement.",
		),
		page(3,
			"ARR for SBU-G Approved Actuals Truing up Difference",
			"Return on Equity 116.38 120.00 120.00 3.62",
			"Depreciation 180.20 190.00 190.00 9.80",
			"Cost of Fuel 95.00 92.00 92.00 (3.00)",
			"O&M Expenses 178.16 185.00 185.00 6.84",
			"Interest and Finance Charges 210.00 230.00 230.00 20.00",
			"Interest on Master Trust Bonds 28.59 30.00 30.00 1.41",
			"Non-Tariff Income 11.35 9.00 9.00 (2.35)",
			"Intangible Assets - 2.50 2.50 2.50",
			"Other Expenses - 5.00 5.00 5.00",
			"Exceptional Items - 1.00 1.00 1.00",
			"Aggregate Revenue Requirement 808.33 864.50 864.50 56.17",
		),
		page(4,
			"Table 5.27 : Depreciation Schedule for SBU-G",
			"Assets prior to 01.04.2011 1200.00 21.60",
			"Assets after 01.04.2011 2400.00 126.72",
			"Additions during the year 150.00 3.96",
		),
	}}
}

func TestFindGenerationChapter(t *testing.T) {
	ch, err := FindGenerationChapter(petitionReader())
	require.NoError(t, err)
	assert.Equal(t, 2, ch.Number)
	assert.Equal(t, 2, ch.StartPage)
	assert.Equal(t, 4, ch.EndPage, "last chapter runs to the final page")
}

func TestFindGenerationChapterSkipsTOC(t *testing.T) {
	r := &fakeReader{pages: []*document.Page{
		page(1,
			"CHAPTER 1 Introduction",
			"CHAPTER 2 Truing up of SBU-G",
			"CHAPTER 3 Transmission",
		),
		page(2, "CHAPTER 2 Truing up of SBU-G", "content"),
	}}
	ch, err := FindGenerationChapter(r)
	require.NoError(t, err)
	assert.Equal(t, 2, ch.StartPage, "table of contents page must not count as a heading")
}

func TestFindGenerationChapterNoHeadings(t *testing.T) {
	r := &fakeReader{pages: []*document.Page{page(1, "just text")}}
	_, err := FindGenerationChapter(r)
	assert.ErrorContains(t, err, "no chapter headings")
}

func TestLocateAll(t *testing.T) {
	r := petitionReader()
	ch, err := FindGenerationChapter(r)
	require.NoError(t, err)

	locator := NewLocator(r, model.DefaultConfig().Extraction)
	found, missing, err := locator.LocateAll(context.Background(), ch, Fingerprints())
	require.NoError(t, err)

	arr, ok := found[model.TableARRSummary]
	require.True(t, ok, "content fingerprint must find the summary table")
	assert.Equal(t, 3, arr.StartPage)
	assert.Equal(t, 3, arr.EndPage, "next page has its own heading, no continuation")

	dep, ok := found[model.TableDepSchedule]
	require.True(t, ok)
	assert.Equal(t, 4, dep.StartPage)
	assert.Greater(t, dep.TitleY, 0.0)

	assert.Len(t, missing, len(Fingerprints())-2)
	assert.NotContains(t, missing, model.TableARRSummary)
}

func TestLocateAllHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := petitionReader()
	locator := NewLocator(r, model.DefaultConfig().Extraction)
	_, _, err := locator.LocateAll(ctx, Chapter{StartPage: 1, EndPage: 4}, Fingerprints())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestContinuationStitching(t *testing.T) {
	r := &fakeReader{pages: []*document.Page{
		page(1,
			"Table 5.3 : Loan Summary",
			"Opening Balance 1273.68",
			"Additions 278.14",
		),
		page(2,
			"Repayments 296.27 15.00 20.00",
			"Closing Balance 1255.55 18.00 25.00",
			"Weighted Average 8.84 9.00 9.10",
		),
		page(3,
			"Table 5.7 : Gross Fixed Assets by SBU",
			"SBU-G 6315.00 6465.00",
		),
	}}
	locator := NewLocator(r, model.DefaultConfig().Extraction)
	found, _, err := locator.LocateAll(context.Background(), Chapter{StartPage: 1, EndPage: 3}, Fingerprints())
	require.NoError(t, err)

	loans := found[model.TableLoanSummary]
	assert.Equal(t, 1, loans.StartPage)
	assert.Equal(t, 2, loans.EndPage, "numeric-dense page without a heading continues the table")

	gfa := found[model.TableGFABySBU]
	assert.Equal(t, 3, gfa.StartPage)
	assert.Equal(t, 3, gfa.EndPage)
}

func TestParseChapterNumber(t *testing.T) {
	assert.Equal(t, 4, parseChapterNumber("4"))
	assert.Equal(t, 12, parseChapterNumber("12"))
	assert.Equal(t, 4, parseChapterNumber("IV"))
	assert.Equal(t, 9, parseChapterNumber("ix"))
	assert.Equal(t, 0, parseChapterNumber("??"))
}
