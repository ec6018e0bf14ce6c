package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pagesReader struct {
	pages []*Page
}

func (r *pagesReader) NumPages() int { return len(r.pages) }

func (r *pagesReader) Page(n int) (*Page, error) { return r.pages[n-1], nil }

func (r *pagesReader) Close() error { return nil }

func TestSniff(t *testing.T) {
	r := &pagesReader{pages: []*Page{
		{Number: 1, Text: "Before the Electricity Regulatory Commission"},
		{Number: 2, Text: "Petition for Truing Up of Accounts for FY 2024-25"},
		{Number: 3, Text: "Chapter 1"},
	}}
	md, err := Sniff(r, 10)
	require.NoError(t, err)
	assert.Equal(t, "truing-up-petition", md.DocumentType)
	assert.Equal(t, "2024-25", md.FiscalYear)
	assert.Equal(t, 3, md.Pages)
}

func TestSniffFullYearSpelling(t *testing.T) {
	r := &pagesReader{pages: []*Page{
		{Number: 1, Text: "True up petition for the financial year 2024 - 2025"},
	}}
	md, err := Sniff(r, 5)
	require.NoError(t, err)
	assert.Equal(t, "truing-up-petition", md.DocumentType)
	assert.Equal(t, "2024-25", md.FiscalYear)
}

func TestSniffUnknown(t *testing.T) {
	r := &pagesReader{pages: []*Page{
		{Number: 1, Text: "Annual report of the company"},
	}}
	md, err := Sniff(r, 5)
	require.NoError(t, err)
	assert.Equal(t, "unknown", md.DocumentType)
	assert.Empty(t, md.FiscalYear)
}
