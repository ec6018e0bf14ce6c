// Package document wraps the PDF-reading layer behind a small interface
// returning raw text and word geometry per page. The pipeline treats PDF
// rendering as a black box; everything above this package works on Pages.
package document

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Word is a positioned text fragment on a page. Coordinates follow PDF
// conventions: origin bottom-left, Y increasing upward.
type Word struct {
	Text string
	X    float64
	Y    float64
	W    float64
}

// Page is the extracted content of one document page.
type Page struct {
	Number int // 1-based
	Text   string
	Words  []Word
}

// Reader provides page-level access to a filing.
type Reader interface {
	NumPages() int
	Page(n int) (*Page, error)
	Close() error
}

// fileReader implements Reader on top of ledongthuc/pdf with a per-page
// cache: the locator rescans pages heavily while fingerprinting, so each
// page's geometry is assembled at most once.
type fileReader struct {
	file   *os.File
	reader *pdf.Reader
	cache  *pageCache
}

// Open validates and opens a filing from a file path.
func Open(path string) (Reader, error) {
	if err := validateFile(path); err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return &fileReader{file: f, reader: r, cache: newPageCache()}, nil
}

func (d *fileReader) NumPages() int {
	return d.reader.NumPage()
}

func (d *fileReader) Page(n int) (*Page, error) {
	if n < 1 || n > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", n, d.reader.NumPage())
	}
	if p, ok := d.cache.get(n); ok {
		return p, nil
	}

	page := d.reader.Page(n)
	if page.V.IsNull() {
		empty := &Page{Number: n}
		d.cache.put(n, empty)
		return empty, nil
	}

	content := page.Content()
	words := make([]Word, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		words = append(words, Word{Text: t.S, X: t.X, Y: t.Y, W: t.W})
	}

	p := &Page{
		Number: n,
		Words:  words,
		Text:   assembleText(words),
	}
	d.cache.put(n, p)
	return p, nil
}

func (d *fileReader) Close() error {
	d.cache.flush()
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// assembleText joins word fragments into reading-order text, one line per
// Y cluster, for the text-pattern side of table fingerprinting.
func assembleText(words []Word) string {
	lines := ClusterRows(words, defaultRowTolerance)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, w := range line {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.Text)
		}
	}
	return b.String()
}

// defaultRowTolerance is the Y drift (points) tolerated inside one line
// when assembling page text. Cell extraction uses its own configured value.
const defaultRowTolerance = 3.0

// ClusterRows groups words into visual rows by Y proximity, ordered top to
// bottom, words within a row ordered left to right. Fragments produced by
// the PDF layer for one visual word stay adjacent after the sort.
func ClusterRows(words []Word, yTolerance float64) [][]Word {
	if len(words) == 0 {
		return nil
	}
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // top of page first
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]Word
	var current []Word
	currentY := 0.0
	for _, w := range sorted {
		if current == nil {
			current = []Word{w}
			currentY = w.Y
			continue
		}
		if currentY-w.Y <= yTolerance {
			current = append(current, w)
			continue
		}
		rows = append(rows, sortRow(current))
		current = []Word{w}
		currentY = w.Y
	}
	rows = append(rows, sortRow(current))
	return rows
}

func sortRow(row []Word) []Word {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	return row
}
