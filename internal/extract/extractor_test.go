package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regulint/trueup/internal/document"
	"github.com/regulint/trueup/internal/locate"
	"github.com/regulint/trueup/internal/model"
)

type fakeReader struct {
	pages []*document.Page
}

func (f *fakeReader) NumPages() int { return len(f.pages) }

func (f *fakeReader) Page(n int) (*document.Page, error) { return f.pages[n-1], nil }

func (f *fakeReader) Close() error { return nil }

// w places a word with an explicit width so that intra-cell gaps stay
// under the merge tolerance and inter-column gaps stay over it.
func w(text string, x, y, width float64) document.Word {
	return document.Word{Text: text, X: x, Y: y, W: width}
}

func depPage() *document.Page {
	words := []document.Word{
		// heading row
		w("Table", 50, 700, 28), w("5.27", 82, 700, 22), w(":", 108, 700, 4),
		w("Depreciation", 116, 700, 60), w("(Rs.", 180, 700, 20), w("in", 204, 700, 10), w("Crore)", 218, 700, 30),
		// header row
		w("Particulars", 50, 680, 55), w("Opening", 300, 680, 40), w("Depreciation", 400, 680, 60),
		// data rows: caption fragments sit within 6pt of each other
		w("Assets", 50, 660, 35), w("prior", 90, 660, 25), w("to", 120, 660, 10), w("01.04.2011", 134, 660, 50),
		w("1,200.00", 300, 660, 45), w("21.60", 400, 660, 30),
		w("Additions", 50, 640, 48), w("150.00", 300, 640, 35), w("3.96", 400, 640, 25),
	}
	return &document.Page{Number: 1, Words: words, Text: "Table 5.27 : Depreciation (Rs. in Crore)"}
}

func TestExtract(t *testing.T) {
	reader := &fakeReader{pages: []*document.Page{depPage()}}
	e := NewExtractor(reader, model.DefaultConfig().Extraction)

	table, err := e.Extract(context.Background(), locate.Region{
		ID: model.TableDepSchedule, StartPage: 1, EndPage: 1, TitleY: 700,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TableDepSchedule, table.ID)
	assert.Equal(t, "crore", table.Unit)
	assert.Contains(t, table.Title, "Depreciation")
	require.Len(t, table.Rows, 3, "heading row is excluded, header and data rows kept")

	require.Len(t, table.Rows[1], 3)
	caption := table.Rows[1][0]
	assert.Equal(t, "Assets prior to 01.04.2011", caption.Text)
	assert.False(t, caption.HasValue)

	opening := table.Rows[1][1]
	require.True(t, opening.HasValue)
	assert.Equal(t, 1200.00, opening.Value)

	dep := table.Rows[2][2]
	require.True(t, dep.HasValue)
	assert.Equal(t, 3.96, dep.Value)
}

func TestExtractDropsContinuationHeader(t *testing.T) {
	page2 := &document.Page{Number: 2, Words: []document.Word{
		w("Particulars", 50, 700, 55), w("Approved", 300, 700, 45), w("Actuals", 400, 700, 38),
		w("Closing", 50, 680, 38), w("Balance", 92, 680, 40),
		w("1,255.55", 300, 680, 45), w("1,255.55", 400, 680, 45),
	}}
	reader := &fakeReader{pages: []*document.Page{depPage(), page2}}
	e := NewExtractor(reader, model.DefaultConfig().Extraction)

	table, err := e.Extract(context.Background(), locate.Region{
		ID: model.TableDepSchedule, StartPage: 1, EndPage: 2, TitleY: 700,
	})
	require.NoError(t, err)

	require.Len(t, table.Rows, 4, "repeated header on the continuation page is dropped")
	last := table.Rows[3]
	assert.Equal(t, "Closing Balance", last[0].Text)
	assert.Equal(t, 1255.55, last[1].Value)
}

func TestExtractFlagsGarbledValueCells(t *testing.T) {
	page := &document.Page{Number: 1, Words: []document.Word{
		w("Particulars", 50, 700, 55), w("Opening", 300, 700, 40),
		w("Land", 50, 680, 22), w("86.4O", 300, 680, 30),
		w("Buildings", 50, 660, 46), w("412.00", 300, 660, 35),
		w("Plant", 50, 640, 26), w("913.25", 300, 640, 35),
		w("Vehicles", 50, 620, 40), w("18.00", 300, 620, 28),
	}}
	reader := &fakeReader{pages: []*document.Page{page}}
	e := NewExtractor(reader, model.DefaultConfig().Extraction)

	table, err := e.Extract(context.Background(), locate.Region{
		ID: model.TableLandValues, StartPage: 1, EndPage: 1,
	})
	require.NoError(t, err)
	require.Len(t, table.Rows, 5)

	garbled := table.Rows[1][1]
	assert.False(t, garbled.HasValue)
	assert.True(t, garbled.Mismatch, "unparseable text in a value column is flagged")
	assert.Equal(t, "86.4O", garbled.Text)
	assert.False(t, table.Rows[1][0].Mismatch, "caption column is never flagged")
	assert.True(t, table.Rows[2][1].HasValue)
}

func TestExtractEmptyRegion(t *testing.T) {
	reader := &fakeReader{pages: []*document.Page{{Number: 1}}}
	e := NewExtractor(reader, model.DefaultConfig().Extraction)

	_, err := e.Extract(context.Background(), locate.Region{ID: model.TableGrants, StartPage: 1, EndPage: 1})
	assert.ErrorContains(t, err, "no cells")
}

func TestExtractHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewExtractor(&fakeReader{pages: []*document.Page{depPage()}}, model.DefaultConfig().Extraction)
	_, err := e.Extract(ctx, locate.Region{ID: model.TableDepSchedule, StartPage: 1, EndPage: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
