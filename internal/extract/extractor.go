package extract

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/regulint/trueup/internal/document"
	"github.com/regulint/trueup/internal/locate"
	"github.com/regulint/trueup/internal/model"
)

// Extractor converts located regions into RawTable grids.
type Extractor struct {
	reader document.Reader
	cfg    model.ExtractionConfig
}

func NewExtractor(r document.Reader, cfg model.ExtractionConfig) *Extractor {
	return &Extractor{reader: r, cfg: cfg}
}

// Extract builds the grid for one table region. Rows above the heading on
// the first page and repeated headers on continuation pages are dropped;
// everything else is kept, including rows the mapper will not use.
func (e *Extractor) Extract(ctx context.Context, region locate.Region) (*model.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cells []cellBox
	var headingText string
	for n := region.StartPage; n <= region.EndPage; n++ {
		p, err := e.reader.Page(n)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", n, err)
		}
		words := p.Words
		if n == region.StartPage && region.TitleY > 0 {
			words = below(words, region.TitleY)
			headingText = heading(p, region.TitleY, e.cfg.RowTolerance)
		}
		rows := document.ClusterRows(words, e.cfg.RowTolerance)
		if n > region.StartPage {
			rows = dropRepeatedHeader(rows)
		}
		for ri, row := range rows {
			for _, c := range mergeCells(row, e.cfg.ColumnTolerance) {
				c.page = n
				c.row = ri
				cells = append(cells, c)
			}
		}
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("table %s: region %d-%d yielded no cells", region.ID, region.StartPage, region.EndPage)
	}

	stops := columnStops(cells, e.cfg.ColumnTolerance)
	grid := buildGrid(cells, stops)
	flagMismatches(grid)

	unit, factor := DetectUnit(headingText)
	if factor != 1 {
		rescale(grid, factor)
	}
	return &model.RawTable{
		ID:        region.ID,
		Title:     headingText,
		StartPage: region.StartPage,
		EndPage:   region.EndPage,
		Unit:      unit,
		Rows:      grid,
	}, nil
}

// cellBox is a merged run of adjacent words: one visual cell.
type cellBox struct {
	text string
	x    float64
	y    float64
	page int
	row  int
}

// below keeps words strictly under the heading row. PDF Y grows upward.
func below(words []document.Word, titleY float64) []document.Word {
	out := words[:0:0]
	for _, w := range words {
		if w.Y < titleY-1 {
			out = append(out, w)
		}
	}
	return out
}

func heading(p *document.Page, titleY, rowTolerance float64) string {
	for _, row := range document.ClusterRows(p.Words, rowTolerance) {
		if row[0].Y >= titleY-rowTolerance && row[0].Y <= titleY+rowTolerance {
			parts := make([]string, len(row))
			for i, w := range row {
				parts[i] = w.Text
			}
			return strings.Join(parts, " ")
		}
	}
	return ""
}

// mergeCells joins consecutive words in a row when the horizontal gap
// between them is small enough to be intra-cell spacing.
func mergeCells(row []document.Word, gap float64) []cellBox {
	var out []cellBox
	for _, w := range row {
		if len(out) > 0 {
			last := &out[len(out)-1]
			prevEnd := lastWordEnd(row, w)
			if w.X-prevEnd <= gap {
				last.text += " " + w.Text
				continue
			}
		}
		out = append(out, cellBox{text: w.Text, x: w.X, y: w.Y})
	}
	return out
}

// lastWordEnd finds the right edge of the word immediately preceding w in
// the row. Rows come pre-sorted by X.
func lastWordEnd(row []document.Word, w document.Word) float64 {
	end := 0.0
	for _, prev := range row {
		if prev.X >= w.X {
			break
		}
		if e := prev.X + prev.W; e > end {
			end = e
		}
	}
	return end
}

// columnStops clusters cell start positions into column boundaries shared
// by the whole table. Column membership by start position survives ragged
// right-aligned numbers better than by cell center.
func columnStops(cells []cellBox, tolerance float64) []float64 {
	xs := make([]float64, len(cells))
	for i, c := range cells {
		xs[i] = c.x
	}
	sort.Float64s(xs)

	var stops []float64
	clusterStart, clusterSum, clusterN := xs[0], xs[0], 1
	for _, x := range xs[1:] {
		if x-clusterStart <= tolerance*2 {
			clusterSum += x
			clusterN++
			continue
		}
		stops = append(stops, clusterSum/float64(clusterN))
		clusterStart, clusterSum, clusterN = x, x, 1
	}
	stops = append(stops, clusterSum/float64(clusterN))
	return stops
}

func nearestStop(stops []float64, x float64) int {
	best, bestDist := 0, -1.0
	for i, s := range stops {
		d := x - s
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func buildGrid(cells []cellBox, stops []float64) [][]model.RawCell {
	type rowKey struct{ page, row int }
	order := make([]rowKey, 0)
	byRow := make(map[rowKey][]cellBox)
	for _, c := range cells {
		k := rowKey{c.page, c.row}
		if _, seen := byRow[k]; !seen {
			order = append(order, k)
		}
		byRow[k] = append(byRow[k], c)
	}

	grid := make([][]model.RawCell, 0, len(order))
	for _, k := range order {
		row := make([]model.RawCell, len(stops))
		for _, c := range byRow[k] {
			col := nearestStop(stops, c.x)
			if row[col].Text != "" {
				row[col].Text += " " + c.text
				row[col] = Classify(row[col].Text, "")
				continue
			}
			row[col] = Classify(c.text, "")
		}
		grid = append(grid, row)
	}
	return grid
}

// flagMismatches re-classifies cells in value columns so garbled text in a
// column that otherwise parses numeric is flagged, not silently passed as a
// label. A column counts as a value column when its parsed cells outnumber
// its unparsed non-placeholder cells.
func flagMismatches(grid [][]model.RawCell) {
	if len(grid) == 0 {
		return
	}
	for c := range grid[0] {
		numeric, text := 0, 0
		for r := range grid {
			cell := grid[r][c]
			if cell.Text == "" || placeholders[strings.ToLower(cell.Text)] {
				continue
			}
			if cell.HasValue {
				numeric++
			} else {
				text++
			}
		}
		if numeric == 0 || numeric <= text {
			continue
		}
		for r := range grid {
			if grid[r][c].Text != "" {
				grid[r][c] = Classify(grid[r][c].Text, model.CellNumeric)
			}
		}
	}
}

func rescale(grid [][]model.RawCell, factor float64) {
	for i := range grid {
		for j := range grid[i] {
			if grid[i][j].HasValue {
				grid[i][j].Value *= factor
			}
		}
	}
}

var headerWords = regexp.MustCompile(`(?i)\b(particulars|sl\.?\s*no|approved|actuals?|truing|difference)\b`)

// dropRepeatedHeader removes the reprinted column header at the top of a
// continuation page, when present.
func dropRepeatedHeader(rows [][]document.Word) [][]document.Word {
	for i, row := range rows {
		if i >= 3 {
			break
		}
		parts := make([]string, len(row))
		for j, w := range row {
			parts[j] = w.Text
		}
		if headerWords.MatchString(strings.Join(parts, " ")) {
			return rows[i+1:]
		}
	}
	return rows
}
