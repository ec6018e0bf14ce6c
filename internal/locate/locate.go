package locate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/regulint/trueup/internal/document"
	"github.com/regulint/trueup/internal/model"
)

// Region is the resolved page span of one table, including the position of
// its heading row so extraction can skip everything above it.
type Region struct {
	ID        model.TableID
	StartPage int
	EndPage   int
	TitleY    float64
}

// Locator resolves table fingerprints to page regions.
type Locator struct {
	reader document.Reader
	cfg    model.ExtractionConfig
}

func NewLocator(r document.Reader, cfg model.ExtractionConfig) *Locator {
	return &Locator{reader: r, cfg: cfg}
}

// LocateAll resolves every fingerprint against the document. Missing tables
// are reported, not failed; each downstream consumer decides whether an
// absent table is fatal for its heuristic.
func (l *Locator) LocateAll(ctx context.Context, ch Chapter, fps []Fingerprint) (map[model.TableID]Region, []model.TableID, error) {
	found := make(map[model.TableID]Region, len(fps))
	var missing []model.TableID
	for _, fp := range fps {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		region, ok, err := l.locate(ch, fp)
		if err != nil {
			return nil, nil, fmt.Errorf("locate %s: %w", fp.ID, err)
		}
		if !ok {
			missing = append(missing, fp.ID)
			continue
		}
		found[fp.ID] = region
	}
	return found, missing, nil
}

func (l *Locator) locate(ch Chapter, fp Fingerprint) (Region, bool, error) {
	start, end := 1, l.reader.NumPages()
	if fp.InChapter {
		start, end = ch.StartPage, ch.EndPage
	}
	for n := start; n <= end; n++ {
		p, err := l.reader.Page(n)
		if err != nil {
			return Region{}, false, fmt.Errorf("page %d: %w", n, err)
		}
		ok, titleY := fp.match(p, l.cfg.RowTolerance)
		if !ok {
			continue
		}
		region := Region{ID: fp.ID, StartPage: n, EndPage: n, TitleY: titleY}
		region.EndPage = l.extend(n, end)
		return region, true, nil
	}
	return Region{}, false, nil
}

// extend probes pages past the heading for table continuations. A page
// continues the table when it carries a continuation marker, or when it
// opens with dense numeric rows and no new table heading of its own.
func (l *Locator) extend(startPage, limit int) int {
	endPage := startPage
	for n := startPage + 1; n <= limit && n-startPage <= l.cfg.MaxContinuation; n++ {
		p, err := l.reader.Page(n)
		if err != nil {
			break
		}
		if !l.continues(p) {
			break
		}
		endPage = n
	}
	return endPage
}

var (
	continuationMarker = regexp.MustCompile(`(?i)\b(contd|continued)\b`)
	anyTableHeading    = regexp.MustCompile(`(?i)table\s*(?:no\.?\s*)?[-:]?\s*(?:\d+\.\d+|g-?\d+)`)
	numericToken       = regexp.MustCompile(`^\(?-?[\d,]+(?:\.\d+)?\)?%?$`)
)

func (l *Locator) continues(p *document.Page) bool {
	if continuationMarker.MatchString(p.Text) {
		return true
	}
	if anyTableHeading.MatchString(p.Text) {
		return false
	}
	return numericRows(p, l.cfg.RowTolerance) >= 3
}

// numericRows counts visual rows holding at least two numeric cells.
func numericRows(p *document.Page, rowTolerance float64) int {
	count := 0
	for _, row := range document.ClusterRows(p.Words, rowTolerance) {
		numeric := 0
		for _, w := range row {
			if numericToken.MatchString(strings.TrimSpace(w.Text)) {
				numeric++
			}
		}
		if numeric >= 2 {
			count++
		}
	}
	return count
}
