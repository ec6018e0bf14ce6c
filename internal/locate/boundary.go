// Package locate finds the page regions holding the financial tables of a
// truing-up petition. Tables are never addressed by fixed page number; each
// is found by fingerprint (printed table number, title cues, or content
// keywords) inside the relevant chapter span.
package locate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/regulint/trueup/internal/document"
)

// Chapter is the page span of one petition chapter.
type Chapter struct {
	Number    int
	Title     string
	StartPage int
	EndPage   int
}

var chapterHeading = regexp.MustCompile(`(?im)^\s*CHAPTER\s*[-–]?\s*(\d+|[IVX]+)\b(.*)$`)

// generationMarkers identify the generation business unit chapter. The
// petition covers all SBUs; only the generation chapter is analyzed.
var generationMarkers = []string{
	"sbu-g",
	"sbu g",
	"generation",
}

// FindGenerationChapter scans the document for the chapter covering the
// generation strategic business unit and returns its page span. The span
// ends where the next chapter heading begins, or at the last page.
func FindGenerationChapter(r document.Reader) (Chapter, error) {
	var chapters []Chapter
	for n := 1; n <= r.NumPages(); n++ {
		p, err := r.Page(n)
		if err != nil {
			return Chapter{}, fmt.Errorf("scan page %d: %w", n, err)
		}
		m := chapterHeading.FindStringSubmatch(p.Text)
		if m == nil {
			continue
		}
		// Table-of-contents pages list every chapter heading at once;
		// skip pages with more than one heading.
		if len(chapterHeading.FindAllString(p.Text, 2)) > 1 {
			continue
		}
		chapters = append(chapters, Chapter{
			Number:    parseChapterNumber(m[1]),
			Title:     strings.TrimSpace(m[2]),
			StartPage: n,
		})
	}
	if len(chapters) == 0 {
		return Chapter{}, fmt.Errorf("no chapter headings found in %d pages", r.NumPages())
	}
	for i := range chapters {
		if i+1 < len(chapters) {
			chapters[i].EndPage = chapters[i+1].StartPage - 1
		} else {
			chapters[i].EndPage = r.NumPages()
		}
	}

	for _, ch := range chapters {
		title := strings.ToLower(ch.Title)
		for _, marker := range generationMarkers {
			if strings.Contains(title, marker) {
				return ch, nil
			}
		}
	}
	// Heading text may be split from the SBU name; fall back to the first
	// chapter whose opening page mentions generation.
	for _, ch := range chapters {
		p, err := r.Page(ch.StartPage)
		if err != nil {
			continue
		}
		text := strings.ToLower(p.Text)
		for _, marker := range generationMarkers {
			if strings.Contains(text, marker) {
				return ch, nil
			}
		}
	}
	return Chapter{}, fmt.Errorf("generation chapter not found among %d chapters", len(chapters))
}

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10}

func parseChapterNumber(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if n := 0; s != "" && s[0] >= '0' && s[0] <= '9' {
		for _, c := range s {
			if c < '0' || c > '9' {
				break
			}
			n = n*10 + int(c-'0')
		}
		return n
	}
	total, prev := 0, 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total
}
