package outline

import (
	"regexp"
	"strings"
)

// Page furniture: running headers, footers and page numbers. Furniture
// lines never become headings or titles. Two signals feed the decision:
// text shapes that read as page markers wherever they occur, and identical
// text recurring at the same vertical band across several pages.

var digitRun = regexp.MustCompile(`\d+`)

// furnitureShapes match the lowercased text after digit runs are
// normalized to "#".
var furnitureShapes = map[string]struct{}{
	"#":           {},
	"page #":      {},
	"page # of #": {},
	"- # -":       {},
	"# of #":      {},
	"#/#":         {},
	"p. #":        {},
	"pg. #":       {},
	"chapter #":   {},
}

var (
	// Front-matter page numbers only: the full roman alphabet would flag
	// real words like "mix" or "mild".
	romanOnly   = regexp.MustCompile(`^[ivx]+$`)
	slashedDate = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	namedDate   = regexp.MustCompile(`^(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\b`)
	copyright   = regexp.MustCompile(`^(copyright\b|©)`)
	barFooter   = regexp.MustCompile(`^[a-z0-9\s\-_]{1,20}\|\s*#$`)
)

// normalizeFurniture lowercases, trims and replaces digit runs with "#" so
// "Page 12 of 30" and "Page 3 of 30" compare equal.
func normalizeFurniture(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	return collapseSpaces(digitRun.ReplaceAllString(t, "#"))
}

// isFurnitureText reports whether the text alone marks a line as page
// furniture, independent of position.
func isFurnitureText(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return true
	}
	norm := normalizeFurniture(text)
	if _, ok := furnitureShapes[norm]; ok {
		return true
	}
	return romanOnly.MatchString(t) ||
		slashedDate.MatchString(t) ||
		namedDate.MatchString(t) ||
		copyright.MatchString(t) ||
		barFooter.MatchString(norm)
}

// furnitureFlags marks every line that is page furniture, by shape or by
// repetition. The result is index-parallel to lines.
func furnitureFlags(lines []Line, cfg Config) []bool {
	flags := detectRepeated(lines, cfg)
	for i, ln := range lines {
		if !flags[i] && isFurnitureText(ln.Text) {
			flags[i] = true
		}
	}
	return flags
}

// detectRepeated flags lines whose normalized text recurs at the same Y
// bucket in the top or bottom margin band on at least RepeatMinPages pages.
// Shorter documents skip the test: two occurrences are not evidence.
func detectRepeated(lines []Line, cfg Config) []bool {
	flags := make([]bool, len(lines))

	// Content bounds per page stand in for the page box, which not every
	// parser reports.
	type bounds struct{ min, max float64 }
	pages := make(map[int]bounds)
	for _, ln := range lines {
		b, ok := pages[ln.Page]
		if !ok {
			pages[ln.Page] = bounds{ln.Y, ln.Y}
			continue
		}
		if ln.Y < b.min {
			b.min = ln.Y
		}
		if ln.Y > b.max {
			b.max = ln.Y
		}
		pages[ln.Page] = b
	}
	if len(pages) < cfg.RepeatMinPages {
		return flags
	}

	type key struct {
		text   string
		bucket int
	}
	keys := make([]key, len(lines))
	inBand := make([]bool, len(lines))
	occur := make(map[key]map[int]struct{})

	for i, ln := range lines {
		b := pages[ln.Page]
		extent := b.max - b.min
		margin := extent * cfg.MarginRatio
		inBand[i] = extent <= 0 || ln.Y <= b.min+margin || ln.Y >= b.max-margin
		if !inBand[i] {
			continue
		}
		k := key{text: normalizeFurniture(ln.Text), bucket: int(ln.Y/10 + 0.5)}
		keys[i] = k
		set := occur[k]
		if set == nil {
			set = make(map[int]struct{})
			occur[k] = set
		}
		set[ln.Page] = struct{}{}
	}

	for i := range lines {
		if inBand[i] && len(occur[keys[i]]) >= cfg.RepeatMinPages {
			flags[i] = true
		}
	}
	return flags
}
