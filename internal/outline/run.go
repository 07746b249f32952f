package outline

import (
	"sort"
	"strings"
)

// TextRun is one positioned span of text as reported by a document parser.
// Y is measured from the top of the page, so smaller Y means higher on the
// page. Page numbers are 1-based. A run never spans pages.
type TextRun struct {
	Text     string
	FontSize float64
	Bold     bool
	Page     int
	X        float64
	Y        float64
	Width    float64
}

// Line is one visual line of text: adjacent runs on the same page with
// matching font size and weight, merged within a small Y band.
type Line struct {
	Text     string
	FontSize float64
	Bold     bool
	Page     int
	X        float64
	Y        float64
}

// SortRuns orders runs into visual reading order: page ascending, then
// top-to-bottom, then left-to-right. Runs within yTol of each other count
// as the same row. The sort is stable, so ties keep parser order.
func SortRuns(runs []TextRun, yTol float64) {
	sort.SliceStable(runs, func(i, j int) bool {
		a, b := runs[i], runs[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if dy := a.Y - b.Y; dy < -yTol || dy > yTol {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

// BuildLines folds sorted runs into candidate lines. The current line
// breaks on page change, on leaving the Y band, or when the font size or
// weight changes. Within a line, an x-gap wider than SpaceGapRatio of the
// font size separates words; narrower gaps concatenate directly, which
// reassembles parsers that report text glyph by glyph.
func BuildLines(runs []TextRun, cfg Config) []Line {
	lines := make([]Line, 0, len(runs)/4+1)

	var cur Line
	var curEnd float64 // right edge of the last run absorbed
	open := false

	flush := func() {
		if !open {
			return
		}
		cur.Text = collapseSpaces(cur.Text)
		if cur.Text != "" {
			lines = append(lines, cur)
		}
		open = false
	}

	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		sameLine := open &&
			r.Page == cur.Page &&
			absf(r.Y-cur.Y) <= cfg.LineYTolerance &&
			sizeKey(r.FontSize) == sizeKey(cur.FontSize) &&
			r.Bold == cur.Bold
		if !sameLine {
			flush()
			cur = Line{
				Text:     r.Text,
				FontSize: r.FontSize,
				Bold:     r.Bold,
				Page:     r.Page,
				X:        r.X,
				Y:        r.Y,
			}
			curEnd = r.X + r.Width
			open = true
			continue
		}
		if gap := r.X - curEnd; gap > cfg.SpaceGapRatio*r.FontSize && !strings.HasSuffix(cur.Text, " ") {
			cur.Text += " "
		}
		cur.Text += r.Text
		if end := r.X + r.Width; end > curEnd {
			curEnd = end
		}
	}
	flush()

	return lines
}

// collapseSpaces trims and squeezes whitespace runs to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// sizeKey buckets a font size to 0.1pt so float jitter from the PDF
// transform matrix does not split lines or size ranks.
func sizeKey(size float64) int {
	return int(size*10 + 0.5)
}
