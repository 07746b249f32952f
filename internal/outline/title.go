package outline

import "strings"

// SelectTitle picks the document title from the first page: largest font
// size wins, bold breaks size ties, higher position breaks bold ties.
// Furniture lines and lines of MinHeadingRunes runes or fewer never
// qualify. Returns the chosen text and line index, or ("", -1) when no
// line qualifies; the caller removes the winner from heading candidacy.
func SelectTitle(lines []Line, furniture []bool, cfg Config) (string, int) {
	best := -1
	for i, ln := range lines {
		if ln.Page != 1 || furniture[i] {
			continue
		}
		text := strings.TrimSpace(ln.Text)
		if len([]rune(text)) <= cfg.MinHeadingRunes {
			continue
		}
		if best == -1 || titleBetter(ln, lines[best]) {
			best = i
		}
	}
	if best == -1 {
		return "", -1
	}
	return strings.TrimSpace(lines[best].Text), best
}

// titleBetter reports whether a beats b as a title candidate.
func titleBetter(a, b Line) bool {
	if sizeKey(a.FontSize) != sizeKey(b.FontSize) {
		return a.FontSize > b.FontSize
	}
	if a.Bold != b.Bold {
		return a.Bold
	}
	return a.Y < b.Y
}
