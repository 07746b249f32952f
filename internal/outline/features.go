package outline

import (
	"regexp"
	"strings"
)

// FeatureVector is the classifier's view of one candidate line.
type FeatureVector struct {
	Text     string
	FontSize float64
	Bold     bool
	Page     int
	Y        float64
	SizeRank int
}

// Analyze derives the feature vector for a line under a document context.
func Analyze(ln Line, ctx *Context) FeatureVector {
	return FeatureVector{
		Text:     strings.TrimSpace(ln.Text),
		FontSize: ln.FontSize,
		Bold:     ln.Bold,
		Page:     ln.Page,
		Y:        ln.Y,
		SizeRank: ctx.Rank(ln.FontSize),
	}
}

// Numbered section prefixes: "1. ", "2.3 ", "4.1.2 ". The prefix must
// introduce text; a line that is only a dotted number is not a heading.
var (
	depth1Pattern = regexp.MustCompile(`^\d+\.\s+\S`)
	depth2Pattern = regexp.MustCompile(`^\d+\.\d+\.?\s+\S`)
	depth3Pattern = regexp.MustCompile(`^\d+\.\d+\.\d+(\.\d+)*\.?\s+\S`)
)

// numberingDepth reports the section-numbering depth of a line: 1 for "N.",
// 2 for "N.M", 3 for "N.M.K" and anything deeper. 0 means no numbering.
func numberingDepth(text string) int {
	switch {
	case depth3Pattern.MatchString(text):
		return 3
	case depth2Pattern.MatchString(text):
		return 2
	case depth1Pattern.MatchString(text):
		return 1
	}
	return 0
}

// keywordTier reports whether the trimmed text equals a known section
// keyword and, if so, whether it is a top-level one.
func keywordTier(text string, cfg Config) (match, top bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, k := range cfg.TopKeywords {
		if t == k {
			return true, true
		}
	}
	for _, k := range cfg.Keywords {
		if t == k {
			return true, false
		}
	}
	return false, false
}
