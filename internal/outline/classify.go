package outline

import "unicode/utf8"

// Rule identifies which cascade rule produced a decision. It feeds debug
// logging; the outline itself never carries it.
type Rule string

const (
	RuleNone      Rule = "none"
	RuleNumbering Rule = "numbering"
	RuleFontSize  Rule = "fontsize"
	RuleKeyword   Rule = "keyword"
	RuleEarlyPage Rule = "earlypage"
)

// Decision is the classifier outcome for one line. Heading reports whether
// a level was assigned at all.
type Decision struct {
	Level   Level
	Rule    Rule
	Heading bool
}

func decide(level Level, rule Rule) Decision {
	return Decision{Level: level, Rule: rule, Heading: true}
}

var skipped = Decision{Rule: RuleNone}

// Classify runs the rule cascade over one feature vector. Rules are ordered
// by precedence; the first match wins:
//
//  1. numbering depth: "N." -> H1, "N.M" -> H2, "N.M.K" and deeper -> H3
//  2. whole-line keyword with size rank above the document median
//  3. bold lines at the size floors 18/14/12 -> H1/H2/H3, inclusive
//  4. near misses on pages 1-2, downgraded one level
//
// A keyword line that fails the rank gate is dropped rather than passed on:
// a section word set in body-sized type is a contents entry or a prose
// echo, not the section itself. Lines outside the candidacy length bounds
// never classify, whatever the other rules say.
func Classify(fv FeatureVector, ctx *Context, cfg Config) Decision {
	if n := utf8.RuneCountInString(fv.Text); n < cfg.MinHeadingRunes || n > cfg.MaxHeadingRunes {
		return skipped
	}

	switch numberingDepth(fv.Text) {
	case 1:
		return decide(H1, RuleNumbering)
	case 2:
		return decide(H2, RuleNumbering)
	case 3:
		return decide(H3, RuleNumbering)
	}

	if match, top := keywordTier(fv.Text, cfg); match {
		rank := float64(fv.SizeRank)
		if rank < ctx.MedianRank {
			if top {
				return decide(H1, RuleKeyword)
			}
			return decide(H2, RuleKeyword)
		}
		if fv.Page <= cfg.EarlyPageLimit && rank <= ctx.MedianRank {
			if top {
				return decide(H2, RuleEarlyPage)
			}
			return decide(H3, RuleEarlyPage)
		}
		return skipped
	}

	if fv.Bold {
		switch {
		case fv.FontSize >= cfg.H1MinSize:
			return decide(H1, RuleFontSize)
		case fv.FontSize >= cfg.H2MinSize:
			return decide(H2, RuleFontSize)
		case fv.FontSize >= cfg.H3MinSize:
			return decide(H3, RuleFontSize)
		case fv.Page <= cfg.EarlyPageLimit && fv.FontSize >= cfg.H3MinSize-cfg.NearMissPt:
			return decide(H3, RuleEarlyPage)
		}
	}

	return skipped
}
