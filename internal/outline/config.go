package outline

// Config carries the tunable constants of the extraction rules. Zero values
// are not meaningful; start from DefaultConfig and override selectively
// (the server and CLI load overrides from an optional YAML rules file).
type Config struct {
	// Font-size floors for the bold threshold rule, inclusive.
	H1MinSize float64 `yaml:"h1_min_size"`
	H2MinSize float64 `yaml:"h2_min_size"`
	H3MinSize float64 `yaml:"h3_min_size"`

	// Section keywords matched against whole lines, lowercase. Keywords
	// listed in TopKeywords classify as H1, the rest as H2.
	Keywords    []string `yaml:"keywords"`
	TopKeywords []string `yaml:"top_keywords"`

	// Line assembly.
	LineYTolerance float64 `yaml:"line_y_tolerance"` // runs within this Y distance share a line
	SpaceGapRatio  float64 `yaml:"space_gap_ratio"`  // x-gap wider than ratio*size separates words

	// Heading candidacy bounds, in runes.
	MinHeadingRunes int `yaml:"min_heading_runes"`
	MaxHeadingRunes int `yaml:"max_heading_runes"`

	// Early-page near-miss downgrade.
	EarlyPageLimit int     `yaml:"early_page_limit"`
	NearMissPt     float64 `yaml:"near_miss_pt"`

	// Page furniture detection.
	MarginRatio    float64 `yaml:"margin_ratio"`     // top/bottom band as a fraction of page extent
	RepeatMinPages int     `yaml:"repeat_min_pages"` // pages a line must recur on to count as furniture
}

// DefaultConfig returns the stock rule constants.
func DefaultConfig() Config {
	return Config{
		H1MinSize: 18.0,
		H2MinSize: 14.0,
		H3MinSize: 12.0,
		Keywords: []string{
			"introduction", "overview", "background", "conclusion", "summary",
			"references", "bibliography", "abstract", "acknowledgements",
			"appendix", "glossary", "table of contents", "contents",
		},
		TopKeywords:     []string{"introduction", "conclusion", "abstract"},
		LineYTolerance:  3.0,
		SpaceGapRatio:   0.3,
		MinHeadingRunes: 3,
		MaxHeadingRunes: 200,
		EarlyPageLimit:  2,
		NearMissPt:      2.0,
		MarginRatio:     0.1,
		RepeatMinPages:  3,
	}
}
