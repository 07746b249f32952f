package outline

import "testing"

func TestIsFurnitureText_PageMarkers(t *testing.T) {
	furniture := []string{
		"7",
		"Page 3",
		"Page 12 of 30",
		"- 4 -",
		"3 of 10",
		"14/30",
		"p. 9",
		"pg. 22",
		"Chapter 4",
		"iii",
		"XIV",
		"12/31/2024",
		"3-1-99",
		"March 14, 2024",
		"Copyright 2024 Initech",
		"© 2024 Initech",
		"Annual Report | 7",
	}
	for _, text := range furniture {
		if !isFurnitureText(text) {
			t.Errorf("%q: expected furniture", text)
		}
	}

	content := []string{
		"1. Introduction",
		"Chapter 4 covers liquidity",
		"Results for 2024",
		"Mix of 3 things",
	}
	for _, text := range content {
		if isFurnitureText(text) {
			t.Errorf("%q: expected content, flagged as furniture", text)
		}
	}
}

func TestDetectRepeated_RunningHeader(t *testing.T) {
	cfg := DefaultConfig()

	// "ACME Confidential" rides the top of pages 1-4; the closing line in
	// the bottom band differs per page, so it is content. Texts must differ
	// by more than digits: digit runs are normalized before comparison.
	closers := []string{
		"Closing remark on revenue",
		"Closing remark on costs",
		"Closing remark on hiring",
		"Closing remark on outlook",
	}
	var lines []Line
	for page := 1; page <= 4; page++ {
		lines = append(lines,
			Line{Text: "ACME Confidential", FontSize: 8, Page: page, Y: 20},
			Line{Text: "Section body text", FontSize: 10, Page: page, Y: 300},
			Line{Text: closers[page-1], FontSize: 10, Page: page, Y: 500},
		)
	}

	flags := furnitureFlags(lines, cfg)
	for i, ln := range lines {
		want := ln.Text == "ACME Confidential"
		if flags[i] != want {
			t.Errorf("page %d %q: expected furniture=%v, got %v", ln.Page, ln.Text, want, flags[i])
		}
	}
}

func TestDetectRepeated_FooterBand(t *testing.T) {
	cfg := DefaultConfig()

	headings := []string{"Liquidity Overview", "Revenue Overview", "Staffing Overview"}
	var lines []Line
	for page := 1; page <= 3; page++ {
		lines = append(lines,
			Line{Text: headings[page-1], FontSize: 14, Bold: true, Page: page, Y: 100},
			Line{Text: "Body paragraph content", FontSize: 10, Page: page, Y: 400},
			Line{Text: "internal use only", FontSize: 8, Page: page, Y: 760},
		)
	}

	flags := furnitureFlags(lines, cfg)
	for i, ln := range lines {
		if ln.Text == "internal use only" && !flags[i] {
			t.Errorf("page %d: expected repeated footer to be furniture", ln.Page)
		}
		if ln.Bold && flags[i] {
			t.Errorf("page %d: heading wrongly flagged", ln.Page)
		}
	}
}

func TestDetectRepeated_TooFewPages(t *testing.T) {
	cfg := DefaultConfig()

	// Two pages cannot establish repetition; only shape-based furniture
	// applies.
	lines := []Line{
		{Text: "DRAFT", FontSize: 8, Page: 1, Y: 20},
		{Text: "Body content here", FontSize: 10, Page: 1, Y: 300},
		{Text: "DRAFT", FontSize: 8, Page: 2, Y: 20},
		{Text: "Body content here too", FontSize: 10, Page: 2, Y: 300},
	}
	flags := furnitureFlags(lines, cfg)
	for i, ln := range lines {
		if flags[i] {
			t.Errorf("%q on page %d: expected no furniture in a 2-page document", ln.Text, ln.Page)
		}
	}
}

func TestDetectRepeated_MidPageRepeatsSurvive(t *testing.T) {
	cfg := DefaultConfig()

	// The same phrase repeating mid-page is content, not furniture.
	var lines []Line
	for page := 1; page <= 4; page++ {
		lines = append(lines,
			Line{Text: "Top of page content", FontSize: 10, Page: page, Y: 50},
			Line{Text: "Status: nominal", FontSize: 10, Page: page, Y: 400},
			Line{Text: "Bottom content", FontSize: 10, Page: page, Y: 750},
		)
	}
	flags := furnitureFlags(lines, cfg)
	for i, ln := range lines {
		if ln.Text == "Status: nominal" && flags[i] {
			t.Errorf("page %d: mid-page repeat wrongly flagged as furniture", ln.Page)
		}
	}
}
