package parser

import (
	"strings"
	"testing"

	"docoutline/internal/outline"
)

func TestHTMLParser_HeadingTags(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>Service Manual</title></head>
<body>
<h1>Getting Started</h1>
<p>Intro paragraph.</p>
<h2>Installation</h2>
<h3>From Source</h3>
<h4>Ancient Compilers</h4>
<h2>Configuration</h2>
</body>
</html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "manual.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Service Manual" {
		t.Errorf("expected title from <title> tag, got %q", doc.Title)
	}

	want := []outline.Heading{
		{Level: outline.H1, Text: "Getting Started", Page: 1},
		{Level: outline.H2, Text: "Installation", Page: 1},
		{Level: outline.H3, Text: "From Source", Page: 1},
		{Level: outline.H2, Text: "Configuration", Page: 1},
	}
	if len(doc.Outline) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(doc.Outline), doc.Outline)
	}
	for i, w := range want {
		if doc.Outline[i] != w {
			t.Errorf("entry %d: expected %+v, got %+v", i, w, doc.Outline[i])
		}
	}
}

func TestHTMLParser_TitleFallsBackToFirstH1(t *testing.T) {
	input := `<html><body><h1>Fallback Title</h1><h2>Section</h2></body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Fallback Title" {
		t.Errorf("expected h1 fallback title, got %q", doc.Title)
	}
}

func TestHTMLParser_SkipsChromeSubtrees(t *testing.T) {
	input := `<html><body>
<nav><h2>Site Map</h2></nav>
<header><h1>Banner</h1></header>
<h1>Real Heading</h1>
<script>var x = "<h2>fake</h2>";</script>
<footer><h3>Legal</h3></footer>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Outline) != 1 {
		t.Fatalf("expected only content headings, got %+v", doc.Outline)
	}
	if doc.Outline[0].Text != "Real Heading" {
		t.Errorf("expected %q, got %q", "Real Heading", doc.Outline[0].Text)
	}
}

func TestHTMLParser_NormalizesHeadingWhitespace(t *testing.T) {
	input := "<html><body><h2>Multi\n  <em>word</em>\theading</h2></body></html>"

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Outline) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(doc.Outline))
	}
	if doc.Outline[0].Text != "Multi word heading" {
		t.Errorf("expected collapsed whitespace, got %q", doc.Outline[0].Text)
	}
}

func TestHTMLParser_NoHeadings(t *testing.T) {
	input := `<html><body><p>Only paragraphs here.</p></body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "" {
		t.Errorf("expected empty title, got %q", doc.Title)
	}
	if len(doc.Outline) != 0 {
		t.Errorf("expected empty outline, got %+v", doc.Outline)
	}
}
