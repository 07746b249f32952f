package parser

import (
	"io"
	"strings"

	"docoutline/internal/outline"

	"golang.org/x/net/html"
)

// HTMLParser maps h1-h3 tags to outline entries. The document title comes
// from the <title> tag when present, else the first h1. Script, style and
// page-chrome subtrees are skipped so navigation links never surface as
// headings.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*outline.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &UnreadableError{Format: "html", Err: err}
	}

	doc := outline.NewDocument()
	doc.Pages = 1

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level, ok := headingTagLevel(n.Data); ok {
				if title := textContent(n); title != "" {
					doc.Outline = append(doc.Outline, outline.Heading{Level: level, Text: title, Page: 1})
				}
				return // Text already extracted, no need to recurse.
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or fall back to the whole document.
	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	if title := findTitle(root); title != "" {
		doc.Title = title
	} else if len(doc.Outline) > 0 && doc.Outline[0].Level == outline.H1 {
		doc.Title = doc.Outline[0].Text
	}

	doc.Outline = outline.Resolve(doc.Outline)
	return doc, nil
}

func headingTagLevel(tag string) (outline.Level, bool) {
	switch tag {
	case "h1":
		return outline.H1, true
	case "h2":
		return outline.H2, true
	case "h3":
		return outline.H3, true
	}
	return "", false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
