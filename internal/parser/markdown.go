package parser

import (
	"bytes"
	"io"
	"strings"

	"docoutline/internal/outline"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser maps explicit markdown structure to an outline: ATX and
// Setext headings at depths 1-3 become H1-H3, deeper headings are below
// outline resolution. Markdown has no pages, so every entry reports page 1.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*outline.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := outline.NewDocument()
	doc.Pages = 1
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := headingText(h, src)
		if title == "" {
			continue
		}
		// The first top-level heading doubles as the document title and
		// still appears in the outline, matching how readers see it.
		if doc.Title == "" && h.Level == 1 {
			doc.Title = title
		}
		level, ok := headingLevelFor(h.Level)
		if !ok {
			continue
		}
		doc.Outline = append(doc.Outline, outline.Heading{Level: level, Text: title, Page: 1})
	}
	doc.Outline = outline.Resolve(doc.Outline)
	return doc, nil
}

// headingText flattens the inline children of a heading node.
func headingText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(headingText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
