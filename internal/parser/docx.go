package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"docoutline/internal/outline"

	"github.com/fumiama/go-docx"
)

// DOCXParser maps Word heading styles to outline entries. Heading1 through
// Heading3 become H1-H3; the first Heading1 paragraph doubles as the
// document title. Word files carry no page geometry in their XML, so every
// entry reports page 1.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*outline.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docoutline-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	wordDoc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, &UnreadableError{Format: "docx", Err: err}
	}

	doc := outline.NewDocument()
	doc.Pages = 1
	for _, item := range wordDoc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		depth := headingStyleDepth(para)
		if depth == 0 {
			continue
		}
		level, ok := headingLevelFor(depth)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		if doc.Title == "" && level == outline.H1 {
			doc.Title = text
		}
		doc.Outline = append(doc.Outline, outline.Heading{Level: level, Text: text, Page: 1})
	}
	doc.Outline = outline.Resolve(doc.Outline)
	return doc, nil
}

// headingStyleDepth reads the paragraph style, tolerating both the
// "Heading1" and "heading 1" spellings Word producers emit.
func headingStyleDepth(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ReplaceAll(strings.ToLower(para.Properties.Style.Val), " ", "")
	switch style {
	case "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
