package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"docoutline/internal/outline"

	pdflib "github.com/ledongthuc/pdf"
)

// defaultPageHeight is US Letter in PDF points, used when a page carries
// no usable MediaBox.
const defaultPageHeight = 792.0

// PDFParser extracts an outline from PDF files through positioned text
// runs. PDF is the only format that goes through the heading classifier;
// everything the classifier needs comes from the text elements the
// library reports per page: string, font name, size, position.
type PDFParser struct {
	Rules    outline.Config
	MaxPages int
	// PlainTextFallback synthesizes unpositioned runs from the library's
	// plain-text extraction when positioned content comes back empty, so
	// numbering and keyword rules still get a chance.
	PlainTextFallback bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (doc *outline.Document, err error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docoutline-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	// The pdf library panics on assorted malformed inputs. A fault while
	// reading or classifying one document must not take down a batch: the
	// document degrades to an empty outline instead.
	defer func() {
		if rec := recover(); rec != nil {
			doc = outline.NewDocument()
			err = nil
		}
	}()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, &UnreadableError{Format: "pdf", Err: err}
	}
	defer f.Close()

	runs := p.collectRuns(reader)
	if len(runs) == 0 && p.PlainTextFallback {
		runs = p.plainTextRuns(reader)
	}

	doc = outline.FromRuns(runs, p.Rules)
	doc.Pages = p.pageLimit(reader)
	return doc, nil
}

func (p *PDFParser) pageLimit(reader *pdflib.Reader) int {
	numPages := reader.NumPage()
	max := p.MaxPages
	if max <= 0 {
		max = 50
	}
	// Pages beyond the cap are ignored, not an error.
	if numPages > max {
		numPages = max
	}
	return numPages
}

func (p *PDFParser) collectRuns(reader *pdflib.Reader) []outline.TextRun {
	var runs []outline.TextRun
	numPages := p.pageLimit(reader)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		height := pageHeight(page)
		for _, t := range page.Content().Text {
			if t.S == "" {
				continue
			}
			runs = append(runs, outline.TextRun{
				Text:     t.S,
				FontSize: t.FontSize,
				Bold:     isBoldFont(t.Font),
				Page:     i,
				X:        t.X,
				Y:        height - t.Y, // PDF user space is bottom-origin
				Width:    t.W,
			})
		}
	}
	return runs
}

// plainTextRuns rebuilds runs from the library's plain-text extraction for
// documents whose positioned content comes back empty. Font size and
// weight are unknown, so only the numbering and keyword rules can fire.
func (p *PDFParser) plainTextRuns(reader *pdflib.Reader) []outline.TextRun {
	var runs []outline.TextRun
	numPages := p.pageLimit(reader)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		for j, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			runs = append(runs, outline.TextRun{
				Text: line,
				Page: i,
				Y:    float64(j) * 12, // keeps source line order
			})
		}
	}
	return runs
}

// pageHeight reads the MediaBox height, walking up the page tree when the
// attribute is inherited from an ancestor node.
func pageHeight(page pdflib.Page) float64 {
	v := page.V
	for depth := 0; depth < 16 && !v.IsNull(); depth++ {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			h := mb.Index(3).Float64() - mb.Index(1).Float64()
			if h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// isBoldFont detects weight from the PostScript font name. Subset prefixes
// and foundry naming vary, so a substring check is the dependable signal.
func isBoldFont(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "bold") || strings.Contains(n, "black") || strings.Contains(n, "heavy")
}
