package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"docoutline/internal/outline"
)

// Parser extracts a document outline from raw file bytes.
type Parser interface {
	Parse(r io.Reader, filename string) (*outline.Document, error)
}

// UnreadableError marks input the underlying format library could not
// decode: truncated files, corrupt cross-reference tables, encryption.
// Batch callers record the failure and move on to the next file.
type UnreadableError struct {
	Format string
	Err    error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("unreadable %s document: %v", e.Format, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// IsUnreadable reports whether err marks an undecodable document.
func IsUnreadable(err error) bool {
	var ue *UnreadableError
	return errors.As(err, &ue)
}

// Options carries extraction settings shared across parsers. The zero
// value is not useful; start from DefaultOptions.
type Options struct {
	Rules             outline.Config
	MaxPages          int
	PlainTextFallback bool
}

// DefaultOptions returns the stock extraction settings: default rules, the
// 50-page cap, plain-text fallback on.
func DefaultOptions() Options {
	return Options{
		Rules:             outline.DefaultConfig(),
		MaxPages:          50,
		PlainTextFallback: true,
	}
}

// SupportedExtensions lists the file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the parser for a filename, configured with opts.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{
			Rules:             opts.Rules,
			MaxPages:          opts.MaxPages,
			PlainTextFallback: opts.PlainTextFallback,
		}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// headingLevelFor maps a structural heading depth to an outline level.
// Depths beyond 3 are below outline resolution.
func headingLevelFor(depth int) (outline.Level, bool) {
	switch depth {
	case 1:
		return outline.H1, true
	case 2:
		return outline.H2, true
	case 3:
		return outline.H3, true
	}
	return "", false
}
