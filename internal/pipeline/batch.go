package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"docoutline/internal/outline"
	"docoutline/internal/parser"
)

// BatchRunner extracts outlines for every supported file in a directory
// and writes one JSON result per input. A file that cannot be read or
// decoded is recorded and skipped; the batch always keeps going.
type BatchRunner struct {
	opts    parser.Options
	workers int
	stats   *Stats
	log     *slog.Logger
}

func NewBatchRunner(opts parser.Options, workers int, log *slog.Logger) *BatchRunner {
	if workers <= 0 {
		workers = 1
	}
	return &BatchRunner{
		opts:    opts,
		workers: workers,
		stats:   NewStats(time.Hour),
		log:     log,
	}
}

// Stats returns the run counters.
func (b *BatchRunner) Stats() *Stats {
	return b.stats
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Input    string
	Output   string
	Title    string
	Headings int
	Err      error
}

// Summary reports batch totals. Results are ordered by input name.
type Summary struct {
	Processed int
	Failed    int
	Headings  int
	Elapsed   time.Duration
	Results   []FileResult
}

// Run scans inputDir (non-recursive) for supported files and writes one
// JSON document per input into outputDir: same base name, .json extension.
// The returned error covers setup only; per-file failures land in the
// summary.
func (b *BatchRunner) Run(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	start := time.Now()

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("read input dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	jobs := make(chan string)
	results := make(chan FileResult)

	var wg sync.WaitGroup
	for range b.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				results <- b.processOne(name, inputDir, outputDir)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, name := range names {
			select {
			case <-ctx.Done():
				return
			case jobs <- name:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var summary Summary
	for res := range results {
		summary.Results = append(summary.Results, res)
		if res.Err != nil {
			summary.Failed++
			b.log.Warn("file skipped", "input", res.Input, "error", res.Err)
			continue
		}
		summary.Processed++
		summary.Headings += res.Headings
		b.log.Info("file processed",
			"input", res.Input,
			"output", res.Output,
			"headings", res.Headings)
	}
	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].Input < summary.Results[j].Input
	})
	summary.Elapsed = time.Since(start)
	return summary, nil
}

func (b *BatchRunner) processOne(name, inputDir, outputDir string) FileResult {
	res := FileResult{Input: name}
	fileStart := time.Now()

	doc, err := ProcessFile(filepath.Join(inputDir, name), b.opts)
	if err != nil {
		b.stats.RecordFailure(time.Since(fileStart))
		res.Err = err
		return res
	}

	outName := strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
	if err := WriteDocument(filepath.Join(outputDir, outName), doc); err != nil {
		b.stats.RecordFailure(time.Since(fileStart))
		res.Err = err
		return res
	}

	b.stats.RecordSuccess(doc, time.Since(fileStart))
	res.Output = outName
	res.Title = doc.Title
	res.Headings = len(doc.Outline)
	return res
}

// ProcessFile extracts the outline of a single file on disk.
func ProcessFile(path string, opts parser.Options) (*outline.Document, error) {
	p, err := parser.ForFile(path, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	doc, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// WriteDocument writes the canonical JSON form of a document: two-space
// indent, HTML escaping off, trailing newline.
func WriteDocument(path string, doc *outline.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
