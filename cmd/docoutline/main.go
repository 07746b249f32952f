// Command docoutline extracts document outlines in batch: every supported
// file in the input directory becomes a .json outline in the output
// directory. With -show it extracts a single file and prints the result as
// a table instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"docoutline/internal/config"
	"docoutline/internal/parser"
	"docoutline/internal/pipeline"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var (
		inputDir  = flag.String("input", cfg.InputDir, "directory scanned for documents")
		outputDir = flag.String("output", cfg.OutputDir, "directory the .json outlines are written to")
		rulesFile = flag.String("rules", cfg.RulesFile, "optional YAML rules file overriding classifier constants")
		workers   = flag.Int("workers", cfg.WorkerCount, "parallel extraction workers")
		maxPages  = flag.Int("max-pages", cfg.MaxPages, "pages scanned per document before truncation")
		showFile  = flag.String("show", "", "extract one file and print its outline instead of running the batch")
	)
	flag.Parse()

	// Logs go to stderr so -show output owns stdout.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	rules, err := config.LoadRules(*rulesFile)
	if err != nil {
		log.Error("invalid rules file", "error", err)
		os.Exit(1)
	}

	opts := parser.Options{
		Rules:             rules,
		MaxPages:          *maxPages,
		PlainTextFallback: cfg.PlainTextFallback,
	}

	if *showFile != "" {
		if err := show(*showFile, opts); err != nil {
			log.Error("extraction failed", "file", *showFile, "error", err)
			os.Exit(1)
		}
		return
	}

	runner := pipeline.NewBatchRunner(opts, *workers, log)
	summary, err := runner.Run(context.Background(), *inputDir, *outputDir)
	if err != nil {
		log.Error("batch failed", "error", err)
		os.Exit(1)
	}

	log.Info("batch complete",
		"processed", summary.Processed,
		"failed", summary.Failed,
		"headings", summary.Headings,
		"elapsed_ms", summary.Elapsed.Milliseconds())
}

// show extracts one document and renders title plus outline on stdout.
func show(path string, opts parser.Options) error {
	doc, err := pipeline.ProcessFile(path, opts)
	if err != nil {
		return err
	}

	if doc.Title != "" {
		fmt.Printf("Title: %s\n\n", doc.Title)
	} else {
		fmt.Print("Title: (none)\n\n")
	}

	if len(doc.Outline) == 0 {
		fmt.Println("No headings found.")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"Level", "Heading", "Page"})
	for _, h := range doc.Outline {
		table.Append([]string{string(h.Level), h.Text, strconv.Itoa(h.Page)})
	}
	return table.Render()
}
