package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"docoutline/internal/parser"
)

// Worker processes a single extraction job: parse the uploaded bytes,
// classify the outline, record the result on the job.
type Worker struct {
	opts  parser.Options
	stats *Stats
	log   *slog.Logger
}

func NewWorker(opts parser.Options, stats *Stats, log *slog.Logger) *Worker {
	return &Worker{
		opts:  opts,
		stats: stats,
		log:   log,
	}
}

// Process runs the extraction pipeline for a job. Failures stay on the
// job; the worker never stops the pool.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.opts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		w.stats.RecordFailure(time.Since(start))
		return
	}

	data := job.FileData()
	job.ContentHash = ContentHashHex(data)

	doc, err := p.Parse(bytes.NewReader(data), job.Filename)
	if err != nil {
		if parser.IsUnreadable(err) {
			log.Warn("unreadable document", "error", err)
		} else {
			log.Error("parse failed", "error", err)
		}
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		w.stats.RecordFailure(time.Since(start))
		return
	}

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "canceled")
		w.stats.RecordFailure(time.Since(start))
		return
	}

	job.SetStatus(StatusClassifying, "classifying")
	job.SetResult(doc)
	w.stats.RecordSuccess(doc, time.Since(start))
	log.Info("extraction complete",
		"title", doc.Title,
		"headings", len(doc.Outline),
		"duration_ms", time.Since(start).Milliseconds())

	job.SetStatus(StatusCompleted, "done")
}
