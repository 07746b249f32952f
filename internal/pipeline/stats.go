package pipeline

import (
	"sort"
	"sync"
	"time"

	"docoutline/internal/outline"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// LatencySnapshot is a point-in-time aggregate of per-document extraction
// latencies within the rolling window.
type LatencySnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// StatsSnapshot aggregates extraction totals since process start plus the
// latency window.
type StatsSnapshot struct {
	DocsProcessed int64           `json:"docs_processed"`
	DocsFailed    int64           `json:"docs_failed"`
	PagesScanned  int64           `json:"pages_scanned"`
	EmptyOutlines int64           `json:"empty_outlines"`
	TitlesFound   int64           `json:"titles_found"`
	H1Count       int64           `json:"h1_count"`
	H2Count       int64           `json:"h2_count"`
	H3Count       int64           `json:"h3_count"`
	Latency       LatencySnapshot `json:"latency"`
}

// Stats tracks extraction outcomes and recent latencies. Counters run
// since process start; latency samples age out of a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration

	docsProcessed int64
	docsFailed    int64
	pagesScanned  int64
	emptyOutlines int64
	titlesFound   int64
	levelCounts   map[outline.Level]int64
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples:     make([]sample, 0, 256),
		maxAge:      maxAge,
		levelCounts: make(map[outline.Level]int64),
	}
}

// RecordSuccess tallies one extracted document.
func (s *Stats) RecordSuccess(doc *outline.Document, dur time.Duration) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docsProcessed++
	s.pagesScanned += int64(doc.Pages)
	if len(doc.Outline) == 0 {
		s.emptyOutlines++
	}
	if doc.Title != "" {
		s.titlesFound++
	}
	for _, h := range doc.Outline {
		s.levelCounts[h.Level]++
	}

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, durationMs: clampMs(dur)})
}

// RecordFailure tallies one document that could not be processed.
func (s *Stats) RecordFailure(dur time.Duration) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docsFailed++
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, durationMs: clampMs(dur)})
}

// clampMs floors a duration at zero; clock steps must not produce
// negative latency samples.
func clampMs(dur time.Duration) int64 {
	if dur < 0 {
		return 0
	}
	return dur.Milliseconds()
}

func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		DocsProcessed: s.docsProcessed,
		DocsFailed:    s.docsFailed,
		PagesScanned:  s.pagesScanned,
		EmptyOutlines: s.emptyOutlines,
		TitlesFound:   s.titlesFound,
		H1Count:       s.levelCounts[outline.H1],
		H2Count:       s.levelCounts[outline.H2],
		H3Count:       s.levelCounts[outline.H3],
	}

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Latency = LatencySnapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
	return snap
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
