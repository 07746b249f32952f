package pipeline

import (
	"context"
	"testing"
	"time"

	"docoutline/internal/config"
	"docoutline/internal/outline"
)

func testConfig() config.Config {
	return config.Config{
		WorkerCount:  1,
		MaxQueueSize: 4,
		MaxPages:     50,
		JobTTL:       time.Hour,
	}
}

func TestOrchestrator_ProcessesSubmittedJob(t *testing.T) {
	orch := NewOrchestrator(testConfig(), outline.DefaultConfig(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orch.Start(ctx)
	defer orch.Stop()

	job := queuedJob("notes.md", []byte("# Notes\n\n## First\n"))
	if err := orch.Submit(job); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		got := orch.GetJob(job.ID)
		if got == nil {
			t.Fatal("submitted job vanished from the store")
		}
		snap := got.Snapshot()
		if snap.Status == StatusCompleted {
			if snap.Result == nil || snap.Result.Title != "Notes" {
				t.Fatalf("unexpected result: %+v", snap.Result)
			}
			return
		}
		if snap.Status == StatusFailed {
			t.Fatalf("job failed: %v", snap.Errors)
		}
		select {
		case <-deadline:
			t.Fatalf("job never completed, last status %s", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestOrchestrator_RejectsWhenQueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1

	// Workers never started: the first job fills the queue.
	orch := NewOrchestrator(cfg, outline.DefaultConfig(), testLogger())

	first := queuedJob("a.md", []byte("# A\n"))
	if err := orch.Submit(first); err != nil {
		t.Fatalf("first submit must succeed: %v", err)
	}

	second := queuedJob("b.md", []byte("# B\n"))
	if err := orch.Submit(second); err == nil {
		t.Fatal("expected queue-full rejection")
	}
	if second.Status != StatusFailed {
		t.Errorf("expected rejected job marked failed, got %s", second.Status)
	}
	// The rejected job still resolves by ID so callers can read the error.
	if orch.GetJob(second.ID) == nil {
		t.Error("rejected job must remain in the store")
	}
}

func TestOrchestrator_QueueDepth(t *testing.T) {
	orch := NewOrchestrator(testConfig(), outline.DefaultConfig(), testLogger())
	if orch.QueueDepth() != 0 {
		t.Fatalf("expected empty queue, got %d", orch.QueueDepth())
	}
	if err := orch.Submit(queuedJob("a.md", []byte("# A\n"))); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	if orch.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", orch.QueueDepth())
	}
}
