package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"voxnote/internal/model"
)

func newTestRepo(t *testing.T) UsageRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db)
}

func TestAppendAndRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ok := &model.UsageRecord{
		HashedUserID:      "digest-a",
		AudioDuration:     42,
		TranscriptionTime: 1.5,
		CreatedAt:         "2026-08-30 12:00:00",
	}
	failed := &model.UsageRecord{
		HashedUserID:      "digest-b",
		AudioDuration:     0,
		TranscriptionTime: model.TranscriptionFailed,
		CreatedAt:         "2026-08-30 12:00:01",
	}
	if err := repo.Append(ctx, ok); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := repo.Append(ctx, failed); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	records, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Recent() returned %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].HashedUserID != "digest-b" || !records[0].Failed() {
		t.Errorf("records[0] = %+v, want failed digest-b row", records[0])
	}
	if records[1].HashedUserID != "digest-a" || records[1].Failed() {
		t.Errorf("records[1] = %+v, want successful digest-a row", records[1])
	}
	if records[1].AudioDuration != 42 || records[1].TranscriptionTime != 1.5 {
		t.Errorf("records[1] = %+v, want duration 42 and time 1.5", records[1])
	}
}

func TestSummary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i, tt := range []float64{2.0, 4.0, model.TranscriptionFailed} {
		rec := &model.UsageRecord{
			HashedUserID:      "digest",
			AudioDuration:     10,
			TranscriptionTime: tt,
			CreatedAt:         fmt.Sprintf("2026-08-30 12:00:0%d", i),
		}
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	s, err := repo.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if s.TotalRequests != 3 {
		t.Errorf("TotalRequests = %d, want 3", s.TotalRequests)
	}
	if s.FailedRequests != 1 {
		t.Errorf("FailedRequests = %d, want 1", s.FailedRequests)
	}
	if s.TotalAudioSeconds != 30 {
		t.Errorf("TotalAudioSeconds = %d, want 30", s.TotalAudioSeconds)
	}
	if s.AvgTranscribeSecs != 3.0 {
		t.Errorf("AvgTranscribeSecs = %v, want 3.0 (failures excluded)", s.AvgTranscribeSecs)
	}
}

func TestSummaryEmptyLog(t *testing.T) {
	repo := newTestRepo(t)

	s, err := repo.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if s.TotalRequests != 0 || s.FailedRequests != 0 || s.AvgTranscribeSecs != 0 {
		t.Errorf("Summary() on empty log = %+v, want zeros", s)
	}
}

func TestConcurrentAppends(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.Append(ctx, &model.UsageRecord{
				HashedUserID:      fmt.Sprintf("digest-%d", i),
				AudioDuration:     i,
				TranscriptionTime: float64(i),
				CreatedAt:         "2026-08-30 12:00:00",
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Append() error: %v", err)
		}
	}

	records, err := repo.Recent(ctx, n*2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(records) != n {
		t.Errorf("Recent() returned %d records, want %d", len(records), n)
	}
}
