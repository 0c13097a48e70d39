package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"voxnote/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    hashed_user_id TEXT,
    audio_duration INTEGER,
    transcription_time REAL,
    created_at TEXT
);`

// Open opens (creating if needed) the usage log database and ensures the
// schema exists. Writes serialize on a single pooled connection, which is
// enough for the expected request volume.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open usage database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcriptions table: %w", err)
	}

	return db, nil
}

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a usage repository backed by the given database
func NewSQLiteRepository(db *sql.DB) UsageRepository {
	return &sqliteRepository{db: db}
}

// Append adds one usage row
func (r *sqliteRepository) Append(ctx context.Context, rec *model.UsageRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transcriptions (hashed_user_id, audio_duration, transcription_time, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.HashedUserID, rec.AudioDuration, rec.TranscriptionTime, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("append usage record: %w", err)
	}
	return nil
}

// Recent returns the newest rows, most recent first
func (r *sqliteRepository) Recent(ctx context.Context, limit int) ([]model.UsageRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hashed_user_id, audio_duration, transcription_time, created_at
		FROM transcriptions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query usage records: %w", err)
	}
	defer rows.Close()

	var records []model.UsageRecord
	for rows.Next() {
		var rec model.UsageRecord
		if err := rows.Scan(&rec.ID, &rec.HashedUserID, &rec.AudioDuration, &rec.TranscriptionTime, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage records: %w", err)
	}

	return records, nil
}

// Summary aggregates the whole log
func (r *sqliteRepository) Summary(ctx context.Context) (*model.UsageSummary, error) {
	var s model.UsageSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN transcription_time < 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(audio_duration), 0),
			COALESCE(AVG(CASE WHEN transcription_time >= 0 THEN transcription_time END), 0)
		FROM transcriptions
	`).Scan(&s.TotalRequests, &s.FailedRequests, &s.TotalAudioSeconds, &s.AvgTranscribeSecs)
	if err != nil {
		return nil, fmt.Errorf("summarize usage records: %w", err)
	}
	return &s, nil
}
