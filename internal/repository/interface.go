package repository

import (
	"context"

	"voxnote/internal/model"
)

// UsageRepository defines the interface for usage log data access
type UsageRepository interface {
	// Append adds one row to the usage log. Rows are never updated or deleted.
	Append(ctx context.Context, rec *model.UsageRecord) error

	// Recent returns the newest rows, most recent first
	Recent(ctx context.Context, limit int) ([]model.UsageRecord, error)

	// Summary aggregates the whole log
	Summary(ctx context.Context) (*model.UsageSummary, error)
}
