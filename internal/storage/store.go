package storage

import (
	"context"

	"hereditas/internal/model"
)

// Store defines persistence operations for pedigrees and inference runs.
type Store interface {
	Init(ctx context.Context) error
	SavePedigree(ctx context.Context, record model.PedigreeRecord) error
	GetPedigree(ctx context.Context, id string) (model.PedigreeRecord, bool, error)
	SaveRun(ctx context.Context, record model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	// ListRuns returns runs newest first, at most limit of them when limit
	// is positive.
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	DeleteRun(ctx context.Context, id string) error
}
