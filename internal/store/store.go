// Package store persists collection runs. Two implementations exist: SQLite
// for local single-user use and Postgres for shared deployments.
package store

import (
	"context"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status  model.RunStatus `json:"status,omitempty"`
	Company string          `json:"company,omitempty"`
	Mode    model.Mode      `json:"mode,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for collection runs.
type Store interface {
	CreateRun(ctx context.Context, company string, mode model.Mode) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, runID string, agg *model.AggregateResult, enh *model.EnhancementResult) error
	FailRun(ctx context.Context, runID string, agg *model.AggregateResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
