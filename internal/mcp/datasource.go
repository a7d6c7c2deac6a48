package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlens/internal/models"
	"github.com/claude/liftlens/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error)
	GetExerciseMetadata(ctx context.Context) (map[string]models.ExerciseMetadata, error)
	ListExercises(ctx context.Context) ([]models.ExerciseMetadata, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
