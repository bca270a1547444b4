package mcp

import (
	"context"
	"time"

	"github.com/meltforce/repforge/internal/models"
	"github.com/meltforce/repforge/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QuerySessions(ctx context.Context, start, end time.Time, userID int, typeFilter string) ([]models.SessionRow, error)
	ExerciseHistory(ctx context.Context, exerciseName string, start, end time.Time, userID int) ([]storage.HistoryPoint, error)
	GetPrefs(ctx context.Context, userID int) ([]models.PrefRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
