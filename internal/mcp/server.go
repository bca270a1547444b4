package mcp

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/repforge/internal/catalog"
	"github.com/meltforce/repforge/internal/generator"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, cat *catalog.Catalog, rng *rand.Rand, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepForge", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepForge workout server. Generate workouts, substitute exercises, and query training history and per-exercise progress. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, cat: cat, gen: generator.New(cat, rng), log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGenerateWorkout, Handler: h.generateWorkout},
		server.ServerTool{Tool: toolSubstituteExercise, Handler: h.substituteExercise},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
		server.ServerResource{Resource: resCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	cat *catalog.Catalog
	gen *generator.Generator
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentSessions = mcp.NewResource(
	"repforge://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Workout sessions logged in the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resCatalog = mcp.NewResource(
	"repforge://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All catalog exercises with muscle groups, equipment, and movement type"),
	mcp.WithMIMEType("application/json"),
)
