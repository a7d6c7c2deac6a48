package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlens/internal/analytics"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
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

// Options carries the analytics tunables applied to MCP tools.
type Options struct {
	// TrendThresholdPct is the flat band for trend classification.
	TrendThresholdPct float64
	// Location is the user's local calendar zone for day bucketing.
	Location *time.Location
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, opts Options, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLens", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLens workout analytics server. Query workout history, strength trends, muscle group distribution, activity heatmaps, and period comparisons. All data is scoped to the authenticated user."),
	)

	if opts.TrendThresholdPct == 0 {
		opts.TrendThresholdPct = analytics.DefaultTrendThresholdPct
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	h := &handlers{ds: ds, opts: opts, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetExerciseTrend, Handler: h.getExerciseTrend},
		server.ServerTool{Tool: toolGetMuscleDistribution, Handler: h.getMuscleDistribution},
		server.ServerTool{Tool: toolGetActivityHeatmap, Handler: h.getActivityHeatmap},
		server.ServerTool{Tool: toolComparePeriods, Handler: h.comparePeriods},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTrainingOverview, Handler: h.trainingOverview},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds   DataSource
	opts Options
	log  *slog.Logger
}

// --- Resource definitions ---

var resTrainingOverview = mcp.NewResource(
	"liftlens://training_overview",
	"Training Overview",
	mcp.WithResourceDescription("Data stats plus a 30-day volume comparison against the previous 30 days"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftlens://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"liftlens://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All known exercises with primary muscle group and equipment"),
	mcp.WithMIMEType("application/json"),
)
