package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/claude/liftlens/internal/analytics"
	"github.com/claude/liftlens/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

func farFuture() time.Time {
	return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
}

// snapshot loads the user's complete workout history. Trend classification
// and streaks are defined over full history, so tools always start from a
// complete snapshot.
func (h *handlers) snapshot(ctx context.Context) ([]models.Workout, error) {
	return h.ds.QueryWorkouts(ctx, time.Time{}, farFuture(), UserIDFromContext(ctx))
}

// toolPeriod resolves a period preset or explicit start/end dates, defaulting
// to the last 90 days.
func (h *handlers) toolPeriod(req mcp.CallToolRequest) (analytics.Period, error) {
	if preset := req.GetString("period", ""); preset != "" {
		return analytics.ResolvePeriod(preset, time.Now(), h.opts.Location)
	}

	startStr := req.GetString("start", "")
	endStr := req.GetString("end", "")
	if startStr == "" && endStr == "" {
		return analytics.ResolvePeriod(analytics.PresetLast90Days, time.Now(), h.opts.Location)
	}
	if startStr == "" {
		return analytics.Period{}, errors.New("start is required when end is given")
	}

	start, err := parseFlexTime(startStr)
	if err != nil {
		return analytics.Period{}, err
	}
	end := time.Now()
	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return analytics.Period{}, err
		}
	}
	return analytics.Period{Start: start.In(h.opts.Location), End: end.In(h.opts.Location)}, nil
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query workouts with their exercises and sets. Returns completed and in-progress workouts including weight, reps, and RPE for each set."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Per-workout history for one exercise: best set, set count, and estimated one-rep max per session. One point per completed workout containing the exercise."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise identifier (e.g. 'barbell-bench-press')")),
)

var toolGetExerciseTrend = mcp.NewTool("get_exercise_trend",
	mcp.WithDescription("Strength trend classification for one exercise: up, down, flat, or insufficient_data, with percentage change and a 0-100 confidence score."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise identifier")),
)

var toolGetMuscleDistribution = mcp.NewTool("get_muscle_distribution",
	mcp.WithDescription("Training volume share per primary muscle group, plus normalized 0-1 intensity values for heatmap rendering. Exercises without metadata land in the 'other' bucket."),
	mcp.WithString("mode", mcp.Description("Weighting mode: 'sets' counts sets, 'volume' sums weight*reps tonnage. Defaults to 'sets'."), mcp.Enum("sets", "volume")),
)

var toolGetActivityHeatmap = mcp.NewTool("get_activity_heatmap",
	mcp.WithDescription("Contribution-style activity heatmap: a 7-row Monday-first grid of daily workout counts with intensity levels, plus longest streak, average workouts per week, and most active day. Periods longer than a year are capped to the most recent 365 days."),
	mcp.WithString("period", mcp.Description("Named preset: last_30_days, last_90_days, this_year, last_year. Takes precedence over start/end."), mcp.Enum("last_30_days", "last_90_days", "this_year", "last_year")),
	mcp.WithString("start", mcp.Description("Explicit start date. Used when no preset is given.")),
	mcp.WithString("end", mcp.Description("Explicit end date. Defaults to today.")),
)

var toolComparePeriods = mcp.NewTool("compare_periods",
	mcp.WithDescription("Compare training volume and workout counts of a period against the immediately preceding period of equal length. A previous period with zero volume reports +100% when the current period has any."),
	mcp.WithString("period", mcp.Description("Named preset: last_30_days, last_90_days, this_year, last_year. Takes precedence over start/end."), mcp.Enum("last_30_days", "last_90_days", "this_year", "last_year")),
	mcp.WithString("start", mcp.Description("Explicit period start date. Used when no preset is given.")),
	mcp.WithString("end", mcp.Description("Explicit period end date. Defaults to today.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all known exercises with primary muscle group and equipment."),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Totals over the stored data: workout and set counts, total tonnage, date range, and most-trained exercises."),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	workouts, err := h.snapshot(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.BuildHistory(workouts, exerciseID))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	workouts, err := h.snapshot(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_trend", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	history := analytics.BuildHistory(workouts, exerciseID)
	trend := analytics.ClassifyTrendWithThreshold(history, h.opts.TrendThresholdPct)

	result, err := mcp.NewToolResultJSON(trend)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleDistribution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := analytics.BySets
	if req.GetString("mode", "") == string(analytics.ByVolume) {
		mode = analytics.ByVolume
	}

	workouts, err := h.snapshot(ctx)
	if err != nil {
		h.log.Error("mcp get_muscle_distribution", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	metadata, err := h.ds.GetExerciseMetadata(ctx)
	if err != nil {
		h.log.Error("mcp get_muscle_distribution metadata", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	shares := analytics.AggregateByMuscle(workouts, metadata, mode)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"distribution": shares,
		"intensity":    analytics.IntensityByMuscle(shares),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getActivityHeatmap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, err := h.toolPeriod(req)
	if err != nil {
		return mcp.NewToolResultError("invalid period: " + err.Error()), nil
	}

	workouts, err := h.snapshot(ctx)
	if err != nil {
		h.log.Error("mcp get_activity_heatmap", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.BuildHeatmap(workouts, period, time.Now()))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) comparePeriods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, err := h.toolPeriod(req)
	if err != nil {
		return mcp.NewToolResultError("invalid period: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	prevStart := period.Start.AddDate(0, 0, -period.Days())

	current, err := h.ds.QueryWorkouts(ctx, period.Start, period.End.AddDate(0, 0, 1), uid)
	if err != nil {
		h.log.Error("mcp compare_periods current", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	previous, err := h.ds.QueryWorkouts(ctx, prevStart, period.Start, uid)
	if err != nil {
		h.log.Error("mcp compare_periods previous", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.ComparePeriods(current, previous))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetDataStats(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
