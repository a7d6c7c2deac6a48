package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/claude/liftlens/internal/analytics"
	"github.com/claude/liftlens/internal/models"
	"github.com/go-chi/chi/v5"
)

// snapshot loads the user's complete workout history. The analytics engine
// takes whole snapshots: trends and streaks are defined over full history,
// and period filtering happens inside the engine where it applies.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) ([]models.Workout, bool) {
	workouts, err := s.db.QueryWorkouts(r.Context(), time.Time{}, farFuture(), userIDFromContext(r))
	if err != nil {
		s.log.Error("loading workout snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return workouts, true
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseID")
	workouts, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.BuildHistory(workouts, exerciseID))
}

func (s *Server) handleExerciseTrend(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseID")
	workouts, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	history := analytics.BuildHistory(workouts, exerciseID)
	writeJSON(w, http.StatusOK, analytics.ClassifyTrendWithThreshold(history, s.trendThreshold))
}

func (s *Server) handleMuscleDistribution(w http.ResponseWriter, r *http.Request) {
	mode := analytics.BySets
	if r.URL.Query().Get("mode") == string(analytics.ByVolume) {
		mode = analytics.ByVolume
	}

	workouts, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	metadata, err := s.db.GetExerciseMetadata(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	shares := analytics.AggregateByMuscle(workouts, metadata, mode)
	writeJSON(w, http.StatusOK, map[string]any{
		"distribution": shares,
		"intensity":    analytics.IntensityByMuscle(shares),
	})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	period, err := s.requestPeriod(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.BuildHeatmap(workouts, period, s.now()))
}

func (s *Server) handleComparePeriods(w http.ResponseWriter, r *http.Request) {
	period, err := s.requestPeriod(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	uid := userIDFromContext(r)
	days := period.Days()
	prevStart := period.Start.AddDate(0, 0, -days)

	current, err := s.db.QueryWorkouts(r.Context(), period.Start, period.End.AddDate(0, 0, 1), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	previous, err := s.db.QueryWorkouts(r.Context(), prevStart, period.Start, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, analytics.ComparePeriods(current, previous))
}

// requestPeriod resolves the period query parameters: either a named preset
// or explicit start/end dates. Without parameters it defaults to the last
// 90 days.
func (s *Server) requestPeriod(r *http.Request) (analytics.Period, error) {
	if preset := r.URL.Query().Get("period"); preset != "" {
		return analytics.ResolvePeriod(preset, s.now(), s.loc)
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" && endStr == "" {
		return analytics.ResolvePeriod(analytics.PresetLast90Days, s.now(), s.loc)
	}
	if startStr == "" {
		return analytics.Period{}, errors.New("start is required when end is given")
	}

	start, err := parseFlexTime(startStr)
	if err != nil {
		return analytics.Period{}, err
	}
	end := s.now()
	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return analytics.Period{}, err
		}
	}
	return analytics.Period{Start: start.In(s.loc), End: end.In(s.loc)}, nil
}
