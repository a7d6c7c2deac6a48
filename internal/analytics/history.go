package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlens/internal/models"
)

// HistoryPoint is one completed workout's contribution to an exercise's
// 1RM history. BestSet and Estimated1RM are nil when no set in the session
// produced a reliable estimate — a data gap, not a zero.
type HistoryPoint struct {
	Date         time.Time    `json:"date"`
	BestSet      *models.Set  `json:"best_set,omitempty"`
	Sets         []models.Set `json:"sets"`
	Estimated1RM *float64     `json:"estimated_1rm,omitempty"`
}

// BuildHistory builds the chronological 1RM history of one exercise from a
// workout snapshot. Only completed workouts containing the exercise
// contribute; each such workout yields exactly one point, so two sessions on
// the same day stay distinct. Points are ordered by completion time
// ascending.
func BuildHistory(workouts []models.Workout, exerciseID string) []HistoryPoint {
	var points []HistoryPoint

	for _, w := range workouts {
		if w.Status != models.StatusCompleted || w.CompletedAt == nil {
			continue
		}
		for _, ex := range w.Exercises {
			if ex.ExerciseID != exerciseID {
				continue
			}
			p := HistoryPoint{
				Date: *w.CompletedAt,
				Sets: ex.Sets,
			}
			if best, est, ok := bestSet(ex.Sets); ok {
				p.BestSet = &best
				p.Estimated1RM = &est
			}
			points = append(points, p)
			break
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// bestSet picks the set with the highest estimated 1RM. Ties go to the
// heavier set, then to the one with more reps. Sets without a reliable
// estimate are skipped; ok is false when none qualifies.
func bestSet(sets []models.Set) (best models.Set, estimate float64, ok bool) {
	for _, s := range sets {
		est, valid := EstimateOneRepMax(s.Weight, s.Reps)
		if !valid {
			continue
		}
		if !ok || est > estimate ||
			(est == estimate && (s.Weight > best.Weight ||
				(s.Weight == best.Weight && s.Reps > best.Reps))) {
			best, estimate, ok = s, est, true
		}
	}
	return best, estimate, ok
}
