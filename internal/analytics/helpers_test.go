package analytics

import (
	"time"

	"github.com/claude/liftlens/internal/models"
	"github.com/google/uuid"
)

// completedWorkout builds a completed workout from exercise entries,
// with TotalVolume derived from the sets.
func completedWorkout(completedAt time.Time, exercises ...models.ExerciseEntry) models.Workout {
	w := models.Workout{
		ID:          uuid.New(),
		UserID:      1,
		Status:      models.StatusCompleted,
		StartedAt:   completedAt.Add(-time.Hour),
		CompletedAt: &completedAt,
		Exercises:   exercises,
	}
	w.TotalVolume = w.ComputeTotalVolume()
	return w
}

// entry builds an exercise entry of normal sets from (weight, reps) pairs.
func entry(exerciseID string, sets ...models.Set) models.ExerciseEntry {
	return models.ExerciseEntry{
		ExerciseID:   exerciseID,
		ExerciseName: exerciseID,
		Sets:         sets,
	}
}

func set(weight float64, reps int) models.Set {
	return models.Set{Weight: weight, Reps: reps, Type: models.SetNormal}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func f64(v float64) *float64 { return &v }
