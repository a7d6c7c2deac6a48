package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// WorkoutStatus is the lifecycle state of a workout session.
type WorkoutStatus string

const (
	StatusActive    WorkoutStatus = "active"
	StatusCompleted WorkoutStatus = "completed"
	StatusCancelled WorkoutStatus = "cancelled"
)

// SetType distinguishes working sets from warmups and intensity techniques.
type SetType string

const (
	SetNormal  SetType = "normal"
	SetWarmup  SetType = "warmup"
	SetDropset SetType = "dropset"
	SetFailure SetType = "failure"
)

// Set is one performed repetition block within an exercise entry.
// Immutable once its workout is completed.
type Set struct {
	Weight float64  `json:"weight_kg"`
	Reps   int      `json:"reps"`
	RPE    *float64 `json:"rpe,omitempty"`
	Type   SetType  `json:"type"`
}

// Volume returns weight × reps for this set.
func (s Set) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// ExerciseEntry groups the sets performed for one exercise within a workout.
type ExerciseEntry struct {
	ExerciseID   string `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	Sets         []Set  `json:"sets"`
}

// Workout is one logged training session. While active it accumulates
// exercises and sets; once Status transitions to completed it is frozen and
// becomes an analytics input.
type Workout struct {
	ID          uuid.UUID       `json:"id"`
	UserID      int             `json:"user_id"`
	Status      WorkoutStatus   `json:"status"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Exercises   []ExerciseEntry `json:"exercises"`
	DurationSec *float64        `json:"duration_sec,omitempty"`
	TotalVolume float64         `json:"total_volume_kg"`
}

// ComputeTotalVolume recomputes Σ weight×reps over every set in the workout.
func (w *Workout) ComputeTotalVolume() float64 {
	var total float64
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			total += s.Volume()
		}
	}
	return total
}

// volumeTolerance absorbs float drift between a stored TotalVolume and the
// value recomputed from sets.
const volumeTolerance = 1e-6

// Validate checks basic type expectations on a workout record so malformed
// input fails at the boundary with an error naming the bad record, instead of
// surfacing as a wrong number deep inside a computation.
func (w *Workout) Validate() error {
	switch w.Status {
	case StatusActive, StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("workout %s: invalid status %q", w.ID, w.Status)
	}
	if w.Status == StatusCompleted && w.CompletedAt == nil {
		return fmt.Errorf("workout %s: completed without completed_at", w.ID)
	}
	for i, ex := range w.Exercises {
		if ex.ExerciseID == "" {
			return fmt.Errorf("workout %s: exercise %d has empty exercise_id", w.ID, i)
		}
		for j, s := range ex.Sets {
			if math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) || s.Weight < 0 {
				return fmt.Errorf("workout %s: %s set %d: invalid weight %v", w.ID, ex.ExerciseName, j+1, s.Weight)
			}
			if s.Reps < 1 {
				return fmt.Errorf("workout %s: %s set %d: reps %d < 1", w.ID, ex.ExerciseName, j+1, s.Reps)
			}
			if s.RPE != nil && (*s.RPE < 1 || *s.RPE > 10) {
				return fmt.Errorf("workout %s: %s set %d: RPE %v outside [1,10]", w.ID, ex.ExerciseName, j+1, *s.RPE)
			}
		}
	}
	if recomputed := w.ComputeTotalVolume(); math.Abs(recomputed-w.TotalVolume) > volumeTolerance {
		return fmt.Errorf("workout %s: total_volume %.6f does not match sets (%.6f)", w.ID, w.TotalVolume, recomputed)
	}
	return nil
}
