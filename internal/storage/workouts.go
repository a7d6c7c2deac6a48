package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlens/internal/models"
	"github.com/google/uuid"
)

// InsertWorkout inserts a workout with its exercises and sets in one
// transaction. Returns true if inserted, false if the workout ID already
// exists (idempotent re-uploads).
func (db *DB) InsertWorkout(ctx context.Context, w models.Workout) (bool, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO workouts (id, user_id, status, started_at, completed_at, duration_sec, total_volume_kg)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (id) DO NOTHING`,
		w.ID, w.UserID, string(w.Status), w.StartedAt, w.CompletedAt, w.DurationSec, w.TotalVolume)
	if err != nil {
		return false, fmt.Errorf("inserting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	for pos, ex := range w.Exercises {
		var entryID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO workout_exercises (workout_id, position, exercise_id, exercise_name)
			 VALUES ($1,$2,$3,$4)
			 RETURNING id`,
			w.ID, pos, ex.ExerciseID, ex.ExerciseName).Scan(&entryID)
		if err != nil {
			return false, fmt.Errorf("inserting exercise entry %s: %w", ex.ExerciseID, err)
		}
		if len(ex.Sets) == 0 {
			continue
		}

		query := `INSERT INTO workout_sets (workout_exercise_id, set_number, weight_kg, reps, rpe, set_type) VALUES `
		args := make([]any, 0, len(ex.Sets)*6)
		valueStrings := make([]string, 0, len(ex.Sets))
		for i, s := range ex.Sets {
			base := i * 6
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6,
			))
			args = append(args, entryID, i+1, s.Weight, s.Reps, s.RPE, string(s.Type))
		}
		if _, err := tx.Exec(ctx, query+strings.Join(valueStrings, ","), args...); err != nil {
			return false, fmt.Errorf("inserting sets for %s: %w", ex.ExerciseID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("committing workout: %w", err)
	}
	return true, nil
}

// QueryWorkouts materializes full workout snapshots (with exercises and
// sets) for a user within a time range, ordered by completion time
// ascending — the shape the analytics engine consumes directly.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, status, started_at, completed_at, duration_sec, total_volume_kg
		 FROM workouts
		 WHERE started_at >= $1 AND started_at < $2 AND user_id = $3
		 ORDER BY COALESCE(completed_at, started_at) ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	if err := db.loadExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetWorkout retrieves a single workout snapshot by ID.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, status, started_at, completed_at, duration_sec, total_volume_kg
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		workoutID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, fmt.Errorf("workout %s not found", workoutID)
	}
	if err := db.loadExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanWorkouts(rows pgxRows) ([]models.Workout, error) {
	var result []models.Workout
	for rows.Next() {
		var w models.Workout
		var status string
		if err := rows.Scan(&w.ID, &w.UserID, &status, &w.StartedAt, &w.CompletedAt, &w.DurationSec, &w.TotalVolume); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.Status = models.WorkoutStatus(status)
		result = append(result, w)
	}
	return result, rows.Err()
}

// loadExercises attaches exercise entries and sets to the given workouts.
func (db *DB) loadExercises(ctx context.Context, workouts []models.Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(workouts))
	index := make(map[uuid.UUID]int, len(workouts))
	for i, w := range workouts {
		ids = append(ids, w.ID)
		index[w.ID] = i
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT we.workout_id, we.position, we.exercise_id, we.exercise_name,
		        ws.weight_kg, ws.reps, ws.rpe, ws.set_type
		 FROM workout_exercises we
		 LEFT JOIN workout_sets ws ON ws.workout_exercise_id = we.id
		 WHERE we.workout_id = ANY($1)
		 ORDER BY we.workout_id, we.position ASC, ws.set_number ASC`,
		ids)
	if err != nil {
		return fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			workoutID  uuid.UUID
			position   int
			exerciseID string
			name       string
			weight     *float64
			reps       *int
			rpe        *float64
			setType    *string
		)
		if err := rows.Scan(&workoutID, &position, &exerciseID, &name, &weight, &reps, &rpe, &setType); err != nil {
			return fmt.Errorf("scanning set: %w", err)
		}
		w := &workouts[index[workoutID]]
		for len(w.Exercises) <= position {
			w.Exercises = append(w.Exercises, models.ExerciseEntry{})
		}
		entry := &w.Exercises[position]
		if entry.ExerciseID == "" {
			entry.ExerciseID = exerciseID
			entry.ExerciseName = name
		}
		// LEFT JOIN yields a NULL set row for an entry without sets.
		if weight != nil && reps != nil {
			s := models.Set{Weight: *weight, Reps: *reps, RPE: rpe}
			if setType != nil {
				s.Type = models.SetType(*setType)
			}
			entry.Sets = append(entry.Sets, s)
		}
	}
	return rows.Err()
}
