package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about a user's stored training data.
type DataStats struct {
	TotalWorkouts     int64             `json:"total_workouts"`
	CompletedWorkouts int64             `json:"completed_workouts"`
	TotalSets         int64             `json:"total_sets"`
	TotalVolumeKg     float64           `json:"total_volume_kg"`
	EarliestWorkout   *time.Time        `json:"earliest_workout"`
	LatestWorkout     *time.Time        `json:"latest_workout"`
	TopExercises      []ExerciseSetStat `json:"top_exercises"`
}

// ExerciseSetStat holds per-exercise set totals for the stats overview.
type ExerciseSetStat struct {
	ExerciseID   string `json:"exercise_id"`
	ExerciseName string `json:"exercise_name"`
	Sets         int64  `json:"sets"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'completed'),
		        COALESCE(SUM(total_volume_kg) FILTER (WHERE status = 'completed'), 0),
		        MIN(started_at), MAX(started_at)
		 FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.CompletedWorkouts, &stats.TotalVolumeKg,
		&stats.EarliestWorkout, &stats.LatestWorkout)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM workout_sets ws
		 JOIN workout_exercises we ON we.id = ws.workout_exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = $1`, userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT we.exercise_id, we.exercise_name, COUNT(ws.id)
		 FROM workout_exercises we
		 JOIN workout_sets ws ON ws.workout_exercise_id = we.id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = $1
		 GROUP BY we.exercise_id, we.exercise_name
		 ORDER BY COUNT(ws.id) DESC
		 LIMIT 10`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseSetStat
		if err := rows.Scan(&s.ExerciseID, &s.ExerciseName, &s.Sets); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
