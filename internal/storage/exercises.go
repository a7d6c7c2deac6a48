package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftlens/internal/models"
)

// GetExerciseMetadata returns the full exercise catalog keyed by exercise ID,
// the lookup the muscle aggregator resolves primary muscles through.
func (db *DB) GetExerciseMetadata(ctx context.Context) (map[string]models.ExerciseMetadata, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, primary_muscle, equipment FROM exercises`)
	if err != nil {
		return nil, fmt.Errorf("querying exercise catalog: %w", err)
	}
	defer rows.Close()

	catalog := make(map[string]models.ExerciseMetadata)
	for rows.Next() {
		var m models.ExerciseMetadata
		if err := rows.Scan(&m.ID, &m.Name, &m.PrimaryMuscle, &m.Equipment); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		catalog[m.ID] = m
	}
	return catalog, rows.Err()
}

// ListExercises returns the catalog ordered by name for display.
func (db *DB) ListExercises(ctx context.Context) ([]models.ExerciseMetadata, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, primary_muscle, equipment FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseMetadata
	for rows.Next() {
		var m models.ExerciseMetadata
		if err := rows.Scan(&m.ID, &m.Name, &m.PrimaryMuscle, &m.Equipment); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// UpsertExerciseMetadata inserts or updates a catalog entry.
func (db *DB) UpsertExerciseMetadata(ctx context.Context, m models.ExerciseMetadata) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, primary_muscle, equipment)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    primary_muscle = EXCLUDED.primary_muscle,
			    equipment = EXCLUDED.equipment`,
		m.ID, m.Name, m.PrimaryMuscle, m.Equipment)
	if err != nil {
		return fmt.Errorf("upserting exercise %s: %w", m.ID, err)
	}
	return nil
}
