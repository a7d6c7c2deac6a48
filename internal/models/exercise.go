package models

// MuscleOther is the bucket for exercises with missing or unknown metadata.
// Aggregations must never drop a set just because its exercise is uncatalogued.
const MuscleOther = "other"

// ExerciseMetadata is the static catalog entry for an exercise, supplied by
// the exercise catalog rather than derived from workout data.
type ExerciseMetadata struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PrimaryMuscle string `json:"primary_muscle"`
	Equipment     string `json:"equipment"`
}
