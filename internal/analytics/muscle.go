package analytics

import (
	"sort"

	"github.com/claude/liftlens/internal/models"
)

// VolumeMode selects what AggregateByMuscle accumulates per muscle group.
type VolumeMode string

const (
	// BySets counts sets per muscle.
	BySets VolumeMode = "sets"
	// ByVolume sums weight×reps per muscle.
	ByVolume VolumeMode = "volume"
)

// MuscleShare is one muscle group's slice of the training distribution.
type MuscleShare struct {
	Muscle     string  `json:"muscle"`
	Sets       int     `json:"sets"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// AggregateByMuscle distributes every set in the completed workouts across
// primary muscle groups. Exercises missing from the metadata catalog land in
// the "other" bucket rather than being dropped.
//
// The result is sorted by value descending, ties broken by muscle name, and
// percentages sum to 100 (within float rounding) for non-empty input. A zero
// total yields an empty slice — never entries with NaN percentages.
func AggregateByMuscle(workouts []models.Workout, metadataByID map[string]models.ExerciseMetadata, mode VolumeMode) []MuscleShare {
	type bucket struct {
		sets  int
		value float64
	}
	buckets := make(map[string]*bucket)

	for _, w := range workouts {
		if w.Status != models.StatusCompleted {
			continue
		}
		for _, ex := range w.Exercises {
			// An entry without sets contributes nothing; creating its bucket
			// would leak a zero-value share into the distribution.
			if len(ex.Sets) == 0 {
				continue
			}
			muscle := models.MuscleOther
			if meta, ok := metadataByID[ex.ExerciseID]; ok && meta.PrimaryMuscle != "" {
				muscle = meta.PrimaryMuscle
			}
			b := buckets[muscle]
			if b == nil {
				b = &bucket{}
				buckets[muscle] = b
			}
			for _, s := range ex.Sets {
				b.sets++
				if mode == ByVolume {
					b.value += s.Volume()
				} else {
					b.value++
				}
			}
		}
	}

	var total float64
	for _, b := range buckets {
		total += b.value
	}
	if total == 0 {
		return nil
	}

	shares := make([]MuscleShare, 0, len(buckets))
	for muscle, b := range buckets {
		shares = append(shares, MuscleShare{
			Muscle:     muscle,
			Sets:       b.sets,
			Value:      b.value,
			Percentage: 100 * b.value / total,
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Value != shares[j].Value {
			return shares[i].Value > shares[j].Value
		}
		return shares[i].Muscle < shares[j].Muscle
	})
	return shares
}

// IntensityByMuscle maps each muscle's value linearly into [0,1] relative to
// the maximum value in the distribution. This is the single source of truth
// for body-map highlighting opacity: every visualization that shades muscles
// must consume this, so no two call sites disagree on which muscle is the
// most trained.
func IntensityByMuscle(shares []MuscleShare) map[string]float64 {
	intensity := make(map[string]float64, len(shares))
	var max float64
	for _, s := range shares {
		if s.Value > max {
			max = s.Value
		}
	}
	if max == 0 {
		return intensity
	}
	for _, s := range shares {
		intensity[s.Muscle] = s.Value / max
	}
	return intensity
}
