package analytics

import (
	"math"

	"github.com/claude/liftlens/internal/models"
)

// PeriodMetrics summarizes one comparison window.
type PeriodMetrics struct {
	Volume    float64 `json:"volume_kg"`
	Workouts  int     `json:"workouts"`
	AvgVolume float64 `json:"avg_volume_kg"`
}

// PeriodChange holds current-vs-previous deltas. The percentage fields are
// whole percent; Workouts is a plain count difference, matching how the
// comparison chart labels it.
type PeriodChange struct {
	VolumePercentage    int `json:"volume_percentage"`
	Workouts            int `json:"workouts"`
	AvgVolumePercentage int `json:"avg_volume_percentage"`
}

// Comparison is the result of comparing two adjacent time windows.
type Comparison struct {
	CurrentPeriod  PeriodMetrics `json:"current_period"`
	PreviousPeriod PeriodMetrics `json:"previous_period"`
	Change         PeriodChange  `json:"change"`
}

// ComparePeriods compares the completed workouts of two adjacent windows.
//
// When the previous window has zero volume and the current one does not, the
// volume change is reported as the +100 sentinel — "new activity", not an
// infinity. Same rule for average volume.
func ComparePeriods(current, previous []models.Workout) Comparison {
	cur := periodMetrics(current)
	prev := periodMetrics(previous)

	return Comparison{
		CurrentPeriod:  cur,
		PreviousPeriod: prev,
		Change: PeriodChange{
			VolumePercentage:    percentChange(cur.Volume, prev.Volume),
			Workouts:            cur.Workouts - prev.Workouts,
			AvgVolumePercentage: percentChange(cur.AvgVolume, prev.AvgVolume),
		},
	}
}

func periodMetrics(workouts []models.Workout) PeriodMetrics {
	var m PeriodMetrics
	for _, w := range workouts {
		if w.Status != models.StatusCompleted {
			continue
		}
		m.Volume += w.TotalVolume
		m.Workouts++
	}
	if m.Workouts > 0 {
		m.AvgVolume = m.Volume / float64(m.Workouts)
	}
	return m
}

// percentChange rounds to whole percent. A zero baseline yields 0 when the
// current value is also zero, and the +100 sentinel otherwise.
func percentChange(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}
