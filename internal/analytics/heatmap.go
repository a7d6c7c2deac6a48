package analytics

import (
	"sort"
	"time"

	"github.com/claude/liftlens/internal/models"
)

// HeatmapLegendLevels is the number of intensity buckets (0 = no activity
// through 5 = busiest), matching the legend rendered next to the grid.
const HeatmapLegendLevels = 6

// maxHeatmapDays caps how much history one heatmap renders. Requests for a
// longer span are silently clamped to the most recent year and the result is
// flagged, so the caller can tell the user.
const maxHeatmapDays = 365

// HeatmapCell is one day in the contribution grid.
type HeatmapCell struct {
	Date           time.Time `json:"date"`
	Count          int       `json:"count"`
	IntensityLevel int       `json:"intensity_level"`
	IsToday        bool      `json:"is_today"`
	IsInPeriod     bool      `json:"is_in_period"`
}

// Heatmap is a calendar contribution grid plus its summary statistics.
//
// Cells has exactly 7 rows (Monday through Sunday) and one column per ISO
// week, so the grid is always rectangular. Cells that fall inside a bounding
// week but outside the requested period carry IsInPeriod=false; renderers
// show them dimmed rather than omitting them.
type Heatmap struct {
	Cells                  [][]HeatmapCell `json:"cells"`
	TotalWeeks             int             `json:"total_weeks"`
	IsCappedToYear         bool            `json:"is_capped_to_year"`
	LegendLevels           int             `json:"legend_levels"`
	LongestStreak          int             `json:"longest_streak"`
	AverageWorkoutsPerWeek float64         `json:"average_workouts_per_week"`
	MostActiveDay          string          `json:"most_active_day"`
}

// BuildHeatmap buckets completed workouts into a Monday-first weekly grid
// over the requested period. Bucketing is by local calendar day in the
// period's location. now determines which cell is flagged IsToday.
//
// LongestStreak is deliberately computed over the full workout snapshot, not
// just the period — the product copy reads "best streak", meaning all-time.
func BuildHeatmap(workouts []models.Workout, period Period, now time.Time) Heatmap {
	loc := period.Start.Location()

	start := dateOnly(period.Start, loc)
	end := dateOnly(period.End, loc)
	if end.Before(start) {
		start, end = end, start
	}

	capped := false
	if daysBetween(start, end)+1 > maxHeatmapDays {
		start = end.AddDate(0, 0, -(maxHeatmapDays - 1))
		capped = true
	}

	// Count completed workouts per local calendar day, over the full
	// snapshot so the streak is all-time.
	counts := make(map[time.Time]int)
	for _, w := range workouts {
		if w.Status != models.StatusCompleted || w.CompletedAt == nil {
			continue
		}
		counts[dateOnly(*w.CompletedAt, loc)]++
	}

	// Bounding weeks: back up to the Monday on or before start, forward to
	// the Sunday on or after end.
	gridStart := start.AddDate(0, 0, -mondayIndex(start.Weekday()))
	gridEnd := end.AddDate(0, 0, 6-mondayIndex(end.Weekday()))
	totalWeeks := (daysBetween(gridStart, gridEnd) + 1) / 7

	today := dateOnly(now, loc)

	cells := make([][]HeatmapCell, 7)
	for row := range cells {
		cells[row] = make([]HeatmapCell, totalWeeks)
	}

	var inPeriodTotal int
	weekdayTotals := [7]int{}

	for day, offset := gridStart, 0; !day.After(gridEnd); day, offset = day.AddDate(0, 0, 1), offset+1 {
		row := offset % 7
		col := offset / 7
		count := counts[day]
		inPeriod := !day.Before(start) && !day.After(end)

		cells[row][col] = HeatmapCell{
			Date:           day,
			Count:          count,
			IntensityLevel: intensityLevel(count),
			IsToday:        day.Equal(today),
			IsInPeriod:     inPeriod,
		}
		if inPeriod {
			inPeriodTotal += count
			weekdayTotals[row] += count
		}
	}

	periodWeeks := (daysBetween(start, end) + 7) / 7

	return Heatmap{
		Cells:                  cells,
		TotalWeeks:             totalWeeks,
		IsCappedToYear:         capped,
		LegendLevels:           HeatmapLegendLevels,
		LongestStreak:          longestStreak(counts),
		AverageWorkoutsPerWeek: round1(float64(inPeriodTotal) / float64(periodWeeks)),
		MostActiveDay:          mostActiveDay(weekdayTotals),
	}
}

// intensityLevel discretizes a day's workout count into the legend buckets.
// Fixed thresholds: the legend shows "1, 2, 3, 4, 5+", so the mapping must
// match it exactly rather than being re-derived per dataset.
func intensityLevel(count int) int {
	if count >= 5 {
		return 5
	}
	if count < 0 {
		return 0
	}
	return count
}

// longestStreak finds the maximum run of consecutive calendar days with at
// least one workout.
func longestStreak(counts map[time.Time]int) int {
	days := make([]time.Time, 0, len(counts))
	for day, n := range counts {
		if n >= 1 {
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}

// weekdayNames is Monday-first, matching the grid's row order.
var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// mostActiveDay returns the weekday with the highest in-period workout
// total, or "" when the period has no workouts. Ties go to the earliest
// weekday in Monday-first order.
func mostActiveDay(totals [7]int) string {
	best := 0
	for i := 1; i < 7; i++ {
		if totals[i] > totals[best] {
			best = i
		}
	}
	if totals[best] == 0 {
		return ""
	}
	return weekdayNames[best]
}

// mondayIndex maps time.Weekday (Sunday=0) onto the grid's Monday-first rows.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// daysBetween counts calendar days from a to b. Both must already be
// midnight-normalized in the same location; rounding absorbs DST offsets.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(24*time.Hour).Hours() / 24)
}
