package analytics

import (
	"testing"
	"time"

	"github.com/claude/liftlens/internal/models"
)

// localDay builds a midnight date in loc.
func localDay(year int, month time.Month, d int, loc *time.Location) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, loc)
}

// workoutsOn builds one completed workout per given completion time.
func workoutsOn(times ...time.Time) []models.Workout {
	var out []models.Workout
	for _, t := range times {
		out = append(out, completedWorkout(t, entry("squat", set(100, 5))))
	}
	return out
}

// TestBuildHeatmap_GridShape verifies the grid is rectangular with 7
// Monday-first rows and bounding-week padding marked out-of-period.
func TestBuildHeatmap_GridShape(t *testing.T) {
	loc := time.UTC
	// 2024-03-06 is a Wednesday, 2024-03-19 a Tuesday: grid must span
	// Monday 03-04 through Sunday 03-24, three ISO weeks.
	period := Period{Start: localDay(2024, 3, 6, loc), End: localDay(2024, 3, 19, loc)}

	hm := BuildHeatmap(nil, period, localDay(2024, 3, 19, loc))
	if len(hm.Cells) != 7 {
		t.Fatalf("rows = %d, want 7", len(hm.Cells))
	}
	if hm.TotalWeeks != 3 {
		t.Fatalf("total weeks = %d, want 3", hm.TotalWeeks)
	}
	for row := range hm.Cells {
		if len(hm.Cells[row]) != hm.TotalWeeks {
			t.Fatalf("row %d has %d columns, want %d", row, len(hm.Cells[row]), hm.TotalWeeks)
		}
	}

	// Monday 03-04 and Tuesday 03-05 pad the first week.
	if hm.Cells[0][0].IsInPeriod {
		t.Errorf("Monday 03-04 marked in-period")
	}
	if !hm.Cells[2][0].IsInPeriod {
		t.Errorf("Wednesday 03-06 not marked in-period")
	}
	if !hm.Cells[0][0].Date.Equal(localDay(2024, 3, 4, loc)) {
		t.Errorf("top-left cell date = %v, want 2024-03-04", hm.Cells[0][0].Date)
	}
	if hm.IsCappedToYear {
		t.Errorf("short period flagged as capped")
	}
}

// TestBuildHeatmap_YearCap verifies the policy that a 400-day request is
// silently capped to the most recent 365 days, with the flag set so the
// caller can disclose the cap.
func TestBuildHeatmap_YearCap(t *testing.T) {
	loc := time.UTC
	end := localDay(2024, 12, 31, loc)
	period := Period{Start: end.AddDate(0, 0, -399), End: end}

	hm := BuildHeatmap(nil, period, end)
	if !hm.IsCappedToYear {
		t.Fatalf("400-day period not flagged as capped")
	}

	var inPeriod int
	var first, last time.Time
	for col := 0; col < hm.TotalWeeks; col++ {
		for row := 0; row < 7; row++ {
			c := hm.Cells[row][col]
			if !c.IsInPeriod {
				continue
			}
			if inPeriod == 0 || c.Date.Before(first) {
				first = c.Date
			}
			if c.Date.After(last) {
				last = c.Date
			}
			inPeriod++
		}
	}
	if inPeriod != 365 {
		t.Errorf("in-period cells = %d, want 365", inPeriod)
	}
	if !last.Equal(end) {
		t.Errorf("latest in-period cell = %v, want %v", last, end)
	}
	if !first.Equal(end.AddDate(0, 0, -364)) {
		t.Errorf("earliest in-period cell = %v, want %v", first, end.AddDate(0, 0, -364))
	}
}

// TestBuildHeatmap_LocalDayBucketing verifies the timezone policy: a workout
// completed at 23:50 local time buckets to that local date even though UTC
// has already rolled to the next day.
func TestBuildHeatmap_LocalDayBucketing(t *testing.T) {
	// In a zone 5 hours behind UTC, 23:50 on Jan 1 is already Jan 2 in UTC.
	locBehind := time.FixedZone("UTC-5", -5*60*60)
	completedAt := time.Date(2024, 1, 1, 23, 50, 0, 0, locBehind)

	period := Period{Start: localDay(2023, 12, 25, locBehind), End: localDay(2024, 1, 7, locBehind)}
	hm := BuildHeatmap(workoutsOn(completedAt), period, localDay(2024, 1, 7, locBehind))

	var jan1, jan2 int
	for col := 0; col < hm.TotalWeeks; col++ {
		for row := 0; row < 7; row++ {
			c := hm.Cells[row][col]
			switch {
			case c.Date.Equal(localDay(2024, 1, 1, locBehind)):
				jan1 = c.Count
			case c.Date.Equal(localDay(2024, 1, 2, locBehind)):
				jan2 = c.Count
			}
		}
	}
	if jan1 != 1 || jan2 != 0 {
		t.Errorf("counts: Jan 1 = %d, Jan 2 = %d, want 1 and 0 (local-day bucketing)", jan1, jan2)
	}
}

// TestBuildHeatmap_Summary verifies streak, weekly average, and most-active
// day over a small fixed dataset.
func TestBuildHeatmap_Summary(t *testing.T) {
	loc := time.UTC
	// Mondays 2024-03-04, 03-11 and a separate 3-day run 03-13..03-15.
	workouts := workoutsOn(
		localDay(2024, 3, 4, loc).Add(18*time.Hour),
		localDay(2024, 3, 11, loc).Add(18*time.Hour),
		localDay(2024, 3, 13, loc).Add(7*time.Hour),
		localDay(2024, 3, 14, loc).Add(18*time.Hour),
		localDay(2024, 3, 15, loc).Add(18*time.Hour),
	)
	period := Period{Start: localDay(2024, 3, 4, loc), End: localDay(2024, 3, 17, loc)}

	hm := BuildHeatmap(workouts, period, localDay(2024, 3, 17, loc))

	if hm.LongestStreak != 3 {
		t.Errorf("longest streak = %d, want 3", hm.LongestStreak)
	}
	// 5 workouts over a 14-day period = 2 weeks.
	if hm.AverageWorkoutsPerWeek != 2.5 {
		t.Errorf("avg per week = %v, want 2.5", hm.AverageWorkoutsPerWeek)
	}
	// Monday has 2 (03-04, 03-11); every other weekday at most 1.
	if hm.MostActiveDay != "Monday" {
		t.Errorf("most active day = %q, want Monday", hm.MostActiveDay)
	}
	if hm.LegendLevels != HeatmapLegendLevels {
		t.Errorf("legend levels = %d, want %d", hm.LegendLevels, HeatmapLegendLevels)
	}
}

// TestBuildHeatmap_EmptyMostActiveDay verifies that a period without any
// workouts reports no most-active day.
func TestBuildHeatmap_EmptyMostActiveDay(t *testing.T) {
	loc := time.UTC
	period := Period{Start: localDay(2024, 3, 4, loc), End: localDay(2024, 3, 10, loc)}
	hm := BuildHeatmap(nil, period, localDay(2024, 3, 10, loc))
	if hm.MostActiveDay != "" {
		t.Errorf("most active day = %q, want empty", hm.MostActiveDay)
	}
}

// TestBuildHeatmap_MostActiveDayTie verifies the Monday-first tie break.
func TestBuildHeatmap_MostActiveDayTie(t *testing.T) {
	loc := time.UTC
	// One workout Wednesday 03-06, one Friday 03-08.
	workouts := workoutsOn(
		localDay(2024, 3, 6, loc).Add(12*time.Hour),
		localDay(2024, 3, 8, loc).Add(12*time.Hour),
	)
	period := Period{Start: localDay(2024, 3, 4, loc), End: localDay(2024, 3, 10, loc)}

	hm := BuildHeatmap(workouts, period, localDay(2024, 3, 10, loc))
	if hm.MostActiveDay != "Wednesday" {
		t.Errorf("most active day = %q, want Wednesday (earliest tied weekday)", hm.MostActiveDay)
	}
}

// TestIntensityLevel verifies the fixed legend thresholds: counts map 1:1 up
// to 4, everything from 5 up saturates at level 5.
func TestIntensityLevel(t *testing.T) {
	cases := []struct {
		count, want int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {9, 5},
	}
	for _, tc := range cases {
		if got := intensityLevel(tc.count); got != tc.want {
			t.Errorf("intensityLevel(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}

// TestBuildHeatmap_TodayFlag verifies that exactly the cell matching now
// carries IsToday.
func TestBuildHeatmap_TodayFlag(t *testing.T) {
	loc := time.UTC
	period := Period{Start: localDay(2024, 3, 4, loc), End: localDay(2024, 3, 10, loc)}
	now := localDay(2024, 3, 7, loc).Add(9 * time.Hour)

	hm := BuildHeatmap(nil, period, now)
	var todays int
	for col := 0; col < hm.TotalWeeks; col++ {
		for row := 0; row < 7; row++ {
			c := hm.Cells[row][col]
			if c.IsToday {
				todays++
				if !c.Date.Equal(localDay(2024, 3, 7, loc)) {
					t.Errorf("IsToday on %v, want 2024-03-07", c.Date)
				}
			}
		}
	}
	if todays != 1 {
		t.Errorf("IsToday cells = %d, want 1", todays)
	}
}
