package analytics

import (
	"fmt"
	"time"
)

// Period is a requested date range. Calendar-day bucketing uses the location
// of Start, so a workout finished at 23:50 local time lands on that local
// date even when UTC has already rolled over.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days the period spans, inclusive.
// Rounding absorbs DST transitions, where a midnight-to-midnight span is an
// hour short or long of a multiple of 24h.
func (p Period) Days() int {
	loc := p.Start.Location()
	start := dateOnly(p.Start, loc)
	end := dateOnly(p.End, loc)
	return int(end.Sub(start).Round(24*time.Hour).Hours()/24) + 1
}

// Named period presets accepted by ResolvePeriod, matching the range picker
// in the presentation layer.
const (
	PresetLast30Days = "last_30_days"
	PresetLast90Days = "last_90_days"
	PresetThisYear   = "this_year"
	PresetLastYear   = "last_year"
)

// ResolvePeriod turns a named preset into a concrete date range anchored at
// now, expressed in loc.
func ResolvePeriod(preset string, now time.Time, loc *time.Location) (Period, error) {
	today := dateOnly(now, loc)
	switch preset {
	case PresetLast30Days:
		return Period{Start: today.AddDate(0, 0, -29), End: today}, nil
	case PresetLast90Days:
		return Period{Start: today.AddDate(0, 0, -89), End: today}, nil
	case PresetThisYear:
		return Period{
			Start: time.Date(today.Year(), 1, 1, 0, 0, 0, 0, loc),
			End:   today,
		}, nil
	case PresetLastYear:
		return Period{
			Start: time.Date(today.Year()-1, 1, 1, 0, 0, 0, 0, loc),
			End:   time.Date(today.Year()-1, 12, 31, 0, 0, 0, 0, loc),
		}, nil
	default:
		return Period{}, fmt.Errorf("unknown period preset %q", preset)
	}
}

// dateOnly truncates t to midnight of its calendar day in loc.
func dateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
