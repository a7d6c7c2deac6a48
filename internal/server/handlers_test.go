package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlens/internal/analytics"
)

func testServer() *Server {
	return &Server{
		loc: time.UTC,
		now: func() time.Time {
			return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
		},
	}
}

// TestParseTimeRangeDefault verifies that without parameters the range covers
// the full history.
func TestParseTimeRangeDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange: %v", err)
	}
	if !start.IsZero() {
		t.Errorf("start = %v, want zero time", start)
	}
	if end.Year() != 9999 {
		t.Errorf("end year = %d, want 9999", end.Year())
	}
}

// TestParseTimeRangeDateOnly verifies that a date-only end parameter covers
// the whole end day.
func TestParseTimeRangeDateOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts?start=2024-01-01&end=2024-01-31", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange: %v", err)
	}
	if start.Day() != 1 {
		t.Errorf("start day = %d, want 1", start.Day())
	}
	// End should roll over to Feb 1 so Jan 31 workouts are included.
	if end.Month() != time.February || end.Day() != 1 {
		t.Errorf("end = %v, want 2024-02-01", end)
	}
}

// TestParseTimeRangeInvalid verifies that garbage timestamps are rejected.
func TestParseTimeRangeInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts?start=yesterday", nil)
	if _, _, err := parseTimeRange(req); err == nil {
		t.Error("expected error for invalid start parameter")
	}
}

// TestParseFlexTime verifies both accepted timestamp formats.
func TestParseFlexTime(t *testing.T) {
	got, err := parseFlexTime("2024-03-15T10:30:00Z")
	if err != nil {
		t.Fatalf("RFC3339 parse: %v", err)
	}
	if got.Hour() != 10 {
		t.Errorf("hour = %d, want 10", got.Hour())
	}

	got, err = parseFlexTime("2024-03-15")
	if err != nil {
		t.Fatalf("date-only parse: %v", err)
	}
	if got.Day() != 15 {
		t.Errorf("day = %d, want 15", got.Day())
	}

	if _, err := parseFlexTime("not-a-date"); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}

// TestRequestPeriodPreset verifies that a named preset resolves against the
// server clock.
func TestRequestPeriodPreset(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/heatmap?period=last_30_days", nil)

	period, err := s.requestPeriod(req)
	if err != nil {
		t.Fatalf("requestPeriod: %v", err)
	}
	if period.Days() != 30 {
		t.Errorf("Days() = %d, want 30", period.Days())
	}
	if period.End.Day() != 15 || period.End.Month() != time.June {
		t.Errorf("end = %v, want 2024-06-15", period.End)
	}
}

// TestRequestPeriodDefault verifies the fallback window when no parameters
// are supplied.
func TestRequestPeriodDefault(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/heatmap", nil)

	period, err := s.requestPeriod(req)
	if err != nil {
		t.Fatalf("requestPeriod: %v", err)
	}
	if period.Days() != 90 {
		t.Errorf("Days() = %d, want 90", period.Days())
	}
}

// TestRequestPeriodExplicit verifies explicit start/end dates.
func TestRequestPeriodExplicit(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/heatmap?start=2024-01-01&end=2024-03-31", nil)

	period, err := s.requestPeriod(req)
	if err != nil {
		t.Fatalf("requestPeriod: %v", err)
	}
	want := analytics.Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	if !period.Start.Equal(want.Start) || !period.End.Equal(want.End) {
		t.Errorf("period = %v..%v, want %v..%v", period.Start, period.End, want.Start, want.End)
	}
}

// TestRequestPeriodEndOnly verifies that an end without a start fails with
// a message naming the missing parameter, not a bare time-parse error.
func TestRequestPeriodEndOnly(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/heatmap?end=2024-03-31", nil)

	_, err := s.requestPeriod(req)
	if err == nil {
		t.Fatal("expected error for end without start")
	}
	if !strings.Contains(err.Error(), "start is required") {
		t.Errorf("error = %q, want it to name the missing start", err)
	}
}

// TestRequestPeriodUnknownPreset verifies unknown presets are rejected.
func TestRequestPeriodUnknownPreset(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/heatmap?period=fortnight", nil)

	if _, err := s.requestPeriod(req); err == nil {
		t.Error("expected error for unknown preset")
	}
}

// TestWriteJSON verifies the response helper sets status and content type.
func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusTeapot, map[string]string{"hello": "world"})

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}
