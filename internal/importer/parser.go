package importer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlens/internal/models"
	"github.com/google/uuid"
)

// Strength-log exports are semicolon-separated, one row per set:
//
//	date;exercise;set_type;weight_kg;reps;rpe
//
// The date is either "2006-01-02" or "2006-01-02 15:04". Weights and RPE
// accept decimal commas ("102,5"). RPE may be blank. An optional header row
// starting with "date" is skipped.

const csvColumns = 6

// ParseCSV reads a strength-log export and groups rows by session date into
// one completed workout per date.
func ParseCSV(r io.Reader, loc *time.Location) ([]models.Workout, error) {
	scanner := bufio.NewScanner(r)

	type sessionKey = string
	sessions := map[sessionKey]*models.Workout{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if lineNo == 1 && strings.HasPrefix(strings.ToLower(line), "date;") {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) != csvColumns {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineNo, csvColumns, len(fields))
		}

		startedAt, err := parseSessionDate(strings.TrimSpace(fields[0]), loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		exerciseName := strings.TrimSpace(fields[1])
		if exerciseName == "" {
			return nil, fmt.Errorf("line %d: empty exercise", lineNo)
		}

		weight, err := parseDecimal(fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid weight %q", lineNo, fields[3])
		}
		reps, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid reps %q", lineNo, fields[4])
		}

		var rpe *float64
		if strings.TrimSpace(fields[5]) != "" {
			v, err := parseDecimal(fields[5])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid rpe %q", lineNo, fields[5])
			}
			rpe = &v
		}

		set := models.Set{
			Weight: weight,
			Reps:   reps,
			RPE:    rpe,
			Type:   parseSetType(fields[2]),
		}

		key := startedAt.Format("2006-01-02")
		w, ok := sessions[key]
		if !ok {
			w = &models.Workout{
				ID:        sessionID(key),
				Status:    models.StatusCompleted,
				StartedAt: startedAt,
			}
			sessions[key] = w
		}
		if startedAt.Before(w.StartedAt) {
			w.StartedAt = startedAt
		}

		appendSet(w, slugify(exerciseName), exerciseName, set)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	workouts := make([]models.Workout, 0, len(sessions))
	for _, w := range sessions {
		completed := w.StartedAt
		w.CompletedAt = &completed
		w.TotalVolume = w.ComputeTotalVolume()
		workouts = append(workouts, *w)
	}
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].StartedAt.Before(workouts[j].StartedAt)
	})
	return workouts, nil
}

// sessionID derives a stable workout ID from the session date so re-importing
// the same export maps to the same row and the server dedupes it.
func sessionID(dateKey string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("liftlens://import/"+dateKey))
}

func appendSet(w *models.Workout, exerciseID, exerciseName string, set models.Set) {
	for i := range w.Exercises {
		if w.Exercises[i].ExerciseID == exerciseID {
			w.Exercises[i].Sets = append(w.Exercises[i].Sets, set)
			return
		}
	}
	w.Exercises = append(w.Exercises, models.ExerciseEntry{
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		Sets:         []models.Set{set},
	})
}

func parseSessionDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

func parseSetType(s string) models.SetType {
	switch models.SetType(strings.ToLower(strings.TrimSpace(s))) {
	case models.SetWarmup:
		return models.SetWarmup
	case models.SetDropset:
		return models.SetDropset
	case models.SetFailure:
		return models.SetFailure
	default:
		return models.SetNormal
	}
}

// parseDecimal converts a decimal string to float64, accepting both decimal
// points and European decimal commas. "102,5" -> 102.5
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

// slugify turns an exercise name into a stable identifier.
// "Barbell Bench Press" -> "barbell-bench-press"
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
