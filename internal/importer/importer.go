package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Stats tracks import progress.
type Stats struct {
	FilesTotal    int
	FilesImported int
	FilesSkipped  int
	FilesErrored  int

	WorkoutsSent      int
	WorkoutsDuplicate int
}

// Importer walks a directory of strength-log CSV exports, parses each file
// into workouts, and hands them to a Sink. The state DB is consulted so
// already-imported files are skipped.
type Importer struct {
	sink   Sink
	state  *StateDB
	dir    string
	loc    *time.Location
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed.
func New(sink Sink, state *StateDB, dir string, loc *time.Location, dryRun bool, log *slog.Logger) *Importer {
	if loc == nil {
		loc = time.Local
	}
	return &Importer{
		sink:   sink,
		state:  state,
		dir:    dir,
		loc:    loc,
		dryRun: dryRun,
		log:    log,
	}
}

// Run executes the import pipeline over every .csv file in the directory.
func (im *Importer) Run(ctx context.Context) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(im.dir, "*.csv"))
	if err != nil {
		return &im.stats, fmt.Errorf("scanning %s: %w", im.dir, err)
	}

	for _, f := range files {
		im.stats.FilesTotal++
		if err := im.processFile(ctx, f); err != nil {
			im.stats.FilesErrored++
			im.log.Error("importing file", "file", f, "error", err)
		}
	}

	return &im.stats, nil
}

func (im *Importer) processFile(ctx context.Context, path string) error {
	relPath, err := filepath.Rel(im.dir, path)
	if err != nil {
		relPath = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	var hash string
	if im.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			return fmt.Errorf("hashing: %w", err)
		}
		imported, err := im.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("state lookup: %w", err)
		}
		if imported {
			im.stats.FilesSkipped++
			im.log.Debug("skipping already-imported file", "file", relPath)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	workouts, err := ParseCSV(f, im.loc)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if im.dryRun {
		im.log.Info("dry run, not sending", "file", relPath, "workouts", len(workouts))
		im.stats.FilesSkipped++
		return nil
	}

	for _, w := range workouts {
		inserted, err := im.sink.SendWorkout(ctx, w)
		if err != nil {
			return fmt.Errorf("sending workout %s: %w", w.ID, err)
		}
		if inserted {
			im.stats.WorkoutsSent++
		} else {
			im.stats.WorkoutsDuplicate++
		}
	}

	if im.state != nil {
		if err := im.state.MarkImported(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("recording state: %w", err)
		}
	}

	im.stats.FilesImported++
	im.log.Info("imported file", "file", relPath, "workouts", len(workouts))
	return nil
}
