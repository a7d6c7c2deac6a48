package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/liftlens/internal/config"
	"github.com/claude/liftlens/internal/importer"
	"github.com/claude/liftlens/internal/models"
	"github.com/claude/liftlens/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	exportPath := flag.String("path", "", "directory containing strength-log CSV exports (required)")
	serverURL := flag.String("server", "", "LiftLens server URL (e.g. https://liftlens.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("LIFTLENS_AUTH_API_KEY"), "API key for the ingest endpoint")
	direct := flag.Bool("direct", false, "insert straight into Postgres instead of posting to a server")
	configPath := flag.String("config", "config.yaml", "path to config file (used with -direct)")
	timezone := flag.String("timezone", "", "IANA timezone for session dates (default: local)")
	dryRun := flag.Bool("dry-run", false, "parse and report counts without sending anything")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftlens-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlens-import -path <export dir> (-server <URL> -api-key <key> | -direct -config config.yaml) [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*exportPath)
	if err != nil || !info.IsDir() {
		log.Error("export path does not exist or is not a directory", "path", *exportPath)
		os.Exit(1)
	}

	loc := time.Local
	if *timezone != "" {
		loc, err = time.LoadLocation(*timezone)
		if err != nil {
			log.Error("invalid timezone", "timezone", *timezone, "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	var sink importer.Sink
	switch {
	case *dryRun:
		// No sink needed; the importer stops before sending.
	case *direct:
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(ctx, dsn)
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		log.Info("database connected")
		sink = &directSink{db: db}
	case *serverURL != "":
		sink = importer.NewClient(strings.TrimRight(*serverURL, "/"), *apiKey)
	default:
		fmt.Fprintf(os.Stderr, "Error: either -server or -direct is required (or use -dry-run)\n")
		os.Exit(1)
	}

	// State database lives next to the user's other dotfiles.
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := importer.OpenStateDB(filepath.Join(homeDir, ".liftlens"))
	if err != nil {
		log.Error("failed to open state db", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode — nothing will be sent")
	}

	im := importer.New(sink, state, *exportPath, loc, *dryRun, log)
	stats, err := im.Run(ctx)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_total", stats.FilesTotal,
		"files_imported", stats.FilesImported,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"workouts_sent", stats.WorkoutsSent,
		"workouts_duplicate", stats.WorkoutsDuplicate,
	)
}

// directSink inserts workouts straight into Postgres for the dev user.
type directSink struct {
	db *storage.DB
}

func (s *directSink) SendWorkout(ctx context.Context, w models.Workout) (bool, error) {
	w.UserID = 1
	if err := w.Validate(); err != nil {
		return false, err
	}
	return s.db.InsertWorkout(ctx, w)
}
