package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/bxtheory/examplan/internal/artifact"
	"github.com/bxtheory/examplan/internal/cli"
	"github.com/bxtheory/examplan/internal/db"
	"github.com/bxtheory/examplan/internal/intelligence"
	"github.com/bxtheory/examplan/internal/llm"
	"github.com/bxtheory/examplan/internal/repository"
	"github.com/bxtheory/examplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is a convenience for API keys;
	// missing is fine.
	_ = godotenv.Load()

	// DB path: env var or default ~/.examplan/examplan.db
	dbPath := os.Getenv("EXAMPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".examplan", "examplan.db")
	}

	// Artifacts land in the working directory unless told otherwise.
	artifactDir := os.Getenv("EXAMPLAN_ARTIFACTS")
	if artifactDir == "" {
		artifactDir = "."
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	artifactRepo := repository.NewSQLiteArtifactRepo(database)
	runRepo := repository.NewSQLiteRunRepo(database)

	// Intelligence: LLM extractor/generator when enabled, deterministic
	// implementations otherwise. The pacing generator always backs the
	// pipeline so a run can succeed without any model.
	var (
		extractor intelligence.CourseExtractor = intelligence.NewHeuristicExtractor()
		generator intelligence.ScheduleGenerator
	)
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client := llm.NewClient(llmCfg, observer)
		extractor = intelligence.NewLLMExtractor(client)
		generator = intelligence.NewLLMGenerator(client)
	}

	var observers []service.UseCaseObserver
	if v := os.Getenv("EXAMPLAN_LOG"); v != "" && v != "0" && v != "false" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	newPlanSvc := func(dir string) service.PlanService {
		return service.NewPlanService(
			extractor,
			generator,
			intelligence.NewPacingGenerator(),
			artifact.NewFSStore(dir, artifactRepo),
			runRepo,
			observers...,
		)
	}

	app := &cli.App{
		Plan:    newPlanSvc(artifactDir),
		History: service.NewHistoryService(runRepo, artifactRepo),
		PlanTo:  newPlanSvc,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
