package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bxtheory/examplan/internal/artifact"
	"github.com/bxtheory/examplan/internal/contract"
	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/intelligence"
	"github.com/bxtheory/examplan/internal/repository"
	"github.com/bxtheory/examplan/internal/testutil"
)

// End-to-end pipeline over real components: heuristic extractor, pacing
// generator, filesystem store, SQLite-backed artifact index and run history.
// No LLM anywhere.
func TestPipeline_EndToEnd(t *testing.T) {
	db := testutil.NewTestDB(t)
	dir := t.TempDir()

	artifactRepo := repository.NewSQLiteArtifactRepo(db)
	runRepo := repository.NewSQLiteRunRepo(db)
	store := artifact.NewFSStore(dir, artifactRepo)

	svc := NewPlanService(
		intelligence.NewHeuristicExtractor(),
		nil,
		intelligence.NewPacingGenerator(),
		store,
		runRepo,
	)
	history := NewHistoryService(runRepo, artifactRepo)

	material := strings.Join([]string{
		"Course: Organic Chemistry",
		"Pages: 300",
		"Chapters: Alkanes, Stereochemistry, Reaction Mechanisms",
		"Topics: SN1 vs SN2, chirality",
		"Complexity: high",
	}, "\n")

	resp, err := svc.RunPlan(context.Background(), contract.NewPlanRequest(material))
	require.NoError(t, err)

	// The fallback draft validates clean.
	assert.True(t, resp.Validation.OK)
	assert.Equal(t, domain.SourceFallback, resp.Source)
	assert.Equal(t, "Organic Chemistry", resp.Topics.CourseName)
	assert.Empty(t, resp.Warnings)

	// The artifact landed on disk under the timestamped name.
	require.NotNil(t, resp.Artifact)
	assert.Regexp(t, `^study_plan_\d{8}_\d{6}\.md$`, resp.Artifact.Filename)
	content, err := os.ReadFile(filepath.Join(dir, resp.Artifact.Filename))
	require.NoError(t, err)
	assert.Equal(t, resp.Markdown, string(content))

	// The run is in history with the artifact linked.
	run, err := history.GetRun(context.Background(), resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, "Organic Chemistry", run.CourseName)
	assert.Equal(t, 3, run.ChapterCount)
	assert.Equal(t, domain.SourceFallback, run.Source)
	assert.Equal(t, resp.Artifact.Filename, run.ArtifactFilename)
	assert.Equal(t, resp.Artifact.Version, run.ArtifactVersion)
	require.NotNil(t, run.Plan)
	assert.InDelta(t, resp.Validation.Normalized.TotalHours, run.TotalHours, 1e-6)

	// And in the artifact index.
	records, err := history.ListArtifacts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, artifact.MimeMarkdown, records[0].Mime)
	assert.Equal(t, "study_schedule", records[0].Metadata["type"])
}

func TestPipeline_RunsAppearInHistory(t *testing.T) {
	db := testutil.NewTestDB(t)
	runRepo := repository.NewSQLiteRunRepo(db)

	svc := NewPlanService(
		intelligence.NewHeuristicExtractor(),
		nil,
		intelligence.NewPacingGenerator(),
		nil,
		runRepo,
	)
	history := NewHistoryService(runRepo, repository.NewSQLiteArtifactRepo(db))

	first, err := svc.RunPlan(context.Background(), contract.NewPlanRequest("Course: Algebra\nChapters: Groups, Rings"))
	require.NoError(t, err)
	second, err := svc.RunPlan(context.Background(), contract.NewPlanRequest("Course: Topology\nChapters: Open Sets"))
	require.NoError(t, err)

	runs, err := history.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, first.RunID)
	assert.Contains(t, ids, second.RunID)
	// Without an artifact, no filename is recorded.
	assert.Empty(t, runs[0].ArtifactFilename)
}

func TestPipeline_HistoryUnavailableIsAWarning(t *testing.T) {
	db := testutil.NewTestDB(t)
	runRepo := repository.NewSQLiteRunRepo(db)
	require.NoError(t, db.Close()) // closed DB: every write fails

	svc := NewPlanService(
		intelligence.NewHeuristicExtractor(),
		nil,
		intelligence.NewPacingGenerator(),
		nil,
		runRepo,
	)

	resp, err := svc.RunPlan(context.Background(), contract.NewPlanRequest("Course: Algebra\nChapters: Groups"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Markdown, "# Study Schedule\n"))
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0].Message, "recording run history")
}
