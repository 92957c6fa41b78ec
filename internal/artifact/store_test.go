package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bxtheory/examplan/internal/repository"
	"github.com/bxtheory/examplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFSStore_Save_WritesFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir, nil)
	content := []byte("# Study Schedule\n\nNo study plan available.\n")

	ref, err := store.Save(context.Background(), content, MimeMarkdown, nil)
	require.NoError(t, err)

	assert.Regexp(t, `^study_plan_\d{8}_\d{6}\.md$`, ref.Filename)
	assert.Equal(t, 1, ref.Version, "without an index every save is version 1")

	written, err := os.ReadFile(filepath.Join(dir, ref.Filename))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestFSStore_Save_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	store := NewFSStore(dir, nil)

	ref, err := store.Save(context.Background(), []byte("x"), MimeMarkdown, nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ref.Filename))
	assert.NoError(t, err)
}

func TestFSStore_Save_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir, nil)

	_, err := store.Save(context.Background(), []byte("x"), MimeMarkdown, nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^study_plan_`, entries[0].Name())
}

func TestFSStore_Save_VersionBumpsOnCollision(t *testing.T) {
	dir := t.TempDir()
	db := testutil.NewTestDB(t)
	store := NewFSStore(dir, repository.NewSQLiteArtifactRepo(db))
	store.now = fixedClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))

	first, err := store.Save(context.Background(), []byte("first"), MimeMarkdown, nil)
	require.NoError(t, err)
	assert.Equal(t, "study_plan_20250101_090000.md", first.Filename)
	assert.Equal(t, 1, first.Version)

	// Same second, same filename: the index hands out version 2 and the
	// file keeps the latest bytes.
	second, err := store.Save(context.Background(), []byte("second"), MimeMarkdown, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Filename, second.Filename)
	assert.Equal(t, 2, second.Version)

	written, err := os.ReadFile(filepath.Join(dir, second.Filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), written)
}

func TestFSStore_Save_RecordsIndexRow(t *testing.T) {
	dir := t.TempDir()
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteArtifactRepo(db)
	store := NewFSStore(dir, repo)
	store.now = fixedClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))

	content := []byte("# Study Schedule\n")
	metadata := map[string]string{"type": "study_schedule", "format": "markdown"}
	ref, err := store.Save(context.Background(), content, MimeMarkdown, metadata)
	require.NoError(t, err)

	list, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	sum := sha256.Sum256(content)
	rec := list[0]
	assert.Equal(t, ref.Filename, rec.Filename)
	assert.Equal(t, 1, rec.Version)
	assert.Equal(t, MimeMarkdown, rec.Mime)
	assert.Equal(t, int64(len(content)), rec.SizeBytes)
	assert.Equal(t, hex.EncodeToString(sum[:]), rec.SHA256)
	assert.Equal(t, metadata, rec.Metadata)
}

func TestFSStore_Save_Extensions(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir, nil)
	store.now = fixedClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))

	ref, err := store.Save(context.Background(), []byte("day,course\n"), MimeCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "study_plan_20250101_090000.csv", ref.Filename)

	ref, err = store.Save(context.Background(), []byte("<h1>Study Schedule</h1>"), MimeHTML, nil)
	require.NoError(t, err)
	assert.Equal(t, "study_plan_20250101_090000.html", ref.Filename)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".md", ExtensionFor(MimeMarkdown))
	assert.Equal(t, ".csv", ExtensionFor(MimeCSV))
	assert.Equal(t, ".html", ExtensionFor(MimeHTML))
	assert.Equal(t, ".md", ExtensionFor("application/octet-stream"))
}

type failingArtifactRepo struct{}

func (failingArtifactRepo) NextVersion(ctx context.Context, filename string) (int, error) {
	return 0, errors.New("index unavailable")
}

func (failingArtifactRepo) Record(ctx context.Context, rec *repository.ArtifactRecord) error {
	return errors.New("index unavailable")
}

func (failingArtifactRepo) ListRecent(ctx context.Context, limit int) ([]*repository.ArtifactRecord, error) {
	return nil, errors.New("index unavailable")
}

func TestFSStore_Save_IndexFailure(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir, failingArtifactRepo{})

	_, err := store.Save(context.Background(), []byte("x"), MimeMarkdown, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving artifact version")

	// Version resolution runs before the write, so nothing lands on disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
