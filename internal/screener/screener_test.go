package screener

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resume-screener/internal/extract"
	"resume-screener/internal/ingestion"
	"resume-screener/internal/models"
	"resume-screener/internal/store"
)

const janeResume = `Jane Smith
jane@example.com
8 years building services in Python, SQL and AWS.
`

const johnResume = `John Doe
john@example.com
3 years of Java development.
`

func newTestScreener(t *testing.T) *Screener {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	uploads := filepath.Join(t.TempDir(), "uploads")
	return New(st, extract.New(extract.Config{}), ingestion.NewFileHandler(uploads), zap.NewNop())
}

func TestIngestDocument(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	c, inserted, err := s.IngestDocument(ctx, "jane.txt", janeResume)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Jane Smith", c.Name)
	assert.Equal(t, "jane@example.com", c.Email)
	assert.Contains(t, c.Skills, "python")
}

func TestIngestDocument_DeduplicatesByContent(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	first, inserted, err := s.IngestDocument(ctx, "jane.txt", janeResume)
	require.NoError(t, err)
	assert.True(t, inserted)

	second, inserted, err := s.IngestDocument(ctx, "jane_copy.txt", janeResume)
	require.NoError(t, err)
	assert.False(t, inserted, "identical content must be de-duplicated")
	assert.Equal(t, first.ID, second.ID, "id is content-derived")
}

func TestIngestDocument_EmptyText(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	c, inserted, err := s.IngestDocument(ctx, "blank.txt", "")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, models.UnknownName, c.Name)
	assert.Empty(t, c.Email)

	// A second empty document is still individually addressable.
	c2, inserted, err := s.IngestDocument(ctx, "blank2.txt", "")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEqual(t, c.ID, c2.ID)
}

func TestIngestUploads(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	uploads := s.FileHandler.UploadsDir()
	require.NoError(t, os.MkdirAll(uploads, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "jane.txt"), []byte(janeResume), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "john.txt"), []byte(johnResume), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "broken.docx"), []byte("not a zip"), 0644))

	summary, err := s.IngestUploads(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)
	assert.Equal(t, 0, summary.Duplicates)
	assert.Equal(t, 1, summary.Failed, "unreadable document is a failure, not a record")

	// Re-running is idempotent for the readable documents.
	summary, err = s.IngestUploads(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Added)
	assert.Equal(t, 2, summary.Duplicates)
}

func TestCandidates_RankAndFilter(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	_, _, err := s.IngestDocument(ctx, "jane.txt", janeResume)
	require.NoError(t, err)
	_, _, err = s.IngestDocument(ctx, "john.txt", johnResume)
	require.NoError(t, err)

	s.SetJobDescription("Python developer with AWS experience")

	all, err := s.Candidates(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Jane Smith", all[0].Name, "best match ranks first")
	assert.Equal(t, 1, all[0].Rank)
	assert.Greater(t, all[0].MatchPercentage, all[1].MatchPercentage)

	onlyJava, err := s.Candidates(ctx, "java not python")
	require.NoError(t, err)
	require.Len(t, onlyJava, 1)
	assert.Equal(t, "John Doe", onlyJava[0].Name)
}

func TestCandidates_NoActiveJobDescription(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	_, _, err := s.IngestDocument(ctx, "jane.txt", janeResume)
	require.NoError(t, err)

	all, err := s.Candidates(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 0, all[0].MatchPercentage, "no JD means zero scores")
}

func TestSetJobDescription_ReplacesWholesale(t *testing.T) {
	s := newTestScreener(t)

	first := s.SetJobDescription("python developer")
	assert.True(t, first.Keywords.Contains("python"))

	second := s.SetJobDescription("java engineer")
	assert.False(t, second.Keywords.Contains("python"))
	assert.True(t, second.Keywords.Contains("java"))

	assert.Equal(t, "java engineer", s.JobDescription().Text)
}

func TestSelectCandidate(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	c, _, err := s.IngestDocument(ctx, "jane.txt", janeResume)
	require.NoError(t, err)

	require.NoError(t, s.SelectCandidate(ctx, c.ID))

	selected, ok, err := s.SelectedCandidate(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, c.ID, selected.ID)

	assert.ErrorIs(t, s.SelectCandidate(ctx, "missing"), store.ErrNotFound)
}

func TestDelete_ClearsSelection(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	c, _, err := s.IngestDocument(ctx, "jane.txt", janeResume)
	require.NoError(t, err)
	require.NoError(t, s.SelectCandidate(ctx, c.ID))

	require.NoError(t, s.Delete(ctx, c.ID))

	_, ok, err := s.SelectedCandidate(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "selection must be cleared when the record is deleted")
}

func TestReport(t *testing.T) {
	s := newTestScreener(t)
	ctx := context.Background()

	_, _, err := s.IngestDocument(ctx, "jane.txt", janeResume)
	require.NoError(t, err)
	s.SetJobDescription("python")

	report, err := s.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, "python", report.JobDescription)
	require.Len(t, report.Candidates, 1)
	assert.Equal(t, 100, report.Candidates[0].MatchPercentage)
	assert.NotEmpty(t, report.GeneratedAt)
}
