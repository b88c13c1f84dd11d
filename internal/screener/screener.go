// Package screener orchestrates ingestion, extraction, scoring and
// filtering around the candidate store. It owns the only per-session state:
// the active job description and the selected candidate id, both
// single-writer values overwritten whole on every change.
package screener

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-screener/internal/extract"
	"resume-screener/internal/ingestion"
	"resume-screener/internal/models"
	"resume-screener/internal/query"
	"resume-screener/internal/scoring"
	"resume-screener/internal/store"
)

// IngestSummary reports the outcome of an ingestion pass.
type IngestSummary struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`
}

// Screener ties the matching engine to its collaborators.
type Screener struct {
	FileHandler *ingestion.FileHandler

	store     *store.Store
	extractor *extract.Extractor
	logger    *zap.Logger

	mu         sync.RWMutex
	jobDesc    models.JobDescription
	selectedID string
}

// New creates a screener around the given store and extractor.
func New(st *store.Store, ex *extract.Extractor, fh *ingestion.FileHandler, logger *zap.Logger) *Screener {
	return &Screener{
		FileHandler: fh,
		store:       st,
		extractor:   ex,
		logger:      logger,
	}
}

// IngestUploads extracts and stores every supported document in the uploads
// directory. Documents the upstream reader could not open are counted as
// failures and logged, never stored as fabricated records.
func (s *Screener) IngestUploads(ctx context.Context) (IngestSummary, error) {
	docs, failures, err := s.FileHandler.LoadResumes()
	if err != nil {
		return IngestSummary{}, fmt.Errorf("failed to load resumes: %w", err)
	}

	summary := IngestSummary{Failed: len(failures)}
	for _, f := range failures {
		s.logger.Warn("document extraction failed",
			zap.String("path", f.Path),
			zap.Error(f.Err),
		)
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		c, inserted, err := s.IngestDocument(ctx, doc.FileName, doc.Text)
		if err != nil {
			return summary, err
		}
		if inserted {
			summary.Added++
			s.logger.Info("candidate ingested",
				zap.String("id", c.ID),
				zap.String("name", c.Name),
				zap.String("file", doc.FileName),
			)
		} else {
			summary.Duplicates++
			s.logger.Debug("duplicate upload skipped",
				zap.String("id", c.ID),
				zap.String("file", doc.FileName),
			)
		}
	}

	return summary, nil
}

// IngestDocument builds a candidate record from one document's extracted
// text and stores it. The id is content-derived, so re-uploading the same
// document is a de-duplicated no-op. Empty text still produces a valid
// all-default record; the caller decides whether that is worth surfacing.
func (s *Screener) IngestDocument(ctx context.Context, fileName, text string) (models.Candidate, bool, error) {
	c := s.extractor.Extract(text)
	c.ID = candidateID(text)

	inserted, err := s.store.Put(ctx, c)
	if err != nil {
		return models.Candidate{}, false, fmt.Errorf("failed to store candidate from %s: %w", fileName, err)
	}
	return c, inserted, nil
}

// candidateID derives a stable identity from the document content. Documents
// with no text at all get a random id so they remain individually
// addressable for deletion.
func candidateID(text string) string {
	if text == "" {
		return uuid.NewString()
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:16]
}

// SetJobDescription replaces the active job description wholesale and
// returns the new value with its derived keyword set.
func (s *Screener) SetJobDescription(text string) models.JobDescription {
	jd := models.NewJobDescription(text)

	s.mu.Lock()
	s.jobDesc = jd
	s.mu.Unlock()

	s.logger.Info("job description updated",
		zap.Int("keywords", jd.Keywords.Len()),
		zap.Bool("active", jd.Active()),
	)
	return jd
}

// JobDescription returns the active job description snapshot.
func (s *Screener) JobDescription() models.JobDescription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobDesc
}

// SelectCandidate marks one candidate as selected for the session.
func (s *Screener) SelectCandidate(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.selectedID = id
	s.mu.Unlock()
	return nil
}

// SelectedCandidate returns the currently selected candidate, if any.
func (s *Screener) SelectedCandidate(ctx context.Context) (models.Candidate, bool, error) {
	s.mu.RLock()
	id := s.selectedID
	s.mu.RUnlock()

	if id == "" {
		return models.Candidate{}, false, nil
	}
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Candidate{}, false, err
	}
	return c, true, nil
}

// Candidates returns all candidates ranked against the active job
// description and narrowed by the boolean query. An empty query keeps
// everyone; no active JD means every match percentage is 0.
func (s *Screener) Candidates(ctx context.Context, q string) ([]models.Candidate, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	ranked := scoring.Rank(all, s.JobDescription().Keywords)
	return query.Filter(ranked, q), nil
}

// Report produces the ranked screening report for the active JD.
func (s *Screener) Report(ctx context.Context) (models.ScreeningReport, error) {
	jd := s.JobDescription()

	all, err := s.store.List(ctx)
	if err != nil {
		return models.ScreeningReport{}, err
	}

	return models.ScreeningReport{
		Candidates:     scoring.Rank(all, jd.Keywords),
		JobDescription: jd.Text,
		GeneratedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

// Delete removes a candidate record entirely, clearing the selection if it
// pointed at the removed record.
func (s *Screener) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if s.selectedID == id {
		s.selectedID = ""
	}
	s.mu.Unlock()

	s.logger.Info("candidate deleted", zap.String("id", id))
	return nil
}
