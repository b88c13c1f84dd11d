package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"resume-screener/internal/export"
	"resume-screener/internal/ingestion"
	"resume-screener/internal/screener"
	"resume-screener/internal/store"
)

const maxUploadBytes = 32 << 20 // 32 MB

// Server handles HTTP requests
type Server struct {
	screener *screener.Screener
	gmail    *ingestion.GmailHandler
	logger   *zap.Logger
}

// NewServer creates a new API server. The gmail handler may be nil when no
// inbox is configured; the gmail ingest method then returns an error.
func NewServer(s *screener.Screener, gmail *ingestion.GmailHandler, logger *zap.Logger) *Server {
	return &Server{
		screener: s,
		gmail:    gmail,
		logger:   logger,
	}
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /ingest", s.handleIngest)
	mux.HandleFunc("PUT /job", s.handleSetJob)
	mux.HandleFunc("GET /job", s.handleGetJob)
	mux.HandleFunc("GET /candidates", s.handleCandidates)
	mux.HandleFunc("GET /candidates/{id}", s.handleGetCandidate)
	mux.HandleFunc("DELETE /candidates/{id}", s.handleDeleteCandidate)
	mux.HandleFunc("POST /candidates/{id}/select", s.handleSelectCandidate)
	mux.HandleFunc("GET /selected", s.handleSelected)
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(mux)
}

// handleRoot provides API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.respondError(w, http.StatusNotFound, "not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "Resume Screener",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /ingest":                 "Upload resume documents or fetch from Gmail",
			"PUT /job":                     "Set the active job description",
			"GET /candidates":              "List ranked candidates, optional ?query= filter",
			"GET /candidates/{id}":         "Get one candidate",
			"DELETE /candidates/{id}":      "Delete a candidate",
			"POST /candidates/{id}/select": "Select a candidate",
			"GET /selected":                "Get the selected candidate",
			"GET /report":                  "Get the ranked screening report",
			"GET /export":                  "Download the report as an Excel workbook",
			"GET /health":                  "Health check",
		},
	})
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// handleIngest processes document ingestion from uploads or Gmail
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}

	method := r.FormValue("method")
	if method == "" {
		method = "upload"
	}

	switch method {
	case "upload":
		if err := s.saveUploadedFiles(r); err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	case "gmail":
		if s.gmail == nil {
			s.respondError(w, http.StatusBadRequest, "gmail ingestion is not configured")
			return
		}
		subject := r.FormValue("gmail_subject")
		if subject == "" {
			s.respondError(w, http.StatusBadRequest, "gmail_subject is required for gmail method")
			return
		}
		if _, err := s.gmail.FetchAttachments(r.Context(), subject); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	default:
		s.respondError(w, http.StatusBadRequest, "method must be 'upload' or 'gmail'")
		return
	}

	summary, err := s.screener.IngestUploads(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, summary)
}

// saveUploadedFiles writes multipart file parts into the uploads directory
func (s *Server) saveUploadedFiles(r *http.Request) error {
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		return fmt.Errorf("no files uploaded")
	}

	for _, fileHeader := range files {
		if !ingestion.SupportedExtension(fileHeader.Filename) {
			s.logger.Warn("skipping unsupported file type",
				zap.String("filename", fileHeader.Filename),
			)
			continue
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fmt.Errorf("failed to open uploaded file: %w", err)
		}

		_, err = s.screener.FileHandler.SaveUploadedFile(fileHeader.Filename, file)
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to save file %s: %w", fileHeader.Filename, err)
		}
	}

	return nil
}

type jobRequest struct {
	Text string `json:"text"`
}

// handleSetJob replaces the active job description
func (s *Server) handleSetJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	jd := s.screener.SetJobDescription(req.Text)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"text":     jd.Text,
		"keywords": jd.Keywords.Sorted(),
		"active":   jd.Active(),
	})
}

// handleGetJob returns the active job description
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jd := s.screener.JobDescription()
	s.respondJSON(w, http.StatusOK, map[string]any{
		"text":     jd.Text,
		"keywords": jd.Keywords.Sorted(),
		"active":   jd.Active(),
	})
}

// handleCandidates lists ranked candidates, narrowed by the optional query
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.screener.Candidates(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, candidates)
}

// handleGetCandidate returns one candidate by id
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.screener.Candidates(r.Context(), "")
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id := r.PathValue("id")
	for _, c := range candidates {
		if c.ID == id {
			s.respondJSON(w, http.StatusOK, c)
			return
		}
	}
	s.respondError(w, http.StatusNotFound, fmt.Sprintf("candidate not found: %s", id))
}

// handleDeleteCandidate removes a candidate record
func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.screener.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, fmt.Sprintf("candidate not found: %s", id))
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// handleSelectCandidate marks a candidate as selected
func (s *Server) handleSelectCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.screener.SelectCandidate(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, fmt.Sprintf("candidate not found: %s", id))
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "selected", "id": id})
}

// handleSelected returns the currently selected candidate
func (s *Server) handleSelected(w http.ResponseWriter, r *http.Request) {
	c, ok, err := s.screener.SelectedCandidate(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		s.respondError(w, http.StatusNotFound, "no candidate selected")
		return
	}
	s.respondJSON(w, http.StatusOK, c)
}

// handleReport returns the ranked screening report
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.screener.Report(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// handleExport streams the report as an Excel workbook
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	report, err := s.screener.Report(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	f, err := export.BuildWorkbook(report)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("screening_report_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(w); err != nil {
		s.logger.Error("failed to stream workbook", zap.Error(err))
	}
}

// respondJSON sends a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("took", time.Since(start)),
		)
	})
}
