package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// RawDocument is one resume document with its extracted text. Empty Text
// means the document genuinely had no text, which is distinct from an
// extraction failure.
type RawDocument struct {
	FileName string
	Path     string
	Text     string
}

// ExtractFailure records a document the upstream reader could not open.
// These are reported separately so the caller can surface them to the user
// instead of silently fabricating candidates.
type ExtractFailure struct {
	Path string
	Err  error
}

// FileHandler manages the uploads directory for resume ingestion
type FileHandler struct {
	uploadsDir string
}

// NewFileHandler creates a new file handler
func NewFileHandler(uploadsDir string) *FileHandler {
	return &FileHandler{
		uploadsDir: uploadsDir,
	}
}

// UploadsDir returns the directory this handler manages.
func (fh *FileHandler) UploadsDir() string {
	return fh.uploadsDir
}

// SaveUploadedFile saves an uploaded file to the uploads directory
func (fh *FileHandler) SaveUploadedFile(filename string, content io.Reader) (string, error) {
	if err := os.MkdirAll(fh.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	// Strip any path components from the client-supplied name.
	filePath := filepath.Join(fh.uploadsDir, filepath.Base(filename))
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, nil
}

// LoadResumes extracts text from every supported file in the uploads
// directory, one document per file, in stable filename order. Documents the
// upstream reader fails on are returned as failures, not as empty records.
func (fh *FileHandler) LoadResumes() ([]RawDocument, []ExtractFailure, error) {
	entries, err := os.ReadDir(fh.uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read uploads directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !SupportedExtension(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var docs []RawDocument
	var failures []ExtractFailure
	for _, name := range names {
		path := filepath.Join(fh.uploadsDir, name)
		text, err := ExtractText(path)
		if err != nil {
			failures = append(failures, ExtractFailure{Path: path, Err: err})
			continue
		}
		docs = append(docs, RawDocument{FileName: name, Path: path, Text: text})
	}

	return docs, failures, nil
}

// ClearUploads removes all files from the uploads directory
func (fh *FileHandler) ClearUploads() error {
	if err := os.RemoveAll(fh.uploadsDir); err != nil {
		return fmt.Errorf("failed to clear uploads directory: %w", err)
	}
	return os.MkdirAll(fh.uploadsDir, 0755)
}
