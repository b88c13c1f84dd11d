package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileHandler(t *testing.T) {
	fh := NewFileHandler("test_uploads")
	if fh == nil {
		t.Fatal("Expected non-nil FileHandler")
	}

	if fh.UploadsDir() != "test_uploads" {
		t.Errorf("Expected uploadsDir 'test_uploads', got '%s'", fh.UploadsDir())
	}
}

func TestSaveUploadedFile(t *testing.T) {
	tmpDir := t.TempDir()
	fh := NewFileHandler(tmpDir)

	content := strings.NewReader("Test resume content")
	filename := "jane_smith.txt"

	path, err := fh.SaveUploadedFile(filename, content)
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	expectedPath := filepath.Join(tmpDir, filename)
	if path != expectedPath {
		t.Errorf("Expected path %s, got %s", expectedPath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "Test resume content" {
		t.Errorf("Expected content 'Test resume content', got '%s'", string(data))
	}
}

func TestSaveUploadedFile_StripsPathComponents(t *testing.T) {
	tmpDir := t.TempDir()
	fh := NewFileHandler(tmpDir)

	path, err := fh.SaveUploadedFile("../escape.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if path != filepath.Join(tmpDir, "escape.txt") {
		t.Errorf("Expected client path components to be stripped, got %s", path)
	}
}

func TestLoadResumes(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "jane.txt"), []byte("Jane Smith\npython developer"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "john.txt"), []byte("John Doe\njava developer"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "notes.xlsx"), []byte("ignored"), 0644)

	fh := NewFileHandler(tmpDir)
	docs, failures, err := fh.LoadResumes()
	if err != nil {
		t.Fatalf("Failed to load resumes: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("Expected no extraction failures, got %d", len(failures))
	}

	if len(docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(docs))
	}

	// Stable filename order.
	if docs[0].FileName != "jane.txt" || docs[1].FileName != "john.txt" {
		t.Errorf("Expected [jane.txt john.txt], got [%s %s]", docs[0].FileName, docs[1].FileName)
	}

	if !strings.Contains(docs[0].Text, "Jane Smith") {
		t.Errorf("Document text mismatch: %q", docs[0].Text)
	}
}

func TestLoadResumes_ReportsFailuresSeparately(t *testing.T) {
	tmpDir := t.TempDir()

	// A .docx that is not a real archive cannot be opened; it must show up as
	// a failure, not as an empty document.
	os.WriteFile(filepath.Join(tmpDir, "broken.docx"), []byte("not a zip"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "ok.txt"), []byte("Jane Smith"), 0644)

	fh := NewFileHandler(tmpDir)
	docs, failures, err := fh.LoadResumes()
	if err != nil {
		t.Fatalf("Failed to load resumes: %v", err)
	}

	if len(docs) != 1 || docs[0].FileName != "ok.txt" {
		t.Fatalf("Expected 1 good document, got %d", len(docs))
	}
	if len(failures) != 1 || !strings.HasSuffix(failures[0].Path, "broken.docx") {
		t.Fatalf("Expected 1 failure for broken.docx, got %v", failures)
	}
}

func TestLoadResumes_MissingDirectory(t *testing.T) {
	fh := NewFileHandler(filepath.Join(t.TempDir(), "does-not-exist"))

	docs, failures, err := fh.LoadResumes()
	if err != nil {
		t.Fatalf("Missing directory should not be an error: %v", err)
	}
	if len(docs) != 0 || len(failures) != 0 {
		t.Errorf("Expected empty results for missing directory")
	}
}

func TestClearUploads(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "uploads")
	os.MkdirAll(tmpDir, 0755)
	os.WriteFile(filepath.Join(tmpDir, "test.txt"), []byte("test"), 0644)

	fh := NewFileHandler(tmpDir)
	if err := fh.ClearUploads(); err != nil {
		t.Fatalf("Failed to clear uploads: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty directory, got %d entries", len(entries))
	}
}
