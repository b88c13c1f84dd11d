package ingestion

import (
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

const (
	// BinarySampleSize is the number of bytes sampled for binary detection
	BinarySampleSize = 1000
	// BinaryThreshold is the proportion of non-printable characters that indicates binary data
	BinaryThreshold = 0.3
)

var (
	xmlTagPattern       = regexp.MustCompile(`<[^>]*>`)
	xmlParagraphPattern = regexp.MustCompile(`</w:p>`)
)

// ExtractText extracts text from PDF, DOCX, DOC, or TXT files. A failure
// here means the document could not be read at all; callers must surface it
// as an extraction failure rather than fabricating an empty candidate.
func ExtractText(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".txt":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read text file %s: %w", filePath, err)
		}
		return string(data), nil
	case ".pdf":
		return extractPDF(filePath)
	case ".docx":
		return extractDOCX(filePath)
	case ".doc":
		return extractDOC(filePath)
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

// SupportedExtension reports whether the file can be handled by ExtractText.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".pdf", ".docx", ".doc":
		return true
	}
	return false
}

// extractPDF extracts text from PDF using pdftotext
func extractPDF(filePath string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", filePath, "-")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("PDF extraction requires 'pdftotext' (install poppler-utils): %w", err)
	}
	return string(output), nil
}

// extractDOCX extracts text from a DOCX archive, flattening paragraphs to
// newline-separated plain text
func extractDOCX(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX file %s: %w", filePath, err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	content = xmlParagraphPattern.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

// extractDOC extracts text from legacy .doc files using antiword
func extractDOC(filePath string) (string, error) {
	cmd := exec.Command("antiword", filePath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("DOC extraction requires 'antiword': %w", err)
	}
	return string(output), nil
}

// IsBinaryData checks if content appears to be binary (PDF/ZIP markers or a
// high proportion of non-printable characters)
func IsBinaryData(content string) bool {
	if len(content) == 0 {
		return false
	}

	// PDF magic number
	if strings.HasPrefix(content, "%PDF-") {
		return true
	}

	// ZIP magic number (DOCX files)
	if strings.HasPrefix(content, "PK") {
		return true
	}

	sampleSize := min(BinarySampleSize, len(content))
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > BinaryThreshold
}
