// Package pdf supplies the text layer of uploaded form documents to
// the restore pipeline. Extraction goes through ledongthuc/pdf first
// and falls back to a pdfcpu content-stream scan when that yields
// nothing; the pipeline only cares that the concatenated page text
// contains one of the payload delimiter patterns.
package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// DefaultMaxFileSize caps uploaded documents. Printed forms run
	// one to three pages; anything near this limit is not one.
	DefaultMaxFileSize = 100 * 1024 * 1024

	// maxTextSize caps the concatenated text layer.
	maxTextSize = 10 * 1024 * 1024
)

// Extractor extracts the text layer from PDF files.
type Extractor struct {
	maxFileSize int64
}

// NewExtractor creates an extractor with the given file size cap.
func NewExtractor(maxFileSize int64) *Extractor {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Extractor{maxFileSize: maxFileSize}
}

// ExtractText returns the document's page texts joined with a newline,
// in page order. Order matters downstream: the payload decoders assume
// the concatenated stream preserves character order even when a span
// ends up near a page boundary.
func (e *Extractor) ExtractText(path string) (string, error) {
	result, err := e.Extract(path)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// Extract runs validation and both extraction backends, returning the
// text plus diagnostics about which backend produced it.
func (e *Extractor) Extract(path string) (*ExtractResult, error) {
	fileInfo, err := e.validateFile(path)
	if err != nil {
		return nil, err
	}

	text, pages, err := e.extractWithLedongthuc(path)
	backend := "ledongthuc"
	if err != nil || strings.TrimSpace(text) == "" {
		// Some producers emit structures ledongthuc cannot walk;
		// retry with the pdfcpu content-stream scanner before
		// giving up.
		fallbackText, fallbackPages, fallbackErr := extractWithPDFCPU(path)
		if fallbackErr != nil {
			if err != nil {
				return nil, fmt.Errorf("failed to extract text: %w", err)
			}
			return nil, fmt.Errorf("failed to extract text: %w", fallbackErr)
		}
		text, pages = fallbackText, fallbackPages
		backend = "pdfcpu"
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content could be extracted from %s", path)
	}

	return &ExtractResult{
		Path:    path,
		Pages:   pages,
		Size:    fileInfo.Size(),
		Text:    text,
		Backend: backend,
	}, nil
}

func (e *Extractor) extractWithLedongthuc(path string) (string, int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pageTexts []string
	totalLength := 0

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going; the payload may live on another page.
			continue
		}

		if totalLength+len(content) > maxTextSize {
			remaining := maxTextSize - totalLength
			if remaining > 0 {
				pageTexts = append(pageTexts, content[:remaining])
			}
			break
		}

		pageTexts = append(pageTexts, content)
		totalLength += len(content)
	}

	return strings.Join(pageTexts, "\n"), reader.NumPage(), nil
}

// validateFile rejects paths that cannot be a readable form document.
func (e *Extractor) validateFile(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() > e.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), e.maxFileSize)
	}

	return fileInfo, nil
}
