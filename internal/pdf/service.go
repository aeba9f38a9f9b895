package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service is the document-handling surface the MCP layer talks to:
// extraction constrained to the configured forms directory, validation
// and directory listing.
type Service struct {
	extractor   *Extractor
	formsDir    string
	maxFileSize int64
}

// NewService creates a service rooted at the configured directory.
func NewService(maxFileSize int64, formsDir string) (*Service, error) {
	if formsDir == "" {
		return nil, fmt.Errorf("forms directory cannot be empty")
	}
	absDir, err := filepath.Abs(formsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve forms directory: %w", err)
	}
	return &Service{
		extractor:   NewExtractor(maxFileSize),
		formsDir:    absDir,
		maxFileSize: maxFileSize,
	}, nil
}

// ExtractText extracts a document's text layer after confirming the
// path stays inside the configured directory.
func (s *Service) ExtractText(path string) (string, error) {
	if err := s.checkConfinement(path); err != nil {
		return "", err
	}
	return s.extractor.ExtractText(path)
}

// Extract is ExtractText with backend diagnostics.
func (s *Service) Extract(path string) (*ExtractResult, error) {
	if err := s.checkConfinement(path); err != nil {
		return nil, err
	}
	return s.extractor.Extract(path)
}

// ValidateFile reports whether the file looks like a readable PDF.
// Validation problems land in the result, not in the error.
func (s *Service) ValidateFile(path string) (*ValidateResult, error) {
	result := &ValidateResult{Path: path}

	if err := s.checkConfinement(path); err != nil {
		result.Message = err.Error()
		return result, nil
	}
	if _, err := s.extractor.validateFile(path); err != nil {
		result.Message = err.Error()
		return result, nil
	}

	result.Valid = true
	return result, nil
}

// ListFormPDFs walks a directory (the configured one when empty) and
// returns every PDF that passes basic validation, optionally filtered
// by a case-insensitive name match.
func (s *Service) ListFormPDFs(directory, query string) (*ListResult, error) {
	if directory == "" {
		directory = s.formsDir
	}
	absDir, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}
	if _, err := os.Stat(absDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", absDir)
	}

	var files []FileInfo
	q := strings.ToLower(strings.TrimSpace(query))

	walkErr := filepath.Walk(absDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // keep walking past unreadable entries
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(info.Name()), ".pdf") {
			return nil
		}
		if info.Size() > s.maxFileSize {
			return nil
		}
		if q != "" && !strings.Contains(strings.ToLower(info.Name()), q) {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("error walking directory: %w", walkErr)
	}

	return &ListResult{
		Files:      files,
		TotalCount: len(files),
		Directory:  absDir,
		Query:      query,
	}, nil
}

// FormsDirectory returns the configured root directory.
func (s *Service) FormsDirectory() string {
	return s.formsDir
}

// MaxFileSize returns the configured upload cap.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// checkConfinement rejects paths that resolve outside the configured
// forms directory, following symlinks.
func (s *Service) checkConfinement(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}
		realPath = absPath
	}

	realDir, err := filepath.EvalSymlinks(s.formsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to evaluate directory symlinks: %w", err)
		}
		realDir = s.formsDir
	}

	realPath = filepath.Clean(realPath)
	realDir = filepath.Clean(realDir)
	if realPath == realDir {
		return nil
	}
	if !strings.HasPrefix(realPath, realDir+string(filepath.Separator)) {
		return fmt.Errorf("path is outside the forms directory: %s", path)
	}
	return nil
}
