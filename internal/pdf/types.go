package pdf

// FileInfo describes a candidate form document found in the
// configured directory.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ExtractResult is the outcome of extracting a document's text layer.
type ExtractResult struct {
	Path  string `json:"path"`
	Pages int    `json:"pages"`
	Size  int64  `json:"size"`
	Text  string `json:"text"`
	// Backend names the library that produced the text, for
	// diagnostics when an upload fails to restore.
	Backend string `json:"backend"`
}

// ValidateResult reports whether a file looks like a readable PDF.
type ValidateResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ListResult holds the documents found in a directory scan.
type ListResult struct {
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"total_count"`
	Directory  string     `json:"directory"`
	Query      string     `json:"query,omitempty"`
}
