package types

import (
	"time"

	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// Record represents one analyzed file in a batch report
type Record struct {
	Path       string        `json:"path"`
	FileType   string        `json:"file_type"`
	Mode       string        `json:"mode"`
	SHA3Hash   string        `json:"sha3_hash,omitempty"`
	Metadata   *metadata.Map `json:"metadata"`
	Error      string        `json:"error,omitempty"`
	AnalyzedAt time.Time     `json:"analyzed_at"`
}

// Failed reports whether the record carries an analysis error
func (r Record) Failed() bool {
	return r.Error != ""
}

// StorageStats holds storage statistics
type StorageStats struct {
	FilesStored   int            `json:"files_stored" plist:"files_stored"`
	FilesFailed   int            `json:"files_failed" plist:"files_failed"`
	UniqueHashes  int            `json:"unique_hashes" plist:"unique_hashes"`
	FilesByType   map[string]int `json:"files_by_type" plist:"files_by_type"`
	LastUpdatedAt time.Time      `json:"last_updated_at" plist:"last_updated_at"`
}
