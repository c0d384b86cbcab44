package storage

import (
	"fmt"
	"os"
	"time"

	"howett.net/plist"

	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/types"
)

// PlistOutput represents the property list output structure
type PlistOutput struct {
	LastUpdated time.Time          `plist:"last_updated"`
	Stats       types.StorageStats `plist:"stats"`
	Files       []plistRecord      `plist:"files"`
}

// plistRecord flattens the metadata into a dictionary. Property list
// dictionaries are unordered, so key order is not preserved.
type plistRecord struct {
	Path       string            `plist:"path"`
	FileType   string            `plist:"file_type"`
	Mode       string            `plist:"mode"`
	SHA3Hash   string            `plist:"sha3_hash,omitempty"`
	Metadata   map[string]string `plist:"metadata"`
	Error      string            `plist:"error,omitempty"`
	AnalyzedAt time.Time         `plist:"analyzed_at"`
}

func newPlistRecord(r types.Record) plistRecord {
	return plistRecord{
		Path:       r.Path,
		FileType:   r.FileType,
		Mode:       r.Mode,
		SHA3Hash:   r.SHA3Hash,
		Metadata:   r.Metadata.ToMap(),
		Error:      r.Error,
		AnalyzedAt: r.AnalyzedAt,
	}
}

// PlistStorage implements the Storage interface as an XML property list
type PlistStorage struct {
	*recordSet
	filePath string
}

// NewPlist creates a new PlistStorage
func NewPlist(filePath string) *PlistStorage {
	return &PlistStorage{
		recordSet: newRecordSet(),
		filePath:  filePath,
	}
}

// Store saves an analyzed file's record
func (s *PlistStorage) Store(record types.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.add(record)
	return nil
}

// Close writes the report
func (s *PlistStorage) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	logger.Infof("Closing storage with %d files stored", s.stats.FilesStored)

	records := s.sorted()
	output := PlistOutput{
		LastUpdated: time.Now(),
		Stats:       s.stats,
		Files:       make([]plistRecord, 0, len(records)),
	}
	for _, r := range records {
		output.Files = append(output.Files, newPlistRecord(r))
	}

	file, err := os.Create(s.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := plist.NewEncoderForFormat(file, plist.XMLFormat)
	encoder.Indent("\t")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("failed to encode property list: %w", err)
	}
	return nil
}
