package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/types"
)

// JSONOutput represents the JSON output structure
type JSONOutput struct {
	LastUpdated time.Time          `json:"last_updated"`
	Stats       types.StorageStats `json:"stats"`
	Files       []types.Record     `json:"files"`
}

// JSONStorage implements the Storage interface using a JSON file. Records
// already present in an existing report are kept unless a new record for the
// same path replaces them.
type JSONStorage struct {
	*recordSet
	filePath string
}

// NewJSON creates a new JSONStorage
func NewJSON(filePath string) (*JSONStorage, error) {
	storage := &JSONStorage{
		recordSet: newRecordSet(),
		filePath:  filePath,
	}

	// Try to load existing data
	if _, err := os.Stat(filePath); err == nil {
		err = storage.loadExistingData()
		if err != nil {
			return nil, fmt.Errorf("failed to load existing data: %w", err)
		}
	}

	return storage, nil
}

// Store saves an analyzed file's record
func (s *JSONStorage) Store(record types.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.add(record)
	return nil
}

// Close writes the report
func (s *JSONStorage) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	logger.Infof("Closing storage with %d files stored", s.stats.FilesStored)
	logger.Infof("Files by type: %v", s.stats.FilesByType)
	logger.Infof("Failed files: %d", s.stats.FilesFailed)

	return s.saveToFile()
}

// loadExistingData loads existing data from the JSON file
func (s *JSONStorage) loadExistingData() error {
	file, err := os.Open(s.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	var output JSONOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return err
	}

	for _, record := range output.Files {
		s.add(record)
	}

	logger.Infof("Loaded %d existing records from %s", len(output.Files), s.filePath)
	return nil
}

// saveToFile saves the current data to the JSON file
func (s *JSONStorage) saveToFile() error {
	file, err := os.Create(s.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	output := JSONOutput{
		LastUpdated: time.Now(),
		Stats:       s.stats,
		Files:       s.sorted(),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	return encoder.Encode(output)
}
