package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deploymenttheory/go-filemeta/internal/types"
)

// Storage defines the interface for storing analysis records
type Storage interface {
	// Store saves one analyzed file's record
	Store(record types.Record) error

	// Close writes the report and finalizes the storage
	Close() error

	// Stats returns storage statistics
	Stats() types.StorageStats
}

// Report formats
const (
	FormatJSON  = "json"
	FormatPlist = "plist"
)

// New creates the report writer for a format
func New(format, filePath string) (Storage, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		s, err := NewJSON(filePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case FormatPlist:
		return NewPlist(filePath), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// recordSet collects records keyed by path. A later record for the same path
// replaces the earlier one.
type recordSet struct {
	records   []types.Record
	pathIndex map[string]int
	hashIndex map[string]bool
	stats     types.StorageStats
	mutex     sync.RWMutex
}

func newRecordSet() *recordSet {
	return &recordSet{
		pathIndex: make(map[string]int),
		hashIndex: make(map[string]bool),
		stats: types.StorageStats{
			FilesByType:   make(map[string]int),
			LastUpdatedAt: time.Now(),
		},
	}
}

// add inserts or replaces a record. Callers hold the mutex.
func (s *recordSet) add(record types.Record) {
	if i, ok := s.pathIndex[record.Path]; ok {
		s.records[i] = record
	} else {
		s.pathIndex[record.Path] = len(s.records)
		s.records = append(s.records, record)
	}
	s.recount()
}

// recount rebuilds the statistics from the stored records
func (s *recordSet) recount() {
	s.hashIndex = make(map[string]bool)
	stats := types.StorageStats{
		FilesByType:   make(map[string]int),
		LastUpdatedAt: time.Now(),
	}

	for _, r := range s.records {
		stats.FilesStored++
		if r.Failed() {
			stats.FilesFailed++
		}
		if r.SHA3Hash != "" {
			s.hashIndex[r.SHA3Hash] = true
		}
		if r.FileType != "" {
			stats.FilesByType[r.FileType]++
		}
	}
	stats.UniqueHashes = len(s.hashIndex)
	s.stats = stats
}

// sorted returns the records ordered by path
func (s *recordSet) sorted() []types.Record {
	out := make([]types.Record, len(s.records))
	copy(out, s.records)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

func (s *recordSet) Stats() types.StorageStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats := s.stats
	stats.FilesByType = make(map[string]int, len(s.stats.FilesByType))
	for k, v := range s.stats.FilesByType {
		stats.FilesByType[k] = v
	}
	return stats
}
