package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"github.com/deploymenttheory/go-filemeta/internal/metadata"
	"github.com/deploymenttheory/go-filemeta/internal/types"
)

func record(path, fileType string, kv ...string) types.Record {
	m := metadata.New()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return types.Record{
		Path:       path,
		FileType:   fileType,
		Mode:       "both",
		Metadata:   m,
		AnalyzedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewSelectsFormat(t *testing.T) {
	dir := t.TempDir()

	s, err := New("JSON", filepath.Join(dir, "r.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONStorage{}, s)

	s, err = New("plist", filepath.Join(dir, "r.plist"))
	require.NoError(t, err)
	assert.IsType(t, &PlistStorage{}, s)

	_, err = New("csv", filepath.Join(dir, "r.csv"))
	assert.Error(t, err)
}

func TestJSONStorageWritesOrderedMetadata(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	s, err := NewJSON(out)
	require.NoError(t, err)

	require.NoError(t, s.Store(record("/b.png", "PNG", "Width", "800", "Height", "600")))
	failed := record("/a.bin", "UNKNOWN")
	failed.Error = "unsupported file format"
	require.NoError(t, s.Store(failed))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(data), `"Width"`), strings.Index(string(data), `"Height"`))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(data, &output))
	require.Len(t, output.Files, 2)
	assert.Equal(t, "/a.bin", output.Files[0].Path, "records are sorted by path")
	assert.Equal(t, "unsupported file format", output.Files[0].Error)
	assert.Equal(t, []string{"Width", "Height"}, output.Files[1].Metadata.Keys())
	assert.Equal(t, 2, output.Stats.FilesStored)
	assert.Equal(t, 1, output.Stats.FilesFailed)
	assert.Equal(t, 1, output.Stats.FilesByType["PNG"])
}

func TestJSONStorageMergesExistingReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")

	first, err := NewJSON(out)
	require.NoError(t, err)
	require.NoError(t, first.Store(record("/a.txt", "TXT", "Title", "old")))
	require.NoError(t, first.Store(record("/b.txt", "TXT", "Title", "kept")))
	require.NoError(t, first.Close())

	second, err := NewJSON(out)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats().FilesStored)

	require.NoError(t, second.Store(record("/a.txt", "TXT", "Title", "new")))
	require.NoError(t, second.Close())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var output JSONOutput
	require.NoError(t, json.Unmarshal(data, &output))
	require.Len(t, output.Files, 2)

	title, _ := output.Files[0].Metadata.Get("Title")
	assert.Equal(t, "new", title)
	title, _ = output.Files[1].Metadata.Get("Title")
	assert.Equal(t, "kept", title)
}

func TestJSONStorageRejectsCorruptReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(out, []byte("{not json"), 0o644))

	_, err := NewJSON(out)
	assert.Error(t, err)
}

func TestStorageStatsCountsUniqueHashes(t *testing.T) {
	s := NewPlist(filepath.Join(t.TempDir(), "r.plist"))

	a := record("/a", "TXT")
	a.SHA3Hash = "abc"
	b := record("/b", "TXT")
	b.SHA3Hash = "abc"
	c := record("/c", "PDF")
	c.SHA3Hash = "def"
	for _, r := range []types.Record{a, b, c} {
		require.NoError(t, s.Store(r))
	}

	stats := s.Stats()
	assert.Equal(t, 3, stats.FilesStored)
	assert.Equal(t, 2, stats.UniqueHashes)
	assert.Equal(t, map[string]int{"TXT": 2, "PDF": 1}, stats.FilesByType)

	stats.FilesByType["TXT"] = 99
	assert.Equal(t, 2, s.Stats().FilesByType["TXT"], "stats are returned as a copy")
}

func TestPlistStorageWritesXML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.plist")
	s := NewPlist(out)

	r := record("/img.gif", "GIF", "Version", "89a")
	r.SHA3Hash = "00ff"
	require.NoError(t, s.Store(r))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<plist")

	var output struct {
		Files []struct {
			Path     string            `plist:"path"`
			FileType string            `plist:"file_type"`
			SHA3Hash string            `plist:"sha3_hash"`
			Metadata map[string]string `plist:"metadata"`
		} `plist:"files"`
		Stats struct {
			FilesStored int `plist:"files_stored"`
		} `plist:"stats"`
	}
	_, err = plist.Unmarshal(data, &output)
	require.NoError(t, err)
	require.Len(t, output.Files, 1)
	assert.Equal(t, "/img.gif", output.Files[0].Path)
	assert.Equal(t, "GIF", output.Files[0].FileType)
	assert.Equal(t, "00ff", output.Files[0].SHA3Hash)
	assert.Equal(t, map[string]string{"Version": "89a"}, output.Files[0].Metadata)
	assert.Equal(t, 1, output.Stats.FilesStored)
}
