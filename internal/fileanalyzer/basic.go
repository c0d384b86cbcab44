package fileanalyzer

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/djherbis/times"
	"github.com/h2non/filetype"

	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// BasicDecoder reports filesystem attributes. It does not read file content
// apart from the MIME sniff and works for every file type.
type BasicDecoder struct{}

func (d *BasicDecoder) Name() string { return "basic" }

// Decode returns name, size, extension and timestamps of the file
func (d *BasicDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()

	info, err := os.Stat(filePath)
	if err != nil {
		logger.Debugf("Cannot stat %s: %v", filePath, err)
		return fields
	}

	ts, err := times.Stat(filePath)
	if err != nil {
		logger.Debugf("Cannot read timestamps of %s: %v", filePath, err)
		return fields
	}

	fields.Set("FileName", filepath.Base(filePath))
	fields.Set("FileSize", formatBytes(info.Size()))
	fields.Set("FileType", filepath.Ext(filePath))

	if kind, err := filetype.MatchFile(filePath); err == nil && kind != filetype.Unknown {
		fields.Set("MIMEType", kind.MIME.Value)
	}

	fields.Set("CreationTime", formatTime(creationTime(ts)))
	fields.Set("LastModified", formatTime(ts.ModTime()))
	fields.Set("LastAccess", formatTime(ts.AccessTime()))

	return fields
}

// creationTime prefers the birth time, then the inode change time
func creationTime(ts times.Timespec) time.Time {
	if ts.HasBirthTime() {
		return ts.BirthTime()
	}
	if ts.HasChangeTime() {
		return ts.ChangeTime()
	}
	return ts.ModTime()
}

// formatTime renders a timestamp in ctime(3) layout
func formatTime(t time.Time) string {
	return t.Local().Format(time.ANSIC)
}

func formatBytes(n int64) string {
	return strconv.FormatInt(n, 10) + " bytes"
}
