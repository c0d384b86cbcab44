package fileanalyzer

import (
	"os"
	"strconv"

	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// ZIPDecoder reports the archive comment and the header of the first entry
type ZIPDecoder struct {
	Archives ArchiveOpener
}

func (d *ZIPDecoder) Name() string { return "zip" }

func (d *ZIPDecoder) archives() ArchiveOpener {
	if d.Archives == nil {
		return ZipArchiveOpener{}
	}
	return d.Archives
}

// Decode returns archive level fields followed by the first entry's fields
func (d *ZIPDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, ZIP)

	info, err := os.Stat(filePath)
	if err != nil || info.Size() == 0 {
		return fields
	}

	archive, err := d.archives().Open(filePath)
	if err != nil {
		logger.Debugf("Failed to open ZIP %s: %v", filePath, err)
		return fields
	}
	defer archive.Close()

	fields.Set("FileType", "ZIP")
	fields.Set("FileSize", formatBytes(info.Size()))

	if comment := archive.Comment(); comment != "" {
		fields.Set("Comment", comment)
	}

	entries := archive.Entries()
	if len(entries) == 0 {
		return fields
	}

	first := entries[0]
	fields.Set("FileName", first.Name)
	fields.Set("CompressedSize", strconv.FormatUint(first.CompressedSize, 10)+" bytes")
	fields.Set("CompressionMethod", strconv.FormatUint(uint64(first.Method), 10))
	fields.Set("LastModificationTime", strconv.FormatUint(uint64(first.ModifiedTime), 10))
	fields.Set("LastModificationDate", strconv.FormatUint(uint64(first.ModifiedDate), 10))
	fields.Set("CRC32", strconv.FormatUint(uint64(first.CRC32), 10))
	fields.Set("UncompressedSize", strconv.FormatUint(first.UncompressedSize, 10)+" bytes")

	return fields
}
