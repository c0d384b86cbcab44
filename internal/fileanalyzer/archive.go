package fileanalyzer

import (
	"github.com/klauspost/compress/zip"
)

// ArchiveEntry describes one member of an archive as reported by its local
// header
type ArchiveEntry struct {
	Name             string
	Method           uint16
	ModifiedTime     uint16 // MS-DOS time
	ModifiedDate     uint16 // MS-DOS date
	CRC32            uint32
	CompressedSize   uint64
	UncompressedSize uint64
}

// Archive is an opened archive
type Archive interface {
	Comment() string
	Entries() []ArchiveEntry
	Close() error
}

// ArchiveOpener opens archives for the ZIP decoder
type ArchiveOpener interface {
	Open(filePath string) (Archive, error)
}

// ZipArchiveOpener reads archives with klauspost/compress/zip
type ZipArchiveOpener struct{}

// Open opens a ZIP archive
func (ZipArchiveOpener) Open(filePath string) (Archive, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}
	return &zipArchive{reader: reader}, nil
}

type zipArchive struct {
	reader *zip.ReadCloser
}

func (a *zipArchive) Comment() string {
	return a.reader.Comment
}

func (a *zipArchive) Entries() []ArchiveEntry {
	entries := make([]ArchiveEntry, 0, len(a.reader.File))
	for _, file := range a.reader.File {
		entries = append(entries, ArchiveEntry{
			Name:             file.Name,
			Method:           file.Method,
			ModifiedTime:     file.ModifiedTime,
			ModifiedDate:     file.ModifiedDate,
			CRC32:            file.CRC32,
			CompressedSize:   file.CompressedSize64,
			UncompressedSize: file.UncompressedSize64,
		})
	}
	return entries
}

func (a *zipArchive) Close() error {
	return a.reader.Close()
}
