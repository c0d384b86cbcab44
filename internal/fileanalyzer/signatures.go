package fileanalyzer

import (
	"bytes"

	"github.com/deploymenttheory/go-filemeta/internal/header"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
)

// FileSignature represents a file signature
type FileSignature struct {
	Name      string
	Magic     []byte
	Extension string
	Type      FileType
}

// REF: https://en.wikipedia.org/wiki/List_of_file_signatures

// knownSignatures is checked in order; the first match wins
var knownSignatures = []FileSignature{
	{Name: "JPEG Image", Magic: []byte{0xFF, 0xD8, 0xFF}, Extension: ".jpg", Type: JPEG},
	{Name: "PNG Image", Magic: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, Extension: ".png", Type: PNG},
	{Name: "BMP Image", Magic: []byte{0x42, 0x4D}, Extension: ".bmp", Type: BMP},
	{Name: "PDF Document", Magic: []byte{0x25, 0x50, 0x44, 0x46}, Extension: ".pdf", Type: PDF},
	{Name: "ZIP Archive", Magic: []byte{0x50, 0x4B, 0x03, 0x04}, Extension: ".zip", Type: ZIP},
	{Name: "WAV Audio", Magic: []byte{0x52, 0x49, 0x46, 0x46}, Extension: ".wav", Type: WAV},
	{Name: "GIF Image", Magic: []byte{0x47, 0x49, 0x46}, Extension: ".gif", Type: GIF},
}

// detectPrefixSize is the number of leading bytes the detector inspects
const detectPrefixSize = 8

// Detect classifies a file by its leading bytes. Readable files that match no
// signature are treated as text; UNKNOWN means the file could not be read.
func Detect(filePath string) FileType {
	prefix, err := header.ReadPrefix(filePath, detectPrefixSize)
	if err != nil {
		logger.Debugf("Cannot read %s for detection: %v", filePath, err)
		return UNKNOWN
	}

	ft := DetectBytes(prefix)
	logger.Debugf("Detected %s for file %s", ft, filePath)
	return ft
}

// DetectBytes matches leading file bytes against the signature table
func DetectBytes(prefix []byte) FileType {
	for _, sig := range knownSignatures {
		if len(prefix) >= len(sig.Magic) && bytes.Equal(prefix[:len(sig.Magic)], sig.Magic) {
			return sig.Type
		}
	}
	return TXT
}

// SignatureFor returns the signature entry for a binary file type
func SignatureFor(ft FileType) (FileSignature, bool) {
	for _, sig := range knownSignatures {
		if sig.Type == ft {
			return sig, true
		}
	}
	return FileSignature{}, false
}
