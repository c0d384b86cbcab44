package fileanalyzer

import (
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-filemeta/internal/logger"
)

// extensionEquivalences lists the extensions accepted for each file type
var extensionEquivalences = map[FileType][]string{
	PDF:  {".pdf"},
	TXT:  {".txt", ".text"},
	JPEG: {".jpg", ".jpeg", ".jpe", ".jfif"},
	PNG:  {".png"},
	BMP:  {".bmp", ".dib"},
	GIF:  {".gif"},
	ZIP:  {".zip"},
	WAV:  {".wav", ".wave"},
}

// IsExtensionMatch checks if the file extension is one expected for the type
func IsExtensionMatch(filePath string, ft FileType) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return false
	}

	for _, equivalent := range extensionEquivalences[ft] {
		if ext == equivalent {
			return true
		}
	}

	return false
}

// checkExtension warns when a decoder runs on a file whose extension does not
// belong to its format. Dispatch is signature based, so decoding continues.
func checkExtension(filePath string, ft FileType) {
	if !IsExtensionMatch(filePath, ft) {
		logger.Warningf("Unexpected file extension %q for %s metadata: %s",
			filepath.Ext(filePath), ft, filePath)
	}
}
