package fileanalyzer

import (
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

// readFileSample reads a sample of bytes from the beginning of a file
func readFileSample(filePath string, size int) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buffer := make([]byte, size)
	n, err := io.ReadAtLeast(file, buffer, 1)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	return buffer[:n], nil
}

// detectTextEncoding tries to detect the text encoding of a sample
func detectTextEncoding(data []byte) string {
	// Check for UTF-32 LE BOM before UTF-16 LE, they share a prefix
	if len(data) >= 4 && data[0] == 0xFF && data[1] == 0xFE && data[2] == 0x00 && data[3] == 0x00 {
		return "UTF-32 LE"
	}

	// Check for UTF-32 BE BOM
	if len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF {
		return "UTF-32 BE"
	}

	// Check for UTF-8 BOM
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return "UTF-8 with BOM"
	}

	// Check for UTF-16 LE BOM
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return "UTF-16 LE"
	}

	// Check for UTF-16 BE BOM
	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return "UTF-16 BE"
	}

	// If no BOM is detected but content is valid UTF-8, return UTF-8
	if utf8.Valid(data) {
		if isASCII(data) {
			return "ASCII"
		}
		return "UTF-8"
	}

	// Alternating null bytes suggest UTF-16 without a BOM
	if len(data)%2 == 0 && len(data) > 4 {
		if nullsAt(data, 1) {
			return "UTF-16 LE (no BOM)"
		}
		if nullsAt(data, 0) {
			return "UTF-16 BE (no BOM)"
		}
	}

	// Default to binary if we can't determine encoding
	return "binary"
}

// nullsAt reports whether every other byte, starting at start, is zero
// within the first 100 bytes
func nullsAt(data []byte, start int) bool {
	for i := start; i < min(len(data), 100); i += 2 {
		if data[i] != 0x00 {
			return false
		}
	}
	return true
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
