package fileanalyzer

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// textSampleSize bounds the bytes read to find the title and author lines
const textSampleSize = 64 * 1024

// TextDecoder treats the first line of a text file as its title and the
// second as its author
type TextDecoder struct{}

func (d *TextDecoder) Name() string { return "txt" }

// Decode reads the leading lines of a text file
func (d *TextDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, TXT)

	info, err := os.Stat(filePath)
	if err != nil || info.Size() == 0 {
		return fields
	}

	sample, err := readFileSample(filePath, textSampleSize)
	if err != nil {
		logger.Debugf("Cannot read text sample of %s: %v", filePath, err)
		return fields
	}

	title, author := leadingLines(sample)
	if title != "" {
		fields.Set("Title", title)
	}
	if author != "" {
		fields.Set("Author", author)
	}

	fields.Set("FileName", filepath.Base(filePath))
	fields.Set("FileSize", formatBytes(info.Size()))
	fields.Set("FileType", "TXT")
	fields.Set("Encoding", detectTextEncoding(sample))

	return fields
}

// leadingLines returns the first two lines of the sample without line endings
func leadingLines(sample []byte) (string, string) {
	sample = bytes.TrimPrefix(sample, []byte{0xEF, 0xBB, 0xBF})

	scanner := bufio.NewScanner(bytes.NewReader(sample))
	scanner.Buffer(make([]byte, 0, 4096), len(sample)+1)

	var lines []string
	for len(lines) < 2 && scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}

	for len(lines) < 2 {
		lines = append(lines, "")
	}
	return lines[0], lines[1]
}
