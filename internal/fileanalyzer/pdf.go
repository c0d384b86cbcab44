package fileanalyzer

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// PDFDecoder reports the document information dictionary
type PDFDecoder struct {
	Documents DocumentOpener
}

func (d *PDFDecoder) Name() string { return "pdf" }

func (d *PDFDecoder) documents() DocumentOpener {
	if d.Documents == nil {
		return PDFDocumentOpener{}
	}
	return d.Documents
}

// pdfInfoKeys maps output fields to information dictionary entries
var pdfInfoKeys = []struct {
	field string
	key   string
}{
	{"Title", "Title"},
	{"Author", "Author"},
	{"Subject", "Subject"},
	{"Keywords", "Keywords"},
	{"Creator", "Creator"},
	{"Producer", "Producer"},
}

// Decode returns the document properties. Locked or unreadable documents
// yield an empty map.
func (d *PDFDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, PDF)

	doc, err := d.documents().Open(filePath)
	if err != nil {
		if errors.Is(err, ErrDocumentLocked) {
			logger.Debugf("Skipping locked PDF %s", filePath)
		} else {
			logger.Debugf("Failed to load PDF: %v", err)
		}
		return fields
	}
	defer doc.Close()

	for _, k := range pdfInfoKeys {
		fields.Set(k.field, doc.Info(k.key))
	}
	fields.Set("CreationDate", formatPDFDate(doc.Info("CreationDate")))
	fields.Set("ModificationDate", formatPDFDate(doc.Info("ModDate")))
	fields.Set("FileType", "PDF")

	return fields
}

// formatPDFDate renders a PDF date string (D:YYYYMMDDHHmmSSOHH'mm') as
// RFC 3339. Values that do not parse are returned unchanged.
func formatPDFDate(raw string) string {
	t, ok := parsePDFDate(raw)
	if !ok {
		return raw
	}
	return t.Format(time.RFC3339)
}

func parsePDFDate(raw string) (time.Time, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "D:")
	if len(s) < 4 {
		return time.Time{}, false
	}

	// year is mandatory, every later component defaults to its minimum
	parts := []int{0, 1, 1, 0, 0, 0}
	widths := []int{4, 2, 2, 2, 2, 2}
	pos := 0
	for i, w := range widths {
		if pos+w > len(s) || !isDigits(s[pos:pos+w]) {
			if i == 0 {
				return time.Time{}, false
			}
			break
		}
		parts[i], _ = strconv.Atoi(s[pos : pos+w])
		pos += w
	}

	loc := time.UTC
	rest := s[pos:]
	switch {
	case rest == "" || strings.HasPrefix(rest, "Z"):
	case rest[0] == '+' || rest[0] == '-':
		tz := strings.ReplaceAll(rest[1:], "'", "")
		if len(tz) < 2 || !isDigits(tz[:2]) {
			return time.Time{}, false
		}
		hours, _ := strconv.Atoi(tz[:2])
		minutes := 0
		if len(tz) >= 4 && isDigits(tz[2:4]) {
			minutes, _ = strconv.Atoi(tz[2:4])
		}
		if hours > 23 || minutes > 59 {
			return time.Time{}, false
		}
		offset := hours*3600 + minutes*60
		if rest[0] == '-' {
			offset = -offset
		}
		loc = time.FixedZone("", offset)
	default:
		return time.Time{}, false
	}

	year, month, day := parts[0], parts[1], parts[2]
	hour, minute, second := parts[3], parts[4], parts[5]
	if month < 1 || month > 12 || day < 1 || day > daysIn(year, month) ||
		hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), true
}

// daysIn returns the number of days in a month of a year
func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
