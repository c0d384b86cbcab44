package fileanalyzer

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// ErrDocumentLocked is returned for encrypted documents that cannot be read
// without a password
var ErrDocumentLocked = errors.New("document is locked")

// Document is an opened document exposing its information dictionary
type Document interface {
	// Info returns the text of an information dictionary entry, or ""
	Info(key string) string
	Close() error
}

// DocumentOpener opens documents for the PDF decoder
type DocumentOpener interface {
	Open(filePath string) (Document, error)
}

// PDFDocumentOpener reads documents with ledongthuc/pdf. The reader panics on
// some malformed input; panics are turned into errors here.
type PDFDocumentOpener struct{}

// Open loads the document trailer and its Info dictionary
func (PDFDocumentOpener) Open(filePath string) (Document, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	info, err := loadPDFInfo(file, stat.Size())
	if err != nil {
		file.Close()
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%s: %w", filePath, ErrDocumentLocked)
		}
		return nil, fmt.Errorf("%s: failed to load PDF: %w", filePath, err)
	}

	return &pdfDocument{file: file, info: info}, nil
}

func loadPDFInfo(file *os.File, size int64) (info pdf.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(file, size)
	if err != nil {
		return pdf.Value{}, err
	}
	return reader.Trailer().Key("Info"), nil
}

type pdfDocument struct {
	file *os.File
	info pdf.Value
}

func (d *pdfDocument) Info(key string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()
	return d.info.Key(key).Text()
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}
