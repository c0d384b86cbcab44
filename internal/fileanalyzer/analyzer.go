package fileanalyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// ErrUnsupportedType is returned when no decoder is registered for a
// detected file type
var ErrUnsupportedType = errors.New("unsupported file format")

// UnsupportedTypeError reports the file and the type that had no decoder
type UnsupportedTypeError struct {
	Path string
	Type FileType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Path, ErrUnsupportedType, e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// Decoder turns one format's header into named metadata fields
type Decoder interface {
	// Name identifies the decoder in logs
	Name() string

	// Decode returns the fields read from the file, or an empty map when the
	// file cannot be opened, its header is incomplete, or an external
	// service rejects it
	Decode(filePath string) *metadata.Map
}

// Result represents the analysis result for a file
type Result struct {
	Path       string        // Analyzed file
	FileType   FileType      // Type assigned by signature detection
	Mode       Mode          // Decoders that were requested
	Metadata   *metadata.Map // Merged decoder output
	AnalyzedAt time.Time     // When analysis was performed
}

// Extract runs the decoders in order and merges their output. Later decoders
// overwrite earlier values for the same key; an empty result from one decoder
// does not stop the others.
func Extract(filePath string, decoders ...Decoder) *metadata.Map {
	merged := metadata.New()
	for _, d := range decoders {
		fields := d.Decode(filePath)
		if fields.Len() == 0 {
			logger.Debugf("Decoder %s produced no metadata for %s", d.Name(), filePath)
			continue
		}
		merged.Merge(fields)
	}
	return merged
}

// Manager maps detected file types to their decoders
type Manager struct {
	basic    Decoder
	decoders map[FileType][]Decoder
}

// Option configures a Manager
type Option func(*options)

type options struct {
	archives  ArchiveOpener
	documents DocumentOpener
}

// WithArchiveOpener replaces the ZIP archive service
func WithArchiveOpener(a ArchiveOpener) Option {
	return func(o *options) {
		o.archives = a
	}
}

// WithDocumentOpener replaces the PDF document service
func WithDocumentOpener(d DocumentOpener) Option {
	return func(o *options) {
		o.documents = d
	}
}

// NewManager creates a manager with a decoder for every supported type
func NewManager(opts ...Option) *Manager {
	o := &options{
		archives:  ZipArchiveOpener{},
		documents: PDFDocumentOpener{},
	}
	for _, opt := range opts {
		opt(o)
	}

	m := &Manager{
		basic:    &BasicDecoder{},
		decoders: make(map[FileType][]Decoder),
	}

	m.RegisterDecoder(PDF, &PDFDecoder{Documents: o.documents})
	m.RegisterDecoder(TXT, &TextDecoder{})
	m.RegisterDecoder(JPEG, &JPEGDecoder{})
	m.RegisterDecoder(PNG, &PNGDecoder{})
	m.RegisterDecoder(BMP, &BMPDecoder{})
	m.RegisterDecoder(ZIP, &ZIPDecoder{Archives: o.archives})
	m.RegisterDecoder(WAV, &WAVDecoder{})
	// The screen descriptor runs second; both set FileType to GIF
	m.RegisterDecoder(GIF, &GIFSignatureDecoder{}, &GIFScreenDecoder{})

	return m
}

// RegisterDecoder appends decoders for a file type
func (m *Manager) RegisterDecoder(ft FileType, decoders ...Decoder) {
	m.decoders[ft] = append(m.decoders[ft], decoders...)
}

// DecodersFor returns the specialized decoders registered for a file type
func (m *Manager) DecodersFor(ft FileType) ([]Decoder, error) {
	decoders, ok := m.decoders[ft]
	if !ok || len(decoders) == 0 {
		return nil, ErrUnsupportedType
	}
	return decoders, nil
}

// Analyze detects the file type and runs the decoders selected by mode. An
// unsupported detected type is the only error; with ModeBoth the returned
// result still carries the basic attributes.
func (m *Manager) Analyze(filePath string, mode Mode) (*Result, error) {
	logger.Debugf("Analyzing file: %s (mode %s)", filePath, mode)

	result := &Result{
		Path:       filePath,
		FileType:   Detect(filePath),
		Mode:       mode,
		AnalyzedAt: timeNow(),
	}

	var decoders []Decoder
	if mode.includesBasic() {
		decoders = append(decoders, m.basic)
	}

	var err error
	if mode.includesSpecialized() {
		specialized, lookupErr := m.DecodersFor(result.FileType)
		if lookupErr != nil {
			err = &UnsupportedTypeError{Path: filePath, Type: result.FileType}
		}
		decoders = append(decoders, specialized...)
	}

	result.Metadata = Extract(filePath, decoders...)

	if err != nil {
		return result, err
	}

	logger.Debugf("Analysis of %s: type=%s, fields=%d", filePath, result.FileType, result.Metadata.Len())
	return result, nil
}

var timeNow = func() time.Time {
	return time.Now()
}
