package fileanalyzer

import (
	"errors"
	"hash/crc32"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZIPDecoder(t *testing.T) {
	data := zipBytes(t, "release bundle",
		map[string]string{"readme.txt": strings.Repeat("hello ", 50), "b.txt": "b"},
		[]string{"readme.txt", "b.txt"})
	path := writeFixture(t, "bundle.zip", data)

	m := (&ZIPDecoder{}).Decode(path)
	assert.Equal(t, []string{
		"FileType", "FileSize", "Comment", "FileName", "CompressedSize",
		"CompressionMethod", "LastModificationTime", "LastModificationDate",
		"CRC32", "UncompressedSize",
	}, m.Keys())
	assert.Equal(t, "ZIP", get(t, m, "FileType"))
	assert.Equal(t, formatBytes(int64(len(data))), get(t, m, "FileSize"))
	assert.Equal(t, "release bundle", get(t, m, "Comment"))
	assert.Equal(t, "readme.txt", get(t, m, "FileName"))
	assert.Equal(t, "8", get(t, m, "CompressionMethod"))
	assert.Equal(t, "21450", get(t, m, "LastModificationTime"))
	assert.Equal(t, "22639", get(t, m, "LastModificationDate"))
	assert.Equal(t, "300 bytes", get(t, m, "UncompressedSize"))
	assert.True(t, strings.HasSuffix(get(t, m, "CompressedSize"), " bytes"))

	crc := crc32.ChecksumIEEE([]byte(strings.Repeat("hello ", 50)))
	assert.Equal(t, formatUint(crc), get(t, m, "CRC32"))
}

func TestZIPDecoderWithoutComment(t *testing.T) {
	data := zipBytes(t, "", map[string]string{"a": "a"}, []string{"a"})
	path := writeFixture(t, "plain.zip", data)

	m := (&ZIPDecoder{}).Decode(path)
	assert.False(t, m.Has("Comment"))
	assert.Equal(t, "a", get(t, m, "FileName"))
}

func TestZIPDecoderNotAnArchive(t *testing.T) {
	path := writeFixture(t, "broken.zip", []byte("PK\x03\x04 truncated"))
	assert.Equal(t, 0, (&ZIPDecoder{}).Decode(path).Len())
}

type fakeArchive struct {
	comment string
	entries []ArchiveEntry
	closed  bool
}

func (a *fakeArchive) Comment() string         { return a.comment }
func (a *fakeArchive) Entries() []ArchiveEntry { return a.entries }
func (a *fakeArchive) Close() error            { a.closed = true; return nil }

type fakeArchiveOpener struct {
	archive *fakeArchive
	err     error
}

func (o *fakeArchiveOpener) Open(string) (Archive, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.archive, nil
}

func TestZIPDecoderUsesArchiveOpener(t *testing.T) {
	archive := &fakeArchive{entries: []ArchiveEntry{{
		Name:             "payload.bin",
		Method:           0,
		ModifiedTime:     1,
		ModifiedDate:     2,
		CRC32:            3,
		CompressedSize:   5_000_000_000,
		UncompressedSize: 5_000_000_000,
	}}}
	path := writeFixture(t, "large.zip", []byte("PK\x03\x04"))

	m := (&ZIPDecoder{Archives: &fakeArchiveOpener{archive: archive}}).Decode(path)
	assert.Equal(t, "payload.bin", get(t, m, "FileName"))
	assert.Equal(t, "5000000000 bytes", get(t, m, "CompressedSize"))
	assert.Equal(t, "0", get(t, m, "CompressionMethod"))
	assert.True(t, archive.closed)
}

func TestZIPDecoderEmptyArchive(t *testing.T) {
	path := writeFixture(t, "empty-archive.zip", []byte("PK\x05\x06"))

	m := (&ZIPDecoder{Archives: &fakeArchiveOpener{archive: &fakeArchive{}}}).Decode(path)
	assert.Equal(t, []string{"FileType", "FileSize"}, m.Keys())
}

func TestZIPDecoderOpenFailure(t *testing.T) {
	path := writeFixture(t, "denied.zip", []byte("PK\x03\x04"))

	m := (&ZIPDecoder{Archives: &fakeArchiveOpener{err: errors.New("boom")}}).Decode(path)
	assert.Equal(t, 0, m.Len())
}

func TestPDFDecoder(t *testing.T) {
	info := map[string]string{
		"Title":        "Annual Report",
		"Author":       "Finance Team",
		"Producer":     "pdfgen 1.0",
		"CreationDate": "D:20240315103020Z",
		"ModDate":      "D:20240316080000+02'00'",
	}
	path := writeFixture(t, "report.pdf",
		pdfBytes(info, []string{"Title", "Author", "Producer", "CreationDate", "ModDate"}))

	m := (&PDFDecoder{}).Decode(path)
	assert.Equal(t, []string{
		"Title", "Author", "Subject", "Keywords", "Creator", "Producer",
		"CreationDate", "ModificationDate", "FileType",
	}, m.Keys())
	assert.Equal(t, "Annual Report", get(t, m, "Title"))
	assert.Equal(t, "Finance Team", get(t, m, "Author"))
	assert.Equal(t, "", get(t, m, "Subject"))
	assert.Equal(t, "pdfgen 1.0", get(t, m, "Producer"))
	assert.Equal(t, "2024-03-15T10:30:20Z", get(t, m, "CreationDate"))
	assert.Equal(t, "2024-03-16T08:00:00+02:00", get(t, m, "ModificationDate"))
	assert.Equal(t, "PDF", get(t, m, "FileType"))
}

func TestPDFDecoderMalformed(t *testing.T) {
	path := writeFixture(t, "broken.pdf", []byte("%PDF-1.4\nnot really a pdf"))
	assert.Equal(t, 0, (&PDFDecoder{}).Decode(path).Len())
}

type fakeDocument struct {
	info   map[string]string
	closed bool
}

func (d *fakeDocument) Info(key string) string { return d.info[key] }
func (d *fakeDocument) Close() error           { d.closed = true; return nil }

type fakeDocumentOpener struct {
	doc *fakeDocument
	err error
}

func (o *fakeDocumentOpener) Open(string) (Document, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.doc, nil
}

func TestPDFDecoderUsesDocumentOpener(t *testing.T) {
	doc := &fakeDocument{info: map[string]string{
		"Subject":  "Quarterly",
		"Keywords": "finance, q1",
		"ModDate":  "not a date",
	}}
	path := writeFixture(t, "doc.pdf", []byte("%PDF-1.7"))

	m := (&PDFDecoder{Documents: &fakeDocumentOpener{doc: doc}}).Decode(path)
	assert.Equal(t, "Quarterly", get(t, m, "Subject"))
	assert.Equal(t, "finance, q1", get(t, m, "Keywords"))
	assert.Equal(t, "", get(t, m, "CreationDate"))
	assert.Equal(t, "not a date", get(t, m, "ModificationDate"))
	assert.True(t, doc.closed)
}

func TestPDFDecoderLockedDocument(t *testing.T) {
	path := writeFixture(t, "secret.pdf", []byte("%PDF-1.7"))

	opener := &fakeDocumentOpener{err: ErrDocumentLocked}
	assert.Equal(t, 0, (&PDFDecoder{Documents: opener}).Decode(path).Len())
}

func TestParsePDFDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{raw: "D:20240315103020Z", want: time.Date(2024, 3, 15, 10, 30, 20, 0, time.UTC), ok: true},
		{raw: "D:20240315103020", want: time.Date(2024, 3, 15, 10, 30, 20, 0, time.UTC), ok: true},
		{raw: "D:2024", want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "20240315", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "D:20240315103020-05'30'", want: time.Date(2024, 3, 15, 16, 0, 20, 0, time.UTC), ok: true},
		{raw: "", ok: false},
		{raw: "D:20", ok: false},
		{raw: "yesterday", ok: false},
		{raw: "D:20240315103020X", ok: false},
		{raw: "D:20240229", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "D:20231231235959+23'59'", want: time.Date(2023, 12, 31, 0, 0, 59, 0, time.UTC), ok: true},
		{raw: "D:20241399", ok: false},
		{raw: "D:20240001", ok: false},
		{raw: "D:20240100", ok: false},
		{raw: "D:20240230", ok: false},
		{raw: "D:20230229", ok: false},
		{raw: "D:20240431", ok: false},
		{raw: "D:20240101256161Z", ok: false},
		{raw: "D:2024010124", ok: false},
		{raw: "D:202401012360", ok: false},
		{raw: "D:20240101235960", ok: false},
		{raw: "D:20240101120000+24'00'", ok: false},
		{raw: "D:20240101120000-05'60'", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parsePDFDate(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatPDFDateKeepsInvalidDates(t *testing.T) {
	for _, raw := range []string{"D:20241399", "D:20240230", "D:20240101256161Z"} {
		assert.Equal(t, raw, formatPDFDate(raw))
	}
	assert.Equal(t, "2024-02-29T00:00:00Z", formatPDFDate("D:20240229"))
}

func formatUint(v uint32) string {
	return strings.TrimSuffix(formatBytes(int64(v)), " bytes")
}
