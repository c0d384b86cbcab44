package fileanalyzer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// jfifBytes builds SOI followed by a JFIF APP0 segment and EOI
func jfifBytes() []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})             // SOI
	b.Write([]byte{0xFF, 0xE0, 0x00, 0x10}) // APP0, length 16
	b.WriteString("JFIF\x00")
	b.Write([]byte{0x01, 0x02}) // version 1.2
	b.WriteByte(0x01)           // dots per inch
	b.Write([]byte{0x00, 0x48}) // 72
	b.Write([]byte{0x00, 0x60}) // 96
	b.Write([]byte{0x00, 0x00}) // no thumbnail
	b.Write([]byte{0xFF, 0xD9}) // EOI
	return b.Bytes()
}

func pngBytes(width, height uint32) []byte {
	var b bytes.Buffer
	b.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'})
	binary.Write(&b, binary.BigEndian, uint32(13))
	b.WriteString("IHDR")
	binary.Write(&b, binary.BigEndian, width)
	binary.Write(&b, binary.BigEndian, height)
	b.Write([]byte{8, 6, 0, 0, 0})        // bit depth, color type, compression, filter, interlace
	b.Write([]byte{0x00, 0x00, 0x00, 0x00}) // CRC, not verified
	return b.Bytes()
}

func bmpBytes(width, height int32) []byte {
	le := binary.LittleEndian
	var b bytes.Buffer
	b.WriteString("BM")
	binary.Write(&b, le, uint32(54+16))
	binary.Write(&b, le, uint32(0)) // reserved
	binary.Write(&b, le, uint32(54))
	binary.Write(&b, le, uint32(40))
	binary.Write(&b, le, width)
	binary.Write(&b, le, height)
	binary.Write(&b, le, uint16(1))
	binary.Write(&b, le, uint16(24))
	binary.Write(&b, le, uint32(0))
	binary.Write(&b, le, uint32(16))
	binary.Write(&b, le, int32(2835))
	binary.Write(&b, le, int32(2835))
	binary.Write(&b, le, uint32(0))
	binary.Write(&b, le, uint32(0))
	b.Write(make([]byte, 16))
	return b.Bytes()
}

func wavBytes(sampleRate uint32, channels, bits uint16, dataSize uint32) []byte {
	le := binary.LittleEndian
	blockAlign := channels * bits / 8
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, le, 36+dataSize)
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, le, uint32(16))
	binary.Write(&b, le, uint16(1))
	binary.Write(&b, le, channels)
	binary.Write(&b, le, sampleRate)
	binary.Write(&b, le, sampleRate*uint32(blockAlign))
	binary.Write(&b, le, blockAlign)
	binary.Write(&b, le, bits)
	b.WriteString("data")
	binary.Write(&b, le, dataSize)
	b.Write(make([]byte, dataSize))
	return b.Bytes()
}

func gifBytes(width, height uint16) []byte {
	var b bytes.Buffer
	b.WriteString("GIF89a")
	binary.Write(&b, binary.LittleEndian, width)
	binary.Write(&b, binary.LittleEndian, height)
	b.Write([]byte{0xF7, 0x03, 0x00})
	b.WriteByte(0x3B) // trailer
	return b.Bytes()
}

// zipBytes builds an archive with the given comment and entries in order
func zipBytes(t *testing.T, comment string, entries map[string]string, order []string) []byte {
	t.Helper()
	var b bytes.Buffer
	w := zip.NewWriter(&b)
	require.NoError(t, w.SetComment(comment))
	for _, name := range order {
		fw, err := w.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: time.Date(2024, 3, 15, 10, 30, 20, 0, time.UTC),
		})
		require.NoError(t, err)
		_, err = fw.Write([]byte(entries[name]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return b.Bytes()
}

// pdfBytes builds a minimal PDF whose trailer references an Info dictionary
func pdfBytes(info map[string]string, order []string) []byte {
	var b bytes.Buffer
	offsets := []int{}

	b.WriteString("%PDF-1.4\n")

	offsets = append(offsets, b.Len())
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets = append(offsets, b.Len())
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n")

	offsets = append(offsets, b.Len())
	b.WriteString("3 0 obj\n<<")
	for _, k := range order {
		fmt.Fprintf(&b, " /%s (%s)", k, info[k])
	}
	b.WriteString(" >>\nendobj\n")

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(offsets)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R /Info 3 0 R >>\n", len(offsets)+1)
	fmt.Fprintf(&b, "startxref\n%d\n%%%%EOF\n", xref)
	return b.Bytes()
}
