package fileanalyzer

import (
	"encoding/binary"
	"strconv"

	"github.com/deploymenttheory/go-filemeta/internal/header"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// bmpHeaderSize covers BITMAPFILEHEADER and BITMAPINFOHEADER
const bmpHeaderSize = 54

// bmpHeader is the little-endian BMP file and info header
type bmpHeader struct {
	Signature       string
	FileSize        uint32
	DataOffset      uint32
	HeaderSize      uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

func parseBMPHeader(buf []byte) (bmpHeader, error) {
	le := binary.LittleEndian
	f := header.NewFields(buf)

	var h bmpHeader
	h.Signature = f.String(2, "signature")
	h.FileSize = f.U32(le, "file size")
	f.Skip(4, "reserved")
	h.DataOffset = f.U32(le, "data offset")
	h.HeaderSize = f.U32(le, "info header size")
	h.Width = f.I32(le, "width")
	h.Height = f.I32(le, "height")
	h.Planes = f.U16(le, "planes")
	h.BitCount = f.U16(le, "bit count")
	h.Compression = f.U32(le, "compression")
	h.ImageSize = f.U32(le, "image size")
	h.XPixelsPerMeter = f.I32(le, "x pixels per meter")
	h.YPixelsPerMeter = f.I32(le, "y pixels per meter")
	h.ColorsUsed = f.U32(le, "colors used")
	h.ColorsImportant = f.U32(le, "colors important")

	return h, f.Err()
}

// BMPDecoder reads the bitmap file and info headers
type BMPDecoder struct{}

func (d *BMPDecoder) Name() string { return "bmp" }

// Decode returns the signature, declared file size and dimensions
func (d *BMPDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, BMP)

	buf, err := header.Read(filePath, 0, bmpHeaderSize)
	if err != nil {
		logger.Debugf("BMP header unavailable: %v", err)
		return fields
	}

	h, err := parseBMPHeader(buf)
	if err != nil {
		logger.Debugf("%s: %v", filePath, err)
		return fields
	}

	fields.Set("FileType", "BMP")
	fields.Set("Signature", h.Signature)
	fields.Set("FileSize", strconv.FormatUint(uint64(h.FileSize), 10))
	fields.Set("Width", strconv.FormatInt(int64(h.Width), 10))
	fields.Set("Height", strconv.FormatInt(int64(h.Height), 10))

	return fields
}
