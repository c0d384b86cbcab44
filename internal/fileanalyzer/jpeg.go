package fileanalyzer

import (
	"encoding/binary"
	"strconv"

	"github.com/deploymenttheory/go-filemeta/internal/header"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

const (
	// jpegHeaderOffset skips the SOI marker; the JFIF APP0 segment follows it
	jpegHeaderOffset = 2
	jpegHeaderSize   = 18
)

// JPEGDecoder reads the JFIF APP0 segment. The 18-byte header is read from
// offset 2, past the SOI marker, so Marker holds the APP0 marker (0xFFE0
// for JFIF files) rather than SOI.
type JPEGDecoder struct{}

func (d *JPEGDecoder) Name() string { return "jpeg" }

// Decode returns the APP0 marker, JFIF identifier, version and densities
func (d *JPEGDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, JPEG)

	buf, err := header.Read(filePath, jpegHeaderOffset, jpegHeaderSize)
	if err != nil {
		logger.Debugf("JPEG header unavailable: %v", err)
		return fields
	}

	f := header.NewFields(buf)
	marker := f.U16(binary.BigEndian, "marker")
	length := f.U16(binary.BigEndian, "segment length")
	identifier := f.String(5, "identifier")
	version := f.U16(binary.BigEndian, "version")
	units := f.U8("density units")
	xDensity := f.U16(binary.BigEndian, "x density")
	yDensity := f.U16(binary.BigEndian, "y density")
	thumbWidth := f.U8("thumbnail width")
	thumbHeight := f.U8("thumbnail height")
	if err := f.Err(); err != nil {
		logger.Debugf("%s: %v", filePath, err)
		return metadata.New()
	}

	fields.Set("FileType", "JPEG")
	fields.Set("Marker", strconv.FormatUint(uint64(marker), 10))
	fields.Set("Length", strconv.FormatUint(uint64(length), 10))
	fields.Set("Identifier", identifier)
	fields.Set("Version", strconv.FormatUint(uint64(version), 10))
	fields.Set("Units", strconv.FormatUint(uint64(units), 10))
	fields.Set("XDensity", strconv.FormatUint(uint64(xDensity), 10))
	fields.Set("YDensity", strconv.FormatUint(uint64(yDensity), 10))
	fields.Set("ThumbnailWidth", strconv.FormatUint(uint64(thumbWidth), 10))
	fields.Set("ThumbnailHeight", strconv.FormatUint(uint64(thumbHeight), 10))

	return fields
}
