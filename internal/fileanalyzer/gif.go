package fileanalyzer

import (
	"encoding/binary"
	"strconv"

	"github.com/deploymenttheory/go-filemeta/internal/header"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

const (
	gifHeaderSize = 6
	// the logical screen descriptor directly follows the 6-byte header
	gifScreenDescriptorOffset = gifHeaderSize
	gifScreenDescriptorSize   = 7
)

// GIFSignatureDecoder reads the GIF signature and version
type GIFSignatureDecoder struct{}

func (d *GIFSignatureDecoder) Name() string { return "gif-signature" }

// Decode returns the "GIF" signature and the version, e.g. "89a"
func (d *GIFSignatureDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, GIF)

	buf, err := header.Read(filePath, 0, gifHeaderSize)
	if err != nil {
		logger.Debugf("GIF header unavailable: %v", err)
		return fields
	}

	f := header.NewFields(buf)
	signature := f.String(3, "signature")
	version := f.String(3, "version")

	fields.Set("FileType", "GIF")
	fields.Set("Signature", signature)
	fields.Set("Version", version)

	return fields
}

// GIFScreenDecoder reads the logical screen descriptor
type GIFScreenDecoder struct{}

func (d *GIFScreenDecoder) Name() string { return "gif-screen-descriptor" }

// Decode returns the canvas size, packed flags, background color index and
// pixel aspect ratio
func (d *GIFScreenDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, GIF)

	buf, err := header.Read(filePath, gifScreenDescriptorOffset, gifScreenDescriptorSize)
	if err != nil {
		logger.Debugf("GIF screen descriptor unavailable: %v", err)
		return fields
	}

	f := header.NewFields(buf)
	width := f.U16(binary.LittleEndian, "width")
	height := f.U16(binary.LittleEndian, "height")
	packed := f.U8("packed fields")
	background := f.U8("background color index")
	aspect := f.U8("pixel aspect ratio")
	if err := f.Err(); err != nil {
		logger.Debugf("%s: %v", filePath, err)
		return metadata.New()
	}

	fields.Set("FileType", "GIF")
	fields.Set("Width", strconv.FormatUint(uint64(width), 10))
	fields.Set("Height", strconv.FormatUint(uint64(height), 10))
	fields.Set("PackedFields", strconv.FormatUint(uint64(packed), 10))
	fields.Set("BackgroundColorIndex", strconv.FormatUint(uint64(background), 10))
	fields.Set("PixelAspectRatio", strconv.FormatUint(uint64(aspect), 10))

	return fields
}
