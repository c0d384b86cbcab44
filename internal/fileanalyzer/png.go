package fileanalyzer

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/deploymenttheory/go-filemeta/internal/header"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

const (
	pngMinHeaderSize  = 16 // signature, width, height
	pngIHDRHeaderSize = 24 // signature, IHDR length and type, width, height
)

// PNGDecoder reads the image dimensions following the PNG signature
type PNGDecoder struct{}

func (d *PNGDecoder) Name() string { return "png" }

// Decode returns the signature and dimensions. In a conforming file the
// dimensions live in the IHDR chunk; a bare signature+width+height layout is
// accepted as well.
func (d *PNGDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, PNG)

	buf, err := header.ReadPrefix(filePath, pngIHDRHeaderSize)
	if err != nil {
		logger.Debugf("PNG header unavailable: %v", err)
		return fields
	}
	if len(buf) < pngMinHeaderSize {
		logger.Debugf("%s: PNG header too short: %d bytes", filePath, len(buf))
		return fields
	}

	f := header.NewFields(buf)
	signature := f.String(8, "signature")
	if len(buf) == pngIHDRHeaderSize && bytes.Equal(buf[12:16], []byte("IHDR")) {
		f.Skip(8, "IHDR chunk header")
	}
	width := f.U32(binary.BigEndian, "width")
	height := f.U32(binary.BigEndian, "height")
	if err := f.Err(); err != nil {
		logger.Debugf("%s: %v", filePath, err)
		return metadata.New()
	}

	fields.Set("FileType", "PNG")
	fields.Set("Signature", signature)
	fields.Set("Width", strconv.FormatUint(uint64(width), 10))
	fields.Set("Height", strconv.FormatUint(uint64(height), 10))

	return fields
}
