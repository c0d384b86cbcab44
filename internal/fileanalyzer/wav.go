package fileanalyzer

import (
	"encoding/binary"
	"strconv"

	"github.com/deploymenttheory/go-filemeta/internal/header"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// wavHeaderSize is the canonical RIFF/WAVE header with fmt and data chunks
const wavHeaderSize = 44

// WAVDecoder reads the canonical 44-byte WAV header
type WAVDecoder struct{}

func (d *WAVDecoder) Name() string { return "wav" }

// Decode returns the RIFF, fmt and data chunk fields
func (d *WAVDecoder) Decode(filePath string) *metadata.Map {
	fields := metadata.New()
	checkExtension(filePath, WAV)

	buf, err := header.Read(filePath, 0, wavHeaderSize)
	if err != nil {
		logger.Debugf("WAV header unavailable: %v", err)
		return fields
	}

	le := binary.LittleEndian
	f := header.NewFields(buf)
	riffTag := f.String(4, "RIFF tag")
	riffSize := f.U32(le, "RIFF size")
	waveTag := f.String(4, "WAVE tag")
	fmtTag := f.String(4, "fmt tag")
	fmtSize := f.U32(le, "fmt size")
	audioFormat := f.U16(le, "audio format")
	numChannels := f.U16(le, "channel count")
	sampleRate := f.U32(le, "sample rate")
	byteRate := f.U32(le, "byte rate")
	blockAlign := f.U16(le, "block align")
	bitsPerSample := f.U16(le, "bits per sample")
	dataTag := f.String(4, "data tag")
	dataSize := f.U32(le, "data size")
	if err := f.Err(); err != nil {
		logger.Debugf("%s: %v", filePath, err)
		return metadata.New()
	}

	fields.Set("FileType", "WAV")
	fields.Set("RIFFTag", riffTag)
	fields.Set("RIFFSize", strconv.FormatUint(uint64(riffSize), 10))
	fields.Set("WAVETag", waveTag)
	fields.Set("FMTTag", fmtTag)
	fields.Set("FMTSize", strconv.FormatUint(uint64(fmtSize), 10))
	fields.Set("AudioFormat", strconv.FormatUint(uint64(audioFormat), 10))
	fields.Set("NumChannels", strconv.FormatUint(uint64(numChannels), 10))
	fields.Set("SampleRate", strconv.FormatUint(uint64(sampleRate), 10))
	fields.Set("ByteRate", strconv.FormatUint(uint64(byteRate), 10))
	fields.Set("BlockAlign", strconv.FormatUint(uint64(blockAlign), 10))
	fields.Set("BitsPerSample", strconv.FormatUint(uint64(bitsPerSample), 10))
	fields.Set("DataTag", dataTag)
	fields.Set("DataSize", strconv.FormatUint(uint64(dataSize), 10))

	return fields
}
