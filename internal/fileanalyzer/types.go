package fileanalyzer

import (
	"fmt"
	"strings"
)

// FileType is the closed set of file classifications the detector produces
type FileType int

const (
	UNKNOWN FileType = iota
	PDF
	TXT
	JPEG
	PNG
	BMP
	GIF
	ZIP
	WAV
)

var fileTypeNames = map[FileType]string{
	UNKNOWN: "UNKNOWN",
	PDF:     "PDF",
	TXT:     "TXT",
	JPEG:    "JPEG",
	PNG:     "PNG",
	BMP:     "BMP",
	GIF:     "GIF",
	ZIP:     "ZIP",
	WAV:     "WAV",
}

func (t FileType) String() string {
	if name, ok := fileTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FileType(%d)", int(t))
}

// Mode selects which decoders an analysis runs
type Mode int

const (
	// ModeBasic runs only the filesystem attribute decoder
	ModeBasic Mode = iota + 1
	// ModeSpecialized runs only the decoders for the detected type
	ModeSpecialized
	// ModeBoth runs Basic first, then the specialized decoders
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModeSpecialized:
		return "specialized"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name (basic, specialized, both) to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "1":
		return ModeBasic, nil
	case "specialized", "specialised", "2":
		return ModeSpecialized, nil
	case "both", "3":
		return ModeBoth, nil
	default:
		return 0, fmt.Errorf("unknown extraction mode %q", s)
	}
}

func (m Mode) includesBasic() bool {
	return m == ModeBasic || m == ModeBoth
}

func (m Mode) includesSpecialized() bool {
	return m == ModeSpecialized || m == ModeBoth
}
