package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/deploymenttheory/go-filemeta/internal/fileanalyzer"
	"github.com/deploymenttheory/go-filemeta/internal/metadata"
)

// keyWidth is the column width keys are padded to
const keyWidth = 20

// Renderer prints metadata as aligned "key: value" lines
type Renderer struct {
	out    io.Writer
	header *color.Color
	key    *color.Color
	failed *color.Color
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, colors bool) *Renderer {
	r := &Renderer{
		out:    out,
		header: color.New(color.Bold, color.FgCyan),
		key:    color.New(color.FgGreen),
		failed: color.New(color.FgRed),
	}
	if colors {
		r.header.EnableColor()
		r.key.EnableColor()
		r.failed.EnableColor()
	} else {
		r.header.DisableColor()
		r.key.DisableColor()
		r.failed.DisableColor()
	}
	return r
}

// Header prints the line introducing a file
func (r *Renderer) Header(filePath string, ft fileanalyzer.FileType) {
	r.header.Fprintf(r.out, "%s (%s)\n", filePath, ft)
}

// Metadata prints every entry in insertion order
func (r *Renderer) Metadata(m *metadata.Map) {
	if m.Len() == 0 {
		fmt.Fprintln(r.out, "No metadata found.")
		return
	}
	m.Each(func(k, v string) bool {
		fmt.Fprintf(r.out, "%s: %s\n", r.key.Sprintf("%-*s", keyWidth, k), v)
		return true
	})
}

// Error prints a per-file failure
func (r *Renderer) Error(err error) {
	r.failed.Fprintf(r.out, "Error: %v\n", err)
}

// Separator prints the blank line between files
func (r *Renderer) Separator() {
	fmt.Fprintln(r.out)
}
