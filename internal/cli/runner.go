// Package cli drives interactive and batch metadata extraction for the
// filemeta command.
package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/deploymenttheory/go-filemeta/internal/fileanalyzer"
	"github.com/deploymenttheory/go-filemeta/internal/logger"
)

// ErrFilesFailed is returned when at least one file could not be analyzed
var ErrFilesFailed = errors.New("some files could not be analyzed")

// Analyzer detects a file's type and extracts its metadata
type Analyzer interface {
	Analyze(filePath string, mode fileanalyzer.Mode) (*fileanalyzer.Result, error)
}

// Runner analyzes files one at a time and prints the results
type Runner struct {
	analyzer Analyzer
	prompter Prompter
	render   *Renderer
}

// NewRunner creates a runner
func NewRunner(analyzer Analyzer, prompter Prompter, render *Renderer) *Runner {
	return &Runner{
		analyzer: analyzer,
		prompter: prompter,
		render:   render,
	}
}

// Run processes every path in order. A failed file is reported and the run
// continues; the returned error wraps ErrFilesFailed when any file failed.
// An interrupted prompt ends the run and returns terminal.InterruptErr.
func (r *Runner) Run(paths []string) error {
	failed := 0
	for i, filePath := range paths {
		if i > 0 {
			r.render.Separator()
		}
		if err := r.runFile(filePath); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return err
			}
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, failed, len(paths))
	}
	return nil
}

func (r *Runner) runFile(filePath string) error {
	detected := fileanalyzer.Detect(filePath)

	mode, err := r.prompter.SelectMode(filePath, detected)
	if errors.Is(err, terminal.InterruptErr) {
		return err
	}
	if err != nil {
		logger.Errorf("Mode selection for %s failed: %v", filePath, err)
		r.render.Header(filePath, detected)
		r.render.Error(err)
		return err
	}

	result, err := r.analyzer.Analyze(filePath, mode)
	if result != nil {
		r.render.Header(filePath, result.FileType)
		if result.Metadata.Len() > 0 || err == nil {
			r.render.Metadata(result.Metadata)
		}
	} else {
		r.render.Header(filePath, detected)
	}

	if err != nil {
		logger.Debugf("Analysis of %s failed: %v", filePath, err)
		r.render.Error(err)
		return err
	}
	return nil
}
