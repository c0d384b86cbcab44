package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/deploymenttheory/go-filemeta/internal/fileanalyzer"
)

// Prompter chooses the extraction mode for a file
type Prompter interface {
	SelectMode(filePath string, detected fileanalyzer.FileType) (fileanalyzer.Mode, error)
}

// modeOptions are listed in Mode order, starting at ModeBasic
var modeOptions = []string{
	"Basic Metadata",
	"Specialized Metadata",
	"Both",
}

// SurveyPrompter asks on the terminal for every file
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter creates a prompter. The options are passed to every
// survey.AskOne call.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// SelectMode shows the mode menu for a file
func (p *SurveyPrompter) SelectMode(filePath string, detected fileanalyzer.FileType) (fileanalyzer.Mode, error) {
	var selectedIdx int
	prompt := &survey.Select{
		Message: fmt.Sprintf("Metadata to extract from %s (%s):", filePath, detected),
		Options: modeOptions,
		Default: modeOptions[len(modeOptions)-1],
	}
	if err := survey.AskOne(prompt, &selectedIdx, p.opts...); err != nil {
		return 0, err
	}
	return fileanalyzer.Mode(selectedIdx + 1), nil
}

// FixedMode answers every prompt with the same mode
type FixedMode fileanalyzer.Mode

// SelectMode returns the fixed mode
func (m FixedMode) SelectMode(string, fileanalyzer.FileType) (fileanalyzer.Mode, error) {
	return fileanalyzer.Mode(m), nil
}
