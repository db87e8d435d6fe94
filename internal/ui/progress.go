package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

const (
	spinnerCharacterSetIndexConstant = 14
	spinnerRefreshIntervalConstant   = 100 * time.Millisecond
	spinnerSuffixPrefixConstant      = " "
)

// SpinnerProgress animates a spinner while a long-running step is in flight.
type SpinnerProgress struct {
	spinner *spinner.Spinner
}

// NewSpinnerProgress constructs a spinner that renders to file. The spinner stays silent unless file is a terminal.
func NewSpinnerProgress(file *os.File) *SpinnerProgress {
	return &SpinnerProgress{
		spinner: spinner.New(spinner.CharSets[spinnerCharacterSetIndexConstant], spinnerRefreshIntervalConstant, spinner.WithWriterFile(file)),
	}
}

// Start begins the animation with the supplied message.
func (progress *SpinnerProgress) Start(message string) {
	progress.spinner.Suffix = spinnerSuffixPrefixConstant + message
	progress.spinner.Start()
}

// Stop halts the animation and clears the spinner line.
func (progress *SpinnerProgress) Stop() {
	progress.spinner.Stop()
}
