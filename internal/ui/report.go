package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	sectionTemplateConstant           = "\n[ %s ]"
	deletionTemplateConstant          = "delete branch: %s"
	deletionDryRunTemplateConstant    = "would delete branch: %s"
	issueStatusTemplateConstant       = "%s => %s"
	deletionFailureTemplateConstant   = "failed to delete %s: %v"
	branchLineWithKeyTemplateConstant = "%s (%s)"
)

// Printer writes the human-facing branch report. Colors follow fatih/color conventions, including NO_COLOR.
type Printer struct {
	writer       io.Writer
	sectionColor *color.Color
	alertColor   *color.Color
	plainColor   *color.Color
}

// NewPrinter constructs a Printer writing to writer. Colors are disabled when colorEnabled is false.
func NewPrinter(writer io.Writer, colorEnabled bool) *Printer {
	if writer == nil {
		writer = io.Discard
	}

	printer := &Printer{
		writer:       writer,
		sectionColor: color.New(color.FgGreen),
		alertColor:   color.New(color.FgRed),
		plainColor:   color.New(color.FgWhite),
	}

	for _, configuredColor := range []*color.Color{printer.sectionColor, printer.alertColor, printer.plainColor} {
		if colorEnabled {
			configuredColor.EnableColor()
		} else {
			configuredColor.DisableColor()
		}
	}

	return printer
}

// Section prints a bracketed section header such as "[ Branch List ]".
func (printer *Printer) Section(title string) {
	printer.sectionColor.Fprintln(printer.writer, fmt.Sprintf(sectionTemplateConstant, title))
}

// Branch prints one listed branch, with its issue key when present.
func (printer *Printer) Branch(branchName string, issueKey string) {
	if len(issueKey) == 0 {
		printer.plainColor.Fprintln(printer.writer, branchName)
		return
	}
	printer.plainColor.Fprintln(printer.writer, fmt.Sprintf(branchLineWithKeyTemplateConstant, branchName, issueKey))
}

// IssueStatus prints "<key> => <status-or-error>".
func (printer *Printer) IssueStatus(issueKey string, statusOrError string) {
	printer.plainColor.Fprintln(printer.writer, fmt.Sprintf(issueStatusTemplateConstant, issueKey, statusOrError))
}

// Deletion announces a branch deletion.
func (printer *Printer) Deletion(branchName string, dryRun bool) {
	template := deletionTemplateConstant
	if dryRun {
		template = deletionDryRunTemplateConstant
	}
	printer.alertColor.Fprintln(printer.writer, fmt.Sprintf(template, branchName))
}

// DeletionFailure reports a git failure while deleting a branch.
func (printer *Printer) DeletionFailure(branchName string, failure error) {
	printer.alertColor.Fprintln(printer.writer, fmt.Sprintf(deletionFailureTemplateConstant, branchName, failure))
}

// Failure prints a fatal message in red, surrounded by blank lines.
func (printer *Printer) Failure(failure error) {
	printer.alertColor.Fprintln(printer.writer, fmt.Sprintf("\n%v\n", failure))
}
