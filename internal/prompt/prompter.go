package prompt

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/temirov/cleanmybranch/internal/jira"
)

const (
	promptCancelledMessageConstant = "prompt cancelled"
	noChoicesMessageConstant       = "no choices to select from"
	projectPromptTitleConstant     = "Select a project"
	usernameLabelConstant          = "Username"
	passwordLabelConstant          = "Password"
)

// ErrPromptCancelled indicates the user interrupted a prompt.
var ErrPromptCancelled = errors.New(promptCancelledMessageConstant)

// ErrNoChoices indicates SelectProject was called with an empty list.
var ErrNoChoices = errors.New(noChoicesMessageConstant)

// Prompter asks the user for the run's inputs.
type Prompter interface {
	SelectProject(projects []string) (string, error)
	Credentials() (jira.Credentials, error)
}

// New returns a TerminalPrompter when both streams are terminals and a StreamPrompter otherwise.
func New(input *os.File, output *os.File) Prompter {
	if isTerminal(input) && isTerminal(output) {
		return NewTerminalPrompter(input, output)
	}
	return NewStreamPrompter(input, output)
}

func isTerminal(stream io.Reader) bool {
	file, isFile := stream.(*os.File)
	if !isFile || file == nil {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
