package prompt

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/temirov/cleanmybranch/internal/jira"
)

const (
	terminalProgramErrorTemplateConstant = "run terminal prompt: %w"
	unexpectedModelTemplateConstant      = "unexpected prompt model %T"
)

// TerminalPrompter renders interactive prompts with bubbletea.
type TerminalPrompter struct {
	input  io.Reader
	output io.Writer
}

// NewTerminalPrompter constructs a TerminalPrompter bound to the given streams.
func NewTerminalPrompter(input io.Reader, output io.Writer) *TerminalPrompter {
	return &TerminalPrompter{input: input, output: output}
}

// SelectProject shows a cursor list of projects and returns the chosen one.
func (prompter *TerminalPrompter) SelectProject(projects []string) (string, error) {
	if len(projects) == 0 {
		return "", ErrNoChoices
	}

	finalModel, runError := prompter.run(newSelectionModel(projectPromptTitleConstant, projects))
	if runError != nil {
		return "", runError
	}

	selection, isSelection := finalModel.(selectionModel)
	if !isSelection {
		return "", fmt.Errorf(unexpectedModelTemplateConstant, finalModel)
	}
	if selection.cancelled || !selection.chosen {
		return "", ErrPromptCancelled
	}
	return selection.selection(), nil
}

// Credentials asks for a username and a masked password.
func (prompter *TerminalPrompter) Credentials() (jira.Credentials, error) {
	finalModel, runError := prompter.run(newCredentialsModel())
	if runError != nil {
		return jira.Credentials{}, runError
	}

	credentialsForm, isCredentialsForm := finalModel.(credentialsModel)
	if !isCredentialsForm {
		return jira.Credentials{}, fmt.Errorf(unexpectedModelTemplateConstant, finalModel)
	}
	if credentialsForm.cancelled || !credentialsForm.submitted {
		return jira.Credentials{}, ErrPromptCancelled
	}
	return credentialsForm.credentials(), nil
}

func (prompter *TerminalPrompter) run(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(prompter.input), tea.WithOutput(prompter.output))
	finalModel, runError := program.Run()
	if runError != nil {
		return nil, fmt.Errorf(terminalProgramErrorTemplateConstant, runError)
	}
	return finalModel, nil
}
