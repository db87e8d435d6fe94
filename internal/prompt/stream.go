package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/temirov/cleanmybranch/internal/jira"
)

const (
	streamChoiceTemplateConstant        = "  %d) %s\n"
	streamSelectionPromptTemplate       = "%s [1-%d]: "
	streamFieldPromptTemplateConstant   = "%s: "
	streamInvalidChoiceTemplateConstant = "%q is not a listed project\n"
	streamUsernameRequiredLineConstant  = "username cannot be empty\n"
	streamReadErrorTemplateConstant     = "read %s: %w"
	streamPasswordErrorTemplateConstant = "read password: %w"
	streamSelectionFieldNameConstant    = "project selection"
	streamUsernameFieldNameConstant     = "username"
	lineFeedConstant                    = "\n"
)

// PasswordReader reads a secret without echoing it.
type PasswordReader func() ([]byte, error)

// StreamPrompter asks questions line by line on plain streams.
type StreamPrompter struct {
	reader         *bufio.Reader
	writer         io.Writer
	passwordReader PasswordReader
}

// NewStreamPrompter constructs a StreamPrompter. When input is a terminal the password is read
// without echo.
func NewStreamPrompter(input io.Reader, output io.Writer) *StreamPrompter {
	prompter := &StreamPrompter{reader: bufio.NewReader(input), writer: output}
	if file, isFile := input.(*os.File); isFile && isTerminal(file) {
		fileDescriptor := int(file.Fd())
		prompter.passwordReader = func() ([]byte, error) {
			return term.ReadPassword(fileDescriptor)
		}
	}
	return prompter
}

// WithPasswordReader replaces the password source.
func (prompter *StreamPrompter) WithPasswordReader(passwordReader PasswordReader) *StreamPrompter {
	prompter.passwordReader = passwordReader
	return prompter
}

// SelectProject lists the projects and accepts either a project name or its 1-based index.
// Invalid answers are reported and asked again until the input ends.
func (prompter *StreamPrompter) SelectProject(projects []string) (string, error) {
	if len(projects) == 0 {
		return "", ErrNoChoices
	}

	fmt.Fprintln(prompter.writer, projectPromptTitleConstant)
	for projectIndex, project := range projects {
		fmt.Fprintf(prompter.writer, streamChoiceTemplateConstant, projectIndex+1, project)
	}

	for {
		fmt.Fprintf(prompter.writer, streamSelectionPromptTemplate, projectPromptTitleConstant, len(projects))
		answer, readError := prompter.readLine(streamSelectionFieldNameConstant)
		if readError != nil {
			return "", readError
		}
		if selection, matched := matchChoice(projects, answer); matched {
			return selection, nil
		}
		fmt.Fprintf(prompter.writer, streamInvalidChoiceTemplateConstant, answer)
	}
}

// Credentials reads a username line and a password.
func (prompter *StreamPrompter) Credentials() (jira.Credentials, error) {
	var username string
	for len(username) == 0 {
		fmt.Fprintf(prompter.writer, streamFieldPromptTemplateConstant, usernameLabelConstant)
		answer, readError := prompter.readLine(streamUsernameFieldNameConstant)
		if readError != nil {
			return jira.Credentials{}, readError
		}
		username = answer
		if len(username) == 0 {
			fmt.Fprint(prompter.writer, streamUsernameRequiredLineConstant)
		}
	}

	fmt.Fprintf(prompter.writer, streamFieldPromptTemplateConstant, passwordLabelConstant)
	password, passwordError := prompter.readPassword()
	if passwordError != nil {
		return jira.Credentials{}, passwordError
	}

	return jira.Credentials{Username: username, Password: password}, nil
}

func (prompter *StreamPrompter) readPassword() (string, error) {
	if prompter.passwordReader == nil {
		line, readError := prompter.reader.ReadString('\n')
		if readError != nil && !(errors.Is(readError, io.EOF) && len(line) > 0) {
			return "", cancelledOnEOF(readError, streamPasswordErrorTemplateConstant)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	secret, readError := prompter.passwordReader()
	fmt.Fprint(prompter.writer, lineFeedConstant)
	if readError != nil {
		return "", cancelledOnEOF(readError, streamPasswordErrorTemplateConstant)
	}
	return string(secret), nil
}

func (prompter *StreamPrompter) readLine(fieldName string) (string, error) {
	line, readError := prompter.reader.ReadString('\n')
	if readError != nil {
		if errors.Is(readError, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(readError, io.EOF) {
			return "", ErrPromptCancelled
		}
		return "", fmt.Errorf(streamReadErrorTemplateConstant, fieldName, readError)
	}
	return strings.TrimSpace(line), nil
}

func cancelledOnEOF(readError error, template string) error {
	if errors.Is(readError, io.EOF) {
		return ErrPromptCancelled
	}
	return fmt.Errorf(template, readError)
}

func matchChoice(choices []string, answer string) (string, bool) {
	for _, choice := range choices {
		if choice == answer {
			return choice, true
		}
	}
	choiceNumber, parseError := strconv.Atoi(answer)
	if parseError != nil || choiceNumber < 1 || choiceNumber > len(choices) {
		return "", false
	}
	return choices[choiceNumber-1], true
}
