package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/temirov/cleanmybranch/internal/jira"
)

const (
	credentialsTitleConstant            = "Jira login"
	credentialsHelpTextConstant         = "tab switch field • enter submit • esc cancel"
	usernameRequiredHintConstant        = "username cannot be empty"
	passwordMaskCharacterConstant       = '•'
	credentialsInputCharacterLimit      = 256
	usernameFieldIndexConstant          = 0
	passwordFieldIndexConstant          = 1
	credentialsFieldLabelSuffixConstant = ": "
)

type credentialsModel struct {
	usernameInput     textinput.Model
	passwordInput     textinput.Model
	focusIndex        int
	validationMessage string
	submitted         bool
	cancelled         bool
}

func newCredentialsModel() credentialsModel {
	usernameInput := textinput.New()
	usernameInput.Prompt = usernameLabelConstant + credentialsFieldLabelSuffixConstant
	usernameInput.CharLimit = credentialsInputCharacterLimit
	usernameInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Prompt = passwordLabelConstant + credentialsFieldLabelSuffixConstant
	passwordInput.CharLimit = credentialsInputCharacterLimit
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = passwordMaskCharacterConstant

	return credentialsModel{usernameInput: usernameInput, passwordInput: passwordInput}
}

func (model credentialsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (model credentialsModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	if keyMessage, isKey := message.(tea.KeyMsg); isKey {
		switch keyMessage.String() {
		case keyInterruptConstant, keyEscapeConstant:
			model.cancelled = true
			return model, tea.Quit
		case keyTabConstant, keyShiftTabConstant, keyUpConstant, keyDownConstant:
			return model.toggleFocus(), textinput.Blink
		case keyEnterConstant:
			if model.focusIndex == usernameFieldIndexConstant {
				return model.toggleFocus(), textinput.Blink
			}
			if len(strings.TrimSpace(model.usernameInput.Value())) == 0 {
				model.validationMessage = usernameRequiredHintConstant
				return model.toggleFocus(), textinput.Blink
			}
			model.validationMessage = ""
			model.submitted = true
			return model, tea.Quit
		}
	}

	var command tea.Cmd
	if model.focusIndex == usernameFieldIndexConstant {
		model.usernameInput, command = model.usernameInput.Update(message)
	} else {
		model.passwordInput, command = model.passwordInput.Update(message)
	}
	return model, command
}

func (model credentialsModel) toggleFocus() credentialsModel {
	if model.focusIndex == usernameFieldIndexConstant {
		model.focusIndex = passwordFieldIndexConstant
		model.usernameInput.Blur()
		model.passwordInput.Focus()
		return model
	}
	model.focusIndex = usernameFieldIndexConstant
	model.passwordInput.Blur()
	model.usernameInput.Focus()
	return model
}

func (model credentialsModel) View() string {
	if model.submitted || model.cancelled {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(titleStyle.Render(credentialsTitleConstant))
	builder.WriteString("\n\n")
	builder.WriteString(model.usernameInput.View())
	builder.WriteString("\n")
	builder.WriteString(model.passwordInput.View())
	builder.WriteString("\n")
	if len(model.validationMessage) > 0 {
		builder.WriteString(errorStyle.Render(model.validationMessage))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
	builder.WriteString(helpStyle.Render(credentialsHelpTextConstant))
	builder.WriteString("\n")
	return builder.String()
}

func (model credentialsModel) credentials() jira.Credentials {
	return jira.Credentials{
		Username: strings.TrimSpace(model.usernameInput.Value()),
		Password: model.passwordInput.Value(),
	}
}
