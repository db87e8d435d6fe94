package prompt

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cursorMarkerConstant      = "> "
	blankMarkerConstant       = "  "
	selectionHelpTextConstant = "↑/↓ move • enter select • esc cancel"
	keyUpConstant             = "up"
	keyDownConstant           = "down"
	keyVimUpConstant          = "k"
	keyVimDownConstant        = "j"
	keyEnterConstant          = "enter"
	keyTabConstant            = "tab"
	keyShiftTabConstant       = "shift+tab"
	keyEscapeConstant         = "esc"
	keyInterruptConstant      = "ctrl+c"
	selectionLineTemplate     = "%s%s\n"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type selectionModel struct {
	title     string
	choices   []string
	cursor    int
	chosen    bool
	cancelled bool
}

func newSelectionModel(title string, choices []string) selectionModel {
	return selectionModel{title: title, choices: choices}
}

func (model selectionModel) Init() tea.Cmd {
	return nil
}

func (model selectionModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKey := message.(tea.KeyMsg)
	if !isKey {
		return model, nil
	}

	switch keyMessage.String() {
	case keyInterruptConstant, keyEscapeConstant:
		model.cancelled = true
		return model, tea.Quit
	case keyUpConstant, keyVimUpConstant, keyShiftTabConstant:
		if model.cursor > 0 {
			model.cursor--
		} else {
			model.cursor = len(model.choices) - 1
		}
	case keyDownConstant, keyVimDownConstant, keyTabConstant:
		if model.cursor < len(model.choices)-1 {
			model.cursor++
		} else {
			model.cursor = 0
		}
	case keyEnterConstant:
		model.chosen = true
		return model, tea.Quit
	}
	return model, nil
}

func (model selectionModel) View() string {
	if model.chosen || model.cancelled {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(titleStyle.Render(model.title))
	builder.WriteString("\n\n")
	for choiceIndex, choice := range model.choices {
		if choiceIndex == model.cursor {
			builder.WriteString(fmt.Sprintf(selectionLineTemplate, cursorMarkerConstant, selectedStyle.Render(choice)))
			continue
		}
		builder.WriteString(fmt.Sprintf(selectionLineTemplate, blankMarkerConstant, choice))
	}
	builder.WriteString("\n")
	builder.WriteString(helpStyle.Render(selectionHelpTextConstant))
	builder.WriteString("\n")
	return builder.String()
}

func (model selectionModel) selection() string {
	if !model.chosen || len(model.choices) == 0 {
		return ""
	}
	return model.choices[model.cursor]
}
