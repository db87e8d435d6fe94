package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/temirov/cleanmybranch/internal/jira"
)

func sendKeys(model tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, key := range keys {
		model, _ = model.Update(key)
	}
	return model
}

func runeKeys(text string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(text))
	for _, character := range text {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
	return keys
}

func TestSelectionModelNavigation(testInstance *testing.T) {
	testCases := []struct {
		name              string
		keys              []tea.KeyMsg
		expectedSelection string
		expectedCancelled bool
	}{
		{
			name:              "enter picks first choice",
			keys:              []tea.KeyMsg{{Type: tea.KeyEnter}},
			expectedSelection: "ProjA",
		},
		{
			name:              "down then enter picks second choice",
			keys:              []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}},
			expectedSelection: "ProjB",
		},
		{
			name:              "up wraps to last choice",
			keys:              []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}},
			expectedSelection: "ProjC",
		},
		{
			name:              "vim keys move the cursor",
			keys:              append(runeKeys("jjk"), tea.KeyMsg{Type: tea.KeyEnter}),
			expectedSelection: "ProjB",
		},
		{
			name:              "escape cancels",
			keys:              []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEsc}},
			expectedCancelled: true,
		},
		{
			name:              "interrupt cancels",
			keys:              []tea.KeyMsg{{Type: tea.KeyCtrlC}},
			expectedCancelled: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			finalModel := sendKeys(newSelectionModel(projectPromptTitleConstant, []string{"ProjA", "ProjB", "ProjC"}), testCase.keys...)
			selection, isSelection := finalModel.(selectionModel)
			require.True(subTest, isSelection)
			require.Equal(subTest, testCase.expectedCancelled, selection.cancelled)
			require.Equal(subTest, testCase.expectedSelection, selection.selection())
		})
	}
}

func TestSelectionModelViewMarksCursor(testInstance *testing.T) {
	model := sendKeys(newSelectionModel(projectPromptTitleConstant, []string{"ProjA", "ProjB"}), tea.KeyMsg{Type: tea.KeyDown})
	view := model.View()
	require.Contains(testInstance, view, projectPromptTitleConstant)
	require.Contains(testInstance, view, blankMarkerConstant+"ProjA")
	require.Contains(testInstance, view, cursorMarkerConstant)
}

func TestCredentialsModelSubmit(testInstance *testing.T) {
	keys := runeKeys("alice")
	keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})
	keys = append(keys, runeKeys("pw")...)
	keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})

	finalModel := sendKeys(newCredentialsModel(), keys...)
	form, isForm := finalModel.(credentialsModel)
	require.True(testInstance, isForm)
	require.True(testInstance, form.submitted)
	require.Equal(testInstance, jira.Credentials{Username: "alice", Password: "pw"}, form.credentials())
}

func TestCredentialsModelMasksPassword(testInstance *testing.T) {
	keys := append(runeKeys("alice"), tea.KeyMsg{Type: tea.KeyTab})
	keys = append(keys, runeKeys("secret")...)

	finalModel := sendKeys(newCredentialsModel(), keys...)
	view := finalModel.View()
	require.NotContains(testInstance, view, "secret")
	require.Contains(testInstance, view, "alice")
}

func TestCredentialsModelRequiresUsername(testInstance *testing.T) {
	keys := []tea.KeyMsg{{Type: tea.KeyTab}}
	keys = append(keys, runeKeys("pw")...)
	keys = append(keys, tea.KeyMsg{Type: tea.KeyEnter})

	finalModel := sendKeys(newCredentialsModel(), keys...)
	form, isForm := finalModel.(credentialsModel)
	require.True(testInstance, isForm)
	require.False(testInstance, form.submitted)
	require.Equal(testInstance, usernameRequiredHintConstant, form.validationMessage)
	require.Equal(testInstance, usernameFieldIndexConstant, form.focusIndex)
}

func TestCredentialsModelCancel(testInstance *testing.T) {
	finalModel := sendKeys(newCredentialsModel(), tea.KeyMsg{Type: tea.KeyEsc})
	form, isForm := finalModel.(credentialsModel)
	require.True(testInstance, isForm)
	require.True(testInstance, form.cancelled)
	require.Empty(testInstance, finalModel.View())
}
