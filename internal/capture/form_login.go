package capture

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginFormModel struct {
	inputs  []textinput.Model
	focus   int
	aborted bool
	done    bool
	errMsg  string
}

func newLoginFormModel() loginFormModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[1].EchoMode = textinput.EchoPassword
	inputs[1].EchoCharacter = '*'
	inputs[0].Focus()

	return loginFormModel{inputs: inputs}
}

func (m loginFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.quit), key.Matches(keyMsg, keys.esc):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.tab):
			return m.focusField((m.focus + 1) % len(m.inputs)), nil
		case key.Matches(keyMsg, keys.backtab):
			return m.focusField((m.focus - 1 + len(m.inputs)) % len(m.inputs)), nil
		case key.Matches(keyMsg, keys.enter):
			if strings.TrimSpace(m.inputs[0].Value()) == "" || m.inputs[1].Value() == "" {
				m.errMsg = "email and password are required"
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginFormModel) View() string {
	out := titleStyle.Render("Sign in to HirePath") + "\n\n"
	out += "Email:    [" + m.inputs[0].View() + "]\n"
	out += "Password: [" + m.inputs[1].View() + "]\n\n"
	if m.errMsg != "" {
		out += errorStyle.Render(m.errMsg) + "\n\n"
	}
	out += helpStyle.Render("esc cancel  tab next field  enter sign in")

	return appStyle.Render(out)
}

func (m loginFormModel) focusField(next int) loginFormModel {
	m.inputs[m.focus].Blur()
	m.focus = next
	m.inputs[m.focus].Focus()
	return m
}

// RunLogin shows the interactive sign-in form and returns the entered
// credentials. Returns [ErrAborted] when the user leaves without submitting.
func RunLogin() (email, password string, err error) {
	finalModel, runErr := tea.NewProgram(newLoginFormModel()).Run()
	if runErr != nil {
		return "", "", runErr
	}

	result, ok := finalModel.(loginFormModel)
	if !ok {
		return "", "", tea.ErrProgramKilled
	}
	if result.aborted || !result.done {
		return "", "", ErrAborted
	}

	return strings.TrimSpace(result.inputs[0].Value()), result.inputs[1].Value(), nil
}
