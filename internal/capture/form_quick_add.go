package capture

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hirepath/hirepath-server/models"
)

// ErrAborted is returned when the user leaves the form without submitting.
var ErrAborted = errors.New("capture aborted")

const deadlineLayout = "2006-01-02"

const (
	fieldCompany = iota
	fieldRole
	fieldStatus
	fieldDeadline
	fieldJobPostURL
	fieldNotes
	fieldCount
)

type quickAddModel struct {
	inputs  []textinput.Model
	focus   int
	aborted bool
	done    bool
	errMsg  string
}

func newQuickAddModel(prefillURL string) quickAddModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 48
	}
	inputs[fieldStatus].Placeholder = models.StatusToApply
	inputs[fieldDeadline].Placeholder = deadlineLayout
	inputs[fieldJobPostURL].SetValue(prefillURL)
	inputs[fieldCompany].Focus()

	return quickAddModel{inputs: inputs}
}

func (m quickAddModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m quickAddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if err := m.validate(); err != nil {
				m.errMsg = err.Error()
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

func (m quickAddModel) View() string {
	out := titleStyle.Render("New capture") + "\n\n"
	out += "Company:  [" + m.inputs[fieldCompany].View() + "]\n"
	out += "Role:     [" + m.inputs[fieldRole].View() + "]\n"
	out += "Status:   [" + m.inputs[fieldStatus].View() + "]\n"
	out += "Deadline: [" + m.inputs[fieldDeadline].View() + "]\n"
	out += "Job URL:  [" + m.inputs[fieldJobPostURL].View() + "]\n"
	out += "Notes:    [" + m.inputs[fieldNotes].View() + "]\n\n"
	if m.errMsg != "" {
		out += errorStyle.Render(m.errMsg) + "\n\n"
	}
	out += helpStyle.Render("esc cancel  tab next field  enter save")

	return appStyle.Render(out)
}

func (m quickAddModel) focusField(next int) quickAddModel {
	m.inputs[m.focus].Blur()
	m.focus = next
	m.inputs[m.focus].Focus()
	return m
}

func (m quickAddModel) validate() error {
	if strings.TrimSpace(m.inputs[fieldCompany].Value()) == "" || strings.TrimSpace(m.inputs[fieldRole].Value()) == "" {
		return errors.New("company and role are required")
	}

	if deadline := strings.TrimSpace(m.inputs[fieldDeadline].Value()); deadline != "" {
		if _, err := time.Parse(deadlineLayout, deadline); err != nil {
			return fmt.Errorf("deadline must look like %s", deadlineLayout)
		}
	}

	return nil
}

func (m quickAddModel) toCapture() models.Capture {
	capture := models.Capture{
		CompanyName: strings.TrimSpace(m.inputs[fieldCompany].Value()),
		RoleTitle:   strings.TrimSpace(m.inputs[fieldRole].Value()),
		Status:      strings.TrimSpace(m.inputs[fieldStatus].Value()),
		JobPostUrl:  strings.TrimSpace(m.inputs[fieldJobPostURL].Value()),
		Notes:       strings.TrimSpace(m.inputs[fieldNotes].Value()),
		Source:      "jobclip",
	}

	if deadline := strings.TrimSpace(m.inputs[fieldDeadline].Value()); deadline != "" {
		if parsed, err := time.Parse(deadlineLayout, deadline); err == nil {
			capture.SubmissionDeadline = &parsed
		}
	}

	return capture
}

// RunQuickAdd shows the interactive capture form and returns the capture the
// user filled in. The job URL field is prefilled from the clipboard when the
// clipboard holds an http(s) link. Returns [ErrAborted] when the user leaves
// without saving.
func RunQuickAdd() (models.Capture, error) {
	finalModel, err := tea.NewProgram(newQuickAddModel(clipboardURL())).Run()
	if err != nil {
		return models.Capture{}, err
	}

	result, ok := finalModel.(quickAddModel)
	if !ok {
		return models.Capture{}, tea.ErrProgramKilled
	}
	if result.aborted || !result.done {
		return models.Capture{}, ErrAborted
	}

	return result.toCapture(), nil
}

// clipboardURL returns the clipboard contents when they parse as an http(s)
// URL, and an empty string otherwise. Clipboard access failures are treated
// as an empty clipboard.
func clipboardURL() string {
	text, err := clipboard.ReadAll()
	if err != nil {
		return ""
	}

	text = strings.TrimSpace(text)
	u, err := url.Parse(text)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}

	return text
}
