package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func NewApp(options Options) *Model {
	client := NewClient(options.Endpoint, options.UserID)

	return &Model{
		state:   StateWelcome,
		options: options,
		welcome: NewWelcome(options.Mode),
		editor:  NewEditor(client, options.OutputPath),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			// errors and the editor step back to the welcome screen first
			if m.err != nil || m.state == StateEditor {
				m.err = nil
				m.state = StateWelcome
				return m, nil
			}

			return m, tea.Quit
		}

		if m.err != nil {
			m.err = nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// the editor sizes its viewport even while hidden
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterEditorMsg:
		m.state = StateEditor
		return m, m.editor.Init()

	// in-flight generations finish even from the welcome screen
	case GenerateResultMsg, GenerateErrorMsg, spinner.TickMsg:
		return m.updateEditor(msg)
	}

	switch m.state {
	case StateWelcome:
		return m.updateWelcome(msg)

	case StateEditor:
		return m.updateEditor(msg)

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View()

	case StateEditor:
		return m.editor.View()

	default:
		return "Unknown state"
	}
}

func (m *Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.welcome, cmd = m.welcome.Update(msg)

	return m, cmd
}

func (m *Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	return m, cmd
}

func errorView(err error) string {
	return fmt.Sprintf("\n  %s %v\n\n  %s\n",
		errorStyle.Render("Error:"), err,
		helpStyle.Render("press any key to continue, ctrl+c to go back"),
	)
}
