package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// returns a new welcome screen
func NewWelcome(mode string) *Welcome {
	return &Welcome{
		mode: mode,
		commands: []Command{
			{Name: "editor", Description: "chat with the generator", Available: true},
			{Name: "start", Description: "start a local server from bin/server", Available: mode != "production"},
			{Name: "quit", Description: "exit wexar", Available: true},
		},
	}
}

func (m *Welcome) Update(msg tea.Msg) (*Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			cmd := m.executeCommand()
			m.input = ""
			return m, cmd
		case tea.KeyBackspace:
			if runes := []rune(m.input); len(runes) > 0 {
				m.input = string(runes[:len(runes)-1])
			}
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}

	case ServerStartedMsg:
		m.input = ""
	}

	return m, nil
}

func (m *Welcome) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("describe a website, get it built"))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("mode: " + strings.ToUpper(m.mode)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("commands:"))
	b.WriteString("\n\n")

	for _, cmd := range m.commands {
		if !cmd.Available {
			continue
		}

		fmt.Fprintf(&b, "  %s %s\n",
			commandStyle.Render(cmd.Name),
			commandDescStyle.Render("- "+cmd.Description),
		)
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render("> ") + inputStyle.Render(m.input+"_"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("type a command and press enter. press ctrl+c to quit."))

	return b.String()
}

func (m *Welcome) executeCommand() tea.Cmd {
	name := strings.TrimSpace(m.input)
	if name == "" {
		return nil
	}

	for _, cmd := range m.commands {
		if cmd.Name != name {
			continue
		}

		if !cmd.Available {
			return errorCmd(fmt.Errorf("%s is not available in %s mode", name, m.mode))
		}

		switch name {
		case "quit":
			return tea.Quit
		case "start":
			return startServer
		case "editor":
			return func() tea.Msg { return EnterEditorMsg{} }
		}
	}

	return errorCmd(fmt.Errorf("unknown command: %s", name))
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{err: err}
	}
}
