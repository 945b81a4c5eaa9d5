package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/wexar/server/internal/generator"
)

const (
	editorHeader = "WEXAR"
	editorHelp   = "[Enter: Send] [Ctrl+L: New site] [Ctrl+C: Back]"

	// header, input box and status line
	editorChrome = 7
)

// returns a new chat editor
func NewEditor(client *Client, outputPath string) *EditorModel {
	ti := textinput.New()
	ti.Placeholder = "describe your website or the change you want..."
	ti.Focus()
	ti.CharLimit = generator.MaxPromptLength
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorTeal)

	if outputPath == "" {
		outputPath = DefaultOutputPath
	}

	renderer, _ := newRenderer(defaultWrapWidth) //nolint:errcheck // nil renderer falls back to plain text

	return &EditorModel{
		client:     client,
		input:      ti,
		viewport:   viewport.New(defaultWrapWidth, 10),
		spinner:    sp,
		renderer:   renderer,
		outputPath: outputPath,
		history:    []generator.Message{},
	}
}

func (m *EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EditorModel) Update(msg tea.Msg) (*EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.submit()

		case tea.KeyCtrlL:
			if m.isFetching {
				return m, nil
			}

			m.reset()
			return m, nil

		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case GenerateResultMsg:
		m.isFetching = false
		m.currentCode = msg.code
		m.history = append(m.history,
			generator.Message{Role: generator.RoleUser, Content: msg.prompt},
			generator.Message{Role: generator.RoleAssistant, Content: msg.explanation},
		)

		m.appendTranscript(renderMarkdown(m.renderer, msg.explanation))

		if err := writeSite(m.outputPath, msg.code); err != nil {
			m.status = errorStyle.Render(err.Error())
		} else {
			m.status = infoStyle.Render(fmt.Sprintf("saved to %s (%d bytes, %s)",
				m.outputPath, len(msg.code), time.Since(m.startedAt).Round(time.Second)))
		}

		m.input.Focus()
		return m, nil

	case GenerateErrorMsg:
		m.isFetching = false
		m.appendTranscript(errorStyle.Render("error: ") + msg.err.Error())
		m.status = ""

		// keep the prompt so it can be retried
		m.input.SetValue(msg.prompt)
		m.input.CursorEnd()
		m.input.Focus()
		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *EditorModel) View() string {
	var b strings.Builder

	help := infoStyle.Render(editorHelp)
	gap := max(1, m.width-lipgloss.Width(editorHeader)-lipgloss.Width(help))
	b.WriteString(headerStyle.Render(editorHeader) + strings.Repeat(" ", gap) + help)
	b.WriteString("\n\n")

	if len(m.transcript) == 0 {
		b.WriteString(infoStyle.Render("ready! describe the website you want and press enter."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString(boxStyle.Width(max(20, m.width-4)).Padding(0, 1).Render(m.input.View()))
	b.WriteString("\n")

	switch {
	case m.isFetching:
		b.WriteString(m.spinner.View() + infoStyle.Render(" generating... "+time.Since(m.startedAt).Round(time.Second).String()))
	case m.status != "":
		b.WriteString(m.status)
	}

	return b.String()
}

// the code the next prompt will edit
func (m *EditorModel) CurrentCode() string {
	return m.currentCode
}

func (m *EditorModel) submit() tea.Cmd {
	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" || m.isFetching {
		return nil
	}

	m.isFetching = true
	m.startedAt = time.Now()
	m.status = ""
	m.input.SetValue("")
	m.appendTranscript(userStyle.Render("you: ") + prompt)

	history := append([]generator.Message(nil), m.history...)

	return tea.Batch(
		m.client.GenerateCmd(prompt, m.currentCode, history),
		m.spinner.Tick,
	)
}

func (m *EditorModel) reset() {
	m.input.SetValue("")
	m.history = []generator.Message{}
	m.currentCode = ""
	m.transcript = nil
	m.status = infoStyle.Render("started a new site")
	m.viewport.SetContent("")
}

func (m *EditorModel) appendTranscript(entry string) {
	m.transcript = append(m.transcript, strings.TrimRight(entry, "\n"))
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
}

func (m *EditorModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-10)

	m.viewport.Width = max(20, width-2)
	m.viewport.Height = max(3, height-editorChrome)

	if r, err := newRenderer(max(20, width-4)); err == nil {
		m.renderer = r
	}
}
