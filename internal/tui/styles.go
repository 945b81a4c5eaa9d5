package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorTeal      = lipgloss.Color("#14B8A6")
	colorRed       = lipgloss.Color("#F87171")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTeal).
			Align(lipgloss.Center).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Align(lipgloss.Center).
			MarginBottom(2)

	commandStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	commandDescStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				PaddingLeft(1)

	inputStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	userStyle = lipgloss.NewStyle().
			Foreground(colorTeal).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

const logo = `
  ██╗    ██╗███████╗██╗  ██╗ █████╗ ██████╗
  ██║    ██║██╔════╝╚██╗██╔╝██╔══██╗██╔══██╗
  ██║ █╗ ██║█████╗   ╚███╔╝ ███████║██████╔╝
  ██║███╗██║██╔══╝   ██╔██╗ ██╔══██║██╔══██╗
  ╚███╔███╔╝███████╗██╔╝ ██╗██║  ██║██║  ██║
   ╚══╝╚══╝ ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝
`
