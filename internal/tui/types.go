package tui

import (
	"net/http"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"codeberg.org/wexar/server/internal/generator"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateEditor
)

// settings shared by the interactive and one-shot modes
type Options struct {
	Endpoint   string // server base URL
	UserID     string // sent as X-User-Id when set
	OutputPath string // where the latest generated site is written
	Mode       string
}

// main TUI application model
type Model struct {
	state   AppState
	options Options
	width   int
	height  int
	err     error
	welcome *Welcome
	editor  *EditorModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the editor state
type EnterEditorMsg struct{}

// sent when the server starts
type ServerStartedMsg struct{}

// chat editor: a transcript of turns above a prompt input
type EditorModel struct {
	client     *Client
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	renderer   *glamour.TermRenderer
	outputPath string

	width  int
	height int

	history     []generator.Message
	currentCode string
	transcript  []string
	status      string
	isFetching  bool
	startedAt   time.Time
}

// sent when the server returns a generated site
type GenerateResultMsg struct {
	prompt      string
	code        string
	explanation string
}

// sent when a generate request fails
type GenerateErrorMsg struct {
	prompt string
	err    error
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
	Available   bool
}

// talks to the generation REST API
type Client struct {
	endpoint   string
	userID     string
	httpClient *http.Client
}

// non-2xx response from the server, decoded from its error envelope
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}
