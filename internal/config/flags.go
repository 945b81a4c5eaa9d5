package config

import (
	"flag"
	"io"
	"os"
	"strings"
)

// command-line settings for the terminal client
type ClientFlags struct {
	Endpoint   string
	UserID     string
	OutputPath string
	CodePath   string // existing site to edit in one-shot mode
	Prompt     string // remaining arguments joined with spaces
}

// parses CLI flags for the terminal client. defaults come from
// WEXAR_API_ENDPOINT and WEXAR_USER_ID.
func ParseClientFlags(args []string, output io.Writer) (ClientFlags, error) {
	fs := flag.NewFlagSet("wexar", flag.ContinueOnError)
	fs.SetOutput(output)

	endpoint := fs.String("endpoint", getEnv("WEXAR_API_ENDPOINT", "http://localhost:8080"), "generation server base URL")
	userID := fs.String("user", os.Getenv("WEXAR_USER_ID"), "user id sent as X-User-Id")
	out := fs.String("out", "site.html", "file the generated site is written to")
	code := fs.String("code", "", "existing HTML file to edit (one-shot mode)")

	if err := fs.Parse(args); err != nil {
		return ClientFlags{}, err
	}

	return ClientFlags{
		Endpoint:   *endpoint,
		UserID:     *userID,
		OutputPath: *out,
		CodePath:   *code,
		Prompt:     strings.TrimSpace(strings.Join(fs.Args(), " ")),
	}, nil
}
