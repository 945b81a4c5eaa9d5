package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"codeberg.org/wexar/server/internal/config"
	"codeberg.org/wexar/server/internal/tui"
)

func main() {
	flags, err := config.ParseClientFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	env := os.Getenv("WEXAR_ENV")
	if env == "" {
		env = "development"
	}

	options := tui.Options{
		Endpoint:   flags.Endpoint,
		UserID:     flags.UserID,
		OutputPath: flags.OutputPath,
		Mode:       env,
	}

	interactive := term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())

	if flags.Prompt != "" || !interactive {
		if err := runOnce(options, flags); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(tui.NewApp(options), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running wexar: %v\n", err)
		os.Exit(1)
	}
}

// prompt comes from the arguments, or from stdin when it is piped
func runOnce(options tui.Options, flags config.ClientFlags) error {
	prompt := flags.Prompt
	if prompt == "" && !term.IsTerminal(os.Stdin.Fd()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read prompt from stdin: %w", err)
		}

		prompt = strings.TrimSpace(string(data))
	}

	if prompt == "" {
		return errors.New("no prompt given")
	}

	var currentCode string
	if flags.CodePath != "" {
		data, err := os.ReadFile(flags.CodePath)
		if err != nil {
			return fmt.Errorf("failed to read current code: %w", err)
		}

		currentCode = string(data)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return tui.RunOnce(ctx, options, prompt, currentCode, os.Stdout)
}
