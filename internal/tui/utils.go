package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
)

const (
	DefaultOutputPath = "site.html"

	defaultWrapWidth = 80
)

// writes the generated site, creating parent directories as needed
func writeSite(path, code string) error {
	if path == "" {
		path = DefaultOutputPath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(code), 0o644); err != nil { //nolint:gosec // generated site is meant to be readable
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// markdown renderer with a fixed style so output does not depend on
// querying the terminal background
func newRenderer(width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = defaultWrapWidth
	}

	return glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
}

// renders markdown, falling back to the raw text
func renderMarkdown(r *glamour.TermRenderer, text string) string {
	if r == nil {
		return text
	}

	out, err := r.Render(text)
	if err != nil {
		return text
	}

	return out
}
