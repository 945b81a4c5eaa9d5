package tui

import (
	"context"
	"fmt"
	"io"
)

// generates a site without the interactive UI: prints the rendered
// explanation to w and writes the code to options.OutputPath.
// currentCode turns the prompt into an edit of an existing site.
func RunOnce(ctx context.Context, options Options, prompt, currentCode string, w io.Writer) error {
	client := NewClient(options.Endpoint, options.UserID)

	resp, err := client.Generate(ctx, prompt, currentCode, nil)
	if err != nil {
		return err
	}

	outputPath := options.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}

	if err := writeSite(outputPath, resp.Code); err != nil {
		return err
	}

	renderer, _ := newRenderer(defaultWrapWidth) //nolint:errcheck // nil renderer falls back to plain text

	if _, err := fmt.Fprint(w, renderMarkdown(renderer, resp.Explanation)); err != nil {
		return fmt.Errorf("failed to print explanation: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\nsaved to %s (%d bytes)\n", outputPath, len(resp.Code)); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	return nil
}
