package tui

import (
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/wexar/server/internal/logger"
)

const serverPath = "bin/server"

// starts a previously built server binary in the background
func startServer() tea.Msg {
	if _, err := os.Stat(serverPath); os.IsNotExist(err) {
		return ErrorMsg{err: fmt.Errorf("server binary not found at %s, build it with: go build -o %s ./cmd/server", serverPath, serverPath)}
	}

	cmd := exec.Command(serverPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	go func() {
		if err := cmd.Run(); err != nil {
			logger.ErrorErr(err, "server error")
		}
	}()

	return ServerStartedMsg{}
}
