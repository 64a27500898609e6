package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"nts/internal/app"
	"nts/internal/config"
	"nts/internal/logging"
)

type UICommand struct {
	stderr    io.Writer
	newClient clientFactory
}

func NewUICommand(stderr io.Writer, newClient clientFactory) *UICommand {
	return &UICommand{stderr: stderr, newClient: newClient}
}

func (c *UICommand) Run(args []string) error {
	api, cfg, err := c.newClient()
	if err != nil {
		return err
	}

	// The UI owns the terminal, so logs go to a file.
	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	if _, err := config.EnsureDataDir(); err != nil {
		return err
	}
	logger, closeLog := logging.NewFileLogger(logPath, cfg.LogLevel())
	defer closeLog()

	model := app.NewModel(api, cfg, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
