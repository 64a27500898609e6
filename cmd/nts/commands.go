package main

import (
	"io"
	"os"

	"nts/internal/client"
	"nts/internal/config"
)

type commandRunner interface {
	Run(args []string) error
}

type clientFactory func() (*client.Client, config.Config, error)

type commandWiring struct {
	stdout    io.Writer
	stderr    io.Writer
	stdin     io.Reader
	newClient clientFactory
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:    stdout,
		stderr:    stderr,
		stdin:     os.Stdin,
		newClient: newNotesClient,
	}
}

func newNotesClient() (*client.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	c, err := client.New(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	return c, cfg, nil
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":     NewUICommand(wiring.stderr, wiring.newClient),
		"serve":  NewServeCommand(wiring.stdout, wiring.stderr),
		"login":  NewLoginCommand(wiring.stdout, wiring.stderr, wiring.stdin, wiring.newClient),
		"logout": NewLogoutCommand(wiring.stdout, wiring.newClient),
		"config": NewConfigCommand(wiring.stdout),
	}
}
