package main

import (
	"context"
	"fmt"
	"io"
	"time"
)

type LogoutCommand struct {
	stdout    io.Writer
	newClient clientFactory
}

func NewLogoutCommand(stdout io.Writer, newClient clientFactory) *LogoutCommand {
	return &LogoutCommand{stdout: stdout, newClient: newClient}
}

func (c *LogoutCommand) Run(args []string) error {
	api, _, err := c.newClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// The local token is removed even if the server is unreachable.
	if err := api.Logout(ctx); err != nil {
		fmt.Fprintf(c.stdout, "Signed out locally (server said: %v).\n", err)
		return nil
	}
	fmt.Fprintln(c.stdout, "Signed out.")
	return nil
}
