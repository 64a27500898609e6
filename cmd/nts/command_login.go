package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

type LoginCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	stdin     io.Reader
	newClient clientFactory
}

func NewLoginCommand(stdout, stderr io.Writer, stdin io.Reader, newClient clientFactory) *LoginCommand {
	return &LoginCommand{stdout: stdout, stderr: stderr, stdin: stdin, newClient: newClient}
}

// Run walks the CLI sign-in flow: open the printed URL in a browser,
// complete the GitHub OAuth dance, paste the token the server shows back.
func (c *LoginCommand) Run(args []string) error {
	api, _, err := c.newClient()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "Open this URL in your browser to sign in:\n\n  %s\n\n", api.LoginURL())
	fmt.Fprint(c.stdout, "Paste the token shown after signing in: ")

	scanner := bufio.NewScanner(c.stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)
	if !scanner.Scan() {
		return errors.New("no token provided")
	}
	token := strings.TrimSpace(scanner.Text())
	if token == "" {
		return errors.New("no token provided")
	}
	if err := api.StoreToken(token); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	user, err := api.Me(ctx)
	if err != nil {
		return fmt.Errorf("verify session: %w", err)
	}
	if user == nil {
		return errors.New("the token was not accepted by the server")
	}
	fmt.Fprintf(c.stdout, "Signed in as %s.\n", user.Login)
	return nil
}
