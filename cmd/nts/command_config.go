package main

import (
	"fmt"
	"io"

	"nts/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
}

func NewConfigCommand(stdout io.Writer) *ConfigCommand {
	return &ConfigCommand{stdout: stdout}
}

// Run prints the effective configuration as TOML, defaults merged with
// whatever ~/.nts/config.toml overrides.
func (c *ConfigCommand) Run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rendered, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprint(c.stdout, rendered)
	return nil
}
