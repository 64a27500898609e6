package main

import (
	"fmt"
	"io"
	"os"
)

const usageText = `nts is a personal note-taking app for the terminal.

Usage:
  nts <command> [flags]

Commands:
  ui       open the notes UI (default)
  serve    run the notes server
  login    sign in through GitHub
  logout   sign out and forget the local session
  config   print the effective configuration
  help     show help

Flags:
  -h, --help   show help

Serve environment:
  NTS_ADDR               listen address (default 127.0.0.1:8787)
  NTS_DB                 SQLite database path (default ~/.nts/notes.db)
  NTS_BASE_URL           public base URL for OAuth redirects
  NTS_JWT_SECRET         session signing secret (required)
  GITHUB_CLIENT_ID       GitHub OAuth app client id
  GITHUB_CLIENT_SECRET   GitHub OAuth app client secret

Examples:
  nts
  nts login
  nts serve
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	if len(args) == 0 {
		exitOnErr("ui", commands["ui"].Run(nil), wiring.stderr)
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}

func exitOnErr(command string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "nts %s: %v\n", command, err)
	os.Exit(1)
}
