package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"nts/internal/config"
	"nts/internal/logging"
	"nts/internal/server"
	"nts/internal/store"
)

type ServeCommand struct {
	stdout io.Writer
	stderr io.Writer
}

func NewServeCommand(stdout, stderr io.Writer) *ServeCommand {
	return &ServeCommand{stdout: stdout, stderr: stderr}
}

func (c *ServeCommand) Run(args []string) error {
	// A .env next to the binary is convenient for development; real
	// deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.NewConsoleLogger(c.stderr, envOr("NTS_LOG_LEVEL", "info"))

	secret := strings.TrimSpace(os.Getenv("NTS_JWT_SECRET"))
	if secret == "" {
		return errors.New("NTS_JWT_SECRET is required")
	}

	dbPath := strings.TrimSpace(os.Getenv("NTS_DB"))
	if dbPath == "" {
		var err error
		if dbPath, err = config.DefaultDatabasePath(); err != nil {
			return err
		}
		if _, err := config.EnsureDataDir(); err != nil {
			return err
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := server.Config{
		Addr:               envOr("NTS_ADDR", "127.0.0.1:8787"),
		BaseURL:            strings.TrimSpace(os.Getenv("NTS_BASE_URL")),
		GitHubClientID:     strings.TrimSpace(os.Getenv("GITHUB_CLIENT_ID")),
		GitHubClientSecret: strings.TrimSpace(os.Getenv("GITHUB_CLIENT_SECRET")),
		JWTSecret:          []byte(secret),
		AllowedOrigins:     splitList(os.Getenv("NTS_ALLOWED_ORIGINS")),
	}

	srv, err := server.New(cfg, store.NewNoteStore(db), store.NewUserStore(db), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("db", dbPath).Msg("notes server starting")
	return srv.ListenAndServe(ctx)
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
