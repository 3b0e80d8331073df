package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "weddinginvites",
		Usage: "Create wedding invites, email guests and manage the event calendar.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}, Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-file", EnvVars: []string{"LOG_FILE"}, Usage: "Also append logs to this file."},
		},
		Commands: []*cli.Command{
			sendCommand(),
			icsCommand(),
			publishCommand(),
			authCommand(),
			reportCommand(),
			dietaryCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the command logger from the global flags. The returned
// closer releases the log file, if any.
func newLogger(c *cli.Context) (*slog.Logger, func(), error) {
	path := c.String("log-file")
	if path == "" {
		return setupLogger(os.Stderr, c.String("log-level")), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := setupLogger(io.MultiWriter(os.Stderr, f), c.String("log-level"))
	return logger, func() { _ = f.Close() }, nil
}

func setupLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
