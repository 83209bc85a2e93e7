package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mpdart/internal/ascii"
	"mpdart/internal/config"
	"mpdart/internal/logging"
	"mpdart/internal/mpd"
	"mpdart/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mpdart: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override the config file; defaults come from it.
	host := flag.String("host", cfg.Host, "MPD host")
	port := flag.Int("port", cfg.Port, "MPD port")
	password := flag.String("password", cfg.Password, "MPD password")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fontWidth := flag.Int("font-width", cfg.FontWidth, "character cell width in pixels")
	fontHeight := flag.Int("font-height", cfg.FontHeight, "character cell height in pixels")
	flag.Parse()

	cfg.Host = *host
	cfg.Port = *port
	cfg.Password = *password
	cfg.LogLevel = *logLevel
	cfg.FontWidth = *fontWidth
	cfg.FontHeight = *fontHeight
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := logging.Setup(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	client, err := mpd.Connect(cfg.Host, cfg.Port, cfg.Password)
	if err != nil {
		return err
	}

	model := ui.New(client, ascii.New(), cfg.FontAspect(), cfg.UpdateInterval())
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	// Bubbletea has restored the terminal by now; a connectivity failure
	// recorded during the session becomes the process exit error.
	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
