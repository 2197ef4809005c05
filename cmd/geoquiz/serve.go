package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/geoquiz/internal/platform/tui"
	"github.com/vovakirdan/geoquiz/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the geoquiz SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a mode picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.geoquiz/host_key

Examples:
  geoquiz serve                           # Listen on :23234 with auto-generated key
  geoquiz serve --ssh :2222               # Listen on port 2222
  geoquiz serve --host-key ./my_host_key  # Use specific host key
  geoquiz serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	if a.cfg.Server.Address != "" {
		cfg.Address = a.cfg.Server.Address
	}
	if a.cfg.Server.IdleTimeout > 0 {
		cfg.IdleTimeout = a.cfg.Server.IdleTimeout
	}
	cfg.HostKeyPath = a.cfg.Server.HostKeyPath
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	ds, err := a.dataset()
	if err != nil {
		return err
	}

	store, err := storage.Open(a.cfg.Database)
	if err != nil {
		// Serve without a leaderboard.
		a.logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, tui.Session{
		Engine:   a.engine,
		Dataset:  ds,
		Store:    store,
		Settings: a.cfg.Settings(),
		Seed:     flagSeed,
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Starting geoquiz SSH server on %s (dataset %s)\n", server.Addr(), ds.Name)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
