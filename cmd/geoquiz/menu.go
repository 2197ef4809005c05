package main

import (
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/geoquiz/internal/platform/tui"
	"github.com/vovakirdan/geoquiz/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start geoquiz with a mode picker menu",
	Long: `Start geoquiz in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to pick a difficulty and
Enter to play. After a game you return to the menu to play again.

Controls:
  Up/Down/j/k     - Choose mode
  Left/Right/h/l  - Choose difficulty
  Enter/Space     - Play
  Tab             - High scores
  Q               - Quit

Examples:
  geoquiz menu
  geoquiz menu --dataset continents
  geoquiz menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ds, err := a.dataset()
	if err != nil {
		return err
	}

	store, err := storage.Open(a.cfg.Database)
	if err != nil {
		a.logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
	}

	width, height := terminalSize()
	return tui.RunSession(tui.Session{
		Engine:   a.engine,
		Dataset:  ds,
		Store:    store,
		Settings: a.cfg.Settings(),
		Seed:     flagSeed,
		Player:   currentUser(),
		ID:       storage.NewSessionID(),
		Logger:   a.logger,
	}, width, height)
}

// currentUser returns the local login name for score entries.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
