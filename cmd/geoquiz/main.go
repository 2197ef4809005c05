// geoquiz is a geography quiz for the terminal.
//
// Usage:
//
//	geoquiz list              - List game modes and region datasets
//	geoquiz play [mode]       - Play one game
//	geoquiz menu              - Pick modes interactively, game after game
//	geoquiz serve             - Start SSH server for remote play
//	geoquiz scores [mode]     - Show high scores
//	geoquiz replay            - Replay a game from its seed and answers
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible games
//	--db <path>        - Set database path (default: ~/.geoquiz/scores.db)
//	--config <path>    - Read configuration from a specific file
//	--dataset <name>   - Region dataset to play on
//	--data-dir <path>  - Directory with extra *.geojson datasets
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/geoquiz/internal/config"
	"github.com/vovakirdan/geoquiz/internal/engine"
	"github.com/vovakirdan/geoquiz/internal/regions"
	"github.com/vovakirdan/geoquiz/internal/registry"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagDataset string
	flagDataDir string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "geoquiz",
	Short: "GeoQuiz - Learn the map in your terminal",
	Long: `GeoQuiz asks you to find regions on a map, name them, or pick them
from a few choices. Games are seeded, so a seed and the answers given are
enough to replay any game exactly.

Available commands:
  list     - Show game modes and datasets
  play     - Play a single game
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  replay   - Replay a recorded game

Examples:
  geoquiz list
  geoquiz play multiple_choice
  geoquiz play --seed 42 --difficulty hard
  geoquiz serve --ssh :2222
  geoquiz replay --game 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "Region dataset to play on")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory with extra *.geojson datasets")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}

// app is everything a command needs, built from config and flags.
type app struct {
	cfg    config.Config
	logger *log.Logger
	modes  *registry.Registry
	engine *engine.Engine
	loader *regions.Loader
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	// Flags win over config and environment.
	if flagDBPath != "" {
		cfg.Database = flagDBPath
	}
	if flagDataset != "" {
		cfg.Dataset = flagDataset
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if cfg.Dataset == "" {
		cfg.Dataset = regions.DefaultDataset
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "geoquiz",
		Level:           cfg.Level(),
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	modes := registry.Default(logger)
	return &app{
		cfg:    cfg,
		logger: logger,
		modes:  modes,
		engine: engine.New(modes, logger),
		loader: regions.NewLoader(cfg.DataDir),
	}, nil
}

func (a *app) dataset() (*regions.Dataset, error) {
	return a.loader.Load(a.cfg.Dataset)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
