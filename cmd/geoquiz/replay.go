package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/replay"
	"github.com/vovakirdan/geoquiz/internal/storage"
)

var (
	flagReplayFile string
	flagReplayGame int64
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a game from its seed and answers",
	Long: `Replay a game step by step and print every intermediate state as YAML.

The game comes either from a script file or from a game stored in the
scores database. A script file looks like:

  dataset: continents
  seed: 12345
  settings:
    game_mode: classic
    rounds: 5
  answers: [EU, AF, nope, AS]

Examples:
  geoquiz replay --answers game.yaml
  geoquiz replay --game 7
  geoquiz replay --game 7 --seed 99   # Same answers, different seed`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayFile, "answers", "", "Path to a replay script (YAML)")
	replayCmd.Flags().Int64Var(&flagReplayGame, "game", 0, "ID of a stored game")
	replayCmd.MarkFlagsMutuallyExclusive("answers", "game")
	replayCmd.MarkFlagsOneRequired("answers", "game")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	var script replay.Script
	if flagReplayFile != "" {
		script, err = replay.Load(flagReplayFile)
	} else {
		script, err = storedScript(a.cfg.Database, flagReplayGame)
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("seed") {
		script.Seed = flagSeed
	}
	if script.Dataset == "" || cmd.Flags().Changed("dataset") {
		script.Dataset = a.cfg.Dataset
	}

	ds, err := a.loader.Load(script.Dataset)
	if err != nil {
		return err
	}

	steps, err := replay.Run(a.engine, ds, script)
	if err != nil {
		return err
	}
	return replay.Write(os.Stdout, steps)
}

func storedScript(dbPath string, id int64) (replay.Script, error) {
	store, err := storage.Open(dbPath)
	if err != nil {
		return replay.Script{}, err
	}
	defer store.Close()

	r, err := store.Result(id)
	if errors.Is(err, storage.ErrNotFound) {
		return replay.Script{}, fmt.Errorf("no stored game with id %d (see 'geoquiz scores')", id)
	}
	if err != nil {
		return replay.Script{}, err
	}

	patch := quiz.PatchFrom(r.Settings)
	if r.Settings.GameMode == "" {
		// Rows without settings replay with the mode defaults.
		patch = quiz.SettingsPatch{
			GameMode:   quiz.Ptr(quiz.ModeID(r.ModeID)),
			Difficulty: quiz.Ptr(quiz.Difficulty(r.Difficulty)),
		}
	}

	return replay.Script{
		Dataset:  r.Dataset,
		Seed:     r.Seed,
		Settings: patch,
		Answers:  r.Answers,
	}, nil
}
