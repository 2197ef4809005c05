package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/geoquiz/internal/platform/tui"
	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/storage"
)

var (
	flagDifficulty   string
	flagRounds       int
	flagAttempts     int
	flagAlternatives int
	flagTimer        int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a single game",
	Long: `Play one game in the given mode (default from config).

Modes:
  classic          - Find the named region
  reverse_quiz     - Name the highlighted region
  multiple_choice  - Pick the named region among a few candidates

Controls:
  Up/Down    - Move through the regions
  1-9        - Pick a candidate directly
  Enter      - Answer
  Esc/C-p    - Pause (Esc again leaves)
  C-c        - Quit

Examples:
  geoquiz play
  geoquiz play reverse_quiz --difficulty easy
  geoquiz play multiple_choice --alternatives 6 --timer 15
  geoquiz play classic --seed 12345 --rounds 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "training, easy, normal, hard or expert")
	playCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Number of rounds")
	playCmd.Flags().IntVar(&flagAttempts, "attempts", 0, "Attempts per round")
	playCmd.Flags().IntVar(&flagAlternatives, "alternatives", 0, "Number of candidates to offer")
	playCmd.Flags().IntVar(&flagTimer, "timer", 0, "Seconds per attempt (0 = no timer)")
}

// settingsPatch collects the settings given on the command line.
func settingsPatch(cmd *cobra.Command, args []string) quiz.SettingsPatch {
	var p quiz.SettingsPatch
	if len(args) > 0 {
		p.GameMode = quiz.Ptr(quiz.ModeID(args[0]))
	}
	if cmd.Flags().Changed("difficulty") {
		p.Difficulty = quiz.Ptr(quiz.Difficulty(flagDifficulty))
	}
	if cmd.Flags().Changed("rounds") {
		p.Rounds = quiz.Ptr(flagRounds)
	}
	if cmd.Flags().Changed("attempts") {
		p.MaxAttempts = quiz.Ptr(flagAttempts)
	}
	if cmd.Flags().Changed("alternatives") {
		p.AlternativesCount = quiz.Ptr(flagAlternatives)
	}
	if cmd.Flags().Changed("timer") && flagTimer > 0 {
		p.TimerSeconds = quiz.Ptr(flagTimer)
	}
	return p
}

// gameSettings merges config and command line settings, fills the mode
// defaults and validates the result against the chosen mode.
func (a *app) gameSettings(p quiz.SettingsPatch) (quiz.Settings, error) {
	settings := p.Apply(a.cfg.Settings())

	if !a.modes.Exists(settings.GameMode) {
		return settings, fmt.Errorf("unknown game mode %q (run 'geoquiz list')", settings.GameMode)
	}

	settings = a.engine.CreateInitialState(settings).Settings
	mode := a.modes.Get(settings.GameMode)
	if res := mode.ValidateSettings(quiz.PatchFrom(settings)); !res.IsValid {
		return settings, fmt.Errorf("invalid settings: %s", strings.Join(res.Errors, "; "))
	}
	return settings, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	settings, err := a.gameSettings(settingsPatch(cmd, args))
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

	final, err := tui.RunGame(tui.Session{
		Engine:   a.engine,
		Dataset:  ds,
		Store:    store,
		Settings: settings,
		Seed:     flagSeed,
		Player:   currentUser(),
		ID:       storage.NewSessionID(),
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}

	state := final.State()
	if state.Status == quiz.StatusEnded {
		fmt.Printf("Final score: %d (%d of %d correct)\n",
			state.Score, state.CorrectAnswers, len(state.AnsweredIDs))
	}
	return nil
}
