// Package engine drives a game round by round. It resolves the active mode
// from a registry and delegates question generation and answer handling
// to it. Every method takes a state snapshot and returns a new one; the
// engine keeps no game state of its own.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/registry"
)

// ErrInvalidSettings is returned when a settings update fails validation.
var ErrInvalidSettings = errors.New("engine: invalid settings")

// Engine is the game state machine.
type Engine struct {
	modes  *registry.Registry
	logger *log.Logger
}

// New creates an engine that looks modes up in modes.
func New(modes *registry.Registry, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		modes:  modes,
		logger: logger,
	}
}

// Modes returns the registry the engine resolves modes from.
func (e *Engine) Modes() *registry.Registry {
	return e.modes
}

// Mode returns the strategy for the settings' game mode.
func (e *Engine) Mode(s quiz.Settings) quiz.Mode {
	return e.modes.Get(s.GameMode)
}

// CreateInitialState returns an idle game. Unset settings are filled from
// the mode's defaults, then from the global defaults. An unknown mode id
// is replaced by the mode the registry falls back to.
func (e *Engine) CreateInitialState(settings quiz.Settings) quiz.State {
	mode := e.Mode(settings)
	settings.GameMode = mode.ID()
	settings = mode.DefaultSettings().FillDefaults(settings)
	settings = quiz.PatchFrom(quiz.DefaultSettings()).FillDefaults(settings)

	return quiz.State{
		Status:       quiz.StatusIdle,
		AnsweredIDs:  []string{},
		RevealedIDs:  []string{},
		CandidateIDs: []string{},
		Settings:     settings,
	}
}

// StartGame resets scoring and picks the first target. Returns
// quiz.ErrNoTargets when allIDs is empty.
func (e *Engine) StartGame(state quiz.State, allIDs []string, seed int64) (quiz.State, error) {
	target, err := quiz.InitialTarget(allIDs, nil, seed)
	if err != nil {
		return state, fmt.Errorf("engine: start game: %w", err)
	}

	mode := e.Mode(state.Settings)

	next := state.Clone()
	next.Status = quiz.StatusPlaying
	next.Score = 0
	next.Streak = 0
	next.CorrectAnswers = 0
	next.CurrentRound = 1
	next.CurrentTargetID = &target
	next.AnsweredIDs = []string{}
	next.RevealedIDs = []string{}
	next.AttemptsThisRound = 0
	next.CandidateIDs = quiz.BuildCandidates(allIDs, target, mode.CandidateCount(next.Settings), roundSeed(seed, 0), nil)

	e.logger.Debug("game started",
		"mode", mode.ID(),
		"rounds", quiz.TotalRounds(next.Settings, allIDs),
		"seed", seed,
	)
	return next, nil
}

// Answer submits one answer for the current target. correctName is the
// display name of the target, used by modes that compare names. Answers
// while the game is not playing leave the state unchanged.
func (e *Engine) Answer(state quiz.State, answer string, allIDs []string, seed int64, correctName string) quiz.AnswerResult {
	mode := e.Mode(state.Settings)
	res := mode.ProcessAnswer(state, answer, allIDs, seed, correctName)

	if state.Status == quiz.StatusPlaying && res.NewState.Status == quiz.StatusEnded {
		e.logger.Debug("game ended",
			"mode", mode.ID(),
			"score", res.NewState.Score,
			"correct", res.NewState.CorrectAnswers,
			"rounds", res.NewState.CurrentRound,
		)
	}
	return res
}

// Question returns the next target the active mode would ask.
func (e *Engine) Question(state quiz.State, allIDs []string, seed int64) (quiz.QuestionData, error) {
	return e.Mode(state.Settings).GenerateQuestion(state, allIDs, seed)
}

// MapConfig returns the viewport hints for the current round.
func (e *Engine) MapConfig(state quiz.State, geom quiz.Geometry, seed int64) quiz.MapConfig {
	return e.Mode(state.Settings).MapConfig(state, state.Settings, geom, seed)
}

// UpdateSettings applies a settings patch to a live game. When the mode
// changes, the new mode's defaults fill any field still unset. While a
// round is in play, its candidate set is rebuilt for the new settings.
func (e *Engine) UpdateSettings(state quiz.State, patch quiz.SettingsPatch, allIDs []string, seed int64) (quiz.State, error) {
	mode := e.Mode(state.Settings)
	if patch.GameMode != nil {
		mode = e.modes.Get(*patch.GameMode)
	}

	if res := mode.ValidateSettings(patch); !res.IsValid {
		return state, fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(res.Errors, "; "))
	}

	next := state.Clone()
	next.Settings = patch.Apply(next.Settings)
	if next.Settings.GameMode != state.Settings.GameMode {
		next.Settings.GameMode = mode.ID()
		next.Settings = mode.DefaultSettings().FillDefaults(next.Settings)
	}

	if target := next.Target(); target != "" {
		round := next.CurrentRound - 1
		next.CandidateIDs = quiz.BuildCandidates(allIDs, target, mode.CandidateCount(next.Settings),
			roundSeed(seed, round), next.AnsweredIDs)
	}
	return next, nil
}

// Pause suspends a playing game. Other states are returned unchanged.
func (e *Engine) Pause(state quiz.State) quiz.State {
	next := state.Clone()
	if next.Status == quiz.StatusPlaying {
		next.Status = quiz.StatusPaused
	}
	return next
}

// Resume continues a paused game. Other states are returned unchanged.
func (e *Engine) Resume(state quiz.State) quiz.State {
	next := state.Clone()
	if next.Status == quiz.StatusPaused {
		next.Status = quiz.StatusPlaying
	}
	return next
}
