// Package quiz defines the game data model, the contract every game mode
// implements, and the round/attempt/score skeleton the modes share.
//
// Every function here is pure: it takes a State snapshot and returns a new
// one, never mutating its inputs.
package quiz

import (
	"errors"
	"slices"
)

// ErrNoTargets is returned when every region has already been asked.
var ErrNoTargets = errors.New("quiz: no targets available")

// Status is the game life cycle, independent of the active mode.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
	StatusEnded   Status = "ended"
)

// ModeID identifies a game mode strategy.
type ModeID string

const (
	ModeClassic        ModeID = "classic"
	ModeReverseQuiz    ModeID = "reverse_quiz"
	ModeMultipleChoice ModeID = "multiple_choice"
)

// Difficulty affects viewport focus, never scoring.
type Difficulty string

const (
	DifficultyTraining Difficulty = "training"
	DifficultyEasy     Difficulty = "easy"
	DifficultyNormal   Difficulty = "normal"
	DifficultyHard     Difficulty = "hard"
	DifficultyExpert   Difficulty = "expert"
)

// Difficulties lists every difficulty from easiest to hardest.
var Difficulties = []Difficulty{
	DifficultyTraining,
	DifficultyEasy,
	DifficultyNormal,
	DifficultyHard,
	DifficultyExpert,
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return slices.Contains(Difficulties, d)
}

// Settings configures a game. AlternativesCount and TimerSeconds are
// optional; nil disables candidates and the round timer respectively.
type Settings struct {
	GameMode          ModeID     `yaml:"game_mode"`
	Rounds            int        `yaml:"rounds"`
	Difficulty        Difficulty `yaml:"difficulty"`
	MaxAttempts       int        `yaml:"max_attempts"`
	AlternativesCount *int       `yaml:"alternatives_count,omitempty"`
	TimerSeconds      *int       `yaml:"timer_seconds,omitempty"`
	AudioEnabled      bool       `yaml:"audio_enabled"`
	MapStyle          string     `yaml:"map_style,omitempty"`
}

// State is the whole game, replaced (never mutated) on every transition.
type State struct {
	Status            Status   `yaml:"status"`
	Score             int      `yaml:"score"`
	Streak            int      `yaml:"streak"`
	CorrectAnswers    int      `yaml:"correct_answers"`
	CurrentRound      int      `yaml:"current_round"`
	CurrentTargetID   *string  `yaml:"current_target_id"`
	AnsweredIDs       []string `yaml:"answered_ids"`
	AttemptsThisRound int      `yaml:"attempts_this_round"`
	RevealedIDs       []string `yaml:"revealed_ids"`
	CandidateIDs      []string `yaml:"candidate_ids"`
	Settings          Settings `yaml:"settings"`
}

// Target returns the current target id, or "" when no round is active.
func (s State) Target() string {
	if s.CurrentTargetID == nil {
		return ""
	}
	return *s.CurrentTargetID
}

// Clone returns a deep copy of s so a transition can build on it without
// aliasing the caller's slices.
func (s State) Clone() State {
	out := s
	out.AnsweredIDs = slices.Clone(s.AnsweredIDs)
	out.RevealedIDs = slices.Clone(s.RevealedIDs)
	out.CandidateIDs = slices.Clone(s.CandidateIDs)
	if s.CurrentTargetID != nil {
		out.CurrentTargetID = Ptr(*s.CurrentTargetID)
	}
	out.Settings = s.Settings.clone()
	return out
}

func (s Settings) clone() Settings {
	out := s
	if s.AlternativesCount != nil {
		out.AlternativesCount = Ptr(*s.AlternativesCount)
	}
	if s.TimerSeconds != nil {
		out.TimerSeconds = Ptr(*s.TimerSeconds)
	}
	return out
}

// AnswerResult is the outcome of one answer submission.
type AnswerResult struct {
	IsCorrect       bool
	NewState        State
	CorrectID       *string
	RevealedCorrect bool
}

// QuestionData is the next target and its candidate set.
type QuestionData struct {
	TargetID     string
	CandidateIDs []string
}

// InputKind tells a front-end how the player answers in a mode.
type InputKind int

const (
	InputClick InputKind = iota
	InputText
	InputChoice
)

// String returns a human-readable name for the input kind.
func (k InputKind) String() string {
	switch k {
	case InputClick:
		return "click"
	case InputText:
		return "text"
	case InputChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// SettingsProps declares which settings controls a mode exposes.
type SettingsProps struct {
	ShowDifficulty   bool
	ShowAlternatives bool
	ShowMaxAttempts  bool
	ShowTimer        bool
}

// ValidationResult reports settings range-check failures.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// Ptr returns a pointer to v. Handy for optional settings fields.
func Ptr[T any](v T) *T {
	return &v
}
