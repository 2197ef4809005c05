package modes

import (
	"strings"

	"github.com/vovakirdan/geoquiz/internal/geo"
	"github.com/vovakirdan/geoquiz/internal/quiz"
)

var reverseTuning = focusTuning{
	padding: map[quiz.Difficulty]float64{
		quiz.DifficultyTraining: 1.8,
		quiz.DifficultyEasy:     2.0,
		quiz.DifficultyNormal:   2.3,
		quiz.DifficultyHard:     2.6,
		quiz.DifficultyExpert:   3.0,
	},
}

// Reverse is the reverse quiz: the target is shown and the player types
// its name.
type Reverse struct{}

// NewReverse creates the reverse quiz mode.
func NewReverse() *Reverse {
	return &Reverse{}
}

// ID returns the mode identifier.
func (m *Reverse) ID() quiz.ModeID {
	return quiz.ModeReverseQuiz
}

// Title returns the display name.
func (m *Reverse) Title() string {
	return "Reverse Quiz"
}

// Input returns how the player answers.
func (m *Reverse) Input() quiz.InputKind {
	return quiz.InputText
}

// CandidateCount is always zero; names are typed, not picked.
func (m *Reverse) CandidateCount(quiz.Settings) int {
	return 0
}

// GenerateQuestion selects the next target.
func (m *Reverse) GenerateQuestion(state quiz.State, allIDs []string, seed int64) (quiz.QuestionData, error) {
	return quiz.NextQuestion(state, allIDs, seed, 0)
}

// ProcessAnswer compares the typed answer with correctName.
func (m *Reverse) ProcessAnswer(state quiz.State, answer string, allIDs []string, seed int64, correctName string) quiz.AnswerResult {
	if state.Status != quiz.StatusPlaying {
		return quiz.Ignored(state)
	}
	return quiz.Evaluate(state, NameMatches(answer, correctName), allIDs, seed, 0)
}

// NameMatches reports whether a typed answer names the region. Both sides
// are trimmed and lowercased; equal strings match, and so does either one
// containing the other. An empty side never matches.
func NameMatches(answer, correctName string) bool {
	a := normalizeName(answer)
	c := normalizeName(correctName)
	if a == "" || c == "" {
		return false
	}
	return a == c || strings.Contains(a, c) || strings.Contains(c, a)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultSettings returns the reverse quiz baseline.
func (m *Reverse) DefaultSettings() quiz.SettingsPatch {
	return quiz.SettingsPatch{
		Rounds:      quiz.Ptr(10),
		Difficulty:  quiz.Ptr(quiz.DifficultyNormal),
		MaxAttempts: quiz.Ptr(3),
	}
}

// MapConfig always zooms to the target, without jitter, and pushes the
// focus center south to leave room for the input box.
func (m *Reverse) MapConfig(state quiz.State, settings quiz.Settings, geom quiz.Geometry, _ int64) quiz.MapConfig {
	padding := reverseTuning.paddingFor(settings.Difficulty)

	cfg := quiz.MapConfig{
		ZoomEnabled: true,
		Padding:     padding,
	}

	box, ok := targetBox(geom, state.Target(), padding)
	if !ok {
		return cfg
	}
	box = geo.Shift(box, 0, -reverseDownShift*geo.Height(box))
	box = geo.ClampWorld(box)
	cfg.Focus = &box
	return cfg
}

// SettingsProps hides the alternatives control.
func (m *Reverse) SettingsProps() quiz.SettingsProps {
	return quiz.SettingsProps{
		ShowDifficulty:  true,
		ShowMaxAttempts: true,
		ShowTimer:       true,
	}
}

// ValidateSettings range-checks a settings patch.
func (m *Reverse) ValidateSettings(p quiz.SettingsPatch) quiz.ValidationResult {
	return quiz.ValidateSettings(p)
}

var _ quiz.Mode = (*Reverse)(nil)
