package modes

import "github.com/vovakirdan/geoquiz/internal/quiz"

// DefaultAlternatives is the candidate count used by multiple choice when
// the settings leave it unset.
const DefaultAlternatives = 4

// MultipleChoice offers a handful of candidate regions and the player
// picks one.
type MultipleChoice struct{}

// NewMultipleChoice creates the multiple choice mode.
func NewMultipleChoice() *MultipleChoice {
	return &MultipleChoice{}
}

// ID returns the mode identifier.
func (m *MultipleChoice) ID() quiz.ModeID {
	return quiz.ModeMultipleChoice
}

// Title returns the display name.
func (m *MultipleChoice) Title() string {
	return "Multiple Choice"
}

// Input returns how the player answers.
func (m *MultipleChoice) Input() quiz.InputKind {
	return quiz.InputChoice
}

// CandidateCount returns the configured alternatives, or the default.
func (m *MultipleChoice) CandidateCount(s quiz.Settings) int {
	if s.AlternativesCount == nil {
		return DefaultAlternatives
	}
	return *s.AlternativesCount
}

// GenerateQuestion selects the next target and its candidates.
func (m *MultipleChoice) GenerateQuestion(state quiz.State, allIDs []string, seed int64) (quiz.QuestionData, error) {
	return quiz.NextQuestion(state, allIDs, seed, m.CandidateCount(state.Settings))
}

// ProcessAnswer accepts the picked candidate when it equals the target.
func (m *MultipleChoice) ProcessAnswer(state quiz.State, answer string, allIDs []string, seed int64, _ string) quiz.AnswerResult {
	if state.Status != quiz.StatusPlaying {
		return quiz.Ignored(state)
	}
	correct := state.CurrentTargetID != nil && answer == *state.CurrentTargetID
	return quiz.Evaluate(state, correct, allIDs, seed, m.CandidateCount(state.Settings))
}

// DefaultSettings returns the multiple choice baseline.
func (m *MultipleChoice) DefaultSettings() quiz.SettingsPatch {
	return quiz.SettingsPatch{
		Rounds:            quiz.Ptr(10),
		Difficulty:        quiz.Ptr(quiz.DifficultyNormal),
		MaxAttempts:       quiz.Ptr(1),
		AlternativesCount: quiz.Ptr(DefaultAlternatives),
	}
}

// MapConfig never zooms; candidates are always shown.
func (m *MultipleChoice) MapConfig(quiz.State, quiz.Settings, quiz.Geometry, int64) quiz.MapConfig {
	return quiz.MapConfig{
		ZoomEnabled:    false,
		ShowCandidates: true,
	}
}

// SettingsProps hides the difficulty control, which only affects zoom.
func (m *MultipleChoice) SettingsProps() quiz.SettingsProps {
	return quiz.SettingsProps{
		ShowAlternatives: true,
		ShowMaxAttempts:  true,
		ShowTimer:        true,
	}
}

// ValidateSettings range-checks a settings patch.
func (m *MultipleChoice) ValidateSettings(p quiz.SettingsPatch) quiz.ValidationResult {
	return quiz.ValidateSettings(p)
}

var _ quiz.Mode = (*MultipleChoice)(nil)
