package modes

import (
	"github.com/vovakirdan/geoquiz/internal/geo"
	"github.com/vovakirdan/geoquiz/internal/quiz"
)

var classicTuning = focusTuning{
	padding: map[quiz.Difficulty]float64{
		quiz.DifficultyTraining: 1.2,
		quiz.DifficultyEasy:     1.6,
		quiz.DifficultyNormal:   2.0,
		quiz.DifficultyHard:     2.5,
		quiz.DifficultyExpert:   3.0,
	},
	shift: map[quiz.Difficulty]float64{
		quiz.DifficultyTraining: 0.3,
		quiz.DifficultyEasy:     0.5,
		quiz.DifficultyNormal:   0.75,
		quiz.DifficultyHard:     1.0,
		quiz.DifficultyExpert:   1.0,
	},
}

// Classic is the click-to-identify mode: the player is told a region name
// and picks the region on the map.
type Classic struct{}

// NewClassic creates the classic mode.
func NewClassic() *Classic {
	return &Classic{}
}

// ID returns the mode identifier.
func (m *Classic) ID() quiz.ModeID {
	return quiz.ModeClassic
}

// Title returns the display name.
func (m *Classic) Title() string {
	return "Classic"
}

// Input returns how the player answers.
func (m *Classic) Input() quiz.InputKind {
	return quiz.InputClick
}

// CandidateCount highlights alternatives only when the player asked for
// them.
func (m *Classic) CandidateCount(s quiz.Settings) int {
	if s.AlternativesCount == nil {
		return 0
	}
	return *s.AlternativesCount
}

// GenerateQuestion selects the next target.
func (m *Classic) GenerateQuestion(state quiz.State, allIDs []string, seed int64) (quiz.QuestionData, error) {
	return quiz.NextQuestion(state, allIDs, seed, m.CandidateCount(state.Settings))
}

// ProcessAnswer accepts the clicked region id when it equals the target.
func (m *Classic) ProcessAnswer(state quiz.State, answer string, allIDs []string, seed int64, _ string) quiz.AnswerResult {
	if state.Status != quiz.StatusPlaying {
		return quiz.Ignored(state)
	}
	correct := state.CurrentTargetID != nil && answer == *state.CurrentTargetID
	return quiz.Evaluate(state, correct, allIDs, seed, m.CandidateCount(state.Settings))
}

// DefaultSettings returns the classic baseline.
func (m *Classic) DefaultSettings() quiz.SettingsPatch {
	return quiz.SettingsPatch{
		Rounds:      quiz.Ptr(10),
		Difficulty:  quiz.Ptr(quiz.DifficultyNormal),
		MaxAttempts: quiz.Ptr(3),
	}
}

// MapConfig zooms to a jittered box around the target. Training, hard and
// expert keep the whole map in view.
func (m *Classic) MapConfig(state quiz.State, settings quiz.Settings, geom quiz.Geometry, seed int64) quiz.MapConfig {
	d := settings.Difficulty
	padding := classicTuning.paddingFor(d)

	cfg := quiz.MapConfig{
		ZoomEnabled:          classicZoom(d),
		Padding:              padding,
		ShowCandidates:       len(state.CandidateIDs) > 0,
		SuppressHoverOutline: d == quiz.DifficultyHard,
	}
	if !cfg.ZoomEnabled {
		return cfg
	}

	target := state.Target()
	box, ok := targetBox(geom, target, padding)
	if !ok {
		return cfg
	}
	if b, _ := geom.Bound(target); !geo.CrossesAntimeridian(b) {
		box = jitter(box, b, classicTuning.shiftFor(d), seed, state.CurrentRound)
	}

	box = geo.ClampWorld(box)
	cfg.Focus = &box
	return cfg
}

// SettingsProps exposes every control.
func (m *Classic) SettingsProps() quiz.SettingsProps {
	return quiz.SettingsProps{
		ShowDifficulty:   true,
		ShowAlternatives: true,
		ShowMaxAttempts:  true,
		ShowTimer:        true,
	}
}

// ValidateSettings range-checks a settings patch.
func (m *Classic) ValidateSettings(p quiz.SettingsPatch) quiz.ValidationResult {
	return quiz.ValidateSettings(p)
}

func classicZoom(d quiz.Difficulty) bool {
	switch d {
	case quiz.DifficultyTraining, quiz.DifficultyHard, quiz.DifficultyExpert:
		return false
	default:
		return true
	}
}

var _ quiz.Mode = (*Classic)(nil)
