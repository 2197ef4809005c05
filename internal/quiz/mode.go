package quiz

import "github.com/paulmach/orb"

// Geometry gives a mode access to region shapes for viewport focus.
type Geometry interface {
	// Bound returns the bounding box of a region.
	Bound(id string) (orb.Bound, bool)
	// Centroid returns the area-weighted center of a region.
	Centroid(id string) (orb.Point, bool)
}

// MapConfig holds presentation hints for the map layer.
type MapConfig struct {
	ZoomEnabled          bool
	Focus                *orb.Bound
	Padding              float64
	ShowCandidates       bool
	SuppressHoverOutline bool
}

// Mode is the capability set every game mode implements. Callers drive a
// game through this interface without knowing which mode is active.
type Mode interface {
	// ID returns the registry key for this mode (e.g. "classic").
	ID() ModeID

	// Title returns a human-readable name for display.
	Title() string

	// Input tells the front-end how the player answers.
	Input() InputKind

	// CandidateCount returns how many alternatives to offer per round
	// under s. Zero disables candidate generation.
	CandidateCount(s Settings) int

	// GenerateQuestion selects the next target and its candidates.
	// Returns ErrNoTargets when every id has been answered.
	GenerateQuestion(state State, allIDs []string, seed int64) (QuestionData, error)

	// ProcessAnswer evaluates one submission and advances the game.
	// correctName is only consulted by modes that compare names.
	ProcessAnswer(state State, answer string, allIDs []string, seed int64, correctName string) AnswerResult

	// DefaultSettings returns the mode's baseline settings.
	DefaultSettings() SettingsPatch

	// MapConfig computes viewport hints for the current round.
	MapConfig(state State, settings Settings, geom Geometry, seed int64) MapConfig

	// SettingsProps declares which settings controls apply to this mode.
	SettingsProps() SettingsProps

	// ValidateSettings range-checks a settings patch.
	ValidateSettings(p SettingsPatch) ValidationResult
}
