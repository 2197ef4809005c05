package quiz

import "fmt"

// Settings bounds.
const (
	MinRounds           = 1
	MaxRounds           = 100
	MinAttemptsPerRound = 1
	MaxAttemptsPerRound = 10
	MinAlternatives     = 2
	MaxAlternatives     = 10
	MinTimerSeconds     = 5
	MaxTimerSeconds     = 300
)

// SettingsPatch is a partial Settings. Nil fields are left untouched.
type SettingsPatch struct {
	GameMode          *ModeID     `yaml:"game_mode,omitempty"`
	Rounds            *int        `yaml:"rounds,omitempty"`
	Difficulty        *Difficulty `yaml:"difficulty,omitempty"`
	MaxAttempts       *int        `yaml:"max_attempts,omitempty"`
	AlternativesCount *int        `yaml:"alternatives_count,omitempty"`
	TimerSeconds      *int        `yaml:"timer_seconds,omitempty"`
	AudioEnabled      *bool       `yaml:"audio_enabled,omitempty"`
	MapStyle          *string     `yaml:"map_style,omitempty"`
}

// DefaultSettings returns the settings used when nothing else is known.
func DefaultSettings() Settings {
	return Settings{
		GameMode:    ModeClassic,
		Rounds:      10,
		Difficulty:  DifficultyNormal,
		MaxAttempts: 3,
		MapStyle:    "default",
	}
}

// Apply overwrites every field of s that p sets.
func (p SettingsPatch) Apply(s Settings) Settings {
	out := s.clone()
	if p.GameMode != nil {
		out.GameMode = *p.GameMode
	}
	if p.Rounds != nil {
		out.Rounds = *p.Rounds
	}
	if p.Difficulty != nil {
		out.Difficulty = *p.Difficulty
	}
	if p.MaxAttempts != nil {
		out.MaxAttempts = *p.MaxAttempts
	}
	if p.AlternativesCount != nil {
		out.AlternativesCount = Ptr(*p.AlternativesCount)
	}
	if p.TimerSeconds != nil {
		out.TimerSeconds = Ptr(*p.TimerSeconds)
	}
	if p.AudioEnabled != nil {
		out.AudioEnabled = *p.AudioEnabled
	}
	if p.MapStyle != nil {
		out.MapStyle = *p.MapStyle
	}
	return out
}

// FillDefaults sets the fields of s that are still unset (zero or nil) from
// p. Set fields are kept, so user choices survive a mode switch.
func (p SettingsPatch) FillDefaults(s Settings) Settings {
	out := s.clone()
	if out.GameMode == "" && p.GameMode != nil {
		out.GameMode = *p.GameMode
	}
	if out.Rounds == 0 && p.Rounds != nil {
		out.Rounds = *p.Rounds
	}
	if out.Difficulty == "" && p.Difficulty != nil {
		out.Difficulty = *p.Difficulty
	}
	if out.MaxAttempts == 0 && p.MaxAttempts != nil {
		out.MaxAttempts = *p.MaxAttempts
	}
	if out.AlternativesCount == nil && p.AlternativesCount != nil {
		out.AlternativesCount = Ptr(*p.AlternativesCount)
	}
	if out.TimerSeconds == nil && p.TimerSeconds != nil {
		out.TimerSeconds = Ptr(*p.TimerSeconds)
	}
	if out.MapStyle == "" && p.MapStyle != nil {
		out.MapStyle = *p.MapStyle
	}
	return out
}

// PatchFrom returns a patch that sets every field of s.
func PatchFrom(s Settings) SettingsPatch {
	p := SettingsPatch{
		GameMode:     Ptr(s.GameMode),
		Rounds:       Ptr(s.Rounds),
		Difficulty:   Ptr(s.Difficulty),
		MaxAttempts:  Ptr(s.MaxAttempts),
		AudioEnabled: Ptr(s.AudioEnabled),
		MapStyle:     Ptr(s.MapStyle),
	}
	if s.AlternativesCount != nil {
		p.AlternativesCount = Ptr(*s.AlternativesCount)
	}
	if s.TimerSeconds != nil {
		p.TimerSeconds = Ptr(*s.TimerSeconds)
	}
	return p
}

// ValidateSettings range-checks the fields p sets.
func ValidateSettings(p SettingsPatch) ValidationResult {
	var errs []string

	if p.Rounds != nil && (*p.Rounds < MinRounds || *p.Rounds > MaxRounds) {
		errs = append(errs, fmt.Sprintf("rounds must be between %d and %d", MinRounds, MaxRounds))
	}
	if p.MaxAttempts != nil && (*p.MaxAttempts < MinAttemptsPerRound || *p.MaxAttempts > MaxAttemptsPerRound) {
		errs = append(errs, fmt.Sprintf("max attempts must be between %d and %d", MinAttemptsPerRound, MaxAttemptsPerRound))
	}
	if p.AlternativesCount != nil && (*p.AlternativesCount < MinAlternatives || *p.AlternativesCount > MaxAlternatives) {
		errs = append(errs, fmt.Sprintf("alternatives count must be between %d and %d", MinAlternatives, MaxAlternatives))
	}
	if p.TimerSeconds != nil && (*p.TimerSeconds < MinTimerSeconds || *p.TimerSeconds > MaxTimerSeconds) {
		errs = append(errs, fmt.Sprintf("timer must be between %d and %d seconds", MinTimerSeconds, MaxTimerSeconds))
	}
	if p.Difficulty != nil && !p.Difficulty.Valid() {
		errs = append(errs, fmt.Sprintf("unknown difficulty %q", *p.Difficulty))
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// TotalRounds returns the number of rounds a game can actually last: the
// configured rounds capped by the number of regions.
func TotalRounds(s Settings, allIDs []string) int {
	return min(s.Rounds, len(allIDs))
}
