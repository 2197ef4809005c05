// Package config provides YAML-based configuration loading for geoquiz,
// with environment variable overrides.
package config

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/geoquiz/internal/quiz"
)

// Config is the full application configuration.
type Config struct {
	Database string       `yaml:"database" env:"GEOQUIZ_DB"`
	DataDir  string       `yaml:"data_dir" env:"GEOQUIZ_DATA_DIR"`
	Dataset  string       `yaml:"dataset" env:"GEOQUIZ_DATASET"`
	LogLevel string       `yaml:"log_level" env:"GEOQUIZ_LOG_LEVEL"`
	Game     GameConfig   `yaml:"game"`
	Server   ServerConfig `yaml:"server"`
}

// GameConfig holds the settings a new game starts with. Zero MaxAttempts,
// AlternativesCount and TimerSeconds mean "use the mode default".
type GameConfig struct {
	Mode              quiz.ModeID     `yaml:"mode" env:"GEOQUIZ_MODE"`
	Rounds            int             `yaml:"rounds" env:"GEOQUIZ_ROUNDS"`
	Difficulty        quiz.Difficulty `yaml:"difficulty" env:"GEOQUIZ_DIFFICULTY"`
	MaxAttempts       int             `yaml:"max_attempts"`
	AlternativesCount int             `yaml:"alternatives_count"`
	TimerSeconds      int             `yaml:"timer_seconds" env:"GEOQUIZ_TIMER"`
	AudioEnabled      bool            `yaml:"audio_enabled"`
	MapStyle          string          `yaml:"map_style"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"GEOQUIZ_ADDR"`
	HostKeyPath string        `yaml:"host_key_path" env:"GEOQUIZ_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Settings converts the game section to quiz settings.
func (c Config) Settings() quiz.Settings {
	g := c.Game
	s := quiz.Settings{
		GameMode:     g.Mode,
		Rounds:       g.Rounds,
		Difficulty:   g.Difficulty,
		MaxAttempts:  g.MaxAttempts,
		AudioEnabled: g.AudioEnabled,
		MapStyle:     g.MapStyle,
	}
	if g.AlternativesCount > 0 {
		s.AlternativesCount = quiz.Ptr(g.AlternativesCount)
	}
	if g.TimerSeconds > 0 {
		s.TimerSeconds = quiz.Ptr(g.TimerSeconds)
	}
	return s
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
