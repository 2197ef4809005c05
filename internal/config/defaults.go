package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/geoquiz/internal/quiz"
)

//go:embed defaults/geoquiz.yaml
var defaultYAML []byte

// Default returns the built-in configuration, used when the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Database: "~/.geoquiz/scores.db",
		Dataset:  "continents",
		LogLevel: "info",
		Game: GameConfig{
			Mode:       quiz.ModeClassic,
			Rounds:     10,
			Difficulty: quiz.DifficultyNormal,
			MapStyle:   "default",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
