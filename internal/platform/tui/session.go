package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/geoquiz/internal/engine"
	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/regions"
	"github.com/vovakirdan/geoquiz/internal/storage"
)

// Session bundles what a player's quiz session runs against.
type Session struct {
	Engine   *engine.Engine
	Dataset  *regions.Dataset
	Store    *storage.Store // nil disables score saving
	Settings quiz.Settings
	Seed     int64 // 0 picks a time-based seed per game
	Player   string
	ID       string
	Logger   *log.Logger
}

func (s Session) validate() error {
	if s.Engine == nil {
		return errors.New("tui: session has no engine")
	}
	if s.Dataset == nil || s.Dataset.Len() == 0 {
		return errors.New("tui: session has no regions")
	}
	return nil
}

func (s Session) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

func (s Session) seed() int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}
