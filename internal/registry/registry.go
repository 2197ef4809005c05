// Package registry maps game mode identifiers to their strategies.
// A Registry is built once at startup and passed to whatever needs mode
// lookup; unknown identifiers fall back to the default mode.
package registry

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/geoquiz/internal/modes"
	"github.com/vovakirdan/geoquiz/internal/quiz"
)

// DefaultMode is the fallback for unknown identifiers.
const DefaultMode = quiz.ModeClassic

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    quiz.ModeID
	Title string
}

// Registry holds mode strategies in registration order.
type Registry struct {
	mu     sync.RWMutex
	modes  map[quiz.ModeID]quiz.Mode
	order  []quiz.ModeID
	logger *log.Logger
}

// New creates an empty registry. A nil logger discards fallback warnings.
func New(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		modes:  make(map[quiz.ModeID]quiz.Mode),
		logger: logger,
	}
}

// Default creates a registry with the built-in modes.
func Default(logger *log.Logger) *Registry {
	r := New(logger)
	r.Register(modes.NewClassic())
	r.Register(modes.NewReverse())
	r.Register(modes.NewMultipleChoice())
	return r
}

// Register adds a mode, replacing any mode with the same ID. A replaced
// mode keeps its original position.
func (r *Registry) Register(m quiz.Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := m.ID()
	if _, exists := r.modes[id]; !exists {
		r.order = append(r.order, id)
	}
	r.modes[id] = m
}

// Get returns the mode registered under id. Unknown ids get the default
// mode, or any registered mode if even the default is missing. Returns
// nil only when the registry is empty.
func (r *Registry) Get(id quiz.ModeID) quiz.Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if m, ok := r.modes[id]; ok {
		return m
	}

	if m, ok := r.modes[DefaultMode]; ok {
		r.logger.Warn("unknown game mode, falling back", "mode", id, "fallback", DefaultMode)
		return m
	}

	if len(r.order) == 0 {
		return nil
	}
	fallback := r.order[0]
	r.logger.Warn("unknown game mode and no default registered", "mode", id, "fallback", fallback)
	return r.modes[fallback]
}

// Exists checks if a mode with the given ID is registered.
func (r *Registry) Exists(id quiz.ModeID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.modes[id]
	return ok
}

// All returns every registered mode in registration order.
func (r *Registry) All() []quiz.Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]quiz.Mode, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.modes[id])
	}
	return result
}

// List returns information about all registered modes in registration
// order.
func (r *Registry) List() []ModeInfo {
	all := r.All()
	result := make([]ModeInfo, 0, len(all))
	for _, m := range all {
		result = append(result, ModeInfo{
			ID:    m.ID(),
			Title: m.Title(),
		})
	}
	return result
}
