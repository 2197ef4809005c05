// Package replay re-runs a game from its seed and answer list. Games are
// deterministic, so a replay reproduces every intermediate state.
package replay

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/geoquiz/internal/engine"
	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/regions"
)

// Script describes a game to replay.
type Script struct {
	Dataset  string             `yaml:"dataset,omitempty"`
	Seed     int64              `yaml:"seed"`
	Settings quiz.SettingsPatch `yaml:"settings,omitempty"`
	Answers  []string           `yaml:"answers"`
}

// Step is the outcome of one replayed answer. Step 0 is the started game
// and has no answer.
type Step struct {
	Step            int        `yaml:"step"`
	Answer          *string    `yaml:"answer,omitempty"`
	Correct         bool       `yaml:"correct"`
	RevealedCorrect bool       `yaml:"revealed_correct,omitempty"`
	CorrectID       *string    `yaml:"correct_id,omitempty"`
	State           quiz.State `yaml:"state"`
}

// Load reads a YAML script file.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("replay: read %s: %w", path, err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("replay: parse %s: %w", path, err)
	}
	return s, nil
}

// Run plays the script against ds. Answers given after the game ended are
// still recorded; they leave the state unchanged. Region names are matched
// against answers for modes that take typed input; other modes also accept
// a region name in place of its id.
func Run(eng *engine.Engine, ds *regions.Dataset, s Script) ([]Step, error) {
	base := s.Settings.Apply(quiz.Settings{})
	mode := eng.Mode(base)
	if res := mode.ValidateSettings(s.Settings); !res.IsValid {
		return nil, fmt.Errorf("%w: %v", engine.ErrInvalidSettings, res.Errors)
	}

	ids := ds.IDs()
	state, err := eng.StartGame(eng.CreateInitialState(base), ids, s.Seed)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	steps := make([]Step, 0, len(s.Answers)+1)
	steps = append(steps, Step{State: state})

	for i, answer := range s.Answers {
		name := ds.RegionName(state.Target())
		res := eng.Answer(state, resolve(ds, mode, answer), ids, s.Seed, name)
		state = res.NewState

		steps = append(steps, Step{
			Step:            i + 1,
			Answer:          quiz.Ptr(answer),
			Correct:         res.IsCorrect,
			RevealedCorrect: res.RevealedCorrect,
			CorrectID:       res.CorrectID,
			State:           state,
		})
	}
	return steps, nil
}

// resolve maps a region name to its id for modes answered by picking a
// region. Unknown names are passed through and count as wrong.
func resolve(ds *regions.Dataset, mode quiz.Mode, answer string) string {
	if mode.Input() == quiz.InputText {
		return answer
	}
	if _, err := ds.Region(answer); err == nil {
		return answer
	}
	if id, ok := ds.Lookup(answer); ok {
		return id
	}
	return answer
}

// Write encodes steps as a YAML document stream.
func Write(w io.Writer, steps []Step) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, st := range steps {
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("replay: encode step %d: %w", st.Step, err)
		}
	}
	return enc.Close()
}
