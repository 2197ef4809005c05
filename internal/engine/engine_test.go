package engine

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/registry"
	"github.com/vovakirdan/geoquiz/internal/rng"
)

var fixtureIDs = []string{"0508", "1302", "0301", "1201", "0601"}

const fixtureSeed int64 = 12345

func newEngine() *Engine {
	return New(registry.Default(nil), nil)
}

func startFixture(t *testing.T, e *Engine, settings quiz.Settings) quiz.State {
	t.Helper()
	state, err := e.StartGame(e.CreateInitialState(settings), fixtureIDs, fixtureSeed)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	return state
}

func wrongAnswer(target string) string {
	for _, id := range fixtureIDs {
		if id != target {
			return id
		}
	}
	return ""
}

func TestCreateInitialState(t *testing.T) {
	e := newEngine()
	state := e.CreateInitialState(quiz.Settings{})

	if state.Status != quiz.StatusIdle {
		t.Errorf("status = %s, want idle", state.Status)
	}
	if state.Score != 0 || state.Streak != 0 || state.CurrentRound != 0 {
		t.Errorf("counters not zero: %+v", state)
	}
	if state.CurrentTargetID != nil {
		t.Errorf("target = %q, want nil", *state.CurrentTargetID)
	}
	if state.Settings.GameMode != quiz.ModeClassic || state.Settings.Rounds != 10 || state.Settings.MaxAttempts != 3 {
		t.Errorf("defaults not applied: %+v", state.Settings)
	}
}

func TestCreateInitialStateModeDefaults(t *testing.T) {
	e := newEngine()
	state := e.CreateInitialState(quiz.Settings{GameMode: quiz.ModeMultipleChoice})

	if state.Settings.MaxAttempts != 1 {
		t.Errorf("max attempts = %d, want 1", state.Settings.MaxAttempts)
	}
	if state.Settings.AlternativesCount == nil || *state.Settings.AlternativesCount != 4 {
		t.Errorf("alternatives = %v, want 4", state.Settings.AlternativesCount)
	}
}

func TestCreateInitialStateUnknownMode(t *testing.T) {
	e := newEngine()
	state := e.CreateInitialState(quiz.Settings{GameMode: "bogus"})

	if state.Settings.GameMode != quiz.ModeClassic {
		t.Errorf("mode = %s, want classic", state.Settings.GameMode)
	}
}

func TestStartGame(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{Rounds: 15, MaxAttempts: 3})

	if state.Status != quiz.StatusPlaying {
		t.Errorf("status = %s, want playing", state.Status)
	}
	if state.CurrentRound != 1 {
		t.Errorf("round = %d, want 1", state.CurrentRound)
	}
	if got := state.Target(); got != "0301" {
		t.Errorf("target = %q, want 0301", got)
	}
	if len(state.CandidateIDs) != 0 {
		t.Errorf("classic without alternatives got candidates %v", state.CandidateIDs)
	}
}

func TestStartGameNoRegions(t *testing.T) {
	e := newEngine()
	_, err := e.StartGame(e.CreateInitialState(quiz.Settings{}), nil, fixtureSeed)
	if !errors.Is(err, quiz.ErrNoTargets) {
		t.Fatalf("err = %v, want ErrNoTargets", err)
	}
}

func TestStartGameResetsPreviousGame(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{Rounds: 2})
	state = e.Answer(state, state.Target(), fixtureIDs, fixtureSeed, "").NewState

	restarted, err := e.StartGame(state, fixtureIDs, fixtureSeed)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if restarted.Score != 0 || len(restarted.AnsweredIDs) != 0 || restarted.CurrentRound != 1 {
		t.Errorf("restart kept progress: %+v", restarted)
	}
}

func TestStartGameMultipleChoiceCandidates(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{GameMode: quiz.ModeMultipleChoice})

	want := []string{"1302", "0301", "0601", "0508"}
	if !reflect.DeepEqual(state.CandidateIDs, want) {
		t.Errorf("candidates = %v, want %v", state.CandidateIDs, want)
	}
}

func TestAnswerCorrect(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{Rounds: 15, MaxAttempts: 3})

	res := e.Answer(state, "0301", fixtureIDs, fixtureSeed, "")
	if !res.IsCorrect {
		t.Fatal("expected correct answer")
	}
	if res.RevealedCorrect {
		t.Error("correct answer should not reveal")
	}
	next := res.NewState
	if next.Score != 1 || next.Streak != 1 || next.CorrectAnswers != 1 {
		t.Errorf("score/streak/correct = %d/%d/%d, want 1/1/1", next.Score, next.Streak, next.CorrectAnswers)
	}
	if next.CurrentRound != 2 {
		t.Errorf("round = %d, want 2", next.CurrentRound)
	}
	if got := next.Target(); got != "1302" {
		t.Errorf("next target = %q, want 1302", got)
	}
}

func TestAnswerExhaustsAttempts(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{Rounds: 15, MaxAttempts: 3})

	for attempt := 1; attempt <= 2; attempt++ {
		res := e.Answer(state, "0508", fixtureIDs, fixtureSeed, "")
		if res.IsCorrect || res.RevealedCorrect {
			t.Fatalf("attempt %d: correct=%v revealed=%v", attempt, res.IsCorrect, res.RevealedCorrect)
		}
		state = res.NewState
		if state.AttemptsThisRound != attempt {
			t.Fatalf("attempts = %d, want %d", state.AttemptsThisRound, attempt)
		}
		if state.Target() != "0301" {
			t.Fatalf("target moved to %q before attempts ran out", state.Target())
		}
	}

	res := e.Answer(state, "0508", fixtureIDs, fixtureSeed, "")
	if !res.RevealedCorrect {
		t.Fatal("expected reveal on last attempt")
	}
	if res.CorrectID == nil || *res.CorrectID != "0301" {
		t.Fatalf("correct id = %v, want 0301", res.CorrectID)
	}
	next := res.NewState
	if next.Score != 0 || next.Streak != 0 {
		t.Errorf("score/streak = %d/%d, want 0/0", next.Score, next.Streak)
	}
	if next.CurrentRound != 2 || next.AttemptsThisRound != 0 {
		t.Errorf("round/attempts = %d/%d, want 2/0", next.CurrentRound, next.AttemptsThisRound)
	}
	if !slices.Contains(next.RevealedIDs, "0301") {
		t.Errorf("revealed = %v, want 0301", next.RevealedIDs)
	}
}

func TestAnswerReverseByName(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{GameMode: quiz.ModeReverseQuiz})

	res := e.Answer(state, "  skillebekk ", fixtureIDs, fixtureSeed, "Skillebekk")
	if !res.IsCorrect {
		t.Fatal("expected name match")
	}
}

func TestPlayThroughCoversEveryRegion(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{Rounds: 15, MaxAttempts: 3})

	seen := map[string]bool{}
	for state.Status == quiz.StatusPlaying {
		target := state.Target()
		if seen[target] {
			t.Fatalf("target %q asked twice", target)
		}
		seen[target] = true
		state = e.Answer(state, target, fixtureIDs, fixtureSeed, "").NewState
	}

	if state.Status != quiz.StatusEnded {
		t.Fatalf("status = %s, want ended", state.Status)
	}
	if len(seen) != len(fixtureIDs) {
		t.Errorf("asked %d regions, want %d", len(seen), len(fixtureIDs))
	}
	if state.CurrentRound != len(fixtureIDs) {
		t.Errorf("round = %d, want %d", state.CurrentRound, len(fixtureIDs))
	}
	// 1 + 1 + 2 + 2 + 2
	if state.Score != 8 {
		t.Errorf("score = %d, want 8", state.Score)
	}
	if state.CurrentTargetID != nil {
		t.Error("ended game still has a target")
	}
}

func TestRoundLimitEndsGame(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{Rounds: 2, MaxAttempts: 1})

	state = e.Answer(state, "nope", fixtureIDs, fixtureSeed, "").NewState
	if state.Status != quiz.StatusPlaying {
		t.Fatalf("status after round 1 = %s", state.Status)
	}
	state = e.Answer(state, "nope", fixtureIDs, fixtureSeed, "").NewState
	if state.Status != quiz.StatusEnded {
		t.Fatalf("status after round 2 = %s, want ended", state.Status)
	}
	if len(state.AnsweredIDs) != 2 {
		t.Errorf("answered = %v, want 2 ids", state.AnsweredIDs)
	}
}

// playScripted drives a game where a generator seeded with policy decides
// whether each answer is right.
func playScripted(e *Engine, settings quiz.Settings, seed int64, policy uint32) []quiz.State {
	state, err := e.StartGame(e.CreateInitialState(settings), fixtureIDs, seed)
	if err != nil {
		return nil
	}
	src := rng.New(policy)
	history := []quiz.State{state}
	for i := 0; state.Status == quiz.StatusPlaying && i < 200; i++ {
		answer := state.Target()
		if src.Next() < 0.5 {
			answer = wrongAnswer(answer)
		}
		state = e.Answer(state, answer, fixtureIDs, seed, "").NewState
		history = append(history, state)
	}
	return history
}

func TestSameSeedSameGame(t *testing.T) {
	e := newEngine()
	settings := quiz.Settings{GameMode: quiz.ModeMultipleChoice, Rounds: 4, MaxAttempts: 2}

	for seed := int64(0); seed < 20; seed++ {
		a := playScripted(e, settings, seed, 7)
		b := playScripted(e, settings, seed, 7)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %d: replays diverged", seed)
		}
	}
}

func TestGameInvariants(t *testing.T) {
	e := newEngine()

	for seed := int64(0); seed < 30; seed++ {
		for _, mode := range []quiz.ModeID{quiz.ModeClassic, quiz.ModeMultipleChoice} {
			settings := quiz.Settings{GameMode: mode, Rounds: 15, MaxAttempts: 2}
			history := playScripted(e, settings, seed, uint32(seed)+1)

			last := history[len(history)-1]
			if last.Status != quiz.StatusEnded {
				t.Fatalf("seed %d %s: game did not end", seed, mode)
			}

			for i := 1; i < len(history); i++ {
				prev, cur := history[i-1], history[i]
				if cur.Score < prev.Score {
					t.Fatalf("seed %d %s: score dropped %d -> %d", seed, mode, prev.Score, cur.Score)
				}
				if cur.CurrentRound < prev.CurrentRound {
					t.Fatalf("seed %d %s: round dropped", seed, mode)
				}
				if cur.CorrectAnswers > len(cur.AnsweredIDs) {
					t.Fatalf("seed %d %s: %d correct but %d answered", seed, mode, cur.CorrectAnswers, len(cur.AnsweredIDs))
				}
				if target := cur.Target(); target != "" && slices.Contains(cur.AnsweredIDs, target) {
					t.Fatalf("seed %d %s: target %q already answered", seed, mode, target)
				}
				for _, c := range cur.CandidateIDs {
					if slices.Contains(cur.AnsweredIDs, c) {
						t.Fatalf("seed %d %s: candidate %q already answered", seed, mode, c)
					}
				}
				if cur.Status == quiz.StatusPlaying && len(cur.CandidateIDs) > 0 && !slices.Contains(cur.CandidateIDs, cur.Target()) {
					t.Fatalf("seed %d %s: target missing from candidates", seed, mode)
				}
			}

			answered := slices.Clone(last.AnsweredIDs)
			slices.Sort(answered)
			if len(slices.Compact(answered)) != len(last.AnsweredIDs) {
				t.Fatalf("seed %d %s: repeated answered ids %v", seed, mode, last.AnsweredIDs)
			}
		}
	}
}

func TestAnswerWhileNotPlaying(t *testing.T) {
	e := newEngine()
	idle := e.CreateInitialState(quiz.Settings{})

	res := e.Answer(idle, "0301", fixtureIDs, fixtureSeed, "")
	if res.IsCorrect || !reflect.DeepEqual(res.NewState, idle) {
		t.Errorf("idle answer changed state: %+v", res)
	}
}

func TestPauseResume(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{})

	paused := e.Pause(state)
	if paused.Status != quiz.StatusPaused {
		t.Fatalf("status = %s, want paused", paused.Status)
	}
	res := e.Answer(paused, paused.Target(), fixtureIDs, fixtureSeed, "")
	if !reflect.DeepEqual(res.NewState, paused) {
		t.Error("answer while paused changed state")
	}

	resumed := e.Resume(paused)
	if !reflect.DeepEqual(resumed, state) {
		t.Error("resume did not restore the playing state")
	}

	idle := e.CreateInitialState(quiz.Settings{})
	if got := e.Resume(idle).Status; got != quiz.StatusIdle {
		t.Errorf("resume of idle game = %s", got)
	}
}

func TestUpdateSettingsRejectsInvalid(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{})

	got, err := e.UpdateSettings(state, quiz.SettingsPatch{Rounds: quiz.Ptr(0)}, fixtureIDs, fixtureSeed)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("err = %v, want ErrInvalidSettings", err)
	}
	if !reflect.DeepEqual(got, state) {
		t.Error("rejected update changed state")
	}
}

func TestUpdateSettingsSwitchMode(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{Rounds: 15})
	state = e.Answer(state, state.Target(), fixtureIDs, fixtureSeed, "").NewState

	mode := quiz.ModeMultipleChoice
	next, err := e.UpdateSettings(state, quiz.SettingsPatch{GameMode: &mode}, fixtureIDs, fixtureSeed)
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	if next.Settings.GameMode != quiz.ModeMultipleChoice {
		t.Errorf("mode = %s", next.Settings.GameMode)
	}
	if next.Settings.Rounds != 15 {
		t.Errorf("rounds = %d, user choice lost", next.Settings.Rounds)
	}
	if next.Settings.AlternativesCount == nil || *next.Settings.AlternativesCount != 4 {
		t.Errorf("alternatives = %v, want 4", next.Settings.AlternativesCount)
	}
	if len(next.CandidateIDs) != 4 || !slices.Contains(next.CandidateIDs, next.Target()) {
		t.Errorf("candidates = %v for target %q", next.CandidateIDs, next.Target())
	}
	for _, id := range next.AnsweredIDs {
		if slices.Contains(next.CandidateIDs, id) {
			t.Errorf("answered id %q offered as candidate", id)
		}
	}
	if next.Target() != state.Target() || next.Score != state.Score {
		t.Error("mode switch changed game progress")
	}
}

func TestMapConfigDelegates(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{GameMode: quiz.ModeMultipleChoice})

	cfg := e.MapConfig(state, nil, fixtureSeed)
	if cfg.ZoomEnabled || !cfg.ShowCandidates {
		t.Errorf("multiple choice map config = %+v", cfg)
	}
}

func TestQuestionDoesNotRepeat(t *testing.T) {
	e := newEngine()
	state := startFixture(t, e, quiz.Settings{})

	q, err := e.Question(state, fixtureIDs, fixtureSeed)
	if err != nil {
		t.Fatalf("Question: %v", err)
	}
	if slices.Contains(state.AnsweredIDs, q.TargetID) {
		t.Errorf("question target %q already answered", q.TargetID)
	}
}
