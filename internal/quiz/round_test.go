package quiz

import (
	"errors"
	"slices"
	"testing"
)

var fixtureIDs = []string{"0508", "1302", "0301", "1201", "0601"}

func playingState(target string, rounds, maxAttempts int) State {
	return State{
		Status:          StatusPlaying,
		CurrentRound:    1,
		CurrentTargetID: Ptr(target),
		AnsweredIDs:     []string{},
		RevealedIDs:     []string{},
		CandidateIDs:    []string{},
		Settings: Settings{
			GameMode:    ModeClassic,
			Rounds:      rounds,
			Difficulty:  DifficultyNormal,
			MaxAttempts: maxAttempts,
		},
	}
}

func TestInitialTargetFixture(t *testing.T) {
	got, err := InitialTarget(fixtureIDs, nil, 12345)
	if err != nil {
		t.Fatalf("InitialTarget() error: %v", err)
	}
	if got != "0301" {
		t.Errorf("InitialTarget() = %q, want %q", got, "0301")
	}

	// The shuffle order is fixed by the seed, so skipping answered ids
	// moves to the next id in that order.
	if _, err := InitialTarget(fixtureIDs, fixtureIDs, 12345); !errors.Is(err, ErrNoTargets) {
		t.Errorf("InitialTarget(all answered) error = %v, want ErrNoTargets", err)
	}
}

func TestSelectNextTarget(t *testing.T) {
	got, err := SelectNextTarget(fixtureIDs, []string{"0301"}, 12345, 1)
	if err != nil {
		t.Fatalf("SelectNextTarget() error: %v", err)
	}
	if got != "1302" {
		t.Errorf("SelectNextTarget() = %q, want %q", got, "1302")
	}

	if _, err := SelectNextTarget(fixtureIDs, fixtureIDs, 12345, 5); !errors.Is(err, ErrNoTargets) {
		t.Errorf("SelectNextTarget(all answered) error = %v, want ErrNoTargets", err)
	}
}

func TestBuildCandidates(t *testing.T) {
	got := BuildCandidates(fixtureIDs, "0301", 4, 12345, nil)
	want := []string{"1302", "0301", "0601", "0508"}
	if !slices.Equal(got, want) {
		t.Errorf("BuildCandidates() = %v, want %v", got, want)
	}

	again := BuildCandidates(fixtureIDs, "0301", 4, 12345, nil)
	if !slices.Equal(got, again) {
		t.Errorf("BuildCandidates() not deterministic: %v vs %v", got, again)
	}

	seen := make(map[string]bool)
	for _, id := range got {
		if seen[id] {
			t.Errorf("duplicate candidate %q in %v", id, got)
		}
		seen[id] = true
	}
	if !seen["0301"] {
		t.Errorf("target missing from candidates %v", got)
	}
}

func TestBuildCandidatesExclusions(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		exclude []string
		wantLen int
	}{
		{"enough ids", 3, nil, 3},
		{"excluded ids never offered", 4, []string{"0508", "1201"}, 3},
		{"more than available", 10, nil, 5},
		{"single candidate is the target", 1, nil, 1},
		{"disabled", 0, nil, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildCandidates(fixtureIDs, "1302", tc.count, 99, tc.exclude)
			if len(got) != tc.wantLen {
				t.Fatalf("len = %d, want %d (%v)", len(got), tc.wantLen, got)
			}
			for _, id := range got {
				if slices.Contains(tc.exclude, id) {
					t.Errorf("excluded id %q offered", id)
				}
			}
			if tc.wantLen > 0 && !slices.Contains(got, "1302") {
				t.Errorf("target missing from %v", got)
			}
		})
	}
}

func TestScoreGain(t *testing.T) {
	tests := []struct {
		streak int
		want   int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 2},
		{5, 3},
	}

	for _, tc := range tests {
		if got := ScoreGain(tc.streak); got != tc.want {
			t.Errorf("ScoreGain(%d) = %d, want %d", tc.streak, got, tc.want)
		}
	}
}

func TestEvaluateCorrect(t *testing.T) {
	state := playingState("0301", 15, 3)
	state.AttemptsThisRound = 2

	res := Evaluate(state, true, fixtureIDs, 12345, 0)
	if !res.IsCorrect || res.RevealedCorrect {
		t.Errorf("IsCorrect=%v RevealedCorrect=%v, want true/false", res.IsCorrect, res.RevealedCorrect)
	}
	if res.CorrectID == nil || *res.CorrectID != "0301" {
		t.Errorf("CorrectID = %v, want 0301", res.CorrectID)
	}

	next := res.NewState
	if next.CurrentRound != 2 {
		t.Errorf("CurrentRound = %d, want 2", next.CurrentRound)
	}
	if next.Score != 1 || next.Streak != 1 || next.CorrectAnswers != 1 {
		t.Errorf("score/streak/correct = %d/%d/%d, want 1/1/1", next.Score, next.Streak, next.CorrectAnswers)
	}
	if next.AttemptsThisRound != 0 {
		t.Errorf("AttemptsThisRound = %d, want 0", next.AttemptsThisRound)
	}
	if !slices.Equal(next.AnsweredIDs, []string{"0301"}) || !slices.Equal(next.RevealedIDs, []string{"0301"}) {
		t.Errorf("answered=%v revealed=%v", next.AnsweredIDs, next.RevealedIDs)
	}
	if next.Target() != "1302" {
		t.Errorf("next target = %q, want 1302", next.Target())
	}

	// Input untouched.
	if len(state.AnsweredIDs) != 0 || state.Score != 0 {
		t.Error("Evaluate mutated its input state")
	}
}

func TestEvaluateAttemptExhaustion(t *testing.T) {
	state := playingState("0301", 15, 3)
	state.Streak = 4

	for i := 1; i < 3; i++ {
		res := Evaluate(state, false, fixtureIDs, 12345, 0)
		if res.IsCorrect || res.RevealedCorrect {
			t.Fatalf("attempt %d: IsCorrect=%v RevealedCorrect=%v", i, res.IsCorrect, res.RevealedCorrect)
		}
		state = res.NewState
		if state.AttemptsThisRound != i {
			t.Errorf("attempt %d: AttemptsThisRound = %d", i, state.AttemptsThisRound)
		}
		if state.Streak != 0 {
			t.Errorf("attempt %d: Streak = %d, want 0", i, state.Streak)
		}
		if state.Target() != "0301" || state.CurrentRound != 1 {
			t.Errorf("attempt %d: target/round changed to %q/%d", i, state.Target(), state.CurrentRound)
		}
	}

	res := Evaluate(state, false, fixtureIDs, 12345, 0)
	if res.IsCorrect || !res.RevealedCorrect {
		t.Fatalf("last attempt: IsCorrect=%v RevealedCorrect=%v", res.IsCorrect, res.RevealedCorrect)
	}
	if res.CorrectID == nil || *res.CorrectID != "0301" {
		t.Errorf("CorrectID = %v, want 0301", res.CorrectID)
	}
	if res.NewState.CurrentRound != 2 || res.NewState.Score != 0 {
		t.Errorf("round/score = %d/%d, want 2/0", res.NewState.CurrentRound, res.NewState.Score)
	}
	if res.NewState.AttemptsThisRound != 0 {
		t.Errorf("AttemptsThisRound = %d, want 0", res.NewState.AttemptsThisRound)
	}
}

func TestEvaluateEndsGame(t *testing.T) {
	state := playingState("0301", 1, 3)
	state.CandidateIDs = []string{"0301", "0508"}

	res := Evaluate(state, true, fixtureIDs, 12345, 2)
	next := res.NewState
	if next.Status != StatusEnded {
		t.Errorf("Status = %q, want ended", next.Status)
	}
	if next.CurrentTargetID != nil {
		t.Errorf("CurrentTargetID = %q, want nil", *next.CurrentTargetID)
	}
	if next.CurrentRound != 1 {
		t.Errorf("CurrentRound = %d, want 1", next.CurrentRound)
	}
	if len(next.CandidateIDs) != 0 {
		t.Errorf("CandidateIDs = %v, want empty", next.CandidateIDs)
	}
}

func TestEvaluateNotPlaying(t *testing.T) {
	for _, status := range []Status{StatusIdle, StatusPaused, StatusEnded} {
		state := playingState("0301", 5, 3)
		state.Status = status

		res := Evaluate(state, true, fixtureIDs, 1, 0)
		if res.IsCorrect {
			t.Errorf("%s: IsCorrect = true", status)
		}
		if res.NewState.Status != status || res.NewState.Score != 0 {
			t.Errorf("%s: state changed", status)
		}
	}
}

func TestAdvanceCandidates(t *testing.T) {
	state := playingState("0301", 15, 3)

	next := Advance(state, true, fixtureIDs, 12345, 3)
	if len(next.CandidateIDs) != 3 {
		t.Fatalf("CandidateIDs = %v, want 3 ids", next.CandidateIDs)
	}
	if !slices.Contains(next.CandidateIDs, next.Target()) {
		t.Errorf("target %q missing from candidates %v", next.Target(), next.CandidateIDs)
	}
	if slices.Contains(next.CandidateIDs, "0301") {
		t.Errorf("answered id offered as candidate: %v", next.CandidateIDs)
	}
}

func TestRemainingIDs(t *testing.T) {
	got := RemainingIDs(fixtureIDs, []string{"1302", "0601"})
	want := []string{"0508", "0301", "1201"}
	if !slices.Equal(got, want) {
		t.Errorf("RemainingIDs() = %v, want %v", got, want)
	}
}
