package quiz

import (
	"slices"

	"github.com/vovakirdan/geoquiz/internal/rng"
)

// RemainingIDs returns allIDs minus answered, in allIDs order.
func RemainingIDs(allIDs, answered []string) []string {
	done := make(map[string]struct{}, len(answered))
	for _, id := range answered {
		done[id] = struct{}{}
	}

	remaining := make([]string, 0, len(allIDs))
	for _, id := range allIDs {
		if _, ok := done[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	return remaining
}

// SelectNextTarget picks the target for the 0-based round from the ids
// not yet answered, using a generator seeded with RoundSeed(seed, round).
func SelectNextTarget(allIDs, answered []string, seed int64, round int) (string, error) {
	remaining := RemainingIDs(allIDs, answered)
	if len(remaining) == 0 {
		return "", ErrNoTargets
	}
	return rng.PickOne(remaining, rng.New(rng.RoundSeed(seed, round)))
}

// InitialTarget picks the first target of a game: it shuffles a copy of
// allIDs with a generator seeded from seed and returns the first id not
// in answered.
func InitialTarget(allIDs, answered []string, seed int64) (string, error) {
	order := slices.Clone(allIDs)
	rng.Shuffle(order, rng.New(rng.Seed32(seed)))

	for _, id := range order {
		if !slices.Contains(answered, id) {
			return id, nil
		}
	}
	return "", ErrNoTargets
}

// BuildCandidates returns up to count ids including targetID. The other
// ids come from allIDs minus the target and exclude; the target's position
// is randomized too. Same arguments always give the same result.
func BuildCandidates(allIDs []string, targetID string, count int, seed int64, exclude []string) []string {
	if count <= 0 {
		return []string{}
	}

	src := rng.New(rng.CandidateSeed(seed))

	skip := make(map[string]struct{}, len(exclude)+1)
	skip[targetID] = struct{}{}
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	pool := make([]string, 0, len(allIDs))
	for _, id := range allIDs {
		if _, ok := skip[id]; !ok {
			pool = append(pool, id)
		}
	}
	rng.Shuffle(pool, src)

	take := min(count-1, len(pool))
	candidates := make([]string, 0, take+1)
	candidates = append(candidates, targetID)
	candidates = append(candidates, pool[:take]...)
	rng.Shuffle(candidates, src)

	return candidates
}

// NextQuestion selects the target for the round after state.CurrentRound
// and, when candidates > 0, its candidate set. Answered ids are never
// offered as candidates.
func NextQuestion(state State, allIDs []string, seed int64, candidates int) (QuestionData, error) {
	round := state.CurrentRound
	target, err := SelectNextTarget(allIDs, state.AnsweredIDs, seed, round)
	if err != nil {
		return QuestionData{}, err
	}

	return QuestionData{
		TargetID:     target,
		CandidateIDs: BuildCandidates(allIDs, target, candidates, int64(rng.RoundSeed(seed, round)), state.AnsweredIDs),
	}, nil
}

// ScoreGain returns the points for a correct answer given the streak
// before it: one point plus a bonus on every third consecutive hit.
func ScoreGain(streak int) int {
	return 1 + (streak+1)/3
}

// Advance resolves the current round, either because it was answered
// correctly or because its attempts ran out, and moves on to the next
// round or ends the game.
func Advance(state State, correct bool, allIDs []string, seed int64, candidates int) State {
	next := state.Clone()

	if target := state.Target(); target != "" {
		next.AnsweredIDs = append(next.AnsweredIDs, target)
		next.RevealedIDs = append(next.RevealedIDs, target)
	}

	if correct {
		next.Score += ScoreGain(state.Streak)
		next.Streak++
		next.CorrectAnswers++
	} else {
		next.Streak = 0
	}
	next.AttemptsThisRound = 0

	remaining := RemainingIDs(allIDs, next.AnsweredIDs)
	if state.CurrentRound < state.Settings.Rounds && len(remaining) > 0 {
		q, err := NextQuestion(next, allIDs, seed, candidates)
		if err == nil {
			next.CurrentTargetID = &q.TargetID
			next.CandidateIDs = q.CandidateIDs
			next.CurrentRound++
			next.Status = StatusPlaying
			return next
		}
	}

	next.CurrentTargetID = nil
	next.CandidateIDs = []string{}
	next.Status = StatusEnded
	return next
}

// Evaluate applies the attempt rules to a submission already judged by a
// mode. A wrong answer with attempts left keeps the target and resets the
// streak; a wrong answer that uses the last attempt reveals the target and
// advances like a correct one, without scoring.
func Evaluate(state State, correct bool, allIDs []string, seed int64, candidates int) AnswerResult {
	if state.Status != StatusPlaying {
		return Ignored(state)
	}

	correctID := targetRef(state)

	if correct {
		return AnswerResult{
			IsCorrect: true,
			NewState:  Advance(state, true, allIDs, seed, candidates),
			CorrectID: correctID,
		}
	}

	attempts := state.AttemptsThisRound + 1
	if attempts < state.Settings.MaxAttempts {
		next := state.Clone()
		next.AttemptsThisRound = attempts
		next.Streak = 0
		return AnswerResult{
			NewState:  next,
			CorrectID: correctID,
		}
	}

	return AnswerResult{
		NewState:        Advance(state, false, allIDs, seed, candidates),
		CorrectID:       correctID,
		RevealedCorrect: true,
	}
}

// Ignored is the result of answering while no round is in play: the state
// is returned unchanged and the answer counts as not correct.
func Ignored(state State) AnswerResult {
	return AnswerResult{
		NewState:  state.Clone(),
		CorrectID: targetRef(state),
	}
}

func targetRef(state State) *string {
	if state.CurrentTargetID == nil {
		return nil
	}
	return Ptr(*state.CurrentTargetID)
}
