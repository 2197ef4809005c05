// Package modes implements the built-in game modes: classic click-to-find,
// reverse quiz (type the name) and multiple choice.
package modes

import (
	"github.com/paulmach/orb"

	"github.com/vovakirdan/geoquiz/internal/geo"
	"github.com/vovakirdan/geoquiz/internal/quiz"
	"github.com/vovakirdan/geoquiz/internal/rng"
)

// focusTuning holds the per-difficulty viewport constants of a mode.
type focusTuning struct {
	padding map[quiz.Difficulty]float64
	shift   map[quiz.Difficulty]float64
}

const (
	// minFocusSpan is the smallest focus box side in degrees.
	minFocusSpan = 0.05

	// largeFeatureDamping scales jitter for continent-sized features.
	largeFeatureDamping = 0.3

	// Fixed box used when a bound wraps the anti-meridian.
	wrapBoxLon = 20.0
	wrapBoxLat = 10.0

	// reverseDownShift moves the focus center south by this share of the
	// box height so the input box at the bottom does not hide the target.
	reverseDownShift = 0.2

	defaultPadding = 2.0
)

func (t focusTuning) paddingFor(d quiz.Difficulty) float64 {
	if p, ok := t.padding[d]; ok {
		return p
	}
	return defaultPadding
}

func (t focusTuning) shiftFor(d quiz.Difficulty) float64 {
	return t.shift[d]
}

// targetBox returns the padded focus box for a region, or false when the
// region has no geometry. Bounds that wrap the anti-meridian collapse to a
// fixed box around the centroid instead of being padded.
func targetBox(geom quiz.Geometry, id string, padding float64) (orb.Bound, bool) {
	if geom == nil || id == "" {
		return orb.Bound{}, false
	}
	b, ok := geom.Bound(id)
	if !ok {
		return orb.Bound{}, false
	}

	if geo.CrossesAntimeridian(b) {
		c, ok := geom.Centroid(id)
		if !ok {
			c = b.Center()
		}
		return geo.BoxAround(c, wrapBoxLon, wrapBoxLat), true
	}

	return geo.Pad(b, padding, minFocusSpan), true
}

// jitter shifts a padded box by a random share of its slack, so the target
// is not always dead center but stays inside the view. The generator is
// seeded per round, so replaying a seed replays the jitter.
func jitter(box, target orb.Bound, shift float64, seed int64, round int) orb.Bound {
	if shift <= 0 {
		return box
	}
	if geo.IsLarge(target) {
		shift *= largeFeatureDamping
	}

	slackX := (geo.Width(box) - geo.Width(target)) / 2
	slackY := (geo.Height(box) - geo.Height(target)) / 2
	if slackX < 0 {
		slackX = 0
	}
	if slackY < 0 {
		slackY = 0
	}

	src := rng.New(rng.FocusSeed(seed, round))
	dx := (src.Next()*2 - 1) * shift * slackX
	dy := (src.Next()*2 - 1) * shift * slackY

	return geo.Shift(box, dx, dy)
}
