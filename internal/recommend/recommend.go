// Package recommend picks what a learner should practise next from their
// recorded accuracy and recency.
package recommend

import (
	"slices"
	"time"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
	"github.com/shioubi0216/ToneMasterAI/internal/progress"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// AccuracyPolicy flags a kind as weak once it has at least MinAttempts and
// its accuracy is below MaxAccuracy.
type AccuracyPolicy struct {
	Name        string
	MinAttempts int
	MaxAccuracy float64
}

// Weak reports whether st falls under the policy.
func (p AccuracyPolicy) Weak(st progress.KindStats) bool {
	return st.Attempts >= p.MinAttempts && st.Attempts > 0 && st.Accuracy() < p.MaxAccuracy
}

var (
	// PracticeNextPolicy drives Recommend: any attempt counts.
	PracticeNextPolicy = AccuracyPolicy{Name: "practice-next", MinAttempts: 1, MaxAccuracy: 0.70}

	// FocusPolicy drives the focus suggestion, which waits for enough
	// attempts to be meaningful.
	FocusPolicy = AccuracyPolicy{Name: "focus", MinAttempts: 5, MaxAccuracy: 0.70}
)

// StatsSource provides practice counters. *progress.Store implements it.
type StatsSource interface {
	Stats() progress.Stats
}

// Engine recommends practice kinds.
type Engine struct {
	stats StatsSource
	rng   *sampler.Sampler
}

// New returns an Engine reading from stats and breaking random choices
// with rng. A nil rng uses a time-seeded sampler.
func New(stats StatsSource, rng *sampler.Sampler) *Engine {
	if rng == nil {
		rng = sampler.NewRandom()
	}
	return &Engine{stats: stats, rng: rng}
}

// Recommend returns the kind to practise next at difficulty d:
//  1. a random kind whose accuracy is weak under PracticeNextPolicy;
//  2. otherwise the kind practised longest ago, never-practised catalog
//     kinds first, ties broken by catalog order;
//  3. nothing, when no kind has been attempted at d.
func (e *Engine) Recommend(d corpus.Difficulty) (exercise.Kind, bool) {
	recorded := e.stats.Stats()[d]
	if len(recorded) == 0 {
		return "", false
	}
	kinds := candidates(d, recorded)

	var weak []exercise.Kind
	for _, k := range kinds {
		if st, ok := recorded[k]; ok && PracticeNextPolicy.Weak(st) {
			weak = append(weak, k)
		}
	}
	if k, ok := sampler.Choice(e.rng, weak); ok {
		return k, true
	}

	var (
		best     exercise.Kind
		bestTime *time.Time
		found    bool
	)
	for _, k := range kinds {
		last := recorded[k].LastPracticed
		if !found {
			best, bestTime, found = k, last, true
			continue
		}
		if bestTime == nil {
			continue
		}
		if last == nil || last.Before(*bestTime) {
			best, bestTime = k, last
		}
	}
	return best, found
}

// Suggestions are the two hints shown next to the statistics table.
type Suggestions struct {
	// LeastPracticed is the recorded kind with the fewest attempts.
	LeastPracticed    exercise.Kind
	HasLeastPracticed bool

	// Focus is a random kind that is weak under FocusPolicy.
	Focus    exercise.Kind
	HasFocus bool
}

// Suggestions computes the least-practised and focus hints for d.
func (e *Engine) Suggestions(d corpus.Difficulty) Suggestions {
	recorded := e.stats.Stats()[d]
	var out Suggestions
	if len(recorded) == 0 {
		return out
	}

	kinds := candidates(d, recorded)
	var focus []exercise.Kind
	for _, k := range kinds {
		st, ok := recorded[k]
		if !ok {
			continue
		}
		if !out.HasLeastPracticed || st.Attempts < recorded[out.LeastPracticed].Attempts {
			out.LeastPracticed, out.HasLeastPracticed = k, true
		}
		if FocusPolicy.Weak(st) {
			focus = append(focus, k)
		}
	}
	out.Focus, out.HasFocus = sampler.Choice(e.rng, focus)
	return out
}

// candidates lists the catalog kinds for d followed by any other recorded
// kinds in a stable order.
func candidates(d corpus.Difficulty, recorded map[exercise.Kind]progress.KindStats) []exercise.Kind {
	kinds := exercise.ListPracticeKinds(d)
	inCatalog := make(map[exercise.Kind]bool, len(kinds))
	for _, k := range kinds {
		inCatalog[k] = true
	}
	for _, k := range exercise.AllKinds() {
		if _, ok := recorded[k]; ok && !inCatalog[k] {
			kinds = append(kinds, k)
			inCatalog[k] = true
		}
	}
	var unknown []exercise.Kind
	for k := range recorded {
		if !inCatalog[k] {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	return append(kinds, unknown...)
}
