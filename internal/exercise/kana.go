package exercise

import (
	"fmt"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// SpeedChallengeSeconds is the answer window for speed challenges.
const SpeedChallengeSeconds = 10

func (g *Generator) kanaRecognition(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	table, err := g.corpus.Kana(ctx.Script)
	if err != nil {
		return nil, err
	}
	target, ok := sampler.Choice(g.rng, table)
	if !ok {
		return g.defaultExercise(d), nil
	}
	return &Exercise{
		Kind:        KanaRecognition,
		Format:      FormatMultipleChoice,
		Question:    fmt.Sprintf("Select the correct %s for: %s", ctx.Script, target.Romaji),
		Options:     buildOptions(g.rng, target.Symbol, table.Symbols()),
		Answer:      target.Symbol,
		Explanation: fmt.Sprintf("The %s character for '%s' is '%s'", ctx.Script, target.Romaji, target.Symbol),
		Content:     target.Symbol,
	}, nil
}

// kanaPair links the same phonetic key across both scripts.
type kanaPair struct {
	key      string
	hiragana string
	katakana string
}

func (g *Generator) kanaPairs() []kanaPair {
	var pairs []kanaPair
	for _, h := range g.corpus.Hiragana {
		if k, ok := g.corpus.Katakana.Lookup(h.Key); ok {
			pairs = append(pairs, kanaPair{key: h.Key, hiragana: h.Symbol, katakana: k.Symbol})
		}
	}
	return pairs
}

func (g *Generator) kanaMatching(d corpus.Difficulty, _ Context) (*Exercise, error) {
	pairs := g.kanaPairs()
	pair, ok := sampler.Choice(g.rng, pairs)
	if !ok {
		return g.defaultExercise(d), nil
	}
	return g.matchingExercise(pair, pairs), nil
}

// MatchingFor builds the hiragana→katakana matching exercise for a specific
// phonetic key, e.g. "ka".
func (g *Generator) MatchingFor(key string) (*Exercise, error) {
	pairs := g.kanaPairs()
	for _, p := range pairs {
		if p.key == key {
			ex := g.matchingExercise(p, pairs)
			ex.Difficulty = corpus.Beginner
			return ex, nil
		}
	}
	return nil, fmt.Errorf("no kana pair for key %q", key)
}

func (g *Generator) matchingExercise(pair kanaPair, pairs []kanaPair) *Exercise {
	others := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.key != pair.key {
			others = append(others, p.katakana)
		}
	}
	return &Exercise{
		Kind:        KanaMatching,
		Format:      FormatMultipleChoice,
		Question:    fmt.Sprintf("Match the hiragana '%s' with its katakana equivalent", pair.hiragana),
		Options:     buildOptions(g.rng, pair.katakana, others),
		Answer:      pair.katakana,
		Explanation: fmt.Sprintf("The hiragana '%s' and katakana '%s' both represent '%s'", pair.hiragana, pair.katakana, pair.key),
		Content:     pair.hiragana,
	}
}

// speedChallenge asks for the reading of a random kana from either script.
func (g *Generator) speedChallenge(d corpus.Difficulty, _ Context) (*Exercise, error) {
	script, _ := sampler.Choice(g.rng, []corpus.Script{corpus.Hiragana, corpus.Katakana})
	table, err := g.corpus.Kana(script)
	if err != nil {
		return nil, err
	}
	target, ok := sampler.Choice(g.rng, table)
	if !ok {
		return g.defaultExercise(d), nil
	}
	return &Exercise{
		Kind:          SpeedChallenge,
		Format:        FormatMultipleChoice,
		Question:      fmt.Sprintf("Quick! What is the reading of '%s'?", target.Symbol),
		Options:       buildOptions(g.rng, target.Romaji, table.Romaji()),
		Answer:        target.Romaji,
		Explanation:   fmt.Sprintf("'%s' is read '%s'", target.Symbol, target.Romaji),
		Content:       target.Symbol,
		JapaneseText:  target.Symbol,
		TimeLimitSecs: SpeedChallengeSeconds,
	}, nil
}

func (g *Generator) specialKanaCombinations(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	table, err := g.corpus.Combos(ctx.Script)
	if err != nil {
		return nil, err
	}
	target, ok := sampler.Choice(g.rng, table)
	if !ok {
		return g.kanaRecognition(d, ctx)
	}
	return &Exercise{
		Kind:         SpecialKanaCombinations,
		Format:       FormatMultipleChoice,
		Question:     fmt.Sprintf("How do you read the combination '%s'?", target.Symbol),
		Options:      buildOptions(g.rng, target.Romaji, table.Romaji()),
		Answer:       target.Romaji,
		Explanation:  fmt.Sprintf("'%s' combines two kana into the single sound '%s'", target.Symbol, target.Romaji),
		Content:      target.Symbol,
		JapaneseText: target.Symbol,
	}, nil
}
