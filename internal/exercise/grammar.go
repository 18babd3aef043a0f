package exercise

import (
	"fmt"
	"strings"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// particleSlot is a token whose trailing particle can be blanked.
type particleSlot struct {
	index    int
	particle string
}

func particleSlots(toks []string) []particleSlot {
	var slots []particleSlot
	for i, tok := range toks {
		for _, p := range corpus.BlankParticles {
			if strings.HasSuffix(tok, p) {
				slots = append(slots, particleSlot{i, p})
				break
			}
		}
	}
	return slots
}

func (g *Generator) grammarApplication(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	pattern, ok := sampler.Choice(g.rng, g.corpus.Grammar)
	if !ok {
		return g.verbConjugation(d, ctx)
	}
	example, ok := sampler.Choice(g.rng, pattern.Examples)
	if !ok {
		return g.patternRecognition(pattern)
	}
	toks := g.segment(example)
	slot, ok := sampler.Choice(g.rng, particleSlots(toks))
	if !ok {
		return g.patternRecognition(pattern)
	}

	blanked := append([]string(nil), toks...)
	blanked[slot.index] = strings.TrimSuffix(toks[slot.index], slot.particle) + Blank
	question := joinTokens(example, blanked)

	return &Exercise{
		Kind:         GrammarApplication,
		Format:       FormatMultipleChoice,
		Question:     fmt.Sprintf("Fill in the blank: %s", question),
		Options:      buildOptions(g.rng, slot.particle, corpus.Particles),
		Answer:       slot.particle,
		Explanation:  fmt.Sprintf("The pattern '%s' requires '%s' in this context. %s", pattern.Template, slot.particle, pattern.Description),
		Content:      example,
		JapaneseText: question,
		FullSentence: example,
		Pattern:      pattern.Template,
	}, nil
}

// patternRecognition asks which example follows a pattern, using examples
// of the other patterns as distractors.
func (g *Generator) patternRecognition(pattern corpus.GrammarPattern) (*Exercise, error) {
	if len(pattern.Examples) == 0 {
		return g.defaultExercise(corpus.Advanced), nil
	}
	var others []string
	for _, p := range g.corpus.Grammar {
		if p.ID != pattern.ID {
			others = append(others, p.Examples...)
		}
	}
	answer := pattern.Examples[0]
	return &Exercise{
		Kind:        GrammarApplication,
		Format:      FormatMultipleChoice,
		Question:    fmt.Sprintf("Which of these examples uses the pattern: %s?", pattern.Template),
		Options:     buildOptions(g.rng, answer, others),
		Answer:      answer,
		Explanation: fmt.Sprintf("The pattern '%s' means: %s", pattern.Template, pattern.Description),
		Content:     answer,
		Pattern:     pattern.Template,
	}, nil
}
