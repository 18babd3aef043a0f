package exercise

import (
	"fmt"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// keyVocabularySize is how many leading tokens a speech drill highlights.
const keyVocabularySize = 3

const defaultPronunciationGuidance = "Pay attention to intonation and rhythm"

func (g *Generator) sentenceCreation(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	sc, ok := sampler.Choice(g.rng, g.corpus.Scenarios)
	if !ok {
		return g.grammarApplication(d, ctx)
	}
	return &Exercise{
		Kind:     SentenceCreation,
		Format:   FormatFreeText,
		Question: fmt.Sprintf("Write a few sentences in Japanese: %s", sc.Prompt),
		Explanation: fmt.Sprintf("Use at least %d of the suggested words. Example: %s (%s)",
			PassingVocabularyHits, sc.Example, sc.Translation),
		Content:     sc.Prompt,
		Scenario:    sc.Prompt,
		Vocabulary:  append([]string(nil), sc.Vocabulary...),
		Example:     sc.Example,
		Translation: sc.Translation,
	}, nil
}

// speechPractice presents a sentence to read aloud; the learner grades
// themselves.
func (g *Generator) speechPractice(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	if s, ok := sampler.Choice(g.rng, g.corpus.Sentences.Tier(corpus.Advanced)); ok {
		return g.speechExercise(s.Text, s.Translation, defaultPronunciationGuidance), nil
	}
	p, ok := sampler.Choice(g.rng, g.corpus.SpeechPhrases)
	if !ok {
		return g.sentenceCreation(d, ctx)
	}
	return g.speechExercise(p.Text, p.Translation, p.Guidance), nil
}

func (g *Generator) speechExercise(text, translation, guidance string) *Exercise {
	toks := g.segment(text)
	if len(toks) > keyVocabularySize {
		toks = toks[:keyVocabularySize]
	}
	return &Exercise{
		Kind:                  SpeechPractice,
		Format:                FormatSelfAssessment,
		Question:              "Try to pronounce this sentence:",
		Explanation:           fmt.Sprintf("Rate your pronunciation from 1 to 5; %d or higher counts as a pass.", PassingConfidence),
		Content:               text,
		JapaneseText:          text,
		AudioText:             text,
		Translation:           translation,
		PronunciationGuidance: guidance,
		KeyVocabulary:         append([]string(nil), toks...),
	}
}
