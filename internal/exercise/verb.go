package exercise

import (
	"fmt"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// sameVerbDistractors and sameFormDistractors bound how many options come
// from each source before padding.
const (
	sameVerbDistractors = 2
	sameFormDistractors = 2
)

func (g *Generator) verbConjugation(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	verb, ok := sampler.Choice(g.rng, g.corpus.Verbs)
	if !ok {
		return g.simpleVocabulary(d, ctx)
	}
	form, _ := sampler.Choice(g.rng, corpus.VerbForms)
	return g.conjugation(verb, form), nil
}

// ConjugationFor builds the conjugation exercise for a given dictionary
// form and inflection.
func (g *Generator) ConjugationFor(dictionary string, form corpus.VerbForm) (*Exercise, error) {
	verb, ok := g.corpus.Verb(dictionary)
	if !ok {
		return nil, fmt.Errorf("unknown verb %q", dictionary)
	}
	if _, ok := verb.Forms[form]; !ok {
		return nil, fmt.Errorf("verb %q has no %q form", dictionary, form)
	}
	ex := g.conjugation(verb, form)
	ex.Difficulty = corpus.Advanced
	return ex, nil
}

func (g *Generator) conjugation(verb corpus.Verb, form corpus.VerbForm) *Exercise {
	correct := verb.Forms[form]

	var ownForms []string
	for _, f := range corpus.VerbForms {
		if f != form && verb.Forms[f] != "" {
			ownForms = append(ownForms, verb.Forms[f])
		}
	}
	var sameForm, all []string
	for _, v := range g.corpus.Verbs {
		if v.Dictionary != verb.Dictionary && v.Forms[form] != "" {
			sameForm = append(sameForm, v.Forms[form])
		}
		for _, f := range corpus.VerbForms {
			if v.Forms[f] != "" {
				all = append(all, v.Forms[f])
			}
		}
	}
	primary := append(
		sampler.Sample(g.rng, ownForms, sameVerbDistractors),
		sampler.Sample(g.rng, sameForm, sameFormDistractors)...,
	)

	return &Exercise{
		Kind:         VerbConjugation,
		Format:       FormatMultipleChoice,
		Question:     fmt.Sprintf("What is the %s form of '%s' (%s)?", form.Description(), verb.Dictionary, verb.Meaning),
		Options:      buildOptions(g.rng, correct, primary, all),
		Answer:       correct,
		Explanation:  fmt.Sprintf("The %s form of '%s' (%s) is '%s'", form.Description(), verb.Dictionary, verb.Meaning, correct),
		Content:      verb.Dictionary + ":" + string(form),
		JapaneseText: verb.Dictionary,
		VerbType:     verb.Type,
	}
}
