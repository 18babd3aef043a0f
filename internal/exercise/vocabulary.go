package exercise

import (
	"fmt"
	"strings"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// categorySize is how many words of each side a classification exercise
// shows.
const categorySize = 3

// pickWord chooses a non-empty category and then an entry in it.
func (g *Generator) pickWord() (corpus.Category, corpus.VocabularyEntry, bool) {
	var nonEmpty []corpus.Category
	for _, c := range g.corpus.Vocabulary {
		if len(c.Entries) > 0 {
			nonEmpty = append(nonEmpty, c)
		}
	}
	cat, ok := sampler.Choice(g.rng, nonEmpty)
	if !ok {
		return corpus.Category{}, corpus.VocabularyEntry{}, false
	}
	entry, _ := sampler.Choice(g.rng, cat.Entries)
	return cat, entry, true
}

func (g *Generator) simpleVocabulary(d corpus.Difficulty, _ Context) (*Exercise, error) {
	cat, entry, ok := g.pickWord()
	if !ok {
		return g.defaultExercise(d), nil
	}
	return &Exercise{
		Kind:        SimpleVocabulary,
		Format:      FormatMultipleChoice,
		Question:    fmt.Sprintf("What does '%s' mean?", entry.Word),
		Options:     buildOptions(g.rng, entry.Meaning, cat.Meanings(), g.corpus.Vocabulary.Meanings()),
		Answer:      entry.Meaning,
		Explanation: fmt.Sprintf("'%s' means '%s' in English", entry.Word, entry.Meaning),
		Content:     entry.Word,
		ImageRef:    entry.ImageRef,
		Category:    cat.Name,
	}, nil
}

func (g *Generator) wordImageMatching(d corpus.Difficulty, _ Context) (*Exercise, error) {
	cat, entry, ok := g.pickWord()
	if !ok || entry.ImageRef == "" {
		return g.simpleVocabulary(d, Context{})
	}
	var all []string
	for _, e := range g.corpus.Vocabulary.Entries() {
		all = append(all, e.Word)
	}
	return &Exercise{
		Kind:        WordImageMatching,
		Format:      FormatMultipleChoice,
		Question:    fmt.Sprintf("Which word matches the picture of a %s?", entry.Meaning),
		Options:     buildOptions(g.rng, entry.Word, cat.Words(), all),
		Answer:      entry.Word,
		Explanation: fmt.Sprintf("The picture shows '%s', which is '%s' in Japanese", entry.Meaning, entry.Word),
		Content:     entry.Word,
		ImageRef:    entry.ImageRef,
		Category:    cat.Name,
	}, nil
}

// listenAndChoose is the listening form of simpleVocabulary: the word is
// voiced rather than read, and distractors come from the whole vocabulary.
func (g *Generator) listenAndChoose(d corpus.Difficulty, _ Context) (*Exercise, error) {
	cat, entry, ok := g.pickWord()
	if !ok {
		return g.defaultExercise(d), nil
	}
	return &Exercise{
		Kind:         ListenAndChoose,
		Format:       FormatMultipleChoice,
		Question:     "Listen and select the meaning of the word",
		Options:      buildOptions(g.rng, entry.Meaning, g.corpus.Vocabulary.Meanings()),
		Answer:       entry.Meaning,
		Explanation:  fmt.Sprintf("The word '%s' means '%s' in English", entry.Word, entry.Meaning),
		Content:      entry.Word,
		JapaneseText: entry.Word,
		AudioText:    entry.Word,
		Category:     cat.Name,
	}, nil
}

func (g *Generator) commonPhrases(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	phrase, ok := sampler.Choice(g.rng, g.corpus.Phrases)
	if !ok {
		return g.simpleVocabulary(d, ctx)
	}
	meanings := make([]string, len(g.corpus.Phrases))
	for i, p := range g.corpus.Phrases {
		meanings[i] = p.Meaning
	}
	return &Exercise{
		Kind:         CommonPhrases,
		Format:       FormatMultipleChoice,
		Question:     fmt.Sprintf("What does '%s' mean?", phrase.Text),
		Options:      buildOptions(g.rng, phrase.Meaning, meanings, g.corpus.Vocabulary.Meanings()),
		Answer:       phrase.Meaning,
		Explanation:  fmt.Sprintf("'%s' means '%s'", phrase.Text, phrase.Meaning),
		Content:      phrase.Text,
		JapaneseText: phrase.Text,
		AudioText:    phrase.Text,
	}, nil
}

// vocabularyCategories asks the learner to tick every word of a category
// among words drawn from other categories.
func (g *Generator) vocabularyCategories(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	var usable []corpus.Category
	for _, c := range g.corpus.Vocabulary {
		if len(c.Entries) > 0 && len(g.corpus.Vocabulary.WordsOutside(c.Name)) > 0 {
			usable = append(usable, c)
		}
	}
	cat, ok := sampler.Choice(g.rng, usable)
	if !ok {
		return g.simpleVocabulary(d, ctx)
	}

	words := cat.Words()
	inCategory := make(map[string]bool, len(words))
	for _, w := range words {
		inCategory[w] = true
	}
	var outside []string
	for _, w := range g.corpus.Vocabulary.WordsOutside(cat.Name) {
		if !inCategory[w] {
			outside = append(outside, w)
		}
	}
	if len(outside) == 0 {
		return g.simpleVocabulary(d, ctx)
	}

	correct := sampler.Sample(g.rng, dedupe(words), categorySize)
	incorrect := sampler.Sample(g.rng, dedupe(outside), categorySize)
	options := append(append([]string{}, correct...), incorrect...)
	sampler.Shuffle(g.rng, options)

	return &Exercise{
		Kind:        VocabularyCategories,
		Format:      FormatMultiSelect,
		Question:    fmt.Sprintf("Select all words that belong to the category: %s", cat.Name),
		Options:     options,
		Answers:     correct,
		Explanation: fmt.Sprintf("The words in the '%s' category are: %s", cat.Name, strings.Join(words, ", ")),
		Content:     cat.Name,
		Category:    cat.Name,
	}, nil
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, v := range items {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
