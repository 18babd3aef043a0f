package exercise

import (
	"fmt"
	"strings"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// untranslatedGist is the answer for sentences without a translation.
const untranslatedGist = "Basic statement or greeting"

func (g *Generator) listeningComprehension(d corpus.Difficulty, _ Context) (*Exercise, error) {
	s, ok := sampler.Choice(g.rng, g.corpus.Sentences.Tier(corpus.Intermediate))
	if !ok {
		return g.listeningFallback(), nil
	}
	correct := s.Translation
	if correct == "" {
		correct = untranslatedGist
	}
	lc := strings.ToLower(correct)
	var topics []string
	for _, t := range corpus.ListeningTopics {
		lt := strings.ToLower(t)
		if strings.Contains(lt, lc) || strings.Contains(lc, lt) {
			continue
		}
		topics = append(topics, t)
	}
	explanation := fmt.Sprintf("The sentence '%s' means '%s'", s.Text, s.Translation)
	if s.Translation == "" {
		explanation = fmt.Sprintf("The sentence '%s' is a %s", s.Text, strings.ToLower(untranslatedGist))
	}
	return &Exercise{
		Kind:         ListeningComprehension,
		Format:       FormatMultipleChoice,
		Question:     "What is this sentence about?",
		Options:      buildOptions(g.rng, correct, topics),
		Answer:       correct,
		Explanation:  explanation,
		Content:      s.Text,
		JapaneseText: s.Text,
		AudioText:    s.Text,
		Translation:  s.Translation,
	}, nil
}

func (g *Generator) listeningFallback() *Exercise {
	const text = "こんにちは、元気ですか？"
	options := []string{
		"Greeting and asking how someone is",
		"Asking for directions",
		"Ordering food",
		"Talking about the weather",
	}
	sampler.Shuffle(g.rng, options)
	return &Exercise{
		Kind:         ListeningComprehension,
		Format:       FormatMultipleChoice,
		Question:     "What is this sentence about?",
		Options:      options,
		Answer:       "Greeting and asking how someone is",
		Explanation:  "This is a common greeting asking how someone is feeling.",
		Content:      text,
		JapaneseText: text,
		AudioText:    text,
		Translation:  "Hello, how are you?",
	}
}
