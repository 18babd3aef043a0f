package exercise

import (
	"strings"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

func (g *Generator) dialogueComprehension(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	c, ok := sampler.Choice(g.rng, g.corpus.Dialogues)
	if !ok {
		return g.readingComprehension(d, ctx)
	}
	ex := g.comprehension(c)
	ex.Kind = DialogueComprehension
	ex.Dialogue = c.Dialogue
	lines := make([]string, len(c.Dialogue))
	for i, l := range c.Dialogue {
		lines[i] = l.Speaker + ": " + l.Text
	}
	ex.Content = strings.Join(lines, "\n")
	return ex, nil
}

func (g *Generator) readingComprehension(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	c, ok := sampler.Choice(g.rng, g.corpus.Readings)
	if !ok {
		return g.grammarApplication(d, ctx)
	}
	ex := g.comprehension(c)
	ex.Kind = ReadingComprehension
	ex.Passage = c.Passage
	ex.Content = c.Passage
	return ex, nil
}

func (g *Generator) comprehension(c corpus.Comprehension) *Exercise {
	options := append([]string(nil), c.Options...)
	sampler.Shuffle(g.rng, options)
	return &Exercise{
		Format:      FormatMultipleChoice,
		Question:    c.Question,
		Options:     options,
		Answer:      c.Answer,
		Explanation: c.Explanation,
	}
}
