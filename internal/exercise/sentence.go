package exercise

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// Blank replaces the hidden token in fill-in-the-blank questions.
const Blank = "＿＿＿"

// segment tokenizes text, caching the result.
func (g *Generator) segment(text string) []string {
	if toks, ok := g.tokens[text]; ok {
		return toks
	}
	toks := g.seg.Segment(text)
	g.tokens[text] = toks
	return toks
}

// joinTokens rebuilds a sentence in the spacing style of the source text.
func joinTokens(source string, toks []string) string {
	if strings.ContainsAny(source, " 　") {
		return strings.Join(toks, " ")
	}
	return strings.Join(toks, "")
}

// blankRange returns the half-open range of token indexes that may be
// blanked. Advanced sentences keep their first and last token visible.
func blankRange(d corpus.Difficulty, n int) (lo, hi int, ok bool) {
	if d == corpus.Advanced {
		if n <= 3 {
			return 0, 0, false
		}
		return 1, n - 1, true
	}
	if n <= 2 {
		return 0, 0, false
	}
	return 0, n, true
}

func (g *Generator) sentenceCompletion(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	type candidate struct {
		entry corpus.SentenceEntry
		toks  []string
	}
	var eligible []candidate
	for _, s := range g.corpus.Sentences.Tier(d) {
		toks := g.segment(s.Text)
		if _, _, ok := blankRange(d, len(toks)); ok {
			eligible = append(eligible, candidate{s, toks})
		}
	}
	pick, ok := sampler.Choice(g.rng, eligible)
	if !ok {
		return g.easierVocabulary(d, ctx)
	}

	lo, hi, _ := blankRange(d, len(pick.toks))
	idx := g.rng.Between(lo, hi-1)
	target := pick.toks[idx]

	near, other := g.tokenPools(d, target)
	options := buildOptions(g.rng, target, near, other, corpus.CommonWords)

	blanked := append([]string(nil), pick.toks...)
	blanked[idx] = Blank
	question := joinTokens(pick.entry.Text, blanked)

	return &Exercise{
		Kind:         SentenceCompletion,
		Format:       FormatMultipleChoice,
		Question:     fmt.Sprintf("Complete the sentence: %s", question),
		Options:      options,
		Answer:       target,
		Explanation:  fmt.Sprintf("The missing word is '%s'. Full sentence: %s", target, pick.entry.Text),
		Content:      pick.entry.Text,
		JapaneseText: question,
		FullSentence: pick.entry.Text,
		Translation:  pick.entry.Translation,
	}, nil
}

// tokenPools collects distractor tokens from the tier below d and d itself.
// near holds multi-character tokens within one character of target's
// length; other holds every remaining token.
func (g *Generator) tokenPools(d corpus.Difficulty, target string) (near, other []string) {
	tiers := []corpus.Difficulty{d.Easier(), d}
	if d.Easier() == d {
		tiers = tiers[1:]
	}
	want := utf8.RuneCountInString(target)
	for _, t := range tiers {
		for _, s := range g.corpus.Sentences.Tier(t) {
			for _, tok := range g.segment(s.Text) {
				if tok == target {
					continue
				}
				n := utf8.RuneCountInString(tok)
				if n > 1 && n >= want-1 && n <= want+1 {
					near = append(near, tok)
				} else {
					other = append(other, tok)
				}
			}
		}
	}
	return near, other
}

// easierVocabulary is the fallback when no sentence can be blanked: the
// vocabulary exercise of the next easier tier.
func (g *Generator) easierVocabulary(d corpus.Difficulty, ctx Context) (*Exercise, error) {
	var (
		ex  *Exercise
		err error
	)
	if d == corpus.Advanced {
		ex, err = g.vocabularyCategories(corpus.Intermediate, ctx)
	} else {
		ex, err = g.simpleVocabulary(corpus.Beginner, ctx)
	}
	if err != nil {
		return nil, err
	}
	if ex.Difficulty == "" {
		ex.Difficulty = d.Easier()
	}
	return ex, nil
}
