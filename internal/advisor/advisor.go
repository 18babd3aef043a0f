// Package advisor produces the AI-written study aids: learning paths,
// example sentences, memorization tips, themed word lists and a short note
// on the recommended exercise.
//
// Every method returns text the caller can show. When no provider is set
// or the provider fails, a fixed fallback is returned together with the
// error so the caller can log it. Exercise generation and grading never go
// through here.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
	"github.com/shioubi0216/ToneMasterAI/internal/llm"
	"github.com/shioubi0216/ToneMasterAI/internal/progress"
)

// MaxThemedWords caps the size of a themed word list.
const MaxThemedWords = 20

// DefaultThemedWords is used when ThemedVocabulary is asked for a
// non-positive count.
const DefaultThemedWords = 10

// Fixed answers used without a working provider.
const (
	NoInterestsMessage   = "Please add some interests to get personalized recommendations."
	NoThemeWordsMessage  = "No vocabulary found for this theme"
	learningPathFallback = "Start with the hiragana rows あ to な, then は to ん. Move on to katakana once you can read every hiragana row, and practise the vocabulary categories along the way."
	tipsFallbackFormat   = "Write '%s' five times while saying it aloud, then find it in a word you already know."
	examplesFallback     = "Example sentences are not available right now."
)

// ErrEmptyInput is returned for a blank character or theme.
var ErrEmptyInput = errors.New("empty input")

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used for all advisor prompts.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.7}
}

// Advisor wraps an llm.Provider with prompts and fallbacks.
type Advisor struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// New creates an Advisor. provider may be nil; every method then returns
// its fallback with llm.ErrDisabled.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *Advisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{provider: provider, cfg: cfg, log: log}
}

// Enabled reports whether a provider is configured.
func (a *Advisor) Enabled() bool {
	return a.provider != nil
}

// LearningPath suggests a study plan around the learner's interests. With
// no interests it asks for some instead of calling the provider.
func (a *Advisor) LearningPath(ctx context.Context, interests []string) (string, error) {
	interests = cleanList(interests)
	if len(interests) == 0 {
		return NoInterestsMessage, nil
	}
	text, err := a.complete(ctx, llm.PurposeLearningPath, learningPathPrompt, map[string]any{
		"interests": interests,
	})
	if err != nil {
		return learningPathFallback, err
	}
	return text, nil
}

// ExampleSentences asks for three sentences using character, themed on
// interests when given.
func (a *Advisor) ExampleSentences(ctx context.Context, character string, interests []string) (string, error) {
	character = strings.TrimSpace(character)
	if character == "" {
		return examplesFallback, fmt.Errorf("example sentences: %w", ErrEmptyInput)
	}
	topic := "general topics"
	if interests = cleanList(interests); len(interests) > 0 {
		topic = strings.Join(interests, ", ")
	}
	text, err := a.complete(ctx, llm.PurposeExampleSentences, exampleSentencesPrompt, map[string]any{
		"character": character,
		"interests": topic,
	})
	if err != nil {
		return examplesFallback, err
	}
	return text, nil
}

// LearningTips asks for mnemonics for one character.
func (a *Advisor) LearningTips(ctx context.Context, character string) (string, error) {
	character = strings.TrimSpace(character)
	if character == "" {
		return fmt.Sprintf(tipsFallbackFormat, character), fmt.Errorf("learning tips: %w", ErrEmptyInput)
	}
	text, err := a.complete(ctx, llm.PurposeLearningTips, learningTipsPrompt, map[string]any{
		"character": character,
	})
	if err != nil {
		return fmt.Sprintf(tipsFallbackFormat, character), err
	}
	return text, nil
}

type themedVocabularyOutput struct {
	Words []struct {
		Word    string `json:"word"`
		Meaning string `json:"meaning"`
	} `json:"words"`
}

// ThemedVocabulary returns up to count words for theme, each formatted as
// "word (meaning)". Without a usable answer it returns the built-in list
// for the theme, or a single "no vocabulary" line for unknown themes.
func (a *Advisor) ThemedVocabulary(ctx context.Context, theme string, count int) ([]string, error) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if count <= 0 {
		count = DefaultThemedWords
	}
	count = min(count, MaxThemedWords)
	if theme == "" {
		return themedFallback(theme, count), fmt.Errorf("themed vocabulary: %w", ErrEmptyInput)
	}

	words, err := a.themedVocabulary(ctx, theme, count)
	if err != nil {
		a.log.Debug("themed vocabulary fallback", zap.String("theme", theme), zap.Error(err))
		return themedFallback(theme, count), err
	}
	return words, nil
}

func (a *Advisor) themedVocabulary(ctx context.Context, theme string, count int) ([]string, error) {
	if a.provider == nil {
		return nil, llm.ErrDisabled
	}
	prompt, err := llm.RenderPrompt(themedVocabularyPrompt, map[string]any{
		"theme": theme,
		"count": count,
	})
	if err != nil {
		return nil, err
	}

	req := llm.Ask(tutorSystemPrompt, prompt, llm.Tuning(a.cfg)).Expecting(ThemedVocabularySchema)
	resp, err := a.provider.Generate(llm.WithPurpose(ctx, llm.PurposeThemedVocabulary), req)
	if err != nil {
		return nil, fmt.Errorf("themed vocabulary: %w", err)
	}
	out, err := llm.Decode[themedVocabularyOutput](ThemedVocabularySchema, resp.Content)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(out.Words))
	for _, w := range out.Words {
		if len(words) == count {
			break
		}
		words = append(words, fmt.Sprintf("%s (%s)", w.Word, w.Meaning))
	}
	return words, nil
}

func themedFallback(theme string, count int) []string {
	words, ok := corpus.ThemedVocabulary(theme)
	if !ok {
		return []string{NoThemeWordsMessage}
	}
	if len(words) > count {
		words = words[:count]
	}
	return words
}

// RecommendationBlurb writes a short note on why kind is worth practising,
// using the learner's record for it.
func (a *Advisor) RecommendationBlurb(ctx context.Context, d corpus.Difficulty, kind exercise.Kind, st progress.KindStats) (string, error) {
	text, err := a.complete(ctx, llm.PurposeRecommendation, recommendationPrompt, map[string]any{
		"difficulty": d.Title(),
		"kind":       kind.Title(),
		"attempts":   st.Attempts,
		"correct":    st.Correct,
	})
	if err != nil {
		return blurbFallback(kind, st), err
	}
	return text, nil
}

func blurbFallback(kind exercise.Kind, st progress.KindStats) string {
	if st.Attempts == 0 {
		return fmt.Sprintf("You haven't tried %s yet. Give it a go!", kind.Title())
	}
	return fmt.Sprintf("%s is at %.0f%% accuracy. A few more rounds will help it stick.",
		kind.Title(), st.Accuracy()*100)
}

// complete renders a text prompt and returns the provider's plain answer.
func (a *Advisor) complete(ctx context.Context, purpose, tmpl string, vars map[string]any) (string, error) {
	if a.provider == nil {
		return "", llm.ErrDisabled
	}
	prompt, err := llm.RenderPrompt(tmpl, vars)
	if err != nil {
		return "", err
	}

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, purpose), llm.Ask(tutorSystemPrompt, prompt, llm.Tuning(a.cfg)))
	if err != nil {
		a.log.Debug("advisor fallback", zap.String("purpose", purpose), zap.Error(err))
		return "", fmt.Errorf("%s: %w", purpose, err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%s: %w", purpose, &llm.ErrInvalidResponse{Err: errors.New("empty answer")})
	}
	return text, nil
}

func cleanList(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
