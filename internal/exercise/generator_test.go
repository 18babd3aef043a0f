package exercise

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

func newTestGenerator(t *testing.T, c *corpus.Corpus) *Generator {
	t.Helper()
	return New(c, WithSampler(sampler.New(42)))
}

// spacedSentences has whitespace-delimited tokens in every tier so the
// default segmenter can blank them.
func spacedSentences() *corpus.Sentences {
	return corpus.NewSentences(
		[]corpus.SentenceEntry{
			{Text: "これは ほん です", Translation: "This is a book."},
			{Text: "ねこが すき", Translation: "I like cats."},
		},
		[]corpus.SentenceEntry{
			{Text: "わたしは まいにち にほんごを べんきょうします", Translation: "I study Japanese every day."},
			{Text: "あしたは あめが ふるでしょう", Translation: "It will probably rain tomorrow."},
		},
		[]corpus.SentenceEntry{
			{Text: "きのう ともだちと いっしょに えいがを みました", Translation: "Yesterday I watched a movie with a friend."},
		},
	)
}

func TestRegistryCoversCatalog(t *testing.T) {
	for _, d := range corpus.Difficulties {
		kinds := ListPracticeKinds(d)
		require.NotEmpty(t, kinds, d)
		for _, k := range kinds {
			_, ok := generators[k]
			assert.True(t, ok, "kind %s has no generator", k)
		}
	}
	assert.Len(t, AllKinds(), len(generators))
}

func TestListPracticeKindsReturnsCopy(t *testing.T) {
	kinds := ListPracticeKinds(corpus.Beginner)
	kinds[0] = "tampered"
	assert.Equal(t, KanaRecognition, ListPracticeKinds(corpus.Beginner)[0])
	assert.Empty(t, ListPracticeKinds("expert"))
}

func TestGenerateInvariants(t *testing.T) {
	for _, c := range []*corpus.Corpus{corpus.Default(nil), corpus.Default(spacedSentences())} {
		g := newTestGenerator(t, c)
		for _, d := range corpus.Difficulties {
			for _, k := range AllKinds() {
				for _, script := range []corpus.Script{corpus.Hiragana, corpus.Katakana} {
					for i := 0; i < 50; i++ {
						ex, err := g.Generate(k, d, Context{Script: script})
						require.NoError(t, err)
						require.NoError(t, Validate(ex), "%s/%s", k, d)
						assertOptionInvariants(t, ex)
					}
				}
			}
		}
	}
}

func assertOptionInvariants(t *testing.T, ex *Exercise) {
	t.Helper()
	switch ex.Format {
	case FormatMultipleChoice:
		assert.Len(t, ex.Options, OptionCount, "%s: %v", ex.Kind, ex.Options)
		n := 0
		for _, o := range ex.Options {
			if o == ex.Answer {
				n++
			}
		}
		assert.Equal(t, 1, n, "%s: answer %q in %v", ex.Kind, ex.Answer, ex.Options)
	case FormatMultiSelect:
		assert.NotEmpty(t, ex.Answers)
		assert.Less(t, len(ex.Answers), len(ex.Options))
		for _, a := range ex.Answers {
			assert.Contains(t, ex.Options, a)
		}
	}
	seen := map[string]bool{}
	for _, o := range ex.Options {
		assert.False(t, seen[o], "%s: duplicate option %q", ex.Kind, o)
		seen[o] = true
	}
}

func TestAnswerPositionIsUniform(t *testing.T) {
	g := newTestGenerator(t, nil)
	counts := make([]int, OptionCount)
	const runs = 800
	for i := 0; i < runs; i++ {
		ex, err := g.Generate(KanaRecognition, corpus.Beginner, Context{})
		require.NoError(t, err)
		for j, o := range ex.Options {
			if o == ex.Answer {
				counts[j]++
			}
		}
	}
	for pos, n := range counts {
		assert.Greater(t, n, runs/OptionCount/2, "position %d chosen %d times", pos, n)
	}
}

func TestGenerateRejectsInvalidArguments(t *testing.T) {
	g := newTestGenerator(t, nil)

	_, err := g.Generate("time_travel", corpus.Beginner, Context{})
	assert.True(t, errors.Is(err, ErrUnknownKind))

	_, err = g.Generate(KanaRecognition, "expert", Context{})
	assert.True(t, errors.Is(err, ErrUnknownDifficulty))

	_, err = g.Generate(KanaRecognition, corpus.Beginner, Context{Script: "cyrillic"})
	assert.True(t, errors.Is(err, ErrUnknownScript))
}

func TestGenerateStampsDifficulty(t *testing.T) {
	g := newTestGenerator(t, nil)
	ex, err := g.Generate(VerbConjugation, corpus.Intermediate, Context{})
	require.NoError(t, err)
	assert.Equal(t, corpus.Intermediate, ex.Difficulty)
	assert.Equal(t, VerbConjugation, ex.Kind)
}

func TestKanaRecognitionUsesContextScript(t *testing.T) {
	g := newTestGenerator(t, nil)
	ex, err := g.Generate(KanaRecognition, corpus.Beginner, Context{Script: corpus.Katakana})
	require.NoError(t, err)
	for _, o := range ex.Options {
		assert.Contains(t, corpus.Default(nil).Katakana.Symbols(), o)
	}
	assert.Contains(t, ex.Question, "katakana")
}

func TestMatchingFor(t *testing.T) {
	g := newTestGenerator(t, nil)
	ex, err := g.MatchingFor("ka")
	require.NoError(t, err)
	assert.Equal(t, "カ", ex.Answer)
	assert.Equal(t, "か", ex.Content)
	assert.Contains(t, ex.Options, "カ")
	require.NoError(t, Validate(ex))

	_, err = g.MatchingFor("xyz")
	assert.Error(t, err)
}

func TestConjugationFor(t *testing.T) {
	g := newTestGenerator(t, nil)
	ex, err := g.ConjugationFor("食べる", corpus.FormMasenDeshita)
	require.NoError(t, err)
	assert.Equal(t, "食べませんでした", ex.Answer)
	assert.Contains(t, ex.Explanation, "食べる")
	assert.Contains(t, ex.Explanation, "to eat")
	assert.Contains(t, ex.Explanation, "past negative")
	assert.Equal(t, "ru-verb", ex.VerbType)
	require.NoError(t, Validate(ex))
	assertOptionInvariants(t, ex)

	_, err = g.ConjugationFor("泳ぐ", corpus.FormMasu)
	assert.Error(t, err)
	_, err = g.ConjugationFor("食べる", "te")
	assert.Error(t, err)
}

func TestSentenceCompletionBlanksAToken(t *testing.T) {
	g := newTestGenerator(t, corpus.Default(spacedSentences()))
	for i := 0; i < 50; i++ {
		ex, err := g.Generate(SentenceCompletion, corpus.Intermediate, Context{})
		require.NoError(t, err)
		require.Equal(t, SentenceCompletion, ex.Kind)
		assert.Contains(t, ex.Question, Blank)
		assert.Equal(t, ex.FullSentence, strings.Replace(ex.JapaneseText, Blank, ex.Answer, 1))
	}
}

func TestSentenceCompletionAdvancedKeepsEnds(t *testing.T) {
	g := newTestGenerator(t, corpus.Default(spacedSentences()))
	for i := 0; i < 100; i++ {
		ex, err := g.Generate(SentenceCompletion, corpus.Advanced, Context{})
		require.NoError(t, err)
		require.Equal(t, SentenceCompletion, ex.Kind)
		assert.NotEqual(t, "きのう", ex.Answer)
		assert.NotEqual(t, "みました", ex.Answer)
	}
}

func TestSentenceCompletionFallsBackToEasierVocabulary(t *testing.T) {
	// Unspaced sentences give the whitespace segmenter nothing to blank.
	unspaced := []corpus.SentenceEntry{{Text: "そうですね。"}}
	g := newTestGenerator(t, corpus.Default(corpus.NewSentences(nil, unspaced, unspaced)))

	ex, err := g.Generate(SentenceCompletion, corpus.Intermediate, Context{})
	require.NoError(t, err)
	assert.Equal(t, SimpleVocabulary, ex.Kind)
	assert.Equal(t, corpus.Beginner, ex.Difficulty)
	assert.Equal(t, SentenceCompletion, ex.RequestedKind)
	assert.Equal(t, corpus.Intermediate, ex.RequestedDifficulty)

	ex, err = g.Generate(SentenceCompletion, corpus.Advanced, Context{})
	require.NoError(t, err)
	assert.Equal(t, VocabularyCategories, ex.Kind)
	assert.Equal(t, corpus.Intermediate, ex.Difficulty)
	assert.Equal(t, SentenceCompletion, ex.RequestedKind)
	assert.Equal(t, corpus.Advanced, ex.RequestedDifficulty)
}

func TestSentenceCompletionWithBuiltInSentences(t *testing.T) {
	g := newTestGenerator(t, corpus.Default(nil))
	for _, d := range []corpus.Difficulty{corpus.Intermediate, corpus.Advanced} {
		for i := 0; i < 20; i++ {
			ex, err := g.Generate(SentenceCompletion, d, Context{})
			require.NoError(t, err)
			require.Equal(t, SentenceCompletion, ex.Kind, "difficulty %s", d)
			assert.Contains(t, ex.JapaneseText, Blank)
			assert.Contains(t, ex.Options, ex.Answer)
		}
	}
}

func TestListeningComprehension(t *testing.T) {
	t.Run("translation is the answer", func(t *testing.T) {
		g := newTestGenerator(t, corpus.Default(spacedSentences()))
		ex, err := g.Generate(ListeningComprehension, corpus.Intermediate, Context{})
		require.NoError(t, err)
		assert.Equal(t, ex.Translation, ex.Answer)
		assert.Equal(t, ex.JapaneseText, ex.AudioText)
	})

	t.Run("untranslated sentence", func(t *testing.T) {
		s := corpus.NewSentences(nil, []corpus.SentenceEntry{{Text: "そうですね"}}, nil)
		g := newTestGenerator(t, corpus.Default(s))
		ex, err := g.Generate(ListeningComprehension, corpus.Intermediate, Context{})
		require.NoError(t, err)
		assert.Equal(t, "Basic statement or greeting", ex.Answer)
		assert.Equal(t, "The sentence 'そうですね' is a basic statement or greeting", ex.Explanation)
		assert.NotContains(t, ex.Explanation, "''")
	})

	t.Run("no sentences", func(t *testing.T) {
		g := newTestGenerator(t, corpus.Default(corpus.NewSentences(nil, nil, nil)))
		ex, err := g.Generate(ListeningComprehension, corpus.Intermediate, Context{})
		require.NoError(t, err)
		assert.Equal(t, "こんにちは、元気ですか？", ex.JapaneseText)
		assert.Equal(t, "Greeting and asking how someone is", ex.Answer)
	})

	t.Run("overlapping topics are excluded", func(t *testing.T) {
		s := corpus.NewSentences(nil, []corpus.SentenceEntry{{Text: "みちを おしえて", Translation: "asking for directions"}}, nil)
		g := newTestGenerator(t, corpus.Default(s))
		for i := 0; i < 20; i++ {
			ex, err := g.Generate(ListeningComprehension, corpus.Intermediate, Context{})
			require.NoError(t, err)
			assert.NotContains(t, ex.Options, "Asking for directions")
		}
	})
}

func TestGrammarApplication(t *testing.T) {
	g := newTestGenerator(t, nil)
	for i := 0; i < 50; i++ {
		ex, err := g.Generate(GrammarApplication, corpus.Advanced, Context{})
		require.NoError(t, err)
		assert.Contains(t, corpus.BlankParticles, ex.Answer)
		assert.Contains(t, ex.Question, Blank)
		for _, o := range ex.Options {
			assert.Contains(t, corpus.Particles, o)
		}
	}
}

func TestGrammarRecognitionFallback(t *testing.T) {
	c := corpus.Default(nil)
	c.Grammar = []corpus.GrammarPattern{
		{ID: "_です", Template: "Xです", Description: "It is X", Examples: []string{"ほんです", "ねこです", "ペンです"}},
		{ID: "_ます", Template: "Xます", Description: "Polite verb", Examples: []string{"たべます", "のみます", "いきます"}},
	}
	g := newTestGenerator(t, c)
	for i := 0; i < 20; i++ {
		ex, err := g.Generate(GrammarApplication, corpus.Advanced, Context{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ex.Question, "Which of these examples uses the pattern:"), ex.Question)
		assertOptionInvariants(t, ex)
	}
}

func TestVocabularyCategoriesGrading(t *testing.T) {
	g := newTestGenerator(t, nil)
	ex, err := g.Generate(VocabularyCategories, corpus.Intermediate, Context{})
	require.NoError(t, err)
	require.Equal(t, FormatMultiSelect, ex.Format)

	cat, ok := corpus.Default(nil).Vocabulary.Category(ex.Category)
	require.True(t, ok)
	for _, a := range ex.Answers {
		assert.Contains(t, cat.Words(), a)
	}

	reversed := make([]string, len(ex.Answers))
	for i, a := range ex.Answers {
		reversed[len(ex.Answers)-1-i] = a
	}
	assert.True(t, ex.Grade(Response{Choices: reversed}))
	assert.False(t, ex.Grade(Response{Choices: ex.Answers[:len(ex.Answers)-1]}))
	assert.False(t, ex.Grade(Response{Choices: ex.Options}))
}

func TestSentenceCreationGrading(t *testing.T) {
	g := newTestGenerator(t, nil)
	ex, err := g.Generate(SentenceCreation, corpus.Advanced, Context{})
	require.NoError(t, err)
	require.Equal(t, FormatFreeText, ex.Format)

	assert.True(t, ex.Grade(Response{Text: ex.Vocabulary[0] + ex.Vocabulary[1]}))
	assert.False(t, ex.Grade(Response{Text: "hello"}))
}

func TestSpeechPractice(t *testing.T) {
	t.Run("advanced sentence", func(t *testing.T) {
		g := newTestGenerator(t, corpus.Default(spacedSentences()))
		ex, err := g.Generate(SpeechPractice, corpus.Advanced, Context{})
		require.NoError(t, err)
		assert.Equal(t, []string{"きのう", "ともだちと", "いっしょに"}, ex.KeyVocabulary)
		assert.Equal(t, "Pay attention to intonation and rhythm", ex.PronunciationGuidance)

		assert.True(t, ex.Grade(Response{Confidence: 4}))
		assert.True(t, ex.Grade(Response{Confidence: 5}))
		assert.False(t, ex.Grade(Response{Confidence: 3}))
	})

	t.Run("phrase fallback", func(t *testing.T) {
		g := newTestGenerator(t, corpus.Default(corpus.NewSentences(nil, nil, nil)))
		ex, err := g.Generate(SpeechPractice, corpus.Advanced, Context{})
		require.NoError(t, err)
		assert.NotEmpty(t, ex.PronunciationGuidance)
		assert.LessOrEqual(t, len(ex.KeyVocabulary), 3)
		assert.NotEmpty(t, ex.Translation)
	})
}

func TestComprehensionKinds(t *testing.T) {
	g := newTestGenerator(t, nil)

	ex, err := g.Generate(DialogueComprehension, corpus.Advanced, Context{})
	require.NoError(t, err)
	assert.NotEmpty(t, ex.Dialogue)
	assert.Contains(t, ex.Options, ex.Answer)

	ex, err = g.Generate(ReadingComprehension, corpus.Advanced, Context{})
	require.NoError(t, err)
	assert.NotEmpty(t, ex.Passage)
	assert.Contains(t, ex.Options, ex.Answer)
}

func TestEmptyCorpusDegrades(t *testing.T) {
	c := &corpus.Corpus{}
	g := newTestGenerator(t, c)
	for _, d := range corpus.Difficulties {
		for _, k := range AllKinds() {
			ex, err := g.Generate(k, d, Context{})
			require.NoError(t, err, k)
			require.NoError(t, Validate(ex), k)
		}
	}
}
