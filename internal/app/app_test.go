package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shioubi0216/ToneMasterAI/internal/config"
	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
	"github.com/shioubi0216/ToneMasterAI/internal/llm"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
	"github.com/shioubi0216/ToneMasterAI/internal/store"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return cfg
}

func newMemoryApp(t *testing.T) *App {
	t.Helper()
	a, err := New(context.Background(), testConfig(t), nil, InMemory(), WithSampler(sampler.New(7)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestGenerateAndAnswer(t *testing.T) {
	ctx := context.Background()
	a := newMemoryApp(t)

	assert.Equal(t, exercise.ListPracticeKinds(corpus.Advanced), a.ListPracticeKinds(corpus.Advanced))

	ex, err := a.Generate(exercise.KanaRecognition, corpus.Beginner, exercise.Context{Script: corpus.Katakana})
	require.NoError(t, err)

	ok, err := a.Answer(ctx, ex, exercise.Response{Choice: ex.Answer})
	require.NoError(t, err)
	assert.True(t, ok)

	st := a.Stats()[corpus.Beginner][exercise.KanaRecognition]
	assert.Equal(t, 1, st.Attempts)
	assert.Equal(t, 1, st.Correct)

	sum := a.Progress().Summary()
	assert.Equal(t, 1, sum.KatakanaLearned)
	assert.Equal(t, 1, sum.KatakanaMastered)
	assert.Equal(t, 0, sum.HiraganaLearned)
}

func TestAnswerMatchingTracksBothScripts(t *testing.T) {
	ctx := context.Background()
	a := newMemoryApp(t)

	ex, err := a.gen.MatchingFor("ka")
	require.NoError(t, err)
	ok, err := a.Answer(ctx, ex, exercise.Response{Choice: "ナ"})
	require.NoError(t, err)
	assert.False(t, ok)

	review, err := a.Progress().NeedsReview(corpus.Hiragana, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"か"}, review)
	review, err = a.Progress().NeedsReview(corpus.Katakana, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"カ"}, review)
}

func TestAnswerCreditsRequestedKind(t *testing.T) {
	ctx := context.Background()
	// One short sentence leaves the intermediate tier empty, so sentence
	// completion falls back to beginner vocabulary.
	path := filepath.Join(t.TempDir(), "sentences.tsv")
	require.NoError(t, os.WriteFile(path, []byte("1\tjpn\tはい\n"), 0o644))
	cfg := testConfig(t)
	cfg.Corpus.SentencesPath = path
	a, err := New(ctx, cfg, nil, InMemory(), WithSampler(sampler.New(7)))
	require.NoError(t, err)
	defer a.Close()

	a.RecordResult(ctx, corpus.Intermediate, exercise.CommonPhrases, true, "")
	a.RecordResult(ctx, corpus.Intermediate, exercise.VocabularyCategories, true, "")
	k, ok := a.Recommend(corpus.Intermediate)
	require.True(t, ok)
	require.Equal(t, exercise.SentenceCompletion, k)

	ex, err := a.Generate(k, corpus.Intermediate, exercise.Context{})
	require.NoError(t, err)
	require.Equal(t, exercise.SimpleVocabulary, ex.Kind)
	require.Equal(t, corpus.Beginner, ex.Difficulty)

	correct, err := a.Answer(ctx, ex, exercise.Response{Choice: ex.Answer})
	require.NoError(t, err)
	assert.True(t, correct)

	stats := a.Stats()
	assert.Equal(t, 1, stats[corpus.Intermediate][exercise.SentenceCompletion].Attempts)
	assert.Empty(t, stats[corpus.Beginner])

	k, ok = a.Recommend(corpus.Intermediate)
	require.True(t, ok)
	assert.Equal(t, exercise.SpeedChallenge, k)
}

func TestAnswerNilExercise(t *testing.T) {
	a := newMemoryApp(t)
	_, err := a.Answer(context.Background(), nil, exercise.Response{})
	assert.Error(t, err)
}

func TestRecommendThroughFacade(t *testing.T) {
	ctx := context.Background()
	a := newMemoryApp(t)

	_, ok := a.Recommend(corpus.Beginner)
	assert.False(t, ok)

	for i := 0; i < 10; i++ {
		a.RecordResult(ctx, corpus.Beginner, exercise.KanaRecognition, i < 3, "")
		a.RecordResult(ctx, corpus.Beginner, exercise.KanaMatching, i < 9, "")
	}
	k, ok := a.Recommend(corpus.Beginner)
	require.True(t, ok)
	assert.Equal(t, exercise.KanaRecognition, k)

	s := a.Suggestions(corpus.Beginner)
	assert.True(t, s.HasFocus)
	assert.Equal(t, exercise.KanaRecognition, s.Focus)

	a.Reset(ctx)
	assert.Empty(t, a.Stats())
}

func TestJSONBackendPersists(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	a.RecordResult(ctx, corpus.Intermediate, exercise.CommonPhrases, true, "こんにちは")
	require.NoError(t, a.Close())
	assert.Nil(t, a.Events())

	data, err := os.ReadFile(cfg.ProgressPath())
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	b, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Stats()[corpus.Intermediate][exercise.CommonPhrases].Attempts)
}

func TestSQLiteBackendPersists(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Progress.Backend = config.BackendSQLite

	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, a.Events())
	a.RecordResult(ctx, corpus.Advanced, exercise.VerbConjugation, false, "食べる:te")
	require.NoError(t, a.Close())

	_, err = os.Stat(cfg.DBPath())
	require.NoError(t, err)
	_, err = os.Stat(cfg.ProgressPath())
	assert.True(t, os.IsNotExist(err))

	b, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, 1, b.Stats()[corpus.Advanced][exercise.VerbConjugation].Attempts)
}

func TestMockProviderEventsAreLogged(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.LLM.Provider = llm.ProviderMock
	cfg.LLM.Retry.MaxAttempts = 1

	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	defer a.Close()
	require.True(t, a.Advisor().Enabled())

	// The built-in mock has no canned answers, so the advisor falls back.
	lctx, cancel := a.LLMContext(ctx)
	defer cancel()
	text, err := a.Advisor().LearningTips(lctx, "あ")
	assert.Error(t, err)
	assert.Contains(t, text, "'あ'")

	events, err := a.Events().QueryLLMEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, llm.PurposeLearningTips, events[0].Purpose)
	assert.False(t, events[0].Success)
}

func TestWithProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`Practise the か row.`)})
	a, err := New(context.Background(), testConfig(t), nil, InMemory(), WithProvider(mock))
	require.NoError(t, err)

	text, err := a.Advisor().LearningTips(context.Background(), "か")
	require.NoError(t, err)
	assert.Equal(t, "Practise the か row.", text)
}

func TestSentencesFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentences.tsv")
	require.NoError(t, os.WriteFile(path, []byte(
		"1\tjpn\tきのう ともだちと いっしょに えいがを みました\n"+
			"2\teng\tI saw a movie.\n"), 0o644))

	cfg := testConfig(t)
	cfg.Corpus.SentencesPath = path
	a, err := New(context.Background(), cfg, nil, InMemory())
	require.NoError(t, err)

	adv := a.Corpus().Sentences.Tier(corpus.Advanced)
	require.Len(t, adv, 1)
	assert.Equal(t, "1", adv[0].SourceID)
}

func TestUnknownSegmenter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Corpus.Segmenter = "mecab"
	_, err := New(context.Background(), cfg, nil, InMemory())
	assert.Error(t, err)
}

func TestScriptOf(t *testing.T) {
	tests := []struct {
		symbol string
		script corpus.Script
		ok     bool
	}{
		{"あ", corpus.Hiragana, true},
		{"きゃ", corpus.Hiragana, true},
		{"ア", corpus.Katakana, true},
		{"a", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		script, ok := scriptOf(tt.symbol)
		assert.Equal(t, tt.ok, ok, tt.symbol)
		assert.Equal(t, tt.script, script, tt.symbol)
	}
}
