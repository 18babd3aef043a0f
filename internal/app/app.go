// Package app wires the corpus, exercise generator, progress store,
// recommendation engine and advisor into the single facade the CLI uses.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/shioubi0216/ToneMasterAI/internal/advisor"
	"github.com/shioubi0216/ToneMasterAI/internal/config"
	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
	"github.com/shioubi0216/ToneMasterAI/internal/llm"
	"github.com/shioubi0216/ToneMasterAI/internal/progress"
	"github.com/shioubi0216/ToneMasterAI/internal/recommend"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
	"github.com/shioubi0216/ToneMasterAI/internal/store"
)

// progressDocument names the learner record in the SQLite documents table.
const progressDocument = "progress"

// App is the core facade. It is not safe for concurrent Generate calls
// because the random source is shared.
type App struct {
	log       *zap.Logger
	corpus    *corpus.Corpus
	gen       *exercise.Generator
	progress  *progress.Store
	recommend *recommend.Engine
	advisor   *advisor.Advisor
	db        *store.Store

	llmTimeout time.Duration
}

type options struct {
	rng      *sampler.Sampler
	provider llm.Provider
	memory   bool
	progress []progress.Option
}

// Option adjusts how New builds the App.
type Option func(*options)

// WithSampler fixes the random source, e.g. for a reproducible session.
func WithSampler(s *sampler.Sampler) Option {
	return func(o *options) { o.rng = s }
}

// WithProvider uses p instead of building a provider from configuration.
func WithProvider(p llm.Provider) Option {
	return func(o *options) { o.provider = p }
}

// InMemory keeps progress in memory and opens no database.
func InMemory() Option {
	return func(o *options) { o.memory = true }
}

// WithProgressOptions passes options through to progress.Open.
func WithProgressOptions(opts ...progress.Option) Option {
	return func(o *options) { o.progress = append(o.progress, opts...) }
}

// New builds an App from cfg. Only an unusable configuration is an error;
// a missing dataset, database or AI provider is logged and worked around.
func New(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = sampler.NewRandom()
	}

	seg, err := corpus.NewSegmenter(cfg.Corpus.Segmenter)
	if err != nil {
		return nil, err
	}

	var sentences *corpus.Sentences
	if cfg.Corpus.SentencesPath != "" {
		sentences = corpus.LoadSentences(ctx, corpus.SentenceSource{
			SentencesPath:    cfg.Corpus.SentencesPath,
			TranslationsPath: cfg.Corpus.TranslationsPath,
			MaxRows:          cfg.Corpus.MaxRows,
		}, log)
	}
	c := corpus.Default(sentences)

	a := &App{log: log, corpus: c, llmTimeout: cfg.LLM.Timeout}

	if !o.memory && (cfg.Progress.Backend == config.BackendSQLite || cfg.LLM.Provider != llm.ProviderNone) {
		a.db = openDB(cfg, log)
	}

	var doc store.Document
	switch {
	case o.memory:
	case cfg.Progress.Backend == config.BackendSQLite:
		if a.db != nil {
			doc = a.db.Document(progressDocument)
		}
	default:
		if err := store.EnsureDir(cfg.ProgressPath()); err != nil {
			log.Warn("progress directory unavailable, keeping progress in memory",
				zap.String("path", cfg.ProgressPath()), zap.Error(err))
		} else {
			doc = store.NewFileDocument(cfg.ProgressPath())
		}
	}
	a.progress = progress.Open(ctx, doc, log, o.progress...)

	a.gen = exercise.New(c,
		exercise.WithSampler(o.rng),
		exercise.WithSegmenter(seg),
		exercise.WithLogger(log))
	a.recommend = recommend.New(a.progress, o.rng)

	provider := o.provider
	if provider == nil && !o.memory {
		provider = a.newProvider(ctx, cfg)
	}
	a.advisor = advisor.New(provider, advisor.DefaultConfig(), log)

	return a, nil
}

func openDB(cfg config.Config, log *zap.Logger) *store.Store {
	path := cfg.DBPath()
	if err := store.EnsureDir(path); err != nil {
		log.Warn("database directory unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	db, err := store.Open(path)
	if err != nil {
		log.Warn("database unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return db
}

func (a *App) newProvider(ctx context.Context, cfg config.Config) llm.Provider {
	var repo store.EventRepo
	if a.db != nil {
		repo = a.db.EventRepo()
	}
	p, err := llm.NewProvider(ctx, cfg.LLM, repo, a.log)
	if errors.Is(err, llm.ErrDisabled) {
		return nil
	}
	if err != nil {
		a.log.Warn("AI provider unavailable, using built-in text", zap.Error(err))
		return nil
	}
	return p
}

// Close releases the database, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// ListPracticeKinds returns the catalog for d in display order.
func (a *App) ListPracticeKinds(d corpus.Difficulty) []exercise.Kind {
	return exercise.ListPracticeKinds(d)
}

// Generate builds one exercise.
func (a *App) Generate(kind exercise.Kind, d corpus.Difficulty, ctx exercise.Context) (*exercise.Exercise, error) {
	return a.gen.Generate(kind, d, ctx)
}

// RecordResult counts one attempt. content is the Exercise.Content of the
// answered exercise.
func (a *App) RecordResult(ctx context.Context, d corpus.Difficulty, kind exercise.Kind, success bool, content string) {
	a.progress.RecordResult(ctx, d, kind, success, content)
}

// Answer grades r against ex, records the result, and updates the kana
// lists for kinds that drill single characters. The result is credited to
// the kind and difficulty that were requested, so a kind that fell back to
// an easier exercise still counts as practised. It reports whether the
// answer was correct.
func (a *App) Answer(ctx context.Context, ex *exercise.Exercise, r exercise.Response) (bool, error) {
	if ex == nil {
		return false, fmt.Errorf("answer: nil exercise")
	}
	ok := ex.Grade(r)
	kind, d := ex.RequestedKind, ex.RequestedDifficulty
	if kind == "" {
		kind = ex.Kind
	}
	if d == "" {
		d = ex.Difficulty
	}
	a.progress.RecordResult(ctx, d, kind, ok, ex.Content)

	var symbols []string
	switch ex.Kind {
	case exercise.KanaRecognition, exercise.SpeedChallenge:
		symbols = []string{ex.Content}
	case exercise.KanaMatching:
		symbols = []string{ex.Content, ex.Answer}
	}
	for _, s := range symbols {
		script, found := scriptOf(s)
		if !found {
			continue
		}
		if err := a.progress.RecordCharacter(ctx, script, s, ok); err != nil {
			return ok, err
		}
	}
	return ok, nil
}

// scriptOf classifies a single kana symbol.
func scriptOf(symbol string) (corpus.Script, bool) {
	r, _ := utf8.DecodeRuneInString(symbol)
	switch {
	case r == utf8.RuneError:
		return "", false
	case unicode.In(r, unicode.Hiragana):
		return corpus.Hiragana, true
	case unicode.In(r, unicode.Katakana):
		return corpus.Katakana, true
	}
	return "", false
}

// Stats returns a copy of every practice counter.
func (a *App) Stats() progress.Stats {
	return a.progress.Stats()
}

// Recommend picks the next kind to practise at d.
func (a *App) Recommend(d corpus.Difficulty) (exercise.Kind, bool) {
	return a.recommend.Recommend(d)
}

// Suggestions returns the least-practised and focus hints for d.
func (a *App) Suggestions(d corpus.Difficulty) recommend.Suggestions {
	return a.recommend.Suggestions(d)
}

// Reset clears all practice data. Settings survive.
func (a *App) Reset(ctx context.Context) {
	a.progress.Reset(ctx)
}

// Progress exposes the learner record for settings, sessions and summary.
func (a *App) Progress() *progress.Store {
	return a.progress
}

// Advisor exposes the AI study aids.
func (a *App) Advisor() *advisor.Advisor {
	return a.advisor
}

// LLMContext bounds an advisor call by the configured request timeout.
func (a *App) LLMContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.llmTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.llmTimeout)
}

// Corpus exposes the loaded content.
func (a *App) Corpus() *corpus.Corpus {
	return a.corpus
}

// Events returns the LLM event log, or nil when no database is open.
func (a *App) Events() store.EventRepo {
	if a.db == nil {
		return nil
	}
	return a.db.EventRepo()
}
