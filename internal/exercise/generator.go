package exercise

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
)

// Context carries the per-request corpus selection. Script chooses the kana
// table for script-specific kinds; empty means hiragana.
type Context struct {
	Script corpus.Script
}

// Generator builds exercises from a corpus. It is not safe for concurrent
// use because the sampler is shared.
type Generator struct {
	corpus *corpus.Corpus
	rng    *sampler.Sampler
	seg    corpus.Segmenter
	log    *zap.Logger

	// tokens caches segmenter output per sentence text.
	tokens map[string][]string
}

// Option configures a Generator.
type Option func(*Generator)

// WithSampler sets the random source. Tests pass a seeded sampler.
func WithSampler(s *sampler.Sampler) Option {
	return func(g *Generator) { g.rng = s }
}

// WithSegmenter sets the sentence tokenizer used by fill-in-the-blank kinds.
func WithSegmenter(s corpus.Segmenter) Option {
	return func(g *Generator) { g.seg = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New creates a Generator over c. A nil corpus uses the built-in content.
func New(c *corpus.Corpus, opts ...Option) *Generator {
	if c == nil {
		c = corpus.Default(nil)
	}
	g := &Generator{
		corpus: c,
		rng:    sampler.NewRandom(),
		seg:    corpus.WhitespaceSegmenter{},
		log:    zap.NewNop(),
		tokens: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type generatorFunc func(g *Generator, d corpus.Difficulty, ctx Context) (*Exercise, error)

// generators binds every kind to its builder. Kinds may be generated at any
// difficulty; the catalog only controls what is offered.
var generators = map[Kind]generatorFunc{
	KanaRecognition:         (*Generator).kanaRecognition,
	KanaMatching:            (*Generator).kanaMatching,
	SimpleVocabulary:        (*Generator).simpleVocabulary,
	WordImageMatching:       (*Generator).wordImageMatching,
	ListenAndChoose:         (*Generator).listenAndChoose,
	CommonPhrases:           (*Generator).commonPhrases,
	VocabularyCategories:    (*Generator).vocabularyCategories,
	SentenceCompletion:      (*Generator).sentenceCompletion,
	SpeedChallenge:          (*Generator).speedChallenge,
	SpecialKanaCombinations: (*Generator).specialKanaCombinations,
	ListeningComprehension:  (*Generator).listeningComprehension,
	DialogueComprehension:   (*Generator).dialogueComprehension,
	GrammarApplication:      (*Generator).grammarApplication,
	SentenceCreation:        (*Generator).sentenceCreation,
	VerbConjugation:         (*Generator).verbConjugation,
	ReadingComprehension:    (*Generator).readingComprehension,
	SpeechPractice:          (*Generator).speechPractice,
}

// Generate builds one exercise of the given kind. Only invalid arguments
// (unknown kind, difficulty or script) produce an error; thin content
// degrades to a simpler exercise instead.
func (g *Generator) Generate(kind Kind, d corpus.Difficulty, ctx Context) (*Exercise, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	build, ok := generators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	script, err := corpus.ParseScript(string(ctx.Script))
	if err != nil {
		return nil, err
	}
	ctx.Script = script

	ex, err := build(g, d, ctx)
	if err != nil {
		return nil, err
	}
	if ex.Difficulty == "" {
		ex.Difficulty = d
	}
	if verr := Validate(ex); verr != nil {
		g.log.Error("generated exercise failed validation, using default",
			zap.String("kind", string(kind)),
			zap.String("difficulty", string(d)),
			zap.Error(verr))
		ex = g.defaultExercise(d)
	}
	ex.RequestedKind, ex.RequestedDifficulty = kind, d
	return ex, nil
}

// defaultExercise is the last-resort literal question.
func (g *Generator) defaultExercise(d corpus.Difficulty) *Exercise {
	options := []string{"Good morning", "Hello", "Good evening", "Goodbye"}
	sampler.Shuffle(g.rng, options)
	return &Exercise{
		Kind:        SimpleVocabulary,
		Difficulty:  d,
		Format:      FormatMultipleChoice,
		Question:    "What does 'こんにちは' mean?",
		Options:     options,
		Answer:      "Hello",
		Explanation: "'こんにちは' means 'Hello' in English",
		Content:     "こんにちは",
	}
}
