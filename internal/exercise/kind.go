package exercise

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
)

// Kind identifies an exercise archetype.
type Kind string

const (
	KanaRecognition         Kind = "kana_recognition"
	KanaMatching            Kind = "kana_matching"
	SimpleVocabulary        Kind = "simple_vocabulary"
	WordImageMatching       Kind = "word_image_matching"
	ListenAndChoose         Kind = "listen_and_choose"
	CommonPhrases           Kind = "common_phrases"
	VocabularyCategories    Kind = "vocabulary_categories"
	SentenceCompletion      Kind = "sentence_completion"
	SpeedChallenge          Kind = "speed_challenge"
	SpecialKanaCombinations Kind = "special_kana_combinations"
	ListeningComprehension  Kind = "listening_comprehension"
	DialogueComprehension   Kind = "dialogue_comprehension"
	GrammarApplication      Kind = "grammar_application"
	SentenceCreation        Kind = "sentence_creation"
	VerbConjugation         Kind = "verb_conjugation"
	ReadingComprehension    Kind = "reading_comprehension"
	SpeechPractice          Kind = "speech_practice"
)

// ErrUnknownKind is returned for a practice kind with no generator.
var ErrUnknownKind = errors.New("unknown practice kind")

// Aliases so callers can check every argument error against this package.
var (
	ErrUnknownDifficulty = corpus.ErrUnknownDifficulty
	ErrUnknownScript     = corpus.ErrUnknownScript
)

var catalog = map[corpus.Difficulty][]Kind{
	corpus.Beginner: {
		KanaRecognition,
		KanaMatching,
		SimpleVocabulary,
		WordImageMatching,
		ListenAndChoose,
	},
	corpus.Intermediate: {
		CommonPhrases,
		VocabularyCategories,
		SentenceCompletion,
		SpeedChallenge,
		SpecialKanaCombinations,
		ListeningComprehension,
	},
	corpus.Advanced: {
		DialogueComprehension,
		GrammarApplication,
		SentenceCreation,
		VerbConjugation,
		ReadingComprehension,
		SpeechPractice,
	},
}

// ListPracticeKinds returns the catalog for a difficulty in display order.
// An unknown difficulty has no kinds.
func ListPracticeKinds(d corpus.Difficulty) []Kind {
	kinds := catalog[d]
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// AllKinds returns every catalog kind, beginner first.
func AllKinds() []Kind {
	var out []Kind
	for _, d := range corpus.Difficulties {
		out = append(out, catalog[d]...)
	}
	return out
}

// ParseKind validates a kind identifier.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := generators[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Title returns a display name, e.g. "Kana Recognition".
func (k Kind) Title() string {
	words := strings.Split(string(k), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
