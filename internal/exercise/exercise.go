package exercise

import (
	"strings"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
)

// Format describes how the learner answers an exercise.
type Format string

const (
	// FormatMultipleChoice means the learner picks exactly one option.
	FormatMultipleChoice Format = "multiple_choice"

	// FormatMultiSelect means the learner picks every option in Answers.
	FormatMultiSelect Format = "multi_select"

	// FormatFreeText means the learner writes a response that is checked
	// for vocabulary coverage.
	FormatFreeText Format = "free_text"

	// FormatSelfAssessment means the learner rates their own attempt.
	FormatSelfAssessment Format = "self_assessment"
)

// OptionCount is the number of options in a single-answer exercise.
const OptionCount = 4

const (
	// PassingVocabularyHits is how many suggested words a free-text
	// response must contain to pass.
	PassingVocabularyHits = 2

	// PassingConfidence is the lowest self-assessed score (1-5) that
	// counts as a pass.
	PassingConfidence = 4
)

// Exercise is a generated practice item ready for display.
type Exercise struct {
	Kind       Kind
	Difficulty corpus.Difficulty
	Format     Format

	// RequestedKind and RequestedDifficulty are what the caller asked for.
	// They differ from Kind and Difficulty when generation fell back to an
	// easier exercise; progress is credited to the requested pair.
	RequestedKind       Kind
	RequestedDifficulty corpus.Difficulty

	// Question is the prompt shown to the learner.
	Question string

	// Options holds the choices for FormatMultipleChoice and
	// FormatMultiSelect. No two options are equal.
	Options []string

	// Answer is the correct option for FormatMultipleChoice.
	Answer string

	// Answers is the correct subset of Options for FormatMultiSelect.
	Answers []string

	// Explanation is shown after the learner answers.
	Explanation string

	// Content identifies the source item (a character, word, sentence...)
	// so progress tracking can see which items were practised.
	Content string

	JapaneseText  string
	AudioText     string // text for the presentation layer to voice
	ImageRef      string
	Category      string
	Pattern       string
	VerbType      string
	FullSentence  string
	Translation   string
	Passage       string
	Dialogue      []corpus.Line
	TimeLimitSecs int

	// Free-text prompts.
	Scenario   string
	Vocabulary []string
	Example    string

	// Speech prompts.
	PronunciationGuidance string
	KeyVocabulary         []string
}

// Response is the learner's answer. Which field is read depends on Format.
type Response struct {
	Choice     string
	Choices    []string
	Text       string
	Confidence int
}

// Grade reports whether r answers e correctly. Multi-select requires the
// exact correct set; partial selections fail.
func (e *Exercise) Grade(r Response) bool {
	switch e.Format {
	case FormatMultipleChoice:
		return r.Choice == e.Answer
	case FormatMultiSelect:
		return sameSet(r.Choices, e.Answers)
	case FormatFreeText:
		return e.VocabularyHits(r.Text) >= PassingVocabularyHits
	case FormatSelfAssessment:
		return r.Confidence >= PassingConfidence
	}
	return false
}

// VocabularyHits counts how many suggested words appear in text.
func (e *Exercise) VocabularyHits(text string) int {
	n := 0
	for _, w := range e.Vocabulary {
		if w != "" && strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, v := range a {
		as[v] = true
	}
	bs := make(map[string]bool, len(b))
	for _, v := range b {
		bs[v] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if !bs[v] {
			return false
		}
	}
	return true
}
