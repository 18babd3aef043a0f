package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// SentenceEntry is one example sentence.
type SentenceEntry struct {
	Text        string   `json:"text"`
	Translation string   `json:"translation"`
	Tags        []string `json:"tags,omitempty"`
	SourceID    string   `json:"source_id,omitempty"`
}

// Sentences holds example sentences bucketed by difficulty.
type Sentences struct {
	buckets  map[Difficulty][]SentenceEntry
	fallback bool
}

// NewSentences builds a collection from explicit buckets.
func NewSentences(beginner, intermediate, advanced []SentenceEntry) *Sentences {
	return &Sentences{buckets: map[Difficulty][]SentenceEntry{
		Beginner:     beginner,
		Intermediate: intermediate,
		Advanced:     advanced,
	}}
}

// Tier returns the sentences assigned to d.
func (s *Sentences) Tier(d Difficulty) []SentenceEntry {
	if s == nil {
		return nil
	}
	return s.buckets[d]
}

// Len returns the total number of sentences.
func (s *Sentences) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, b := range s.buckets {
		n += len(b)
	}
	return n
}

// IsFallback reports whether the collection is the built-in literal set.
func (s *Sentences) IsFallback() bool {
	return s != nil && s.fallback
}

// Classify assigns a sentence to a tier: short sentences without
// sentence punctuation are beginner, anything under 20 characters is
// intermediate, the rest advanced.
func Classify(text string) Difficulty {
	n := utf8.RuneCountInString(text)
	if n < 10 && !strings.ContainsAny(text, "。、！？!?") {
		return Beginner
	}
	if n < 20 {
		return Intermediate
	}
	return Advanced
}

// SentenceSource locates the external sentence dataset.
type SentenceSource struct {
	// SentencesPath is a TSV of (id, language, text). Required.
	SentencesPath string
	// TranslationsPath is a TSV of (sentence id, translation id, text).
	// Optional.
	TranslationsPath string
	// Language filters SentencesPath rows. Default "jpn".
	Language string
	// MaxRows caps how many rows of SentencesPath are read. Default 5000.
	MaxRows int
}

// DefaultMaxRows bounds the sentence read when SentenceSource.MaxRows is 0.
const DefaultMaxRows = 5000

// LoadSentences reads and classifies the external dataset. It never fails:
// any problem with the sentence file yields the built-in fallback set, and
// a problem with the translation file leaves translations empty.
func LoadSentences(ctx context.Context, src SentenceSource, log *zap.Logger) *Sentences {
	if log == nil {
		log = zap.NewNop()
	}
	if src.SentencesPath == "" {
		log.Info("no sentence dataset configured, using built-in sentences")
		return FallbackSentences()
	}

	entries, err := readSentenceFile(ctx, src)
	if err != nil {
		log.Warn("sentence dataset unavailable, using built-in sentences",
			zap.String("path", src.SentencesPath), zap.Error(err))
		return FallbackSentences()
	}
	if len(entries) == 0 {
		log.Warn("sentence dataset has no usable rows, using built-in sentences",
			zap.String("path", src.SentencesPath))
		return FallbackSentences()
	}

	if src.TranslationsPath != "" {
		translations, err := readTranslationFile(ctx, src.TranslationsPath)
		if err != nil {
			log.Warn("translations unavailable",
				zap.String("path", src.TranslationsPath), zap.Error(err))
		} else {
			for i := range entries {
				entries[i].Translation = translations[entries[i].SourceID]
			}
		}
	}

	s := NewSentences(nil, nil, nil)
	for _, e := range entries {
		d := Classify(e.Text)
		s.buckets[d] = append(s.buckets[d], e)
	}
	log.Info("loaded sentence dataset",
		zap.Int("beginner", len(s.buckets[Beginner])),
		zap.Int("intermediate", len(s.buckets[Intermediate])),
		zap.Int("advanced", len(s.buckets[Advanced])))
	return s
}

func newTSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = 3
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

func readSentenceFile(ctx context.Context, src SentenceSource) ([]SentenceEntry, error) {
	f, err := os.Open(src.SentencesPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lang := src.Language
	if lang == "" {
		lang = "jpn"
	}
	maxRows := src.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	r := newTSVReader(f)
	var out []SentenceEntry
	for row := 0; row < maxRows; row++ {
		if row%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		if rec[1] != lang {
			continue
		}
		text := strings.TrimSpace(rec[2])
		if text == "" {
			continue
		}
		out = append(out, SentenceEntry{Text: text, SourceID: strings.TrimSpace(rec[0])})
	}
	return out, nil
}

func readTranslationFile(ctx context.Context, path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := newTSVReader(f)
	out := make(map[string]string)
	for row := 0; ; row++ {
		if row%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		out[strings.TrimSpace(rec[0])] = strings.TrimSpace(rec[2])
	}
}

// FallbackSentences returns the built-in literal sentence set. Sentences
// are written with spaces between phrases so the whitespace segmenter can
// blank them.
func FallbackSentences() *Sentences {
	s := NewSentences(
		[]SentenceEntry{
			{Text: "これは ほんです。", Translation: "This is a book.", Tags: []string{"simple", "object"}},
			{Text: "おはようございます。", Translation: "Good morning.", Tags: []string{"greeting"}},
			{Text: "ありがとうございます。", Translation: "Thank you.", Tags: []string{"courtesy"}},
			{Text: "わたしは がくせいです。", Translation: "I am a student.", Tags: []string{"introduction"}},
			{Text: "あのひとは せんせいです。", Translation: "That person is a teacher.", Tags: []string{"occupation"}},
		},
		[]SentenceEntry{
			{Text: "あしたは あめが ふるでしょう。", Translation: "It will probably rain tomorrow.", Tags: []string{"weather"}},
			{Text: "この ほんは とても おもしろいです。", Translation: "This book is very interesting.", Tags: []string{"opinion"}},
			{Text: "わたしは まいにち にほんごを べんきょうします。", Translation: "I study Japanese every day.", Tags: []string{"routine"}},
			{Text: "この レストランの りょうりは おいしいです。", Translation: "The food at this restaurant is delicious.", Tags: []string{"food"}},
		},
		[]SentenceEntry{
			{Text: "日本の 伝統文化に ついて 詳しく 説明して ください。", Translation: "Please explain Japanese traditional culture in detail.", Tags: []string{"culture"}},
			{Text: "環境問題の 解決策に ついて 話し合いましょう。", Translation: "Let's discuss solutions for environmental issues.", Tags: []string{"environment"}},
			{Text: "自分の 将来の 目標を 達成する ために、毎日 努力する ことが 大切です。", Translation: "It's important to make efforts every day to achieve your future goals.", Tags: []string{"motivation"}},
			{Text: "東京は 世界で 最も 人口が 多い 都市の 一つです。", Translation: "Tokyo is one of the most populous cities in the world.", Tags: []string{"facts"}},
		},
	)
	s.fallback = true
	return s
}
