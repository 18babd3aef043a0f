package corpus

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Segmenter splits a sentence into word tokens.
type Segmenter interface {
	Segment(text string) []string
}

// WhitespaceSegmenter drops the full stop, treats the comma as a space and
// splits on whitespace. Unspaced Japanese comes back as a single token.
type WhitespaceSegmenter struct{}

func (WhitespaceSegmenter) Segment(text string) []string {
	text = strings.ReplaceAll(text, "。", "")
	text = strings.ReplaceAll(text, "、", " ")
	return strings.Fields(text)
}

// KagomeSegmenter tokenizes with the IPA dictionary, so unspaced text yields
// one token per morpheme. Symbol and whitespace tokens are dropped.
type KagomeSegmenter struct {
	t *tokenizer.Tokenizer
}

// NewKagomeSegmenter loads the IPA dictionary. This takes a noticeable
// amount of memory and should happen once per process.
func NewKagomeSegmenter() (*KagomeSegmenter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("create tokenizer: %w", err)
	}
	return &KagomeSegmenter{t: t}, nil
}

func (k *KagomeSegmenter) Segment(text string) []string {
	var out []string
	for _, tok := range k.t.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		surface := strings.TrimSpace(tok.Surface)
		if surface == "" || isPunctuation(surface) {
			continue
		}
		if pos := tok.POS(); len(pos) > 0 && pos[0] == "記号" {
			continue
		}
		out = append(out, surface)
	}
	return out
}

func isPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// NewSegmenter returns the segmenter named by kind: "whitespace" (or empty)
// or "kagome".
func NewSegmenter(kind string) (Segmenter, error) {
	switch kind {
	case "", "whitespace":
		return WhitespaceSegmenter{}, nil
	case "kagome":
		return NewKagomeSegmenter()
	}
	return nil, fmt.Errorf("unknown segmenter %q", kind)
}
