// Package corpus holds the static learning content: kana tables,
// vocabulary, phrases, grammar patterns, verb conjugations, comprehension
// passages and the example sentence collection.
//
// Everything here is read-only after construction and may be shared across
// the process.
package corpus

// Corpus bundles every content table the exercise generator draws from.
type Corpus struct {
	Hiragana       Table
	Katakana       Table
	HiraganaCombos Table
	KatakanaCombos Table
	Vocabulary     Vocabulary
	Phrases        []Phrase
	Grammar        []GrammarPattern
	Verbs          []Verb
	Dialogues      []Comprehension
	Readings       []Comprehension
	Scenarios      []Scenario
	SpeechPhrases  []SpeechPhrase
	Sentences      *Sentences
}

// Default returns the built-in content with the given sentence collection.
// A nil collection is replaced by the fallback literals.
func Default(sentences *Sentences) *Corpus {
	if sentences == nil {
		sentences = FallbackSentences()
	}
	return &Corpus{
		Hiragana:       hiraganaTable,
		Katakana:       katakanaTable,
		HiraganaCombos: hiraganaCombos,
		KatakanaCombos: katakanaCombos,
		Vocabulary:     defaultVocabulary,
		Phrases:        defaultPhrases,
		Grammar:        defaultGrammar,
		Verbs:          defaultVerbs,
		Dialogues:      defaultDialogues,
		Readings:       defaultReadings,
		Scenarios:      defaultScenarios,
		SpeechPhrases:  defaultSpeechPhrases,
		Sentences:      sentences,
	}
}

// Kana returns the basic table of c for a script.
func (c *Corpus) Kana(s Script) (Table, error) {
	switch s {
	case Hiragana:
		return c.Hiragana, nil
	case Katakana:
		return c.Katakana, nil
	}
	_, err := KanaTable(s)
	return nil, err
}

// Combos returns the contracted-sound table of c for a script.
func (c *Corpus) Combos(s Script) (Table, error) {
	switch s {
	case Hiragana:
		return c.HiraganaCombos, nil
	case Katakana:
		return c.KatakanaCombos, nil
	}
	_, err := ComboTable(s)
	return nil, err
}

// Verb returns the verb with the given dictionary form.
func (c *Corpus) Verb(dictionary string) (Verb, bool) {
	for _, v := range c.Verbs {
		if v.Dictionary == dictionary {
			return v, true
		}
	}
	return Verb{}, false
}
