package corpus

// VocabularyEntry is a word with its English meaning and illustration.
type VocabularyEntry struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	ImageRef string `json:"image"`
}

// Category is a named, ordered group of vocabulary entries.
type Category struct {
	Name    string
	Entries []VocabularyEntry
}

// Vocabulary is the ordered category list.
type Vocabulary []Category

// Category returns the category with the given name.
func (v Vocabulary) Category(name string) (Category, bool) {
	for _, c := range v {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Entries returns every entry across all categories.
func (v Vocabulary) Entries() []VocabularyEntry {
	var out []VocabularyEntry
	for _, c := range v {
		out = append(out, c.Entries...)
	}
	return out
}

// Meanings returns every meaning across all categories.
func (v Vocabulary) Meanings() []string {
	var out []string
	for _, e := range v.Entries() {
		out = append(out, e.Meaning)
	}
	return out
}

// WordsOutside returns every word not in the named category.
func (v Vocabulary) WordsOutside(name string) []string {
	var out []string
	for _, c := range v {
		if c.Name == name {
			continue
		}
		for _, e := range c.Entries {
			out = append(out, e.Word)
		}
	}
	return out
}

// Words returns the words of a category in order.
func (c Category) Words() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Word
	}
	return out
}

// Meanings returns the meanings of a category in order.
func (c Category) Meanings() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Meaning
	}
	return out
}

var defaultVocabulary = Vocabulary{
	{Name: "animals", Entries: []VocabularyEntry{
		{"いぬ", "dog", "dog.jpg"},
		{"ねこ", "cat", "cat.jpg"},
		{"とり", "bird", "bird.jpg"},
		{"うま", "horse", "horse.jpg"},
		{"さかな", "fish", "fish.jpg"},
	}},
	{Name: "colors", Entries: []VocabularyEntry{
		{"あか", "red", "red.jpg"},
		{"あお", "blue", "blue.jpg"},
		{"きいろ", "yellow", "yellow.jpg"},
		{"みどり", "green", "green.jpg"},
		{"しろ", "white", "white.jpg"},
		{"くろ", "black", "black.jpg"},
	}},
	{Name: "food", Entries: []VocabularyEntry{
		{"ごはん", "rice", "rice.jpg"},
		{"みず", "water", "water.jpg"},
		{"パン", "bread", "bread.jpg"},
		{"りんご", "apple", "apple.jpg"},
		{"おちゃ", "tea", "tea.jpg"},
	}},
	{Name: "numbers", Entries: []VocabularyEntry{
		{"いち", "one", "one.jpg"},
		{"に", "two", "two.jpg"},
		{"さん", "three", "three.jpg"},
		{"よん", "four", "four.jpg"},
		{"ご", "five", "five.jpg"},
	}},
}

// Phrase is a fixed everyday expression.
type Phrase struct {
	Text    string `json:"text"`
	Meaning string `json:"meaning"`
}

var defaultPhrases = []Phrase{
	{"おはようございます", "Good morning"},
	{"こんにちは", "Hello"},
	{"こんばんは", "Good evening"},
	{"ありがとうございます", "Thank you"},
	{"すみません", "Excuse me/I'm sorry"},
	{"いただきます", "Thanks for the food (before eating)"},
	{"ごちそうさまでした", "Thanks for the meal (after eating)"},
	{"はじめまして", "Nice to meet you"},
	{"よろしくおねがいします", "Please treat me well"},
	{"さようなら", "Goodbye"},
}

// themedVocabulary backs the offline answer for themed word lists.
var themedVocabulary = map[string][]string{
	"anime":  {"まんが (manga)", "アニメ (anime)", "キャラクター (character)"},
	"food":   {"すし (sushi)", "ラーメン (ramen)", "おちゃ (tea)"},
	"travel": {"でんしゃ (train)", "ホテル (hotel)", "りょこう (trip)"},
}

// ThemedVocabulary returns the built-in word list for a theme.
func ThemedVocabulary(theme string) ([]string, bool) {
	words, ok := themedVocabulary[theme]
	if !ok {
		return nil, false
	}
	out := make([]string, len(words))
	copy(out, words)
	return out, true
}
