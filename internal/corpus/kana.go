package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// Script identifies one of the two kana systems.
type Script string

const (
	Hiragana Script = "hiragana"
	Katakana Script = "katakana"
)

// ErrUnknownScript is returned for a script identifier that is neither
// hiragana nor katakana.
var ErrUnknownScript = errors.New("unknown script")

// ParseScript parses a script identifier. The empty string is hiragana.
func ParseScript(s string) (Script, error) {
	switch Script(strings.ToLower(strings.TrimSpace(s))) {
	case "", Hiragana:
		return Hiragana, nil
	case Katakana:
		return Katakana, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScript, s)
}

// Character is a single kana with its romanized reading.
type Character struct {
	Symbol string `json:"symbol"`
	Romaji string `json:"romaji"`
}

// KanaEntry binds a character to its phonetic key. The key space is shared
// by both scripts, so "ka" names か in hiragana and カ in katakana.
type KanaEntry struct {
	Key string
	Character
}

// Table is an ordered kana table.
type Table []KanaEntry

// Lookup returns the character for a phonetic key.
func (t Table) Lookup(key string) (Character, bool) {
	for _, e := range t {
		if e.Key == key {
			return e.Character, true
		}
	}
	return Character{}, false
}

// Symbols returns every symbol in table order.
func (t Table) Symbols() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Symbol
	}
	return out
}

// Romaji returns every romaji reading in table order.
func (t Table) Romaji() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Romaji
	}
	return out
}

func kanaTable(keys []string, symbols string) Table {
	runes := []rune(symbols)
	if len(runes) != len(keys) {
		panic(fmt.Sprintf("kana table: %d keys, %d symbols", len(keys), len(runes)))
	}
	t := make(Table, len(keys))
	for i, k := range keys {
		t[i] = KanaEntry{Key: k, Character: Character{Symbol: string(runes[i]), Romaji: k}}
	}
	return t
}

var gojuonKeys = []string{
	"a", "i", "u", "e", "o",
	"ka", "ki", "ku", "ke", "ko",
	"sa", "shi", "su", "se", "so",
	"ta", "chi", "tsu", "te", "to",
	"na", "ni", "nu", "ne", "no",
	"ha", "hi", "fu", "he", "ho",
	"ma", "mi", "mu", "me", "mo",
	"ya", "yu", "yo",
	"ra", "ri", "ru", "re", "ro",
	"wa", "wo", "n",
}

var (
	hiraganaTable = kanaTable(gojuonKeys, "あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほまみむめもやゆよらりるれろわをん")
	katakanaTable = kanaTable(gojuonKeys, "アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン")
)

var comboKeys = []string{
	"kya", "kyu", "kyo",
	"sha", "shu", "sho",
	"cha", "chu", "cho",
	"nya", "nyu", "nyo",
	"hya", "hyu", "hyo",
	"mya", "myu", "myo",
	"rya", "ryu", "ryo",
	"gya", "gyu", "gyo",
	"ja", "ju", "jo",
	"bya", "byu", "byo",
	"pya", "pyu", "pyo",
}

func comboTable(symbols []string) Table {
	if len(symbols) != len(comboKeys) {
		panic(fmt.Sprintf("combination table: %d keys, %d symbols", len(comboKeys), len(symbols)))
	}
	t := make(Table, len(comboKeys))
	for i, k := range comboKeys {
		t[i] = KanaEntry{Key: k, Character: Character{Symbol: symbols[i], Romaji: k}}
	}
	return t
}

var (
	hiraganaCombos = comboTable([]string{
		"きゃ", "きゅ", "きょ", "しゃ", "しゅ", "しょ", "ちゃ", "ちゅ", "ちょ",
		"にゃ", "にゅ", "にょ", "ひゃ", "ひゅ", "ひょ", "みゃ", "みゅ", "みょ",
		"りゃ", "りゅ", "りょ", "ぎゃ", "ぎゅ", "ぎょ", "じゃ", "じゅ", "じょ",
		"びゃ", "びゅ", "びょ", "ぴゃ", "ぴゅ", "ぴょ",
	})
	katakanaCombos = comboTable([]string{
		"キャ", "キュ", "キョ", "シャ", "シュ", "ショ", "チャ", "チュ", "チョ",
		"ニャ", "ニュ", "ニョ", "ヒャ", "ヒュ", "ヒョ", "ミャ", "ミュ", "ミョ",
		"リャ", "リュ", "リョ", "ギャ", "ギュ", "ギョ", "ジャ", "ジュ", "ジョ",
		"ビャ", "ビュ", "ビョ", "ピャ", "ピュ", "ピョ",
	})
)

// KanaTable returns the basic table for a script.
func KanaTable(s Script) (Table, error) {
	switch s {
	case Hiragana:
		return hiraganaTable, nil
	case Katakana:
		return katakanaTable, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScript, s)
}

// ComboTable returns the contracted-sound (yōon) table for a script.
func ComboTable(s Script) (Table, error) {
	switch s {
	case Hiragana:
		return hiraganaCombos, nil
	case Katakana:
		return katakanaCombos, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScript, s)
}

var (
	chartVowels     = []string{"a", "i", "u", "e", "o"}
	chartConsonants = []string{"", "k", "s", "t", "n", "h", "m", "y", "r", "w"}
	// Irregular readings in the gojūon grid.
	chartOverrides = map[string]string{"si": "shi", "ti": "chi", "tu": "tsu", "hu": "fu"}
)

// ChartRow is one consonant row of the syllabary chart. Cells hold
// nil where the grid has no character.
type ChartRow struct {
	Consonant string
	Cells     []*Character
}

// Chart lays out a script as the classic consonant × vowel grid, plus the
// standalone ん row.
func Chart(s Script) ([]ChartRow, error) {
	table, err := KanaTable(s)
	if err != nil {
		return nil, err
	}
	rows := make([]ChartRow, 0, len(chartConsonants)+1)
	for _, c := range chartConsonants {
		row := ChartRow{Consonant: strings.ToUpper(c), Cells: make([]*Character, len(chartVowels))}
		for i, v := range chartVowels {
			key := c + v
			if o, ok := chartOverrides[key]; ok {
				key = o
			}
			if ch, ok := table.Lookup(key); ok {
				ch := ch
				row.Cells[i] = &ch
			}
		}
		rows = append(rows, row)
	}
	if ch, ok := table.Lookup("n"); ok {
		row := ChartRow{Consonant: "N", Cells: make([]*Character, len(chartVowels))}
		row.Cells[0] = &ch
		rows = append(rows, row)
	}
	return rows, nil
}
