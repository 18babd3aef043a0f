package corpus

// GrammarPattern is a sentence template with one placeholder and a set of
// example sentences that follow it.
//
// ID carries the placeholder as "_" (e.g. "は_です"). Examples separate
// phrase units with spaces so particle-bearing tokens can be located
// without morphological analysis.
type GrammarPattern struct {
	ID          string
	Template    string
	Description string
	Examples    []string
}

var defaultGrammar = []GrammarPattern{
	{
		ID:          "は_です",
		Template:    "XはYです",
		Description: "X is Y",
		Examples:    []string{"わたしは 学生です", "これは ほんです"},
	},
	{
		ID:          "に_あります",
		Template:    "XにYがあります",
		Description: "Y is in/at X",
		Examples:    []string{"部屋に テレビが あります", "公園に 木が あります"},
	},
	{
		ID:          "を_します",
		Template:    "Xをします",
		Description: "Do X",
		Examples:    []string{"勉強を します", "料理を します"},
	},
	{
		ID:          "に_います",
		Template:    "XにYがいます",
		Description: "Y (living thing) is in/at X",
		Examples:    []string{"家に 猫が います", "公園に 人が います"},
	},
}

// BlankParticles are the particles a grammar exercise may blank out.
var BlankParticles = []string{"は", "が", "を", "に", "で"}

// Particles is the full option list for particle questions.
var Particles = []string{"は", "が", "を", "に", "で", "も", "と", "から", "まで"}

// VerbForm is one polite inflection.
type VerbForm string

const (
	FormMasu         VerbForm = "masu"
	FormMasen        VerbForm = "masen"
	FormMashita      VerbForm = "mashita"
	FormMasenDeshita VerbForm = "masendeshita"
)

// VerbForms lists the inflections in table order.
var VerbForms = []VerbForm{FormMasu, FormMasen, FormMashita, FormMasenDeshita}

// Description returns the English name of the form.
func (f VerbForm) Description() string {
	switch f {
	case FormMasu:
		return "present affirmative"
	case FormMasen:
		return "present negative"
	case FormMashita:
		return "past affirmative"
	case FormMasenDeshita:
		return "past negative"
	}
	return string(f)
}

// Verb is a dictionary-form verb with its polite conjugations.
type Verb struct {
	Dictionary string
	Meaning    string
	Type       string
	Forms      map[VerbForm]string
}

var defaultVerbs = []Verb{
	{"食べる", "to eat", "ru-verb", map[VerbForm]string{
		FormMasu: "食べます", FormMasen: "食べません", FormMashita: "食べました", FormMasenDeshita: "食べませんでした",
	}},
	{"飲む", "to drink", "u-verb", map[VerbForm]string{
		FormMasu: "飲みます", FormMasen: "飲みません", FormMashita: "飲みました", FormMasenDeshita: "飲みませんでした",
	}},
	{"行く", "to go", "u-verb (irregular)", map[VerbForm]string{
		FormMasu: "行きます", FormMasen: "行きません", FormMashita: "行きました", FormMasenDeshita: "行きませんでした",
	}},
	{"見る", "to see/watch", "ru-verb", map[VerbForm]string{
		FormMasu: "見ます", FormMasen: "見ません", FormMashita: "見ました", FormMasenDeshita: "見ませんでした",
	}},
	{"買う", "to buy", "u-verb", map[VerbForm]string{
		FormMasu: "買います", FormMasen: "買いません", FormMashita: "買いました", FormMasenDeshita: "買いませんでした",
	}},
}
