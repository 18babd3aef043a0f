package corpus

// Line is one utterance in a dialogue.
type Line struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Comprehension is a fixed question over a dialogue or reading passage.
// Exactly one of Dialogue and Passage is set.
type Comprehension struct {
	Dialogue    []Line
	Passage     string
	Question    string
	Options     []string
	Answer      string
	Explanation string
}

var defaultDialogues = []Comprehension{
	{
		Dialogue: []Line{
			{"A", "こんにちは。お元気ですか？"},
			{"B", "はい、元気です。ありがとう。"},
			{"A", "今日は天気がいいですね。"},
			{"B", "そうですね。とても暖かいです。"},
		},
		Question:    "この会話で、天気はどうですか？",
		Options:     []string{"雨です", "暖かいです", "寒いです", "曇りです"},
		Answer:      "暖かいです",
		Explanation: "Bさんは「とても暖かいです」と言っています。",
	},
	{
		Dialogue: []Line{
			{"A", "すみません、駅はどこですか？"},
			{"B", "駅は右に行って、二つ目の角を左に曲がってください。"},
			{"A", "ありがとうございます。"},
			{"B", "いいえ、どういたしまして。"},
		},
		Question:    "駅に行くには、どうすればいいですか？",
		Options:     []string{"左に行って、右に曲がる", "右に行って、左に曲がる", "まっすぐ行く", "バスに乗る"},
		Answer:      "右に行って、左に曲がる",
		Explanation: "Bさんは「駅は右に行って、二つ目の角を左に曲がってください」と言っています。",
	},
}

var defaultReadings = []Comprehension{
	{
		Passage:     "私の名前は田中です。日本人です。二十歳です。東京に住んでいます。大学生です。日本語と英語を勉強しています。",
		Question:    "田中さんは何歳ですか？",
		Options:     []string{"十歳です", "二十歳です", "三十歳です", "四十歳です"},
		Answer:      "二十歳です",
		Explanation: "The passage states '二十歳です' which means 'I am 20 years old.'",
	},
	{
		Passage:     "今日は土曜日です。天気がいいです。私は公園に行きます。友達と会います。一緒に昼ごはんを食べます。それから、映画を見ます。",
		Question:    "この人は、誰と会いますか？",
		Options:     []string{"先生と会います", "家族と会います", "友達と会います", "一人です"},
		Answer:      "友達と会います",
		Explanation: "The passage states '友達と会います' which means 'I will meet with friends.'",
	},
}

// Scenario is a free-writing prompt with suggested vocabulary.
type Scenario struct {
	Prompt      string
	Vocabulary  []string
	Example     string
	Translation string
}

var defaultScenarios = []Scenario{
	{
		Prompt:      "Introduce yourself (name, age, nationality)",
		Vocabulary:  []string{"わたし", "なまえ", "さい", "にほんじん", "です"},
		Example:     "わたしのなまえはたろうです。にじゅうさいです。にほんじんです。",
		Translation: "My name is Taro. I am 20 years old. I am Japanese.",
	},
	{
		Prompt:      "Describe what you like to eat",
		Vocabulary:  []string{"たべもの", "すし", "ラーメン", "が", "すき", "です"},
		Example:     "わたしはすしがすきです。ラーメンもすきです。",
		Translation: "I like sushi. I also like ramen.",
	},
	{
		Prompt:      "Ask where something is",
		Vocabulary:  []string{"トイレ", "えき", "どこ", "ですか"},
		Example:     "トイレはどこですか。えきはどこですか。",
		Translation: "Where is the toilet? Where is the station?",
	},
}

// SpeechPhrase is a pronunciation drill used when no sentence corpus is
// available.
type SpeechPhrase struct {
	Text        string
	Translation string
	Guidance    string
}

var defaultSpeechPhrases = []SpeechPhrase{
	{"日本語を 勉強するのは 楽しいです。", "Studying Japanese is fun.", "Focus on the rhythm of 楽しい (tanoshii)"},
	{"来週、友達と 京都に 行きます。", "Next week, I will go to Kyoto with my friends.", "Pay attention to the particles と and に"},
}

// ListeningTopics are generic gist descriptions used as listening
// distractors.
var ListeningTopics = []string{
	"Asking for directions",
	"Talking about the weather",
	"Introducing oneself",
	"Making an appointment",
	"Ordering food",
	"Discussing a hobby",
}

// CommonWords pad fill-in-the-blank options when the sentence pool is thin.
var CommonWords = []string{"わたし", "がっこう", "ともだち", "せんせい", "たべる", "いきます", "きょう", "あした"}
