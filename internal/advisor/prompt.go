package advisor

const tutorSystemPrompt = `You are a friendly Japanese tutor for adult beginners learning hiragana, katakana and everyday vocabulary. Answer in English, writing Japanese in kana where possible.`

const learningPathPrompt = `
Create a personalized Japanese syllabary learning path for a beginner who is interested in: {{join .interests ", "}}.

The learning path should include:
1. A recommended order for learning hiragana and katakana characters
2. 5 themed vocabulary groups related to their interests (with 3-4 example words each)
3. A suggested 2-week schedule with specific goals

Make the learning path engaging and connected to the person's interests.
`

const exampleSentencesPrompt = `
Create 3 simple example Japanese sentences that use the Japanese character '{{.character}}'.
Make the sentences related to {{.interests}} if possible.
For each sentence provide:
1. The Japanese sentence
2. Romaji pronunciation
3. English translation

Format each example as:
Japanese: [Japanese sentence]
Romaji: [Romaji]
English: [English translation]
`

const learningTipsPrompt = `
Provide 2-3 helpful tips for remembering and writing the Japanese character '{{.character}}'.
Include any mnemonics, visual similarities, or common confusions to watch out for.
`

const themedVocabularyPrompt = `
List {{.count}} common Japanese words for a beginner on the theme "{{.theme}}".
Write each word in kana and give a short English meaning.
`

const recommendationPrompt = `
A learner at {{.difficulty}} level should practise "{{.kind}}" next.
{{- if .attempts}}
They have answered {{.correct}} of {{.attempts}} of these exercises correctly.
{{- else}}
They have not tried this exercise type yet.
{{- end}}
Write one or two encouraging sentences telling them why this practice helps. No lists, no headings.
`
