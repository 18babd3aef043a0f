package advisor

import "github.com/shioubi0216/ToneMasterAI/internal/llm"

// ThemedVocabularySchema constrains the themed word list answer.
var ThemedVocabularySchema = &llm.Schema{
	Name:        "themed-vocabulary",
	Description: "Beginner Japanese words for one theme",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": MaxThemedWords,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word": map[string]any{
							"type":        "string",
							"minLength":   1,
							"description": "The word written in kana",
						},
						"meaning": map[string]any{
							"type":        "string",
							"minLength":   1,
							"description": "Short English meaning",
						},
					},
					"required":             []any{"word", "meaning"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"words"},
		"additionalProperties": false,
	},
}
