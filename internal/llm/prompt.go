package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// Purpose labels recorded with every request in the event log.
const (
	PurposeLearningPath     = "learning-path"
	PurposeExampleSentences = "example-sentences"
	PurposeLearningTips     = "learning-tips"
	PurposeThemedVocabulary = "themed-vocabulary"
	PurposeRecommendation   = "recommendation"
)

// Purposes lists every purpose label.
func Purposes() []string {
	return []string{
		PurposeLearningPath,
		PurposeExampleSentences,
		PurposeLearningTips,
		PurposeThemedVocabulary,
		PurposeRecommendation,
	}
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

// RenderPrompt fills a text/template prompt with vars. A missing variable
// is an error rather than "<no value>" in the prompt.
func RenderPrompt(tmpl string, vars map[string]any) (string, error) {
	t, err := template.New("prompt").
		Funcs(promptFuncs).
		Option("missingkey=error").
		Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse prompt: %w", err)
	}

	var b strings.Builder
	if err := t.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Text returns the response content as plain text. Providers return raw
// text when no schema was requested; a JSON string literal is unquoted.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	s := strings.TrimSpace(string(r.Content))
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal([]byte(s), &unquoted); err == nil {
			return unquoted
		}
	}
	return s
}
