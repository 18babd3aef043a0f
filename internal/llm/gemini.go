package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-lite":  "gemini-2.5-flash-lite",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a provider for the Gemini API.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config, err := geminiConfig(req)
	if err != nil {
		return nil, err
	}
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.Code, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	content := json.RawMessage(result.Text())
	stop := StopEnd
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		stop = StopMaxTokens
	}
	if err := checkAnswer(req, stop, content); err != nil {
		return nil, err
	}

	resp := &Response{Content: content, Model: p.model, StopReason: stop}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func geminiConfig(req Request) (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		schema, err := buildGeminiSchema(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", req.Schema.Name, err)
		}
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}
	return config, nil
}

// schemaNode is the subset of JSON Schema that Gemini's OpenAPI-style
// schema can express. additionalProperties has no equivalent and is
// dropped; the answer is still validated against the full definition.
type schemaNode struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Properties  map[string]*schemaNode `json:"properties"`
	Required    []string               `json:"required"`
	Enum        []string               `json:"enum"`
	Items       *schemaNode            `json:"items"`
	MinItems    *int64                 `json:"minItems"`
	MaxItems    *int64                 `json:"maxItems"`
	MinLength   *int64                 `json:"minLength"`
	MaxLength   *int64                 `json:"maxLength"`
}

// buildGeminiSchema converts a JSON Schema definition. Going through JSON
// lets counts be written as Go ints or decoded floats alike.
func buildGeminiSchema(def map[string]any) (*genai.Schema, error) {
	b, err := json.Marshal(def)
	if err != nil {
		return nil, err
	}
	var root schemaNode
	if err := json.Unmarshal(b, &root); err != nil {
		return nil, err
	}
	return root.gemini(), nil
}

func (n *schemaNode) gemini() *genai.Schema {
	if n == nil {
		return nil
	}
	s := &genai.Schema{
		Type:        genai.Type(strings.ToUpper(n.Type)),
		Description: n.Description,
		Required:    n.Required,
		Enum:        n.Enum,
		Items:       n.Items.gemini(),
		MinItems:    n.MinItems,
		MaxItems:    n.MaxItems,
		MinLength:   n.MinLength,
		MaxLength:   n.MaxLength,
	}
	if s.Type == "" {
		s.Type = genai.TypeString
	}
	if len(n.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(n.Properties))
		for name, prop := range n.Properties {
			s.Properties[name] = prop.gemini()
		}
		s.PropertyOrdering = propertyOrder(n)
	}
	return s
}

// propertyOrder lists required properties first, in their declared
// order, then the rest alphabetically. Gemini emits fields in this order.
func propertyOrder(n *schemaNode) []string {
	order := make([]string, 0, len(n.Properties))
	for _, name := range n.Required {
		if _, ok := n.Properties[name]; ok {
			order = append(order, name)
		}
	}
	var rest []string
	for name := range n.Properties {
		if !slices.Contains(order, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}
