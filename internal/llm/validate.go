package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas holds compiled definitions keyed by Schema.Name.
var compiledSchemas sync.Map

// ValidateResponse checks raw against schema and returns *ErrInvalidResponse
// when it is not JSON or does not match. A nil schema accepts anything.
func ValidateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("%s: not JSON: %w", schema.Name, err)}
	}
	compiled, err := schema.compile()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("%s: %w", schema.Name, err)}
	}
	return nil
}

// Decode validates a structured answer and unmarshals it into T.
func Decode[T any](schema *Schema, raw json.RawMessage) (T, error) {
	var out T
	if err := ValidateResponse(schema, raw); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("decode: %w", err)}
	}
	return out, nil
}

// checkAnswer applies the rules every adapter shares once a provider has
// answered. A structured answer cut off by the token limit cannot be
// repaired, so it is ErrMaxTokensExceeded; otherwise it must match the
// schema. A plain-text answer must not be blank.
func checkAnswer(req Request, stop string, content json.RawMessage) error {
	if req.Schema == nil {
		if strings.TrimSpace(string(content)) == "" {
			return &ErrInvalidResponse{Content: content, Err: errors.New("empty answer")}
		}
		return nil
	}
	if stop == StopMaxTokens {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return ValidateResponse(req.Schema, content)
}

// compile returns the cached compiled form of s. Definitions go through a
// JSON round trip because the compiler wants decoded JSON values, and Go
// literals such as []string or int would not match its type switches.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	b, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}

	url := "mem://tonemaster/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	compiledSchemas.Store(s.Name, compiled)
	return compiled, nil
}
