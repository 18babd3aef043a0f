package exercise

import "fmt"

// Validator checks a generated exercise for structural correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs,
	// e.g. "structural", "options".
	Name() string

	// Validate returns nil if the exercise passes.
	Validate(ex *Exercise) *ValidationError
}

// ValidationError describes why an exercise failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the chain Generate runs on every exercise.
var DefaultValidators = []Validator{
	&StructuralValidator{},
	&OptionsValidator{},
	&PromptValidator{},
}

// Validate runs the default chain and returns the first failure.
func Validate(ex *Exercise) error {
	for _, v := range DefaultValidators {
		if verr := v.Validate(ex); verr != nil {
			return verr
		}
	}
	return nil
}

// StructuralValidator checks that the fields every exercise needs are set
// and hold known values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(ex *Exercise) *ValidationError {
	if ex == nil {
		return &ValidationError{Validator: v.Name(), Message: "exercise is nil"}
	}
	if _, ok := generators[ex.Kind]; !ok {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown kind %q", ex.Kind)}
	}
	if !ex.Difficulty.Valid() {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown difficulty %q", ex.Difficulty)}
	}
	if ex.Question == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	switch ex.Format {
	case FormatMultipleChoice, FormatMultiSelect, FormatFreeText, FormatSelfAssessment:
	default:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown format %q", ex.Format)}
	}
	return nil
}

// OptionsValidator checks the answer invariants of choice formats: options
// are distinct, a single answer appears among them, and a multi-select
// answer set is a non-empty proper subset.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(ex *Exercise) *ValidationError {
	if ex.Format != FormatMultipleChoice && ex.Format != FormatMultiSelect {
		return nil
	}
	if len(ex.Options) < 2 {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("need at least 2 options, got %d", len(ex.Options))}
	}
	seen := make(map[string]bool, len(ex.Options))
	for _, o := range ex.Options {
		if o == "" {
			return &ValidationError{Validator: v.Name(), Message: "empty option"}
		}
		if seen[o] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate option %q", o)}
		}
		seen[o] = true
	}

	if ex.Format == FormatMultipleChoice {
		if len(ex.Options) > OptionCount {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("more than %d options", OptionCount)}
		}
		if !seen[ex.Answer] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer %q is not an option", ex.Answer)}
		}
		return nil
	}

	if len(ex.Answers) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "no correct answers"}
	}
	if len(ex.Answers) >= len(ex.Options) {
		return &ValidationError{Validator: v.Name(), Message: "every option is correct"}
	}
	for _, a := range ex.Answers {
		if !seen[a] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer %q is not an option", a)}
		}
	}
	return nil
}

// PromptValidator checks the extra fields of open formats.
type PromptValidator struct{}

func (v *PromptValidator) Name() string { return "prompt" }

func (v *PromptValidator) Validate(ex *Exercise) *ValidationError {
	switch ex.Format {
	case FormatFreeText:
		if len(ex.Vocabulary) < PassingVocabularyHits {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("need at least %d suggested words", PassingVocabularyHits)}
		}
	case FormatSelfAssessment:
		if ex.JapaneseText == "" {
			return &ValidationError{Validator: v.Name(), Message: "nothing to pronounce"}
		}
	}
	return nil
}
