package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty is a learner proficiency tier.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists every tier from easiest to hardest.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// ErrUnknownDifficulty is returned for a tier name outside Difficulties.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty parses a tier name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// Valid reports whether d is one of the three tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Easier returns the tier below d. Beginner is its own easier tier.
func (d Difficulty) Easier() Difficulty {
	switch d {
	case Advanced:
		return Intermediate
	default:
		return Beginner
	}
}

// Title returns the display name, e.g. "Beginner".
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}
