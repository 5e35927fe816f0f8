package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a Combination.
//
// Supported formats:
//   - Single key: "a", "enter", "f5", "@"
//   - With modifiers: "Ctrl+S", "ctrl+shift+p", "Alt+Enter"
//
// Modifier names are case-insensitive and accept the aliases recognized by
// ModifierFromName (ctrl/control/c, shift/s, alt/a/option/opt). The key part
// is taken literally and case-folded; no further normalization is applied.
func Parse(spec string) (Combination, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combination{}, ErrEmptySpec
	}

	// A bare "+" is the plus key, not a separator.
	if spec == "+" {
		return Combination{Key: "+"}, nil
	}

	parts := strings.Split(spec, "+")

	// A trailing empty part is legal only for the plus key itself, written
	// with a doubled separator as in "Ctrl++". Anything else, like "ctrl+",
	// is a spec with the key missing.
	if parts[len(parts)-1] == "" {
		if len(parts) < 2 || parts[len(parts)-2] != "" {
			return Combination{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
		}
		parts = parts[:len(parts)-2]
		parts = append(parts, "+")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Combination{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Combination{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}

	return Combination{Modifiers: mods, Key: keyPart}, nil
}

// ParseSequence parses a space-separated sequence specification like
// "Ctrl+K S" into an ordered list of combinations. A single-element spec is
// legal and equivalent to Parse.
func ParseSequence(spec string) ([]Combination, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}

	combos := make([]Combination, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", f, err)
		}
		combos = append(combos, c)
	}
	return combos, nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Combination {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// MustParseSequence parses a sequence specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseSequence(spec string) []Combination {
	combos, err := ParseSequence(spec)
	if err != nil {
		panic("invalid key sequence: " + spec + ": " + err.Error())
	}
	return combos
}
