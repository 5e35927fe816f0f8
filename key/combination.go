package key

import "strings"

// SequenceSeparator joins the canonical forms of a sequence's elements.
// A canonical form never contains a space, so the joined key is unambiguous.
const SequenceSeparator = " "

// Combination describes a single key press: a set of modifiers plus a key
// identifier. The identifier is compared case-insensitively; matching is
// always done over the canonical string, never over Combination values.
type Combination struct {
	// Modifiers contains the modifier keys held during the press.
	Modifiers Modifier

	// Key identifies the primary key, e.g. "s", "enter", "f5".
	Key string
}

// Comb is a convenience constructor for a Combination.
func Comb(mods Modifier, k string) Combination {
	return Combination{Modifiers: mods, Key: k}
}

// Canonical returns the deterministic string form of the combination:
// present modifiers in the fixed order ctrl, shift, alt followed by the
// lower-cased key, joined with "+". An empty key is canonicalized literally;
// such entries are stored and matched as-is.
func (c Combination) Canonical() string {
	mods := c.Modifiers.String()
	k := strings.ToLower(c.Key)
	if mods == "" {
		return k
	}
	return mods + "+" + k
}

// Equals returns true if two combinations canonicalize identically.
func (c Combination) Equals(other Combination) bool {
	return c.Canonical() == other.Canonical()
}

// String implements fmt.Stringer using the canonical form.
func (c Combination) String() string {
	return c.Canonical()
}

// SequenceKey returns the canonical key for an ordered list of combinations:
// each element's canonical form joined with SequenceSeparator. A one-element
// list yields the element's own canonical form, so a single combination and
// a one-element sequence registered under the same group alias each other.
func SequenceKey(combos []Combination) string {
	if len(combos) == 0 {
		return ""
	}
	parts := make([]string, len(combos))
	for i, c := range combos {
		parts[i] = c.Canonical()
	}
	return strings.Join(parts, SequenceSeparator)
}
