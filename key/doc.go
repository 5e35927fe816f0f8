// Package key provides the key-combination model and canonicalization for
// the keychord shortcut registry.
//
// This package defines the fundamental types for describing keyboard input:
//
//   - Modifier: modifier keys (Ctrl, Shift, Alt)
//   - Combination: a single key press with modifiers
//   - Event: an observed key press delivered to the registry
//
// # Canonical form
//
// All matching in the registry is string equality over canonical forms. A
// Combination canonicalizes to its present modifiers in the fixed order
// ctrl, shift, alt followed by the lower-cased key identifier, joined with
// "+". A sequence of combinations canonicalizes to the element forms joined
// with a single space:
//
//	Combination{Modifiers: ModCtrl, Key: "S"}   -> "ctrl+s"
//	[Ctrl+K, s]                                 -> "ctrl+k s"
//
// Two combinations with the same modifier set and the same key (compared
// case-insensitively) always produce the same canonical string, regardless
// of how they were constructed.
//
// # Key specifications
//
// Parse and ParseSequence accept human-readable specs:
//
//   - Simple keys: "a", "enter", "f5"
//   - With modifiers: "Ctrl+S", "ctrl+shift+p", "Alt+Enter"
//   - Sequences: space-separated, "Ctrl+K S"
package key
