package key

import (
	"fmt"
	"time"
)

// Event represents a single observed key press delivered to the registry.
// The registry consumes only the modifier flags and the key identifier; the
// full event is passed through to matched callbacks unchanged.
type Event struct {
	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Key identifies the key pressed, e.g. "s", "enter", "f5".
	// Compared case-insensitively.
	Key string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(mods Modifier, k string) Event {
	return Event{
		Modifiers: mods,
		Key:       k,
		Timestamp: time.Now(),
	}
}

// Combination returns the logical combination this event represents.
func (e Event) Combination() Combination {
	return Combination{Modifiers: e.Modifiers, Key: e.Key}
}

// Canonical returns the canonical string form of the event's combination.
func (e Event) Canonical() string {
	return e.Combination().Canonical()
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Canonical() == other.Canonical()
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Canonical() == parsed.Canonical()
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Modifiers: %q, Key: %q}", e.Modifiers.String(), e.Key)
}
