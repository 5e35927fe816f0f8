package keychord

import (
	"github.com/google/uuid"

	"github.com/dshills/keychord/key"
)

// Callback is invoked with the originating key event when its registration
// matches. Panics in callbacks are not recovered by the registry; they
// surface to the caller of Dispatch.
type Callback func(key.Event)

// Binding is an introspection record for a stored registration.
type Binding struct {
	// ID uniquely identifies the registration for debug output. Overwriting
	// an entry (last write wins) assigns a fresh ID.
	ID uuid.UUID

	// Group is the group the binding belongs to.
	Group string

	// Key is the canonical key or sequence key the binding is stored under.
	Key string

	// Length is the number of key presses in the binding (1 for a single
	// combination).
	Length int
}

// IsSequence returns true if the binding requires more than one key press.
func (b Binding) IsSequence() bool {
	return b.Length > 1
}

// entry is the stored form of a registration.
type entry struct {
	id     uuid.UUID
	length int
	fn     Callback
}

// group holds one named namespace of registrations. Entries keep their
// listing order from first registration; an overwrite replaces the callback
// in place.
type group struct {
	name    string
	entries map[string]*entry
	order   []string
}

func newGroup(name string) *group {
	return &group{
		name:    name,
		entries: make(map[string]*entry),
	}
}

// set stores a callback under a canonical key, last write wins.
func (g *group) set(canonical string, length int, fn Callback) {
	if e, ok := g.entries[canonical]; ok {
		e.id = uuid.New()
		e.length = length
		e.fn = fn
		return
	}
	g.entries[canonical] = &entry{id: uuid.New(), length: length, fn: fn}
	g.order = append(g.order, canonical)
}

// remove deletes a canonical key; missing keys are a no-op.
func (g *group) remove(canonical string) {
	if _, ok := g.entries[canonical]; !ok {
		return
	}
	delete(g.entries, canonical)
	for i, k := range g.order {
		if k == canonical {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// maxLength returns the longest registration in the group, in key presses.
func (g *group) maxLength() int {
	longest := 0
	for _, e := range g.entries {
		if e.length > longest {
			longest = e.length
		}
	}
	return longest
}
