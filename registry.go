package keychord

import (
	"strings"
	"sync"
	"time"

	"github.com/dshills/keychord/key"
)

// Registry owns the registration store, the active-group set, and the
// rolling sequence buffer with its idle-reset timer.
//
// The registry itself is synchronous: all mutation and lookup happen on the
// goroutine that calls its methods. The one scheduled piece of work is the
// idle timer, which fires on its own goroutine, so internal state is guarded
// by a mutex. Matched callbacks run outside the lock and may re-enter the
// registry.
type Registry struct {
	mu sync.Mutex

	config Config

	// groups maps group name to its registrations; order preserves the
	// scan order (first registration of each group).
	groups map[string]*group
	order  []string

	// active is the active-group set. Independent of the store: names with
	// no registrations are legal and take latent effect.
	active map[string]struct{}

	// buffer holds the canonical strings of recent presses.
	buffer []string

	// bufferCap is the current effective buffer bound.
	bufferCap int

	seqTimer *time.Timer

	// timerGen invalidates in-flight timer callbacks: a fired handler whose
	// generation no longer matches lost the race to a newer press and must
	// not touch the buffer.
	timerGen uint64

	closed bool
}

// New creates a registry with the given configuration.
func New(config Config) *Registry {
	return &Registry{
		config:    config,
		groups:    make(map[string]*group),
		active:    make(map[string]struct{}),
		bufferCap: effectiveCap(config.MaxBufferLength, 0),
	}
}

// RegisterCombination stores fn under the combination's canonical string in
// the named group, overwriting any prior callback for that exact string. The
// group is created on first use and marked active.
func (r *Registry) RegisterCombination(groupName string, combo key.Combination, fn Callback) {
	r.register(groupName, combo.Canonical(), 1, fn)
}

// RegisterSequence stores fn under the joined sequence key of the ordered
// combinations. A one-element sequence produces the same storage key as
// RegisterCombination with that element; the two calls are interchangeable
// for length 1. An empty slice is ignored.
func (r *Registry) RegisterSequence(groupName string, combos []key.Combination, fn Callback) {
	if len(combos) == 0 {
		return
	}
	r.register(groupName, key.SequenceKey(combos), len(combos), fn)
}

func (r *Registry) register(groupName, canonical string, length int, fn Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	g, ok := r.groups[groupName]
	if !ok {
		g = newGroup(groupName)
		r.groups[groupName] = g
		r.order = append(r.order, groupName)
	}
	g.set(canonical, length, fn)

	// Registration implicitly activates its group.
	r.active[groupName] = struct{}{}

	r.recomputeCapLocked()
}

// Unregister removes registrations. With no combinations it removes the
// entire group from the store; the group's entry in the active set becomes
// moot and a later re-registration re-activates it anyway. With one or more
// combinations it removes only the entry stored under their canonical key
// (a single combination, or the joined sequence key for several). Missing
// groups and entries are silent no-ops.
func (r *Registry) Unregister(groupName string, combos ...key.Combination) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.groups[groupName]
	if !ok {
		return
	}

	if len(combos) == 0 {
		delete(r.groups, groupName)
		for i, name := range r.order {
			if name == groupName {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	} else {
		g.remove(key.SequenceKey(combos))
	}

	r.recomputeCapLocked()
}

// ToggleGroup sets membership of the group in the active set. Idempotent;
// group names with no current registrations are accepted and take latent
// effect once shortcuts are registered under them.
func (r *Registry) ToggleGroup(groupName string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if enabled {
		r.active[groupName] = struct{}{}
	} else {
		delete(r.active, groupName)
	}
}

// Dispatch processes one key-press event. It appends the press to the
// sequence buffer, re-arms the idle timer, and scans active groups in
// registration order: per group the full buffered sequence is checked first,
// then the single most-recent key. On a sequence match the buffer is
// cleared; on a single-key match it is not (unless ClearBufferOnComboMatch).
// The first match wins; its callback is invoked with ev after the registry
// lock is released.
//
// Dispatch returns true when a callback fired; the event source should then
// suppress the host's default handling of the press. A closed registry
// ignores events and returns false.
func (r *Registry) Dispatch(ev key.Event) bool {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return false
	}

	canonical := ev.Canonical()

	r.buffer = append(r.buffer, canonical)
	if over := len(r.buffer) - r.bufferCap; over > 0 {
		r.buffer = r.buffer[over:]
	}

	r.resetSequenceTimeoutLocked()

	joined := strings.Join(r.buffer, key.SequenceSeparator)

	var matched Callback
	for _, name := range r.order {
		if _, ok := r.active[name]; !ok {
			continue
		}
		g := r.groups[name]

		if e, ok := g.entries[joined]; ok {
			matched = e.fn
			r.buffer = r.buffer[:0]
			r.stopSequenceTimeoutLocked()
			break
		}
		if e, ok := g.entries[canonical]; ok {
			matched = e.fn
			if r.config.ClearBufferOnComboMatch {
				r.buffer = r.buffer[:0]
				r.stopSequenceTimeoutLocked()
			}
			break
		}
	}

	r.mu.Unlock()

	if matched == nil {
		return false
	}
	matched(ev)
	return true
}

// Registered returns the canonical keys of every stored entry across all
// groups, irrespective of active state, in scan order: groups in first-
// registration order, entries in per-group registration order.
func (r *Registry) Registered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var keys []string
	for _, name := range r.order {
		keys = append(keys, r.groups[name].order...)
	}
	return keys
}

// Bindings returns introspection records for every stored entry, in the same
// order as Registered.
func (r *Registry) Bindings() []Binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bindings []Binding
	for _, name := range r.order {
		g := r.groups[name]
		for _, k := range g.order {
			e := g.entries[k]
			bindings = append(bindings, Binding{
				ID:     e.id,
				Group:  name,
				Key:    k,
				Length: e.length,
			})
		}
	}
	return bindings
}

// GroupActive reports whether the named group is currently in the active set.
func (r *Registry) GroupActive(groupName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[groupName]
	return ok
}

// Pending returns the current sequence buffer as a joined key string.
// Empty when no sequence is in progress.
func (r *Registry) Pending() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.buffer, key.SequenceSeparator)
}

// Close stops the idle timer and marks the registry closed. Further
// dispatches and registrations are ignored. Idempotent.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.buffer = nil
	r.stopSequenceTimeoutLocked()
}

// resetSequenceTimeoutLocked cancels any pending timer and re-arms it.
// Caller must hold the lock.
func (r *Registry) resetSequenceTimeoutLocked() {
	r.stopSequenceTimeoutLocked()

	if r.config.SequenceTimeout > 0 {
		gen := r.timerGen
		r.seqTimer = time.AfterFunc(r.config.SequenceTimeout, func() {
			r.handleSequenceTimeout(gen)
		})
	}
}

// stopSequenceTimeoutLocked stops the pending timer, if any, and bumps the
// generation so a callback that already fired but has not yet taken the lock
// becomes a no-op. Caller must hold the lock.
func (r *Registry) stopSequenceTimeoutLocked() {
	r.timerGen++
	if r.seqTimer != nil {
		r.seqTimer.Stop()
		r.seqTimer = nil
	}
}

// handleSequenceTimeout clears the sequence buffer when the idle timer fires.
// A stale generation means a newer press re-armed the timer after this
// callback was scheduled; its buffer must be left alone.
func (r *Registry) handleSequenceTimeout(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || gen != r.timerGen {
		return
	}
	r.buffer = r.buffer[:0]
	r.seqTimer = nil
}

// recomputeCapLocked recalculates the effective buffer bound from the
// longest registered sequence. Caller must hold the lock.
func (r *Registry) recomputeCapLocked() {
	longest := 0
	for _, g := range r.groups {
		if l := g.maxLength(); l > longest {
			longest = l
		}
	}
	r.bufferCap = effectiveCap(r.config.MaxBufferLength, longest)

	if over := len(r.buffer) - r.bufferCap; over > 0 {
		r.buffer = r.buffer[over:]
	}
}

// effectiveCap resolves the buffer bound: an explicit configured bound wins,
// otherwise the longest registered sequence, never less than 1.
func effectiveCap(configured, longest int) int {
	if configured > 0 {
		return configured
	}
	if longest > 1 {
		return longest
	}
	return 1
}
