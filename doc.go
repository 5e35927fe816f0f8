// Package keychord provides a keyboard-shortcut dispatch registry.
//
// A Registry matches incoming key-press events against registered key
// combinations and ordered multi-key sequences, and invokes the associated
// callback. Registrations are organized into named groups that can be
// toggled active or inactive as a unit, so an application can scope
// shortcuts to a context (a modal, a pane) without tearing registrations
// down.
//
// # Matching
//
// Every dispatched press is appended to a single rolling sequence buffer
// shared by all groups. The buffer is cleared when a full sequence matches
// or when the idle timeout elapses with no further presses. Within a scan,
// the full buffered sequence is checked before the single most-recent key,
// and groups are scanned in the order they were first registered; the first
// active group containing a match wins.
//
// A single-key match does not clear the buffer, so a one-key shortcut firing
// mid-sequence does not abort a longer sequence accumulating in parallel.
// Set Config.ClearBufferOnComboMatch to change that.
//
// # Usage
//
//	reg := keychord.New(keychord.DefaultConfig())
//	defer reg.Close()
//
//	reg.RegisterCombination("global", key.MustParse("Ctrl+S"), save)
//	reg.RegisterSequence("global", key.MustParseSequence("Ctrl+K S"), saveAll)
//
//	// From the event source, per key press:
//	if reg.Dispatch(ev) {
//	    // matched; suppress the host's default handling
//	}
//
//	reg.ToggleGroup("modal", true) // activate a context
//
// All registry operations are total: unregistering a missing group or entry
// is a no-op, and toggling a group with no registrations is legal and takes
// latent effect once shortcuts are registered under that name.
package keychord
