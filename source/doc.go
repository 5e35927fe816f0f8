// Package source connects host event producers to a keychord.Registry.
//
// A source owns its listener for the registry's lifetime: it converts the
// host's key events into key.Event values, dispatches them, and treats a
// matched dispatch as consumed, suppressing the host's own handling of the
// press. Closing a source detaches the listener and closes the registry, so
// no callback can fire against disposed state.
package source
