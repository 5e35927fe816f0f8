package source

import (
	"sync"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/key"
)

// Func adapts a push-style event producer to a registry. Hosts that already
// own their event loop deliver each press with Handle; a true result means
// the press matched and the host should suppress its default handling.
// Unconsumed events are forwarded to the optional fallthrough handler.
type Func struct {
	reg *keychord.Registry

	// Fallthrough receives events the registry did not consume.
	// Set before the first Handle call.
	Fallthrough func(key.Event)

	closeOnce sync.Once
}

// NewFunc creates a push-style source dispatching into reg.
func NewFunc(reg *keychord.Registry) *Func {
	return &Func{reg: reg}
}

// Handle dispatches one key press. It reports whether a callback fired;
// after Close it always reports false.
func (s *Func) Handle(ev key.Event) bool {
	if s.reg.Dispatch(ev) {
		return true
	}
	if s.Fallthrough != nil {
		s.Fallthrough(ev)
	}
	return false
}

// Close closes the registry so no callback can fire against disposed state.
// Idempotent.
func (s *Func) Close() {
	s.closeOnce.Do(s.reg.Close)
}
