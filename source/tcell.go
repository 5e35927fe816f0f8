package source

import (
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/key"
)

// Tcell feeds key events from a tcell.Screen into a registry. Events the
// registry does not consume are forwarded to an optional fallthrough
// handler, which also receives all non-key events (resize, mouse, paste).
type Tcell struct {
	screen tcell.Screen
	reg    *keychord.Registry

	// Fallthrough receives unconsumed and non-key events. Set before Start.
	Fallthrough func(tcell.Event)

	quit      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewTcell creates a source reading from screen and dispatching into reg.
// The screen must already be initialized.
func NewTcell(screen tcell.Screen, reg *keychord.Registry) *Tcell {
	return &Tcell{
		screen: screen,
		reg:    reg,
		quit:   make(chan struct{}),
	}
}

// Start begins delivering events on a background goroutine.
func (s *Tcell) Start() {
	ch := make(chan tcell.Event, 16)
	go s.screen.ChannelEvents(ch, s.quit)

	s.wg.Add(1)
	go s.loop(ch)
}

// Close detaches the listener, waits for the delivery goroutine to exit,
// and closes the registry. Idempotent.
func (s *Tcell) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
		s.reg.Close()
	})
}

func (s *Tcell) loop(ch <-chan tcell.Event) {
	defer s.wg.Done()

	for ev := range ch {
		if ke, ok := ev.(*tcell.EventKey); ok {
			if s.reg.Dispatch(ConvertKeyEvent(ke)) {
				// Matched: the press is consumed.
				continue
			}
		}
		if s.Fallthrough != nil {
			s.Fallthrough(ev)
		}
	}
}

// ConvertKeyEvent translates a tcell key event into the registry's event
// form. Control-letter keys arrive from the terminal as dedicated key codes;
// they are unfolded back into a ctrl modifier plus the letter.
func ConvertKeyEvent(ev *tcell.EventKey) key.Event {
	mods := convertModifiers(ev.Modifiers())

	var name string
	switch k := ev.Key(); k {
	case tcell.KeyRune:
		// A literal " " would collide with the sequence separator, making
		// the joined buffer ambiguous; the spacebar gets a named identifier.
		if ev.Rune() == ' ' {
			name = "space"
		} else {
			name = string(ev.Rune())
		}
	case tcell.KeyEnter:
		name = "enter"
	case tcell.KeyTab:
		name = "tab"
	case tcell.KeyEscape:
		name = "escape"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "backspace"
	case tcell.KeyDelete:
		name = "delete"
	case tcell.KeyInsert:
		name = "insert"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyPgUp:
		name = "pageup"
	case tcell.KeyPgDn:
		name = "pagedown"
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	default:
		switch {
		case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
			mods = mods.With(key.ModCtrl)
			name = string(rune('a' + k - tcell.KeyCtrlA))
		case k >= tcell.KeyF1 && k <= tcell.KeyF64:
			name = "f" + strconv.Itoa(int(k-tcell.KeyF1)+1)
		default:
			name = tcell.KeyNames[k]
		}
	}

	return key.Event{
		Modifiers: mods,
		Key:       name,
		Timestamp: ev.When(),
	}
}

func convertModifiers(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	return mods
}
