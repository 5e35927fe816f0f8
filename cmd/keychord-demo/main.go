// Package main is an interactive demo for the keychord registry.
//
// It wires a tcell screen to a registry, registers a handful of shortcuts
// and sequences (optionally from a keymap file), and shows which binding
// each press resolved to.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/key"
	"github.com/dshills/keychord/keymapfile"
	"github.com/dshills/keychord/source"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		keymapPath string
		timeout    time.Duration
	)
	flag.StringVar(&keymapPath, "keymap", "", "path to a keymap file (json, toml or yaml)")
	flag.DurationVar(&timeout, "timeout", time.Second, "sequence idle timeout")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	config := keychord.DefaultConfig()
	config.SequenceTimeout = timeout
	reg := keychord.New(config)

	ui := &demoUI{screen: screen, reg: reg}
	quit := make(chan struct{})
	var quitOnce sync.Once

	report := func(label string) keychord.Callback {
		return func(ev key.Event) {
			ui.setStatus(fmt.Sprintf("%s  (%s)", label, ev.Canonical()))
		}
	}

	reg.RegisterCombination("global", key.MustParse("ctrl+q"), func(key.Event) {
		quitOnce.Do(func() { close(quit) })
	})
	reg.RegisterCombination("global", key.MustParse("ctrl+s"), report("save"))
	reg.RegisterSequence("global", key.MustParseSequence("ctrl+k s"), report("save all"))
	reg.RegisterSequence("global", key.MustParseSequence("g g"), report("go to top"))
	reg.RegisterCombination("modal", key.MustParse("escape"), report("close modal"))
	reg.ToggleGroup("modal", false)
	reg.RegisterCombination("global", key.MustParse("m"), func(ev key.Event) {
		enabled := !reg.GroupActive("modal")
		reg.ToggleGroup("modal", enabled)
		ui.setStatus(fmt.Sprintf("modal group active: %v", enabled))
	})

	if keymapPath != "" {
		actions := map[string]keychord.Callback{
			"demo.report": report("keymap file action"),
		}
		w, err := keymapfile.WatchFile(keymapPath, reg, actions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading keymap: %v\n", err)
			return 1
		}
		defer w.Close()
	}

	src := source.NewTcell(screen, reg)
	src.Fallthrough = func(ev tcell.Event) {
		switch ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			ui.redraw()
		case *tcell.EventKey:
			ui.setStatus("(unbound)")
		}
	}
	src.Start()
	defer src.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	ui.redraw()

	select {
	case <-quit:
	case <-signals:
	}
	return 0
}

// demoUI paints the static help text and the rolling status line.
type demoUI struct {
	mu     sync.Mutex
	screen tcell.Screen
	reg    *keychord.Registry
	status string
}

func (u *demoUI) setStatus(s string) {
	u.mu.Lock()
	u.status = s
	u.mu.Unlock()
	u.redraw()
}

func (u *demoUI) redraw() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.screen.Clear()

	lines := []string{
		"keychord demo",
		"",
		"  Ctrl+S    save",
		"  Ctrl+K S  save all (sequence)",
		"  g g       go to top (sequence)",
		"  m         toggle the modal group",
		"  Escape    close modal (only while the modal group is active)",
		"  Ctrl+Q    quit",
		"",
		"registered: " + fmt.Sprint(u.reg.Registered()),
		"pending:    " + u.reg.Pending(),
		"",
		"last match: " + u.status,
	}

	style := tcell.StyleDefault
	for row, line := range lines {
		for col, r := range line {
			u.screen.SetContent(col, row, r, nil, style)
		}
	}
	u.screen.Show()
}
