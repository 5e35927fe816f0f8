package keymapfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/key"
)

func writeKeymap(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatchFileInitialLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.yaml")
	writeKeymap(t, path, yamlKeymap)

	reg := keychord.New(keychord.DefaultConfig())
	defer reg.Close()

	fired := 0
	actions := map[string]keychord.Callback{
		"file.save":    func(key.Event) { fired++ },
		"file.saveAll": func(key.Event) {},
		"modal.close":  func(key.Event) {},
	}

	w, err := WatchFile(path, reg, actions)
	if err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}
	defer w.Close()

	reg.Dispatch(key.NewEvent(key.ModCtrl, "s"))
	if fired != 1 {
		t.Errorf("fired = %d after initial load, want 1", fired)
	}
}

func TestWatchFileReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.yaml")
	writeKeymap(t, path, `
groups:
  - name: global
    bindings:
      - keys: Ctrl+S
        action: file.save
`)

	reg := keychord.New(keychord.DefaultConfig())
	defer reg.Close()

	var saved, quit int
	actions := map[string]keychord.Callback{
		"file.save": func(key.Event) { saved++ },
		"app.quit":  func(key.Event) { quit++ },
	}

	w, err := WatchFileDebounced(path, reg, actions, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFileDebounced() error = %v", err)
	}
	defer w.Close()

	// Replace the binding set.
	writeKeymap(t, path, `
groups:
  - name: global
    bindings:
      - keys: Ctrl+Q
        action: app.quit
`)

	ok := waitFor(t, 2*time.Second, func() bool {
		keys := reg.Registered()
		return len(keys) == 1 && keys[0] == "ctrl+q"
	})
	if !ok {
		t.Fatalf("registry never picked up the new bindings: %v", reg.Registered())
	}

	reg.Dispatch(key.NewEvent(key.ModCtrl, "q"))
	if quit != 1 {
		t.Errorf("app.quit fired %d times, want 1", quit)
	}

	// The old binding is gone.
	reg.Dispatch(key.NewEvent(key.ModCtrl, "s"))
	if saved != 0 {
		t.Errorf("file.save fired %d times after reload, want 0", saved)
	}
}

func TestWatcherReportsBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.json")
	writeKeymap(t, path, `{"groups":[{"name":"global","bindings":[{"keys":"a","action":"noop"}]}]}`)

	reg := keychord.New(keychord.DefaultConfig())
	defer reg.Close()

	actions := map[string]keychord.Callback{
		"noop": func(key.Event) {},
	}

	w, err := WatchFileDebounced(path, reg, actions, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFileDebounced() error = %v", err)
	}
	defer w.Close()

	writeKeymap(t, path, `{not json`)

	select {
	case err := <-w.Errors():
		if err == nil {
			t.Error("expected a non-nil reload error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error reported for a broken reload")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.yaml")
	writeKeymap(t, path, yamlKeymap)

	reg := keychord.New(keychord.DefaultConfig())
	defer reg.Close()

	actions := map[string]keychord.Callback{
		"file.save":    func(key.Event) {},
		"file.saveAll": func(key.Event) {},
		"modal.close":  func(key.Event) {},
	}

	w, err := WatchFile(path, reg, actions)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
