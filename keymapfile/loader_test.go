package keymapfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/key"
)

const yamlKeymap = `
groups:
  - name: global
    bindings:
      - keys: Ctrl+S
        action: file.save
      - keys: Ctrl+K S
        action: file.saveAll
        description: save all buffers
  - name: modal
    enabled: false
    bindings:
      - keys: escape
        action: modal.close
`

const jsonKeymap = `{
  "groups": [
    {
      "name": "global",
      "bindings": [
        {"keys": "Ctrl+S", "action": "file.save"},
        {"keys": "Ctrl+K S", "action": "file.saveAll"}
      ]
    },
    {
      "name": "modal",
      "enabled": false,
      "bindings": [
        {"keys": "escape", "action": "modal.close"}
      ]
    }
  ]
}`

const tomlKeymap = `
[[groups]]
name = "global"

[[groups.bindings]]
keys = "Ctrl+S"
action = "file.save"

[[groups.bindings]]
keys = "Ctrl+K S"
action = "file.saveAll"

[[groups]]
name = "modal"
enabled = false

[[groups.bindings]]
keys = "escape"
action = "modal.close"
`

func checkParsedFile(t *testing.T, f *File) {
	t.Helper()

	if len(f.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(f.Groups))
	}
	if f.Groups[0].Name != "global" || len(f.Groups[0].Bindings) != 2 {
		t.Errorf("groups[0] = %+v", f.Groups[0])
	}
	if f.Groups[1].Name != "modal" {
		t.Errorf("groups[1].Name = %q, want %q", f.Groups[1].Name, "modal")
	}
	if f.Groups[1].Enabled == nil || *f.Groups[1].Enabled {
		t.Error("groups[1].Enabled should be false")
	}
	if f.Groups[0].Bindings[1].Keys != "Ctrl+K S" {
		t.Errorf("bindings[1].Keys = %q", f.Groups[0].Bindings[1].Keys)
	}
}

func TestLoadYAML(t *testing.T) {
	f, err := LoadYAML(strings.NewReader(yamlKeymap))
	if err != nil {
		t.Fatalf("LoadYAML() error = %v", err)
	}
	checkParsedFile(t, f)
}

func TestLoadJSON(t *testing.T) {
	f, err := LoadJSON(strings.NewReader(jsonKeymap))
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	checkParsedFile(t, f)
}

func TestLoadTOML(t *testing.T) {
	f, err := LoadTOML(strings.NewReader(tomlKeymap))
	if err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	checkParsedFile(t, f)
}

func TestLoadFileByExtension(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"keymap.yaml", yamlKeymap},
		{"keymap.yml", yamlKeymap},
		{"keymap.json", jsonKeymap},
		{"keymap.toml", tomlKeymap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			f, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile(%s) error = %v", tt.name, err)
			}
			checkParsedFile(t, f)
		})
	}
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.ini")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestApply(t *testing.T) {
	f, err := LoadYAML(strings.NewReader(yamlKeymap))
	if err != nil {
		t.Fatal(err)
	}

	reg := keychord.New(keychord.DefaultConfig())
	defer reg.Close()

	var saved, savedAll, closed int
	actions := map[string]keychord.Callback{
		"file.save":    func(key.Event) { saved++ },
		"file.saveAll": func(key.Event) { savedAll++ },
		"modal.close":  func(key.Event) { closed++ },
	}

	if err := Apply(f, reg, actions); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	reg.Dispatch(key.NewEvent(key.ModCtrl, "s"))
	if saved != 1 {
		t.Errorf("file.save fired %d times, want 1", saved)
	}

	reg.Dispatch(key.NewEvent(key.ModCtrl, "k"))
	reg.Dispatch(key.NewEvent(key.ModNone, "s"))
	if savedAll != 1 {
		t.Errorf("file.saveAll fired %d times, want 1", savedAll)
	}

	// The modal group is declared disabled.
	if reg.GroupActive("modal") {
		t.Error("modal group should be inactive")
	}
	reg.Dispatch(key.NewEvent(key.ModNone, "escape"))
	if closed != 0 {
		t.Errorf("modal.close fired %d times while inactive, want 0", closed)
	}

	reg.ToggleGroup("modal", true)
	reg.Dispatch(key.NewEvent(key.ModNone, "escape"))
	if closed != 1 {
		t.Errorf("modal.close fired %d times, want 1", closed)
	}
}

func TestApplyCollectsBadBindings(t *testing.T) {
	f := &File{
		Groups: []GroupConfig{{
			Name: "global",
			Bindings: []BindingConfig{
				{Keys: "Ctrl+S", Action: "file.save"},
				{Keys: "bogus+x", Action: "file.save"},
				{Keys: "a", Action: "no.such.action"},
			},
		}},
	}

	reg := keychord.New(keychord.DefaultConfig())
	defer reg.Close()

	fired := 0
	actions := map[string]keychord.Callback{
		"file.save": func(key.Event) { fired++ },
	}

	err := Apply(f, reg, actions)
	if err == nil {
		t.Fatal("Apply() should report the bad bindings")
	}
	if !strings.Contains(err.Error(), "no.such.action") {
		t.Errorf("error should name the unknown action, got %v", err)
	}

	// The good binding was applied anyway.
	reg.Dispatch(key.NewEvent(key.ModCtrl, "s"))
	if fired != 1 {
		t.Errorf("good binding fired %d times, want 1", fired)
	}
}
