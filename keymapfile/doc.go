// Package keymapfile loads declarative shortcut definitions into a
// keychord.Registry and can keep them live as the file changes on disk.
//
// Files describe groups of bindings that map key specifications to named
// actions; the embedding application supplies the action implementations.
// JSON, TOML and YAML are supported, selected by file extension.
//
//	groups:
//	  - name: global
//	    bindings:
//	      - keys: Ctrl+S
//	        action: file.save
//	      - keys: Ctrl+K S
//	        action: file.saveAll
//	  - name: modal
//	    enabled: false
//	    bindings:
//	      - keys: escape
//	        action: modal.close
//
// Watcher reloads and reapplies a file when it is written, debouncing rapid
// writes, so shortcut definitions can be edited without restarting the host.
package keymapfile
