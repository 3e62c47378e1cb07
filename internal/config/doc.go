// Package config provides the configuration system for Notebook.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Environment Variables   │  ← NOTEBOOK_UNDO_MAX_HISTORY, ...
//	├─────────────────────────────┤
//	│  3. Explicit File           │  ← --config path
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/notebook/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Maps are merged key by key, decoded into Settings and validated. A Load
// that fails leaves the previous configuration in effect, which is what a
// live reload relies on.
//
// # Sub-packages
//
//   - loader: TOML and YAML files, environment variables, map merging
//   - watcher: fsnotify-based change detection for live reload
//
// # Settings
//
//	[undo]
//	max_history = 100      # 1..1000, baseline included
//
//	[view]
//	font_size = 12         # 1..144
//	tab_width = 4
//
//	[search]
//	case_sensitive = true
//
//	[script]
//	path = ""              # Lua file run at startup
package config
