package config

import (
	"errors"
	"fmt"
)

// Setting paths.
const (
	PathUndoMaxHistory      = "undo.max_history"
	PathViewFontSize        = "view.font_size"
	PathViewTabWidth        = "view.tab_width"
	PathSearchCaseSensitive = "search.case_sensitive"
	PathScriptPath          = "script.path"
)

// Bounds for numeric settings.
const (
	MinUndoHistory = 1
	MaxUndoHistory = 1000
	MinFontSize    = 1
	MaxFontSize    = 144
	MinTabWidth    = 1
	MaxTabWidth    = 16
)

// Settings is a typed snapshot of the merged configuration. Mutating it does
// not change the Config it came from.
type Settings struct {
	Undo   UndoSettings
	View   ViewSettings
	Search SearchSettings
	Script ScriptSettings
}

// UndoSettings configures the undo history.
type UndoSettings struct {
	// MaxHistory is the number of snapshots kept, baseline included.
	MaxHistory int
}

// ViewSettings configures the text view.
type ViewSettings struct {
	// FontSize is the initial and reset zoom level.
	FontSize int

	// TabWidth is the number of cells a tab occupies.
	TabWidth int
}

// SearchSettings configures the search bars.
type SearchSettings struct {
	// CaseSensitive is the initial state of the case toggles.
	CaseSensitive bool
}

// ScriptSettings configures the startup script.
type ScriptSettings struct {
	// Path is a Lua file run once at startup. Empty disables scripting.
	Path string
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Undo:   UndoSettings{MaxHistory: 100},
		View:   ViewSettings{FontSize: 12, TabWidth: 4},
		Search: SearchSettings{CaseSensitive: true},
	}
}

// defaultConfig returns the built-in settings as a configuration map.
func defaultConfig() map[string]any {
	d := DefaultSettings()
	return map[string]any{
		"undo": map[string]any{
			"max_history": d.Undo.MaxHistory,
		},
		"view": map[string]any{
			"font_size": d.View.FontSize,
			"tab_width": d.View.TabWidth,
		},
		"search": map[string]any{
			"case_sensitive": d.Search.CaseSensitive,
		},
		"script": map[string]any{
			"path": d.Script.Path,
		},
	}
}

// Validate checks every setting against its bounds. All failures are
// reported together.
func (s Settings) Validate() error {
	var errs []error
	check := func(path string, v, lo, hi int) {
		if v < lo || v > hi {
			errs = append(errs, &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("must be between %d and %d", lo, hi),
				Value:   v,
			})
		}
	}

	check(PathUndoMaxHistory, s.Undo.MaxHistory, MinUndoHistory, MaxUndoHistory)
	check(PathViewFontSize, s.View.FontSize, MinFontSize, MaxFontSize)
	check(PathViewTabWidth, s.View.TabWidth, MinTabWidth, MaxTabWidth)

	return errors.Join(errs...)
}

// settingsFrom decodes a merged configuration map.
func settingsFrom(m map[string]any) (Settings, error) {
	s := DefaultSettings()
	var errs []error

	readInt := func(path string, dst *int) {
		if v, ok := getPath(m, path); ok {
			n, err := asInt(path, v)
			if err != nil {
				errs = append(errs, err)
				return
			}
			*dst = n
		}
	}

	readInt(PathUndoMaxHistory, &s.Undo.MaxHistory)
	readInt(PathViewFontSize, &s.View.FontSize)
	readInt(PathViewTabWidth, &s.View.TabWidth)

	if v, ok := getPath(m, PathSearchCaseSensitive); ok {
		b, err := asBool(PathSearchCaseSensitive, v)
		if err != nil {
			errs = append(errs, err)
		} else {
			s.Search.CaseSensitive = b
		}
	}

	if v, ok := getPath(m, PathScriptPath); ok {
		str, err := asString(PathScriptPath, v)
		if err != nil {
			errs = append(errs, err)
		} else {
			s.Script.Path = str
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Settings{}, err
	}
	return s, nil
}
