package renderer

import "github.com/dshills/notebook/internal/renderer/core"

// Theme holds the styles used for each part of the frame.
type Theme struct {
	Text         core.Style
	Selection    core.Style
	Match        core.Style
	CurrentMatch core.Style
	BarLabel     core.Style
	BarField     core.Style
	BarInfo      core.Style
	Status       core.Style
}

// DefaultTheme returns the built-in theme using palette colors so it works
// on 16-color terminals.
func DefaultTheme() Theme {
	base := core.DefaultStyle()
	return Theme{
		Text:         base,
		Selection:    base.Reverse(),
		Match:        base.WithForeground(core.ColorBlack).WithBackground(core.ColorCyan),
		CurrentMatch: base.WithForeground(core.ColorBlack).WithBackground(core.ColorYellow).Bold(),
		BarLabel:     base.Bold(),
		BarField:     base.WithBackground(core.ColorGray),
		BarInfo:      base.WithForeground(core.ColorGray),
		Status:       base.Reverse(),
	}
}
