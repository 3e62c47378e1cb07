// Package renderer draws a notebook frame onto a backend.
//
// The screen is split top to bottom into the text area, one row per field
// of the open search or replace bar, and the status line:
//
//	┌─────────────────────────────────────────┐
//	│ text, match highlights, selection       │
//	│ ...                                     │
//	├─────────────────────────────────────────┤
//	│ Find: pattern        [x] Match case 1/3 │
//	│ Replace: text                           │
//	├─────────────────────────────────────────┤
//	│ Characters: 42  Lines: 3  Text Size: 12 │
//	└─────────────────────────────────────────┘
//
// A Frame is a snapshot of everything visible. The application builds one
// from the engine after each event and hands it to Render:
//
//	r := renderer.New(b, renderer.DefaultOptions())
//	r.Render(frame)
package renderer
