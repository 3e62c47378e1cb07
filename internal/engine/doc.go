// Package engine provides the editing controller for Notebook.
//
// The Engine binds a text buffer to the packages that keep derived state
// about it:
//
//   - history: snapshot-based undo/redo with a bounded capacity
//   - search: literal match scanning and cyclic navigation
//   - replace: single and bulk replacement followed by a fresh scan
//   - schedule: deferred tasks, used to restore the scroll position after
//     an undo or redo has been laid out
//
// # Recording
//
// Every buffer change notification records a full-text snapshot. Undo and
// Redo restore snapshots inside a suppression scope, so the restore itself
// is never recorded. Replace operations run inside a history group and
// become a single undo step.
//
// # Search consistency
//
// Match offsets are never patched. Any change to the buffer triggers a new
// scan with the same pattern, and replace operations scan once after all of
// their mutations.
//
// # Basic Usage
//
//	buf := buffer.NewBufferFromString("aXaXa")
//	e := engine.New(buf, engine.WithUndoLimit(50))
//
//	e.SearchFor("a", true)            // 3
//	e.ReplaceAllWith("a", "bb", true) // "bbXbbXbb"
//	e.Undo()                          // "aXaXa"
//
//	// The owner runs deferred work after each redraw.
//	e.Queue().RunPending()
package engine
