// Package history provides snapshot-based undo/redo for the editor engine.
//
// Every committed edit pushes a full copy of the document text. Whole-text
// snapshots trade memory for simplicity: restoring is a single SetText and
// there is no patch state that can drift out of sync with the buffer.
//
// # Baseline
//
// A History starts with one snapshot already on the undo stack, the text
// the document had when it was opened. Undo never pops that entry, so
// undoing the first real edit has somewhere to go:
//
//	h := history.New(100, "")
//	h.Record("a")          // undo stack: "", "a"
//	h.Undo(restore)        // restores ""; redo stack: "a"
//	h.Redo(restore)        // restores "a"
//
// # Capacity
//
// The undo stack never holds more than Capacity snapshots. Pushing past it
// evicts the oldest entries, which moves the baseline forward. With a
// capacity of 1 the baseline is the only entry and undo is disabled.
//
// # Suppression
//
// Restoring a snapshot mutates the buffer, and the buffer's change
// notification would otherwise record that mutation as a new edit. Undo and
// Redo hold a suppression scope while their restore callback runs; any
// other programmatic mutation that must not be recorded can do the same:
//
//	release := h.Suppress()
//	defer release()
//
// # Grouping
//
// Several mutations can be committed as one undo step:
//
//	defer h.GroupScope("Replace All").End()
package history
