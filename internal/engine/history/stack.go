package history

import (
	"errors"
	"sync"
	"time"
)

// DefaultCapacity is the number of snapshots kept when no capacity is given.
const DefaultCapacity = 100

// Common errors for history operations.
var (
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrInvalidCapacity = errors.New("undo capacity must be a positive integer")
)

// snapshot is an immutable copy of the full document text.
type snapshot struct {
	text      string
	label     string
	timestamp time.Time
}

// RestoreFunc applies a snapshot's text to the document. It runs with
// recording suppressed, so the buffer mutation it causes is not recorded.
type RestoreFunc func(text string)

// History manages snapshot-based undo/redo state for one document.
//
// The oldest entry of the undo stack is the baseline: undo never pops past
// it, so Undo is a no-op while only the baseline remains.
type History struct {
	mu sync.Mutex

	// Both stacks keep their newest entry last.
	undoStack []*snapshot
	redoStack []*snapshot

	// Depth of active suppression scopes.
	suppressed int

	// Grouping state
	grouping     bool
	groupLabel   string
	groupPending *snapshot

	capacity int
}

// New creates a history whose baseline is the given text.
// A non-positive capacity selects DefaultCapacity.
func New(capacity int, baseline string) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	h := &History{capacity: capacity}
	h.undoStack = []*snapshot{{text: baseline, label: "baseline", timestamp: time.Now()}}
	return h
}

// Record pushes a snapshot of text onto the undo stack and clears the redo
// stack. It does nothing while recording is suppressed. Inside a group only
// the latest text is kept and pushed when the group ends.
func (h *History) Record(text string) {
	h.RecordLabeled(text, "edit")
}

// RecordLabeled is Record with a description stored alongside the snapshot.
func (h *History) RecordLabeled(text, label string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.suppressed > 0 {
		return
	}

	if h.grouping {
		h.groupPending = &snapshot{text: text, label: h.groupLabel, timestamp: time.Now()}
		return
	}

	h.pushLocked(&snapshot{text: text, label: label, timestamp: time.Now()})
}

// pushLocked adds a snapshot without acquiring the lock.
func (h *History) pushLocked(s *snapshot) {
	h.undoStack = append(h.undoStack, s)

	// Clear redo stack
	clear(h.redoStack)
	h.redoStack = h.redoStack[:0]

	h.trimLocked()
}

// trimLocked drops the oldest entries until the undo stack fits capacity.
func (h *History) trimLocked() {
	if len(h.undoStack) <= h.capacity {
		return
	}
	excess := len(h.undoStack) - h.capacity
	clear(h.undoStack[:excess])
	h.undoStack = h.undoStack[excess:]
}

// Undo moves the newest snapshot to the redo stack and restores the one
// beneath it. It returns the restored text, or false when only the baseline
// is left. restore may be nil.
func (h *History) Undo(restore RestoreFunc) (string, bool) {
	h.mu.Lock()
	h.flushGroupLocked()
	if len(h.undoStack) < 2 {
		h.mu.Unlock()
		return "", false
	}

	top := h.undoStack[len(h.undoStack)-1]
	h.undoStack[len(h.undoStack)-1] = nil
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, top)
	text := h.undoStack[len(h.undoStack)-1].text
	h.suppressed++
	h.mu.Unlock()

	// Restore without holding the lock; the buffer's change notification
	// calls back into Record.
	defer h.release()
	if restore != nil {
		restore(text)
	}
	return text, true
}

// Redo moves the newest redo snapshot back onto the undo stack and
// restores it. It returns the restored text, or false when the redo stack
// is empty. restore may be nil.
func (h *History) Redo(restore RestoreFunc) (string, bool) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return "", false
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack[len(h.redoStack)-1] = nil
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	h.trimLocked()
	h.suppressed++
	h.mu.Unlock()

	defer h.release()
	if restore != nil {
		restore(entry.text)
	}
	return entry.text, true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 1
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of snapshots on the undo stack, baseline
// included.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of snapshots on the redo stack.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Current returns the text of the newest undo snapshot.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.undoStack[len(h.undoStack)-1].text
}

// Baseline returns the text of the oldest retained snapshot.
func (h *History) Baseline() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.undoStack[0].text
}

// Info describes one history entry.
type Info struct {
	Label     string
	Timestamp time.Time
	Size      int
}

// PeekUndo returns info about the snapshot that Undo would discard.
func (h *History) PeekUndo() (Info, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) < 2 {
		return Info{}, false
	}
	return infoOf(h.undoStack[len(h.undoStack)-1]), true
}

// PeekRedo returns info about the snapshot that Redo would restore.
func (h *History) PeekRedo() (Info, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Info{}, false
	}
	return infoOf(h.redoStack[len(h.redoStack)-1]), true
}

func infoOf(s *snapshot) Info {
	return Info{Label: s.label, Timestamp: s.timestamp, Size: len(s.text)}
}

// SetCapacity changes the maximum number of undo snapshots.
// If the stack is larger, the oldest entries are removed immediately.
// A non-positive value is rejected and leaves the history unchanged.
func (h *History) SetCapacity(n int) error {
	if n <= 0 {
		return ErrInvalidCapacity
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.capacity = n
	h.trimLocked()
	return nil
}

// Capacity returns the maximum number of undo snapshots.
func (h *History) Capacity() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.capacity
}
