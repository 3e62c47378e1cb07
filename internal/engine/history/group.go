package history

import "sync"

// Suppress starts a scope in which Record is a no-op. The returned release
// function ends the scope; calling it more than once is safe. Scopes nest.
//
//	release := h.Suppress()
//	defer release()
//	buf.SetText(loaded)
func (h *History) Suppress() (release func()) {
	h.mu.Lock()
	h.suppressed++
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(h.release)
	}
}

// Suppressed reports whether recording is currently suppressed.
func (h *History) Suppressed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.suppressed > 0
}

func (h *History) release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.suppressed > 0 {
		h.suppressed--
	}
}

// BeginGroup starts a group. Snapshots recorded while grouping collapse
// into one undo step holding the text as it is when the group ends.
// Nested calls are ignored.
func (h *History) BeginGroup(label string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}

	h.grouping = true
	h.groupLabel = label
	h.groupPending = nil
}

// EndGroup finishes a group, pushing its final snapshot if anything was
// recorded.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flushGroupLocked()
}

func (h *History) flushGroupLocked() {
	if !h.grouping {
		return
	}

	h.grouping = false
	pending := h.groupPending
	h.groupPending = nil
	if pending != nil {
		h.pushLocked(pending)
	}
}

// IsGrouping returns true if currently in a group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// GroupScope provides a convenient way to group edits using defer.
// Usage:
//
//	func replaceEverything(h *History) {
//	    defer h.GroupScope("Replace All").End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group scope.
func (h *History) GroupScope(label string) *GroupScope {
	h.BeginGroup(label)
	return &GroupScope{
		history: h,
		active:  true,
	}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}
