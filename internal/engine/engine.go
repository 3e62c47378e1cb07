package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/notebook/internal/engine/buffer"
	"github.com/dshills/notebook/internal/engine/history"
	"github.com/dshills/notebook/internal/engine/replace"
	"github.com/dshills/notebook/internal/engine/schedule"
	"github.com/dshills/notebook/internal/engine/search"
)

// Re-export commonly used types for convenience.
type (
	// Span is a half-open rune range covering one match.
	Span = search.Span

	// ScrollPosition is the first visible line and column of the view.
	ScrollPosition = buffer.ScrollPosition
)

// TextBuffer is the text collaborator the engine drives. *buffer.Buffer
// implements it.
type TextBuffer interface {
	Text() string
	SetText(s string)
	DeleteRange(start, end int) error
	InsertAt(offset int, s string) error
	Select(start, end int)
	Cursor() int
	ScrollIntoView(start, end int)
	Scroll() buffer.ScrollPosition
	SetScroll(pos buffer.ScrollPosition)
	OnChange(l buffer.Listener)
}

// Bar identifies which search bar is open.
type Bar int

const (
	BarNone Bar = iota
	BarFind
	BarReplace
)

// String returns the bar name.
func (b Bar) String() string {
	switch b {
	case BarFind:
		return "find"
	case BarReplace:
		return "replace"
	default:
		return "none"
	}
}

// query is the content of one bar's find field.
type query struct {
	pattern       string
	caseSensitive bool
}

// Status summarizes the document for the status line.
type Status struct {
	Characters int
	Lines      int
	FontSize   int
}

// String formats the status line.
func (s Status) String() string {
	return fmt.Sprintf(" Characters: %d  Lines: %d  Text Size: %d", s.Characters, s.Lines, s.FontSize)
}

// Engine is the editing controller. It records every buffer change in the
// undo history, owns the search state and applies replacements.
//
// An Engine is driven from a single goroutine. Buffer change notifications
// re-enter the engine synchronously.
type Engine struct {
	id  string
	buf TextBuffer
	log Logger

	history   *history.History
	undoLimit int

	// Search state of the current document text.
	state *search.State

	bar         Bar
	find        query
	replaceFind query
	replacement string

	// Non-zero while the engine mutates the buffer on behalf of a replace.
	replacing int

	queue         *schedule.Queue
	pendingScroll *schedule.Task
	// Scroll position the pending task restores.
	scrollTarget ScrollPosition

	fontSize        int
	defaultFontSize int
}

// New creates an engine bound to buf. The buffer's current text becomes
// the undo baseline.
func New(buf TextBuffer, opts ...Option) *Engine {
	e := &Engine{
		id:              uuid.NewString(),
		buf:             buf,
		log:             nopLogger{},
		undoLimit:       DefaultUndoLimit,
		state:           search.Empty(),
		find:            query{caseSensitive: DefaultCaseSensitive},
		replaceFind:     query{caseSensitive: DefaultCaseSensitive},
		fontSize:        DefaultFontSize,
		defaultFontSize: DefaultFontSize,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.queue == nil {
		e.queue = schedule.NewQueue()
	}
	e.history = history.New(e.undoLimit, buf.Text())
	buf.OnChange(e.onChange)

	e.debug("engine created (undo limit %d)", e.undoLimit)
	return e
}

// ID returns the document identifier used in log lines.
func (e *Engine) ID() string {
	return e.id
}

// Buffer returns the text buffer.
func (e *Engine) Buffer() TextBuffer {
	return e.buf
}

// History returns the undo history.
func (e *Engine) History() *history.History {
	return e.history
}

// Queue returns the deferred task queue.
func (e *Engine) Queue() *schedule.Queue {
	return e.queue
}

func (e *Engine) debug(msg string, args ...any) {
	e.log.Debug("[doc "+e.id[:8]+"] "+msg, args...)
}

// onChange runs after every buffer mutation.
func (e *Engine) onChange(c buffer.Change) {
	text := e.buf.Text()
	if !e.history.Suppressed() {
		e.history.Record(text)
		e.debug("snapshot recorded (rev %d, %d undo steps)", c.Revision, e.history.UndoCount())
	}

	// Offsets from before the change are meaningless now. Replace
	// operations rescan themselves once they are done.
	if e.replacing == 0 && e.state.Pattern != "" {
		e.state = search.Search(text, e.state.Pattern, e.state.CaseSensitive)
		e.state.SelectAtOrAfter(e.buf.Cursor())
	}
}

// ============================================================================
// Undo / Redo
// ============================================================================

// Undo restores the previous snapshot. It returns false at the baseline.
func (e *Engine) Undo() bool {
	info, _ := e.history.PeekUndo()
	return e.restore(e.history.Undo, "undo "+info.Label)
}

// Redo re-applies the most recently undone snapshot. It returns false when
// there is nothing to redo.
func (e *Engine) Redo() bool {
	info, _ := e.history.PeekRedo()
	return e.restore(e.history.Redo, "redo "+info.Label)
}

func (e *Engine) restore(op func(history.RestoreFunc) (string, bool), name string) bool {
	// While a restore is pending the view is already reset; the position
	// the user saw is the one that task would restore.
	scroll := e.buf.Scroll()
	if e.pendingScroll.Pending() {
		scroll = e.scrollTarget
	}

	_, ok := op(e.buf.SetText)
	if !ok {
		return false
	}
	e.cancelPendingScroll()

	// SetText resets the view; put it back once the new text is laid out.
	e.scrollTarget = scroll
	e.pendingScroll = e.queue.Post(func() {
		e.buf.SetScroll(scroll)
	})
	e.debug("%s (undo %d, redo %d)", name, e.history.UndoCount(), e.history.RedoCount())
	return true
}

func (e *Engine) cancelPendingScroll() {
	if e.pendingScroll.Cancel() {
		e.debug("pending scroll restore cancelled")
	}
	e.pendingScroll = nil
}

// CanUndo reports whether Undo would do anything.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// SetUndoLimit changes the undo capacity, trimming the oldest snapshots if
// needed. Non-positive values return ErrInvalidCapacity and leave the
// history unchanged.
func (e *Engine) SetUndoLimit(n int) error {
	if err := e.history.SetCapacity(n); err != nil {
		return fmt.Errorf("set undo limit %d: %w", n, err)
	}
	e.undoLimit = n
	e.debug("undo limit set to %d", n)
	return nil
}

// UndoLimit returns the undo capacity.
func (e *Engine) UndoLimit() int {
	return e.undoLimit
}

// ============================================================================
// Editing
// ============================================================================

// Text returns the document text.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Insert inserts s at offset.
func (e *Engine) Insert(offset int, s string) error {
	return e.buf.InsertAt(offset, s)
}

// Delete removes the runes in [start, end).
func (e *Engine) Delete(start, end int) error {
	return e.buf.DeleteRange(start, end)
}

// Load replaces the document text. The change is recorded like any other
// edit, any pending scroll restore is dropped and the search is cleared.
func (e *Engine) Load(text string) {
	e.cancelPendingScroll()
	e.state = search.Empty()
	e.buf.SetText(text)
	e.debug("document loaded (%d runes)", buffer.RuneCount(text))
}

// NewDocument empties the document.
func (e *Engine) NewDocument() {
	e.Load("")
}

// ============================================================================
// Search
// ============================================================================

// OpenFind opens the find bar and searches with its pattern.
func (e *Engine) OpenFind() int {
	e.bar = BarFind
	return e.Search()
}

// OpenReplace opens the replace bar and searches with its pattern.
func (e *Engine) OpenReplace() int {
	e.bar = BarReplace
	return e.Search()
}

// CloseBars closes any open bar and clears the search.
func (e *Engine) CloseBars() {
	e.bar = BarNone
	e.ClearSearch()
}

// ActiveBar returns the open bar.
func (e *Engine) ActiveBar() Bar {
	return e.bar
}

// ClearSearch drops all matches and collapses the selection to the cursor.
func (e *Engine) ClearSearch() {
	e.state = search.Empty()
	c := e.buf.Cursor()
	e.buf.Select(c, c)
}

// activeQuery returns the find field of the open bar. With no bar open the
// find bar's field is used.
func (e *Engine) activeQuery() *query {
	if e.bar == BarReplace {
		return &e.replaceFind
	}
	return &e.find
}

// FindPattern returns the pattern of the active find field.
func (e *Engine) FindPattern() string {
	return e.activeQuery().pattern
}

// SetFindPattern sets the pattern of the active find field and searches.
func (e *Engine) SetFindPattern(pattern string) int {
	e.activeQuery().pattern = pattern
	return e.Search()
}

// CaseSensitive reports the case toggle of the active bar.
func (e *Engine) CaseSensitive() bool {
	return e.activeQuery().caseSensitive
}

// SetCaseSensitive sets the case toggle of the active bar and searches.
func (e *Engine) SetCaseSensitive(on bool) int {
	e.activeQuery().caseSensitive = on
	return e.Search()
}

// Replacement returns the replace bar's replacement text.
func (e *Engine) Replacement() string {
	return e.replacement
}

// SetReplacement sets the replace bar's replacement text.
func (e *Engine) SetReplacement(s string) {
	e.replacement = s
}

// Search scans the document with the active find field and selects the
// first match. It returns the number of matches.
func (e *Engine) Search() int {
	q := e.activeQuery()
	return e.searchWith(q.pattern, q.caseSensitive)
}

// SearchFor stores pattern and caseSensitive in the active find field and
// searches.
func (e *Engine) SearchFor(pattern string, caseSensitive bool) int {
	q := e.activeQuery()
	q.pattern = pattern
	q.caseSensitive = caseSensitive
	return e.searchWith(pattern, caseSensitive)
}

func (e *Engine) searchWith(pattern string, caseSensitive bool) int {
	e.setState(search.Search(e.buf.Text(), pattern, caseSensitive))
	e.debug("search (pattern %d runes, case %t): %s", buffer.RuneCount(pattern), caseSensitive, e.state.Label())
	return e.state.Count()
}

// setState installs st and shows its current match.
func (e *Engine) setState(st *search.State) {
	e.state = st
	e.showCurrent()
}

func (e *Engine) showCurrent() {
	span, ok := e.state.Current()
	if !ok {
		return
	}
	e.buf.Select(span.Start, span.End)
	e.buf.ScrollIntoView(span.Start, span.End)
}

// Next moves to the next match, wrapping at the end.
func (e *Engine) Next() bool {
	return e.navigate(search.Forward)
}

// Prev moves to the previous match, wrapping at the start.
func (e *Engine) Prev() bool {
	return e.navigate(search.Backward)
}

func (e *Engine) navigate(dir search.Direction) bool {
	if _, ok := e.state.Navigate(dir); !ok {
		return false
	}
	e.showCurrent()
	return true
}

// Current returns the current match.
func (e *Engine) Current() (Span, bool) {
	return e.state.Current()
}

// Matches returns a copy of all match spans.
func (e *Engine) Matches() []Span {
	return append([]Span(nil), e.state.Matches...)
}

// MatchCount returns the number of matches.
func (e *Engine) MatchCount() int {
	return e.state.Count()
}

// MatchLabel returns "1 match" or "<n> matches".
func (e *Engine) MatchLabel() string {
	return e.state.Label()
}

// MatchPosition returns the 1-based index of the current match and the
// total. Both are zero with no matches.
func (e *Engine) MatchPosition() (index, total int) {
	return e.state.Position()
}

// SearchState returns a copy of the search state.
func (e *Engine) SearchState() *search.State {
	return e.state.Clone()
}

// ============================================================================
// Replace
// ============================================================================

// ReplaceCurrent replaces the current match with the replace bar's
// replacement text.
func (e *Engine) ReplaceCurrent() bool {
	return e.ReplaceCurrentWith(e.replacement)
}

// ReplaceCurrentWith replaces the current match with replacement as one undo
// step, then searches again. It returns false when there is no current match.
func (e *Engine) ReplaceCurrentWith(replacement string) bool {
	if !e.state.Active() {
		return false
	}

	var res replace.Result
	e.batch("replace", func() {
		res = replace.One(e.buf, e.state, replacement)
	})
	e.finishReplace(res)
	return res.Replaced > 0
}

// ReplaceAll replaces every match of the active find field with the
// replacement text. The pattern is copied into the find bar first. Afterwards
// the replacement moves into the find field, the replacement is cleared and a
// new search runs.
func (e *Engine) ReplaceAll() int {
	q := e.activeQuery()
	if q.pattern == "" {
		return 0
	}
	if q != &e.find {
		e.find.pattern = q.pattern
	}
	n := e.ReplaceAllWith(q.pattern, e.replacement, q.caseSensitive)
	if n == 0 {
		return 0
	}

	q.pattern = e.replacement
	e.replacement = ""
	e.Search()
	return n
}

// ReplaceAllWith replaces every occurrence of pattern as one undo step. It
// returns the number of replacements.
func (e *Engine) ReplaceAllWith(pattern, replacement string, caseSensitive bool) int {
	if pattern == "" {
		return 0
	}

	var res replace.Result
	e.batch("replace all", func() {
		res = replace.All(e.buf, pattern, replacement, caseSensitive)
	})
	e.finishReplace(res)
	return res.Replaced
}

// batch runs fn as one history group with search rescans deferred.
func (e *Engine) batch(label string, fn func()) {
	e.replacing++
	scope := e.history.GroupScope(label)
	defer func() {
		scope.End()
		e.replacing--
	}()
	fn()
}

func (e *Engine) finishReplace(res replace.Result) {
	if res.Err != nil {
		e.debug("replace stopped after %d: %v", res.Replaced, res.Err)
	} else if res.Replaced > 0 {
		e.debug("replaced %d", res.Replaced)
	}
	e.setState(res.State)
}

// ============================================================================
// Zoom
// ============================================================================

// FontSize returns the view font size.
func (e *Engine) FontSize() int {
	return e.fontSize
}

// SetFontSize sets the font size. Values outside [MinFontSize, MaxFontSize]
// return ErrInvalidFontSize.
func (e *Engine) SetFontSize(size int) error {
	if size < MinFontSize || size > MaxFontSize {
		return fmt.Errorf("%w: %d", ErrInvalidFontSize, size)
	}
	e.fontSize = size
	return nil
}

// SetDefaultFontSize changes the size ZoomReset returns to and applies it.
func (e *Engine) SetDefaultFontSize(size int) error {
	if err := e.SetFontSize(size); err != nil {
		return err
	}
	e.defaultFontSize = size
	return nil
}

// ZoomIn grows the font by one step up to MaxFontSize.
func (e *Engine) ZoomIn() int {
	if e.fontSize < MaxFontSize {
		e.fontSize++
	}
	return e.fontSize
}

// ZoomOut shrinks the font by one step down to MinFontSize.
func (e *Engine) ZoomOut() int {
	if e.fontSize > MinFontSize {
		e.fontSize--
	}
	return e.fontSize
}

// ZoomReset restores the default font size.
func (e *Engine) ZoomReset() int {
	e.fontSize = e.defaultFontSize
	return e.fontSize
}

// ============================================================================
// Status
// ============================================================================

// Status returns character, line and font size counts.
func (e *Engine) Status() Status {
	text := e.buf.Text()
	return Status{
		Characters: buffer.RuneCount(text),
		Lines:      strings.Count(text, "\n") + 1,
		FontSize:   e.fontSize,
	}
}

// StatusLine returns the formatted status line.
func (e *Engine) StatusLine() string {
	return e.Status().String()
}
