// Package suggest orchestrates the trigger lifecycle: detecting a typed
// phrase at the cursor, querying the heading index and applying the chosen
// link back into the host editor.
package suggest

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/config"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
	"github.com/Darsh-A/obsidian-auto-headers/pkg/match"
)

// Position is a (line, column) location in the editor. Columns count runes.
type Position struct {
	Line int
	Ch   int
}

// Span is the text range a selection will replace.
type Span struct {
	Start Position
	End   Position
}

// Trigger is an active suggestion context: the span to replace and the
// query extracted from it.
type Trigger struct {
	Span  Span
	Query string
}

// Editor is the host editing surface the controller drives.
type Editor interface {
	// LineUpTo returns the text of pos.Line up to column pos.Ch.
	LineUpTo(pos Position) string
	// ReplaceRange replaces span with text.
	ReplaceRange(span Span, text string)
	// SetCursor moves the cursor.
	SetCursor(pos Position)
}

// PopupProbe reports whether a foreign suggestion overlay is visible.
// Implemented outside the core via environment inspection.
type PopupProbe interface {
	PopupOpen() bool
}

const (
	// scanWindow bounds how many runes of line text are handed to the
	// phrase extractor per detection.
	scanWindow = 120
	// manualOverrideWindow is how long a manual trigger bypasses
	// foreign-popup suppression.
	manualOverrideWindow = 250 * time.Millisecond
)

// Controller runs trigger detection and selection against the index.
type Controller struct {
	index *index.Index
	cfg   *config.Config
	probe PopupProbe

	manualUntil time.Time
	now         func() time.Time
}

// NewController wires a controller over ix. probe may be nil when the host
// has no foreign suggestion mechanism.
func NewController(ix *index.Index, cfg *config.Config, probe PopupProbe) *Controller {
	return &Controller{
		index: ix,
		cfg:   cfg,
		probe: probe,
		now:   time.Now,
	}
}

// TriggerManually opens a short window during which detection bypasses
// foreign-popup suppression.
func (c *Controller) TriggerManually() {
	c.manualUntil = c.now().Add(manualOverrideWindow)
}

// Detect inspects the text before pos and reports the trigger span and query,
// or ok=false when no suggestion should open: foreign popup visible (outside
// the manual window), nothing before the cursor, cursor inside an
// unterminated [[ sequence, no phrase, or phrase under the min-chars gate.
func (c *Controller) Detect(pos Position, ed Editor) (Trigger, bool) {
	if c.cfg.Suggest.SuppressWhenPopupOpen && c.probe != nil && c.probe.PopupOpen() {
		if c.now().After(c.manualUntil) {
			return Trigger{}, false
		}
	}

	line := ed.LineUpTo(pos)
	if line == "" {
		return Trigger{}, false
	}
	if insideOpenLink(line) {
		return Trigger{}, false
	}

	runes := []rune(line)
	offset := 0
	if len(runes) > scanWindow {
		offset = len(runes) - scanWindow
		runes = runes[offset:]
	}

	ph, ok := match.Extract(string(runes), c.cfg.Suggest.MaxPhraseWords)
	if !ok {
		return Trigger{}, false
	}
	if utf8.RuneCountInString(strings.TrimSpace(ph.Query)) < c.cfg.Suggest.MinChars {
		return Trigger{}, false
	}

	start := Position{Line: pos.Line, Ch: offset + ph.Start}
	return Trigger{Span: Span{Start: start, End: pos}, Query: ph.Query}, true
}

// insideOpenLink reports whether the last link-opening marker in line is
// still unterminated.
func insideOpenLink(line string) bool {
	open := strings.LastIndex(line, "[[")
	if open < 0 {
		return false
	}
	return open > strings.LastIndex(line, "]]")
}

// Suggestions returns the ranked headings for query, delegating to the
// index with the configured search options.
func (c *Controller) Suggestions(query string) []index.ScoredEntry {
	s := c.cfg.Suggest
	return c.index.Search(query, index.SearchOptions{
		MinChars:       s.MinChars,
		CaseSensitive:  s.CaseSensitive,
		Fuzzy:          s.Fuzzy,
		MinFuzzyScore:  s.MinFuzzyScore,
		MaxSuggestions: s.MaxSuggestions,
	})
}

// Preview carries the display fields for one suggestion row; rendering is a
// host concern.
type Preview struct {
	Heading  string // heading text with depth marker
	Document string
	Folder   string // empty unless folder display is on and the doc is foldered
	Match    string // match-type label
}

// Preview builds the display fields for s.
func (c *Controller) Preview(s index.ScoredEntry) Preview {
	p := Preview{
		Heading:  strings.Repeat("#", s.Level) + " " + s.Heading,
		Document: s.DocumentName,
		Match:    s.Type.String(),
	}
	if c.cfg.Suggest.ShowFolder {
		p.Folder = s.Folder
	}
	return p
}

// Selection is the applied result of choosing an entry.
type Selection struct {
	Replacement string
	Cursor      Position
}

// Select builds the link for e, replaces the trigger span with it and places
// the cursor just past the inserted text. ed may be nil when the host applies
// the returned replacement itself.
func (c *Controller) Select(e index.Entry, trig Trigger, ed Editor) Selection {
	text := BuildLink(e, c.cfg.Suggest.InsertAlias)
	cursor := Position{
		Line: trig.Span.Start.Line,
		Ch:   trig.Span.Start.Ch + utf8.RuneCountInString(text),
	}
	if ed != nil {
		ed.ReplaceRange(trig.Span, text)
		ed.SetCursor(cursor)
	}
	return Selection{Replacement: text, Cursor: cursor}
}
