// Package index owns the heading corpus: a per-document entry map with a
// flat search cache, refreshed incrementally through a debounced batch flush
// and queried with a ranked linear scan.
package index

import (
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/match"
)

// Entry is one indexed heading.
type Entry struct {
	Heading      string
	HeadingLower string // lowercased form, precomputed for case-insensitive search
	DocumentID   string
	DocumentName string
	Folder       string
	Level        int
}

// ScoredEntry is an ephemeral search result, recomputed per query.
type ScoredEntry struct {
	Entry
	Score int
	Type  match.MatchType
}

// SearchOptions control one Search call.
type SearchOptions struct {
	MinChars       int
	CaseSensitive  bool
	Fuzzy          bool
	MinFuzzyScore  int
	MaxSuggestions int
}

// Index maps document ids to their heading entries. The flat cache is the
// concatenation of all per-document sequences in sorted-id order; it is
// derived state and recomputed whenever any sequence changes.
type Index struct {
	store Store
	delay time.Duration

	mu      sync.RWMutex
	docs    map[string][]Entry
	flat    []Entry
	pending map[string]struct{}
	timer   *time.Timer
}

// New creates an empty index over store. delay is the reindex debounce.
func New(store Store, delay time.Duration) *Index {
	return &Index{
		store:   store,
		delay:   delay,
		docs:    make(map[string][]Entry),
		pending: make(map[string]struct{}),
	}
}

// ReindexDocument synchronously replaces the entry list for id from the
// store's current view and refreshes the flat cache.
func (ix *Index) ReindexDocument(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.reindexLocked(id)
	ix.rebuildFlatLocked()
}

// reindexLocked rebuilds one document's entries in place. Entry lists are
// replaced wholesale, never mutated. Malformed headings are skipped, a
// vanished document loses its entries.
func (ix *Index) reindexLocked(id string) {
	doc, ok := ix.store.ResolveDocument(id)
	if !ok {
		delete(ix.docs, id)
		return
	}
	entries := make([]Entry, 0, len(doc.Headings))
	for _, h := range doc.Headings {
		if h.Text == "" || h.Level < 1 {
			continue
		}
		entries = append(entries, Entry{
			Heading:      h.Text,
			HeadingLower: strings.ToLower(h.Text),
			DocumentID:   doc.ID,
			DocumentName: doc.Name,
			Folder:       doc.Folder,
			Level:        h.Level,
		})
	}
	ix.docs[id] = entries
}

// ScheduleReindex adds id to the pending set and (re)arms the single
// debounce timer. Rescheduling while a timer is live resets the delay and
// coalesces into the existing batch; the timer never fires early.
func (ix *Index) ScheduleReindex(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.pending[id] = struct{}{}
	if ix.timer != nil {
		ix.timer.Reset(ix.delay)
		return
	}
	ix.timer = time.AfterFunc(ix.delay, ix.Flush)
}

// Flush drains the pending set now. The set and timer are cleared before any
// per-document work so a failure there cannot wedge future scheduling; the
// flat cache is recomputed once for the whole batch.
func (ix *Index) Flush() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.timer != nil {
		ix.timer.Stop()
		ix.timer = nil
	}
	if len(ix.pending) == 0 {
		return
	}
	batch := ix.pending
	ix.pending = make(map[string]struct{})
	for id := range batch {
		ix.reindexLocked(id)
	}
	ix.rebuildFlatLocked()
	log.Debugf("reindexed %d document(s)", len(batch))
}

// HandleRename drops the entries held under oldID. A target that is still
// indexable gets a scheduled reindex under its new id.
func (ix *Index) HandleRename(id, oldID string) {
	_, ok := ix.store.ResolveDocument(id)
	ix.mu.Lock()
	delete(ix.docs, oldID)
	ix.rebuildFlatLocked()
	ix.mu.Unlock()
	if ok {
		ix.ScheduleReindex(id)
	}
}

// HandleRemoval drops all entries for id and refreshes the flat cache.
func (ix *Index) HandleRemoval(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.docs, id)
	ix.rebuildFlatLocked()
}

// RebuildAll clears everything and reindexes every known document. Used for
// full-collection resynchronization.
func (ix *Index) RebuildAll() {
	ids := ix.store.ListDocuments()
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs = make(map[string][]Entry, len(ids))
	for _, id := range ids {
		ix.reindexLocked(id)
	}
	ix.rebuildFlatLocked()
	log.Debugf("rebuilt index: %d document(s), %d heading(s)", len(ix.docs), len(ix.flat))
}

// rebuildFlatLocked recomputes the flat cache. Ids are sorted so the cache
// order is stable across rebuilds (Go map iteration is randomized).
func (ix *Index) rebuildFlatLocked() {
	ids := make([]string, 0, len(ix.docs))
	total := 0
	for id, entries := range ix.docs {
		ids = append(ids, id)
		total += len(entries)
	}
	sort.Strings(ids)
	flat := make([]Entry, 0, total)
	for _, id := range ids {
		flat = append(flat, ix.docs[id]...)
	}
	ix.flat = flat
}

// Entries returns a copy of the flat cache.
func (ix *Index) Entries() []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Entry, len(ix.flat))
	copy(out, ix.flat)
	return out
}

// Stats returns basic counters about the index.
func (ix *Index) Stats() map[string]int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return map[string]int{
		"documents": len(ix.docs),
		"headings":  len(ix.flat),
		"pending":   len(ix.pending),
	}
}

// Search scores every cached entry against query and returns the ranked
// results, truncated to opts.MaxSuggestions. Ordering is deterministic:
// score descending, then heading length, document name and heading text
// ascending. The full linear scan is deliberate; heading corpora stay small
// enough that a secondary search structure is not worth maintaining.
func (ix *Index) Search(query string, opts SearchOptions) []ScoredEntry {
	normalized := query
	if !opts.CaseSensitive {
		normalized = strings.ToLower(query)
	}
	if utf8.RuneCountInString(normalized) < opts.MinChars {
		return nil
	}
	tokens := match.Tokenize(normalized)

	ix.mu.RLock()
	results := make([]ScoredEntry, 0, 16)
	for _, e := range ix.flat {
		cand := e.HeadingLower
		if opts.CaseSensitive {
			cand = e.Heading
		}
		s, ok := match.Candidate(cand, normalized, tokens, opts.Fuzzy, opts.MinFuzzyScore)
		if !ok {
			continue
		}
		results = append(results, ScoredEntry{Entry: e, Score: s.Value, Type: s.Type})
	}
	ix.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Heading) != len(b.Heading) {
			return len(a.Heading) < len(b.Heading)
		}
		if a.DocumentName != b.DocumentName {
			return a.DocumentName < b.DocumentName
		}
		return a.Heading < b.Heading
	})

	if opts.MaxSuggestions > 0 && len(results) > opts.MaxSuggestions {
		results = results[:opts.MaxSuggestions]
	}
	return results
}
