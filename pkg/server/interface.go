/*
Package server implements msgpack IPC for heading-link suggestions.

The server package provides a minimal interface for host editors over msgpack
serialization on stdin/stdout. The protocol uses binary msgpack encoding and
supports ranked suggestion queries, trigger detection, link selection, change
notifications and config updates. Messages are processed synchronously with
timing info included in suggestion responses.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout. Each message carries
an ID and an op naming the operation.

Suggestion requests use mainly this structure:

	{"id": "req_001", "op": "suggest", "q": "getting sta", "l": 10}

The server responds with headings ranked by score:

	{"id": "req_001", "s": [{"h": "Getting Started", "doc": "guides/setup.md", "name": "setup", "lvl": 2, "r": 842, "m": "prefix"}], "c": 1, "t": 95}

Trigger detection takes the line text up to the cursor and answers with the
span a selection would replace:

	{"id": "det_001", "op": "detect", "ln": "see the Getting Sta", "row": 4, "ch": 19}
	{"id": "det_001", "ok": true, "q": "Getting Sta", "s": 8, "e": 19}

Selection turns a chosen heading into the replacement text and the column the
cursor should land on:

	{"id": "sel_001", "op": "select", "doc": "guides/setup.md", "h": "Getting Started", "row": 4, "s": 8, "e": 19}

Change notifications keep the index fresh for hosts that deliver their own
document events instead of relying on the filesystem watcher: "modified",
"renamed" (doc + old), "removed" and "rebuild". "manual" opens the short
window that bypasses foreign-popup suppression. "config" adjusts the
runtime-tunable suggest options without restart, and "health" reports index
counters.

Response structures include status information and error details when an op
fails.
*/
package server

// Request is the envelope for every IPC operation.
type Request struct {
	ID string `msgpack:"id"`
	Op string `msgpack:"op"`

	// suggest
	Query string `msgpack:"q,omitempty"`
	Limit int    `msgpack:"l,omitempty"`

	// detect / select
	Line    string `msgpack:"ln,omitempty"`  // line text up to the cursor
	Row     int    `msgpack:"row,omitempty"` // cursor line
	Cursor  int    `msgpack:"ch,omitempty"`  // cursor column (runes)
	Start   int    `msgpack:"s,omitempty"`   // trigger span start column
	End     int    `msgpack:"e,omitempty"`   // trigger span end column
	Heading string `msgpack:"h,omitempty"`

	// notifications
	Doc    string `msgpack:"doc,omitempty"`
	OldDoc string `msgpack:"old,omitempty"`

	// config
	MinChars       *int  `msgpack:"min_chars,omitempty"`
	MaxSuggestions *int  `msgpack:"max_suggestions,omitempty"`
	Fuzzy          *bool `msgpack:"fuzzy,omitempty"`
	InsertAlias    *bool `msgpack:"insert_alias,omitempty"`
}

// Suggestion - one ranked heading in a response
type Suggestion struct {
	Heading string `msgpack:"h"`
	Doc     string `msgpack:"doc"`
	Name    string `msgpack:"name"`
	Folder  string `msgpack:"dir,omitempty"`
	Level   int    `msgpack:"lvl"`
	Score   int    `msgpack:"r"`
	Match   string `msgpack:"m"`
}

// SuggestResponse - ranked suggestion response
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"` // microseconds
}

// DetectResponse reports the trigger span for a cursor context.
type DetectResponse struct {
	ID    string `msgpack:"id"`
	Found bool   `msgpack:"ok"`
	Query string `msgpack:"q,omitempty"`
	Start int    `msgpack:"s,omitempty"`
	End   int    `msgpack:"e,omitempty"`
}

// SelectResponse carries the replacement text for a chosen suggestion and
// the column the cursor lands on after insertion.
type SelectResponse struct {
	ID          string `msgpack:"id"`
	Replacement string `msgpack:"text"`
	Cursor      int    `msgpack:"ch"`
}

// StatusResponse acknowledges notifications, config ops and health checks.
type StatusResponse struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	Documents int    `msgpack:"docs,omitempty"`
	Headings  int    `msgpack:"headings,omitempty"`
	Pending   int    `msgpack:"pending,omitempty"`
}

// Error holds basic error information for failed requests
type Error struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
