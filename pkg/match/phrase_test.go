package match

import "testing"

func TestExtract(t *testing.T) {
	testCases := []struct {
		text        string
		maxWords    int
		wantQuery   string
		wantStart   int
		wantOK      bool
		description string
	}{
		{"see the Getting Started guide", 2, "Started guide", 16, true, "two-word cap stops before Getting"},
		{"see the Getting Started guide", 3, "Getting Started guide", 8, true, "three-word cap captures Getting"},
		{"see the Getting Started guide", 1, "guide", 24, true, "single word only"},
		{"hello", 3, "hello", 0, true, "whole input is one word"},
		{"hello world!!", 3, "hello world", 0, true, "trailing punctuation skipped to find the phrase end"},
		{"hello world!!", 1, "world", 6, true, "trailing punctuation skipped, single word"},
		{"foo. bar", 3, "bar", 5, true, "non-phrase rune before the gap stops the walk"},
		{"self-hosted setup", 2, "self-hosted setup", 0, true, "hyphen stays inside a word"},
		{"it's done", 2, "it's done", 0, true, "apostrophe stays inside a word"},
		{"   ", 3, "", 0, false, "whitespace only"},
		{"!?.,", 3, "", 0, false, "no phrase runes at all"},
		{"", 3, "", 0, false, "empty input"},
		{"one two", 0, "two", 4, true, "maxWords below 1 clamps to 1"},
		{"a  b", 2, "a  b", 0, true, "whitespace run crossed as a single gap"},
	}

	for _, tc := range testCases {
		got, ok := Extract(tc.text, tc.maxWords)
		if ok != tc.wantOK {
			t.Errorf("%s: ok = %v, want %v", tc.description, ok, tc.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got.Query != tc.wantQuery {
			t.Errorf("%s: query = %q, want %q", tc.description, got.Query, tc.wantQuery)
		}
		if got.Start != tc.wantStart {
			t.Errorf("%s: start = %d, want %d", tc.description, got.Start, tc.wantStart)
		}
	}
}

// Offsets are rune offsets, not byte offsets.
func TestExtractRuneOffsets(t *testing.T) {
	got, ok := Extract("héllo wörld", 2)
	if !ok {
		t.Fatal("expected a phrase")
	}
	if got.Query != "héllo wörld" || got.Start != 0 {
		t.Fatalf("got %+v, want whole phrase at offset 0", got)
	}

	got, ok = Extract("héllo wörld", 1)
	if !ok || got.Query != "wörld" || got.Start != 6 {
		t.Fatalf("got %+v ok=%v, want wörld at rune offset 6", got, ok)
	}
}
