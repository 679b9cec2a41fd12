package match

import (
	"strings"
	"testing"
)

// Tiers are strict priority: the first matching tier wins, even when a lower
// tier would also hit.
func TestCandidateTiers(t *testing.T) {
	testCases := []struct {
		candidate   string
		query       string
		fuzzy       bool
		minFuzzy    int
		wantScore   int
		wantType    MatchType
		wantMatch   bool
		description string
	}{
		{"getting started", "getting started", false, 0, 1000, MatchExact, true, "exact match"},
		{"install", "insta", false, 0, 848, MatchPrefix, true, "prefix, short suffix"},
		{"installation", "insta", false, 0, 843, MatchPrefix, true, "prefix, longer suffix penalized"},
		{"logging", "log", false, 0, 846, MatchPrefix, true, "prefix wins over substring at index 0"},
		{"changelog", "log", false, 0, 638, MatchSubstring, true, "substring at index 6"},
		{"my log", "log", false, 0, 644, MatchSubstring, true, "earlier substring scores higher"},
		{"token for authentication", "auth token", false, 0, 545, MatchToken, true, "all tokens contained, order ignored"},
		{"token for authentication", "auth missing", false, 0, 0, 0, false, "one token absent"},
		{"heading link", "hdln", true, 20, 284, MatchFuzzy, true, "fuzzy subsequence above threshold"},
		{"heading link", "hdln", true, 35, 0, 0, false, "fuzzy below raised threshold"},
		{"heading link", "hdln", false, 0, 0, 0, false, "fuzzy disabled"},
		{"heading", "xyz", true, 1, 0, 0, false, "no tier matches"},
	}

	for _, tc := range testCases {
		tokens := Tokenize(tc.query)
		got, ok := Candidate(tc.candidate, tc.query, tokens, tc.fuzzy, tc.minFuzzy)
		if ok != tc.wantMatch {
			t.Errorf("%s: match = %v, want %v", tc.description, ok, tc.wantMatch)
			continue
		}
		if !ok {
			continue
		}
		if got.Value != tc.wantScore {
			t.Errorf("%s: score = %d, want %d", tc.description, got.Value, tc.wantScore)
		}
		if got.Type != tc.wantType {
			t.Errorf("%s: type = %s, want %s", tc.description, got.Type, tc.wantType)
		}
	}
}

// Candidates longer than the query cap their prefix penalty at 200 and the
// substring position penalty caps at 150.
func TestCandidatePenaltyCaps(t *testing.T) {
	candidate := "install" + strings.Repeat("x", 300)
	got, ok := Candidate(candidate, "install", nil, false, 0)
	if !ok || got.Value != 650 {
		t.Fatalf("capped prefix penalty: got %+v ok=%v, want score 650", got, ok)
	}

	deep := strings.Repeat("z", 200) + "log"
	got, ok = Candidate(deep, "log", nil, false, 0)
	if !ok || got.Value != 500 {
		t.Fatalf("capped substring penalty: got %+v ok=%v, want score 500", got, ok)
	}
}

// The token tier only applies to multi-token queries.
func TestCandidateSingleTokenNeverTokenTier(t *testing.T) {
	tokens := Tokenize("auth")
	got, ok := Candidate("token for authentication", "auth", tokens, false, 0)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Type != MatchSubstring {
		t.Fatalf("single token query matched as %s, want substring", got.Type)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  auth   token ")
	if len(got) != 2 || got[0] != "auth" || got[1] != "token" {
		t.Fatalf("Tokenize = %v, want [auth token]", got)
	}
	if got := Tokenize("   "); len(got) != 0 {
		t.Fatalf("Tokenize of blanks = %v, want empty", got)
	}
}

func TestMatchTypeString(t *testing.T) {
	testCases := []struct {
		t    MatchType
		want string
	}{
		{MatchExact, "exact"},
		{MatchPrefix, "prefix"},
		{MatchSubstring, "substring"},
		{MatchToken, "token"},
		{MatchFuzzy, "fuzzy"},
		{MatchType(99), "unknown"},
	}
	for _, tc := range testCases {
		if got := tc.t.String(); got != tc.want {
			t.Errorf("MatchType(%d).String() = %q, want %q", tc.t, got, tc.want)
		}
	}
}
