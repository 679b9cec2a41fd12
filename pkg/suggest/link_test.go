package suggest

import (
	"testing"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
)

func TestEscapeLinkText(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"plain heading", "plain heading"},
		{"a|b", `a\|b`},
		{"[bracketed]", `\[bracketed\]`},
		{`back\slash`, `back\\slash`},
		{`all | [of] \ them`, `all \| \[of\] \\ them`},
	}
	for _, tc := range testCases {
		if got := EscapeLinkText(tc.in); got != tc.want {
			t.Errorf("EscapeLinkText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildLink(t *testing.T) {
	e := index.Entry{DocumentName: "setup", Heading: "Getting Started"}
	if got := BuildLink(e, false); got != "[[setup#Getting Started]]" {
		t.Fatalf("BuildLink = %q", got)
	}
	if got := BuildLink(e, true); got != "[[setup#Getting Started|Getting Started]]" {
		t.Fatalf("BuildLink with alias = %q", got)
	}
}

// Delimiter characters in the document name, heading and alias are all
// escaped so the inserted link cannot terminate early.
func TestBuildLinkEscapesAllParts(t *testing.T) {
	e := index.Entry{DocumentName: "no[tes]", Heading: "a|b"}
	want := `[[no\[tes\]#a\|b|a\|b]]`
	if got := BuildLink(e, true); got != want {
		t.Fatalf("BuildLink = %q, want %q", got, want)
	}
}
