package match

import (
	"strings"
	"unicode"
)

// Phrase is the bounded run of typed text ending nearest the cursor.
type Phrase struct {
	Query string
	Start int // rune offset of the phrase within the scanned text
}

// isPhraseRune reports whether r can be part of a phrase: letters, digits,
// underscores, apostrophes and hyphens.
func isPhraseRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '_' || r == '\'' || r == '’' || r == '-'
}

// Extract scans text backward from its end for the phrase closest to the
// cursor. Starting at the last phrase rune, it extends back through
// contiguous phrase runes and crosses a whitespace gap only while the word
// count stays below max(1, maxWords) and another phrase rune exists beyond
// the gap. ok is false when text holds no phrase runes at all.
func Extract(text string, maxWords int) (Phrase, bool) {
	runes := []rune(text)

	end := len(runes) - 1
	for end >= 0 && !isPhraseRune(runes[end]) {
		end--
	}
	if end < 0 {
		return Phrase{}, false
	}

	limit := maxWords
	if limit < 1 {
		limit = 1
	}

	words := 1
	start := end
	for start > 0 {
		prev := runes[start-1]
		if isPhraseRune(prev) {
			start--
			continue
		}
		if !unicode.IsSpace(prev) {
			break
		}
		// Peek past the whitespace run for another word to capture.
		j := start - 1
		for j >= 0 && unicode.IsSpace(runes[j]) {
			j--
		}
		if j < 0 || !isPhraseRune(runes[j]) || words >= limit {
			break
		}
		words++
		start = j
	}

	query := strings.TrimSpace(string(runes[start : end+1]))
	if query == "" {
		return Phrase{}, false
	}
	return Phrase{Query: query, Start: start}, true
}
