package suggest

import (
	"strings"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
)

// Characters that would collide with wiki-link delimiter syntax get a
// backslash prefix.
var linkEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`[`, `\[`,
	`]`, `\]`,
)

// EscapeLinkText escapes link-delimiter characters in s.
func EscapeLinkText(s string) string {
	return linkEscaper.Replace(s)
}

// BuildLink formats the cross-reference link for e as
// [[Document#Heading]], or [[Document#Heading|Heading]] with the raw heading
// text as alias when withAlias is set. Document name, heading and alias are
// all escaped.
func BuildLink(e index.Entry, withAlias bool) string {
	doc := EscapeLinkText(e.DocumentName)
	head := EscapeLinkText(e.Heading)
	if withAlias {
		return "[[" + doc + "#" + head + "|" + head + "]]"
	}
	return "[[" + doc + "#" + head + "]]"
}
