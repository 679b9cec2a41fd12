package vault

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
)

var markdown = goldmark.New()

// ExtractHeadings parses markdown source and returns its headings in
// document order. Parsing is total: malformed or empty input yields zero
// headings, never an error.
func ExtractHeadings(source []byte) []index.Heading {
	if len(source) == 0 {
		return nil
	}

	doc := markdown.Parser().Parse(text.NewReader(source))

	var headings []index.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if t := headingText(h, source); t != "" {
			headings = append(headings, index.Heading{Text: t, Level: h.Level})
		}
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// headingText collects the plain text of a heading node, dropping inline
// markup.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
