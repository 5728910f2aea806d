package scan

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// firstHeading extracts the text of the first markdown heading in a body.
// Used as the title fallback for documents whose block has no title field.
func firstHeading(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	source := []byte(body)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	title := ""
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || title != "" {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				b.Write(textNode.Segment.Value(source))
			}
		}
		title = strings.TrimSpace(b.String())
		if title != "" {
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return title
}
