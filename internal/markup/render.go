package markup

import (
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Render parses src and renders the resulting tree to sanitized HTML. Any
// parse or component failure is returned to the caller; nothing is written
// on error, so a broken page can never leak partial output.
func Render(src string, reg *Registry) (string, error) {
	root, err := Parse(src, reg)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, child := range root.Children {
		if err := renderNode(&b, child, reg); err != nil {
			return "", err
		}
	}

	return sanitizer.Sanitize(b.String()), nil
}

func renderNode(b *strings.Builder, node *Node, reg *Registry) error {
	if node.Tag == "" {
		b.WriteString(stdhtml.EscapeString(node.Text))
		return nil
	}

	if fn, ok := reg.lookup(node.Tag); ok && !htmlElements[node.Tag] {
		var children strings.Builder
		for _, child := range node.Children {
			if err := renderNode(&children, child, reg); err != nil {
				return err
			}
		}
		out, err := fn(node.Attr, children.String())
		if err != nil {
			return fmt.Errorf("render component <%s>: %w", node.Tag, err)
		}
		b.WriteString(out)
		return nil
	}

	b.WriteString("<")
	b.WriteString(node.Tag)
	for _, attr := range node.Attr {
		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(stdhtml.EscapeString(attr.Val))
		b.WriteString(`"`)
	}

	if voidElements[node.Tag] {
		b.WriteString("/>")
		return nil
	}

	b.WriteString(">")
	for _, child := range node.Children {
		if err := renderNode(b, child, reg); err != nil {
			return err
		}
	}
	b.WriteString("</")
	b.WriteString(node.Tag)
	b.WriteString(">")
	return nil
}
