// Package markup implements the restricted template grammar used by custom
// pages: plain elements, attributes and text, parsed against a closed
// component registry. The same parser backs author-time validation and
// request-time rendering so the two can never drift apart.
package markup

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ErrEmptyMarkup 表示提交的页面内容为空。
var ErrEmptyMarkup = errors.New("markup is empty")

// Attribute is a single key/value pair on an element.
type Attribute struct {
	Key string
	Val string
}

// Node is one node of the parsed markup tree. Text nodes have an empty Tag.
type Node struct {
	Tag      string
	Text     string
	Attr     []Attribute
	Children []*Node
}

// ComponentFunc renders a registered component tag. It receives the
// component's attributes and the already-rendered HTML of its children.
type ComponentFunc func(attrs []Attribute, children string) (string, error)

// Registry is the closed allow-list of component tags that stored markup may
// reference. Plain HTML elements are always available; anything else must be
// registered here or parsing fails.
type Registry struct {
	components map[string]ComponentFunc
}

// NewRegistry returns an empty registry. Custom pages ship with no
// components enabled; arbitrary component execution from stored markup is
// not permitted.
func NewRegistry() *Registry {
	return &Registry{components: map[string]ComponentFunc{}}
}

// Register 以小写标签名登记一个组件。
func (r *Registry) Register(name string, fn ComponentFunc) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" || fn == nil {
		return
	}
	r.components[trimmed] = fn
}

func (r *Registry) lookup(name string) (ComponentFunc, bool) {
	if r == nil || r.components == nil {
		return nil, false
	}
	fn, ok := r.components[strings.ToLower(name)]
	return fn, ok
}

// htmlElements is the closed grammar of renderable plain elements.
var htmlElements = map[string]bool{
	"a": true, "abbr": true, "article": true, "aside": true, "b": true,
	"blockquote": true, "br": true, "button": true, "caption": true,
	"cite": true, "code": true, "dd": true, "del": true, "details": true,
	"div": true, "dl": true, "dt": true, "em": true, "figcaption": true,
	"figure": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"i": true, "img": true, "ins": true, "li": true, "main": true,
	"mark": true, "nav": true, "ol": true, "p": true, "pre": true,
	"q": true, "section": true, "small": true, "span": true, "strong": true,
	"sub": true, "summary": true, "sup": true, "table": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
	"u": true, "ul": true,
}

// voidElements never carry children and need no closing tag.
var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true,
}

var moduleStatementPattern = regexp.MustCompile(`(?m)^\s*(import|export)\b`)

// Parse tokenizes src under the custom page grammar and returns the markup
// tree, or an error describing the first problem found. A nil registry is
// treated as empty.
func Parse(src string, reg *Registry) (*Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyMarkup
	}

	if loc := moduleStatementPattern.FindString(src); loc != "" {
		return nil, fmt.Errorf("markup must not contain %s statements", strings.TrimSpace(loc))
	}

	root := &Node{}
	stack := []*Node{root}

	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("tokenize markup: %w", err)
			}
			if len(stack) > 1 {
				return nil, fmt.Errorf("unclosed tag <%s>", stack[len(stack)-1].Tag)
			}
			return root, nil

		case html.TextToken:
			text := z.Token().Data
			if strings.TrimSpace(text) == "" {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Text: text})

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := rawTagName(z.Raw())
			tok := z.Token()
			if !htmlElements[tok.Data] {
				if _, ok := reg.lookup(tok.Data); !ok {
					return nil, fmt.Errorf("unknown component <%s>", raw)
				}
			}

			node := &Node{Tag: tok.Data}
			for _, attr := range tok.Attr {
				node.Attr = append(node.Attr, Attribute{Key: attr.Key, Val: attr.Val})
			}

			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)

			if tok.Type == html.StartTagToken && !voidElements[tok.Data] {
				stack = append(stack, node)
			}

		case html.EndTagToken:
			tok := z.Token()
			if voidElements[tok.Data] {
				continue
			}
			if len(stack) == 1 {
				return nil, fmt.Errorf("unexpected closing tag </%s>", tok.Data)
			}
			open := stack[len(stack)-1]
			if open.Tag != tok.Data {
				return nil, fmt.Errorf("mismatched closing tag </%s>, expected </%s>", tok.Data, open.Tag)
			}
			stack = stack[:len(stack)-1]

		case html.CommentToken:
			// 注释不参与渲染，直接丢弃。

		case html.DoctypeToken:
			return nil, errors.New("markup must not contain a doctype")
		}
	}
}

// Validate 在保存前检查页面内容是否可以被当前语法解析。
func Validate(src string, reg *Registry) error {
	_, err := Parse(src, reg)
	return err
}

// rawTagName recovers the tag name as the author wrote it, for error
// messages; the tokenizer itself lowercases names.
func rawTagName(raw []byte) string {
	s := strings.TrimLeft(string(raw), "</ \t\n")
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '/' || r == '>' {
			return s[:i]
		}
	}
	return strings.TrimRight(s, ">")
}
