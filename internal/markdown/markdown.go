// Package markdown converts Markdown section bodies into rich documents using goldmark.
package markdown

import (
	"bytes"
	"reflect"
	"slices"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/sitecontent/internal/content"
)

// Options controls parsing behavior.
type Options struct {
	// Strikethrough enables the ~~text~~ extension.
	Strikethrough bool
}

// Converter implements content.Converter. It is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

var _ content.Converter = (*Converter)(nil)

// NewConverter builds a converter.
func NewConverter(opts Options) *Converter {
	var exts []goldmark.Extender
	if opts.Strikethrough {
		exts = append(exts, extension.Strikethrough)
	}
	return &Converter{md: goldmark.New(goldmark.WithExtensions(exts...))}
}

// Convert parses body and returns a document node.
func (c *Converter) Convert(body []byte) (*content.Node, error) {
	root := c.md.Parser().Parse(text.NewReader(body))
	return &content.Node{Type: "doc", Content: blocks(root, body)}, nil
}

func blocks(parent gmast.Node, src []byte) []*content.Node {
	var out []*content.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := block(n, src); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func block(n gmast.Node, src []byte) *content.Node {
	switch n := n.(type) {
	case *gmast.Heading:
		return &content.Node{Type: "heading", Attrs: map[string]any{"level": n.Level}, Content: inline(n, src, nil)}
	case *gmast.Paragraph, *gmast.TextBlock:
		return &content.Node{Type: "paragraph", Content: inline(n, src, nil)}
	case *gmast.Blockquote:
		return &content.Node{Type: "blockquote", Content: blocks(n, src)}
	case *gmast.List:
		if n.IsOrdered() {
			return &content.Node{Type: "orderedList", Attrs: map[string]any{"start": n.Start}, Content: blocks(n, src)}
		}
		return &content.Node{Type: "bulletList", Content: blocks(n, src)}
	case *gmast.ListItem:
		return &content.Node{Type: "listItem", Content: blocks(n, src)}
	case *gmast.FencedCodeBlock:
		node := codeBlock(n, src)
		if lang := n.Language(src); len(lang) > 0 {
			node.Attrs = map[string]any{"language": string(lang)}
		}
		return node
	case *gmast.CodeBlock:
		return codeBlock(n, src)
	case *gmast.ThematicBreak:
		return &content.Node{Type: "horizontalRule"}
	case *gmast.HTMLBlock:
		return &content.Node{Type: "html", Text: string(lines(n, src))}
	}
	if n.HasChildren() {
		return &content.Node{Type: "paragraph", Content: inline(n, src, nil)}
	}
	return nil
}

func codeBlock(n gmast.Node, src []byte) *content.Node {
	node := &content.Node{Type: "codeBlock"}
	if code := lines(n, src); len(code) > 0 {
		node.Content = []*content.Node{{Type: "text", Text: string(code)}}
	}
	return node
}

func lines(n gmast.Node, src []byte) []byte {
	var buf bytes.Buffer
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		seg := l.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.Bytes()
}

func inline(parent gmast.Node, src []byte, marks []content.Mark) []*content.Node {
	var out []*content.Node
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *gmast.Text:
			t := string(n.Segment.Value(src))
			if n.SoftLineBreak() {
				t += " "
			}
			out = appendText(out, t, marks)
			if n.HardLineBreak() {
				out = append(out, &content.Node{Type: "hardBreak"})
			}
		case *gmast.String:
			out = appendText(out, string(n.Value), marks)
		case *gmast.CodeSpan:
			out = appendText(out, plain(n, src), withMark(marks, content.Mark{Type: "code"}))
		case *gmast.Emphasis:
			kind := "em"
			if n.Level >= 2 {
				kind = "strong"
			}
			out = append(out, inline(n, src, withMark(marks, content.Mark{Type: kind}))...)
		case *extast.Strikethrough:
			out = append(out, inline(n, src, withMark(marks, content.Mark{Type: "strike"}))...)
		case *gmast.Link:
			out = append(out, inline(n, src, withMark(marks, linkMark(string(n.Destination), string(n.Title))))...)
		case *gmast.AutoLink:
			out = appendText(out, string(n.Label(src)), withMark(marks, linkMark(string(n.URL(src)), "")))
		case *gmast.Image:
			attrs := map[string]any{"src": string(n.Destination), "alt": plain(n, src)}
			if len(n.Title) > 0 {
				attrs["title"] = string(n.Title)
			}
			out = append(out, &content.Node{Type: "image", Attrs: attrs})
		case *gmast.RawHTML:
			var buf bytes.Buffer
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				buf.Write(seg.Value(src))
			}
			out = append(out, &content.Node{Type: "html", Text: buf.String()})
		default:
			out = append(out, inline(n, src, marks)...)
		}
	}
	return out
}

// appendText merges t into the previous text node when both carry the same marks.
func appendText(out []*content.Node, t string, marks []content.Mark) []*content.Node {
	if t == "" {
		return out
	}
	if len(out) > 0 {
		last := out[len(out)-1]
		if last.Type == "text" && reflect.DeepEqual(last.Marks, marks) {
			last.Text += t
			return out
		}
	}
	return append(out, &content.Node{Type: "text", Text: t, Marks: marks})
}

func withMark(marks []content.Mark, m content.Mark) []content.Mark {
	return append(slices.Clone(marks), m)
}

func linkMark(href, title string) content.Mark {
	attrs := map[string]any{"href": href}
	if title != "" {
		attrs["title"] = title
	}
	return content.Mark{Type: "link", Attrs: attrs}
}

// plain concatenates the text segments below n.
func plain(n gmast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *gmast.Text:
			buf.Write(c.Segment.Value(src))
		case *gmast.String:
			buf.Write(c.Value)
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}
