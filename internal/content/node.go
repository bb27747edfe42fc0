package content

// Node is a rich-document node. Documents are trees rooted at a node of type "doc".
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark decorates a text node (emphasis, links, inline code).
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Converter turns a Markdown body into a rich document.
type Converter interface {
	Convert(body []byte) (*Node, error)
}

// Walk visits n and its descendants depth-first. Returning false from fn skips
// the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Content {
		c.Walk(fn)
	}
}

// Attr returns a string attribute or "".
func (n *Node) Attr(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	s, _ := n.Attrs[key].(string)
	return s
}

// PlainText concatenates the text of every descendant text node.
func (n *Node) PlainText() string {
	var out []byte
	n.Walk(func(c *Node) bool {
		if c.Type == "text" {
			out = append(out, c.Text...)
		}
		return true
	})
	return string(out)
}
