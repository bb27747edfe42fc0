package content

import (
	"fmt"
	"strings"
)

// InsetPrefix marks an image destination as a component reference.
const InsetPrefix = "@"

// ExtractInsets returns a copy of doc in which every image whose source starts with
// "@" is replaced by an inset placeholder node, plus the lifted insets in document
// order. Reference ids are unique within the document. doc itself is not modified.
func ExtractInsets(doc *Node) (*Node, []Inset) {
	if doc == nil {
		return nil, nil
	}
	var insets []Inset
	var rewrite func(n *Node) *Node
	rewrite = func(n *Node) *Node {
		if n.Type == "image" && strings.HasPrefix(n.Attr("src"), InsetPrefix) {
			component := strings.TrimPrefix(n.Attr("src"), InsetPrefix)
			if component != "" {
				ref := fmt.Sprintf("inset_%d", len(insets)+1)
				insets = append(insets, Inset{
					RefID:     ref,
					Component: component,
					Alt:       n.Attr("alt"),
					Title:     n.Attr("title"),
				})
				return &Node{Type: "inset", Attrs: map[string]any{"refId": ref}}
			}
		}
		cp := *n
		if len(n.Content) > 0 {
			cp.Content = make([]*Node, len(n.Content))
			for i, c := range n.Content {
				cp.Content[i] = rewrite(c)
			}
		}
		return &cp
	}
	return rewrite(doc), insets
}
