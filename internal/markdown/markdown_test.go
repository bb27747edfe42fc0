package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecontent/internal/content"
)

func convert(t *testing.T, src string) *content.Node {
	t.Helper()
	doc, err := NewConverter(Options{Strikethrough: true}).Convert([]byte(src))
	require.NoError(t, err)
	require.Equal(t, "doc", doc.Type)
	return doc
}

func TestConvertHeadingAndParagraph(t *testing.T) {
	doc := convert(t, "# Welcome\n\nHello *big* **bold** world\n")
	require.Len(t, doc.Content, 2)

	h := doc.Content[0]
	assert.Equal(t, "heading", h.Type)
	assert.Equal(t, 1, h.Attrs["level"])
	assert.Equal(t, "Welcome", h.PlainText())

	p := doc.Content[1]
	assert.Equal(t, "paragraph", p.Type)
	require.Len(t, p.Content, 5)
	assert.Equal(t, "Hello ", p.Content[0].Text)
	assert.Equal(t, []content.Mark{{Type: "em"}}, p.Content[1].Marks)
	assert.Equal(t, []content.Mark{{Type: "strong"}}, p.Content[3].Marks)
	assert.Equal(t, "Hello big bold world", p.PlainText())
}

func TestConvertSoftBreaksMerge(t *testing.T) {
	doc := convert(t, "line one\nline two\n")
	p := doc.Content[0]
	require.Len(t, p.Content, 1)
	assert.Equal(t, "line one line two", p.Content[0].Text)
}

func TestConvertLinksAndImages(t *testing.T) {
	doc := convert(t, "See [docs](guide.pdf \"Guide\") and ![Logo](img/logo.png).\n\n![](@Chart)\n")
	links := CollectLinks(doc)
	require.Len(t, links, 3)
	assert.Equal(t, Link{Kind: LinkKindInline, Destination: "guide.pdf"}, links[0])
	assert.Equal(t, Link{Kind: LinkKindImage, Destination: "img/logo.png"}, links[1])
	assert.Equal(t, "@Chart", links[2].Destination)

	var img *content.Node
	doc.Walk(func(n *content.Node) bool {
		if n.Type == "image" && img == nil {
			img = n
		}
		return true
	})
	require.NotNil(t, img)
	assert.Equal(t, "Logo", img.Attr("alt"))

	var linked *content.Node
	doc.Walk(func(n *content.Node) bool {
		if n.Type == "text" && n.Text == "docs" {
			linked = n
		}
		return true
	})
	require.NotNil(t, linked)
	assert.Equal(t, "Guide", linked.Marks[0].Attrs["title"])
}

func TestConvertBlocks(t *testing.T) {
	src := "> quoted\n\n- a\n- b\n\n3. x\n4. y\n\n```go\nfmt.Println()\n```\n\n---\n\n~~gone~~ `code`\n"
	doc := convert(t, src)

	var types []string
	for _, n := range doc.Content {
		types = append(types, n.Type)
	}
	assert.Equal(t, []string{"blockquote", "bulletList", "orderedList", "codeBlock", "horizontalRule", "paragraph"}, types)

	assert.Len(t, doc.Content[1].Content, 2)
	assert.Equal(t, 3, doc.Content[2].Attrs["start"])
	assert.Equal(t, "go", doc.Content[3].Attr("language"))
	assert.Equal(t, "fmt.Println()\n", doc.Content[3].PlainText())

	last := doc.Content[5]
	assert.Equal(t, []content.Mark{{Type: "strike"}}, last.Content[0].Marks)
	assert.Equal(t, []content.Mark{{Type: "code"}}, last.Content[2].Marks)
}

func TestConvertInsetsRoundTrip(t *testing.T) {
	doc := convert(t, "Intro\n\n![Sales chart](@Chart \"Q1\")\n")
	out, insets := content.ExtractInsets(doc)
	require.Len(t, insets, 1)
	assert.Equal(t, content.Inset{RefID: "inset_1", Component: "Chart", Alt: "Sales chart", Title: "Q1"}, insets[0])
	assert.Equal(t, "inset", out.Content[1].Content[0].Type)
}

func TestLinkClassification(t *testing.T) {
	assert.True(t, IsIconRef("lu:house"))
	assert.True(t, IsIconRef("fa6:arrow-right"))
	assert.False(t, IsIconRef("https://x"))
	assert.False(t, IsIconRef("img/a.png"))

	assert.True(t, IsLocal("img/a.png"))
	assert.True(t, IsLocal("/files/brochure.pdf"))
	assert.False(t, IsLocal("https://example.com/a.png"))
	assert.False(t, IsLocal("#top"))
	assert.False(t, IsLocal("@Chart"))
	assert.False(t, IsLocal("lu:house"))
	assert.False(t, IsLocal("mailto:a@b.c"))
}
