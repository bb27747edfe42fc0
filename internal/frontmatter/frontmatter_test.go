package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	b, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, FormatNone, b.Format)
	require.Empty(t, b.Raw)
	require.Equal(t, input, b.Body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	b, err := Split([]byte("---\ntype: Hero\n---\n# Title\n"))
	require.NoError(t, err)
	require.Equal(t, FormatYAML, b.Format)
	require.Equal(t, []byte("type: Hero\n"), b.Raw)
	require.Equal(t, []byte("# Title\n"), b.Body)
}

func TestSplit_TOMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	b, err := Split([]byte("+++\ntype = \"Hero\"\n+++\n# Title\n"))
	require.NoError(t, err)
	require.Equal(t, FormatTOML, b.Format)
	require.Equal(t, []byte("type = \"Hero\"\n"), b.Raw)
	require.Equal(t, []byte("# Title\n"), b.Body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	b, err := Split(input)
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.Equal(t, input, b.Body)
	require.Equal(t, FormatNone, b.Format)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	b, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.Equal(t, "\r\n", b.Style.Newline)
	require.Equal(t, []byte("key: value\r\n"), b.Raw)
	require.Equal(t, []byte("# Title\r\n"), b.Body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	b, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.Equal(t, FormatYAML, b.Format)
	require.Empty(t, b.Raw)
	require.Equal(t, []byte("# Title\n"), b.Body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	b, err := Split([]byte("---\nid: hero\n---"))
	require.NoError(t, err)
	require.Equal(t, []byte("id: hero\n"), b.Raw)
	require.Empty(t, b.Body)
}

func TestParse_DispatchesOnFormat(t *testing.T) {
	fields, err := Parse(Block{Raw: []byte("id = \"x\"\n[props]\nsize = 2\n"), Format: FormatTOML})
	require.NoError(t, err)
	require.Equal(t, "x", fields["id"])
	require.Equal(t, map[string]any{"size": int64(2)}, fields["props"])

	fields, err = Parse(Block{Format: FormatNone})
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_ValidYAML_ReturnsMap(t *testing.T) {
	fields, err := ParseYAML([]byte("uid: abc\ntags:\n  - one\n"))
	require.NoError(t, err)
	require.Equal(t, "abc", fields["uid"])
	require.Equal(t, []any{"one"}, fields["tags"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte(": not yaml"))
	require.Error(t, err)
}

func TestParseTOML_InvalidTOML_ReturnsError(t *testing.T) {
	_, err := ParseTOML([]byte("= nope"))
	require.Error(t, err)
}
