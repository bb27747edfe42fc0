package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonical_EmptyMap_ReturnsEmpty(t *testing.T) {
	out, err := Canonical(map[string]any{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCanonical_DeterministicOrder(t *testing.T) {
	fields := map[string]any{"b": "two", "a": "one", "c": 3}

	out1, err := Canonical(fields)
	require.NoError(t, err)
	out2, err := Canonical(fields)
	require.NoError(t, err)

	require.Equal(t, string(out1), string(out2))
	require.Equal(t, "a: one\nb: two\nc: 3\n", string(out1))
}

func TestCanonical_NestedMap_SortsKeysRecursively(t *testing.T) {
	fields := map[string]any{
		"outer": map[string]any{"b": 2, "a": 1},
		"list":  []any{map[string]any{"z": true, "y": false}},
	}

	out, err := Canonical(fields)
	require.NoError(t, err)
	require.Equal(t, "list:\n  - y: false\n    z: true\nouter:\n  a: 1\n  b: 2\n", string(out))
}

func TestCanonical_TOMLAndYAMLAgree(t *testing.T) {
	y, err := ParseYAML([]byte("title: Hi\nsize: 2\n"))
	require.NoError(t, err)
	tm, err := ParseTOML([]byte("title = \"Hi\"\nsize = 2\n"))
	require.NoError(t, err)

	a, err := Canonical(y)
	require.NoError(t, err)
	b, err := Canonical(tm)
	require.NoError(t, err)
	require.Equal(t, string(a), string(b))
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(map[string]any{"title": "A", "tags": []any{"x"}}, []byte("body\n"))
	require.NoError(t, err)
	require.NotEmpty(t, a)

	// key order and excluded keys do not matter
	b, err := Fingerprint(map[string]any{"tags": []any{"x"}, "title": "A", "lastmod": "2024-01-01"}, []byte("body\n"))
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := Fingerprint(map[string]any{"title": "A", "tags": []any{"x"}}, []byte("other\n"))
	require.NoError(t, err)
	require.NotEqual(t, a, c)

	empty, err := Fingerprint(nil, []byte("body\n"))
	require.NoError(t, err)
	require.NotEmpty(t, empty)
}
