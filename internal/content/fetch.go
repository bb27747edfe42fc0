package content

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// ErrInvalidFetch is returned for fetch declarations that cannot be used.
var ErrInvalidFetch = errors.New("invalid fetch declaration")

// FetchSpec declares a data source a page or section pulls at render time.
type FetchSpec struct {
	Path      string `json:"path,omitempty"`
	URL       string `json:"url,omitempty"`
	Schema    string `json:"schema,omitempty"`
	Select    string `json:"select,omitempty"`
	Prerender bool   `json:"prerender"`
}

// ParseFetch accepts either a bare string (a URL or a site-relative data path) or a
// mapping with path/url/schema/select/prerender keys. A nil input yields nil.
// Select expressions are validated as JSONPath.
func ParseFetch(raw any) (*FetchSpec, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("%w: empty source", ErrInvalidFetch)
		}
		if isURL(v) {
			return &FetchSpec{URL: v, Prerender: true}, nil
		}
		return &FetchSpec{Path: v, Prerender: true}, nil
	case map[string]any:
		return parseFetchMap(v)
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidFetch, raw)
	}
}

func parseFetchMap(m map[string]any) (*FetchSpec, error) {
	spec := &FetchSpec{Prerender: true}
	spec.Path = stringField(m, "path")
	spec.URL = stringField(m, "url")
	spec.Schema = stringField(m, "schema")
	spec.Select = stringField(m, "select")
	if p, ok := m["prerender"].(bool); ok {
		spec.Prerender = p
	}

	if spec.Path == "" && spec.URL == "" {
		return nil, fmt.Errorf("%w: one of path or url is required", ErrInvalidFetch)
	}
	if spec.Path != "" && spec.URL != "" {
		return nil, fmt.Errorf("%w: path and url are mutually exclusive", ErrInvalidFetch)
	}
	if spec.URL != "" && !isURL(spec.URL) {
		return nil, fmt.Errorf("%w: url %q must use http or https", ErrInvalidFetch, spec.URL)
	}
	if spec.Select != "" {
		if _, err := jp.ParseString(spec.Select); err != nil {
			return nil, fmt.Errorf("%w: select %q: %v", ErrInvalidFetch, spec.Select, err)
		}
	}
	return spec, nil
}

// SchemaName returns the declared schema. Without one it is the base name of the
// data path or URL path, minus its extension ("posts.json" gives "posts").
func (f *FetchSpec) SchemaName() string {
	if f == nil {
		return ""
	}
	if f.Schema != "" {
		return f.Schema
	}
	src := f.Path
	if f.URL != "" {
		u, err := url.Parse(f.URL)
		if err != nil {
			return ""
		}
		src = u.Path
	}
	base := path.Base(strings.TrimRight(src, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
