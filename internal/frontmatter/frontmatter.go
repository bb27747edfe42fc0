package frontmatter

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the front-matter dialect found at the top of a document.
type Format string

const (
	FormatNone Format = ""
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Style captures formatting details needed for stable rewriting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Block is the result of splitting a document.
type Block struct {
	Raw    []byte // front-matter bytes without delimiters
	Body   []byte
	Format Format
	Style  Style
}

// Split separates front-matter from the Markdown body.
//
// `---` delimits YAML and `+++` delimits TOML. If the document does not start with
// either delimiter, Format is FormatNone and Body is the full input.
func Split(content []byte) (Block, error) {
	style := detectStyle(content)
	for _, d := range []struct {
		delim  string
		format Format
	}{{"---", FormatYAML}, {"+++", FormatTOML}} {
		raw, body, had, err := splitDelimited(content, d.delim, style.Newline)
		if err != nil {
			return Block{Body: content, Style: style}, err
		}
		if had {
			return Block{Raw: raw, Body: body, Format: d.format, Style: style}, nil
		}
	}
	return Block{Body: content, Style: style}, nil
}

func splitDelimited(content []byte, delim, nl string) (raw []byte, body []byte, had bool, err error) {
	open := []byte(delim + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + delim + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without a trailing newline still closes the block.
		if bytes.HasSuffix(content, []byte(nl+delim)) {
			end := len(content) - len(delim)
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Parse decodes a Block's raw front-matter according to its format.
func Parse(b Block) (map[string]any, error) {
	switch b.Format {
	case FormatYAML:
		return ParseYAML(b.Raw)
	case FormatTOML:
		return ParseTOML(b.Raw)
	default:
		return map[string]any{}, nil
	}
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// ParseTOML parses raw TOML frontmatter (without +++ delimiters) into a map.
func ParseTOML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	fields := map[string]any{}
	if err := toml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ErrMissingClosingDelimiter indicates the document started with a front-matter
// delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			break
		}
	}

	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
