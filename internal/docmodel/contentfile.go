package docmodel

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/frontmatter"
)

// ContentExtensions lists the file extensions treated as content files.
var ContentExtensions = []string{".md", ".markdown"}

// IsContentFile reports whether name has a content extension.
func IsContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ContentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// BaseName strips the content extension from a file name.
func BaseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ContentFile is a loaded content file.
type ContentFile struct {
	Path   string
	Fields map[string]any
	// FrontmatterRaw is the undecoded front-matter block, nil when absent.
	FrontmatterRaw []byte
	Body           []byte
	Format         frontmatter.Format
}

// LoadContentFile reads and splits a content file. A read failure is returned as a
// filesystem error with a zero ContentFile. Malformed front-matter yields a file with
// empty fields (the whole input becomes the body when the block is unterminated) and
// a parse warning.
func LoadContentFile(fs billy.Filesystem, path string) (ContentFile, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return ContentFile{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read content file").
			WithContext("path", path).
			Build()
	}

	cf := ContentFile{Path: path, Fields: map[string]any{}}
	block, err := frontmatter.Split(data)
	cf.Body = block.Body
	if err != nil {
		return cf, errors.WrapError(err, errors.CategoryParse, "malformed front-matter").
			WithContext("path", path).
			Warning().
			Build()
	}

	cf.Format = block.Format
	if block.Format != frontmatter.FormatNone {
		cf.FrontmatterRaw = block.Raw
	}
	fields, err := frontmatter.Parse(block)
	if err != nil {
		return cf, errors.WrapError(err, errors.CategoryParse, "invalid front-matter").
			WithContext("path", path).
			WithContext("format", string(block.Format)).
			Warning().
			Build()
	}
	cf.Fields = fields
	return cf, nil
}
