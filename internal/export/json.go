package export

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitecontent/internal/content"
	ferrors "git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
)

// WriteJSON encodes sc as indented JSON to w.
func WriteJSON(w io.Writer, sc *content.SiteContent) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(sc)
}

// ReadJSON decodes a document previously written by WriteJSON.
func ReadJSON(r io.Reader) (*content.SiteContent, error) {
	var sc content.SiteContent
	if err := json.NewDecoder(r).Decode(&sc); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "decode site content").Build()
	}
	return &sc, nil
}

// JSONWriter writes the document to a file. The file is replaced atomically
// so readers never observe a partial document.
type JSONWriter struct {
	Path string
}

// NewJSONWriter returns a writer for path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{Path: path}
}

func (w *JSONWriter) Write(_ context.Context, sc *content.SiteContent) error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return exportError(err, "ensure output directory", w.Path)
	}
	tmp := w.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return exportError(err, "create temp document", tmp)
	}
	if err := WriteJSON(f, sc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return exportError(err, "encode document", tmp)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return exportError(err, "close temp document", tmp)
	}
	if err := os.Rename(tmp, w.Path); err != nil {
		return exportError(err, "atomic rename document", w.Path)
	}
	return nil
}

func exportError(err error, msg, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryExport, msg).WithContext("path", path).Build()
}
