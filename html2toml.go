// Package html2toml dumps the structure of an HTML document as TOML.
//
// Every element becomes a table holding its attributes, its child
// elements keyed by tag name, and, for leaf elements, its text under
// "text". Repeated sibling tags become arrays.
package html2toml

import (
	"bytes"
	"io"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Option is the option for Convert and Document.
type Option struct {
	// Selector is a CSS selector. When set, the matching elements are
	// mapped in place of the top level elements of the document.
	Selector string
	// Validate decodes the encoded output again before writing it.
	Validate bool
	// Logger receives debug tracing of the mapping. Nil disables it.
	Logger *slog.Logger
}

// Document reads HTML from r and returns it mapped to a table.
func Document(r io.Reader, option *Option) (*Table, error) {
	if option == nil {
		option = &Option{}
	}
	r, err := decode(r)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, Errorf(EINPUT, "parse html: %w", err)
	}
	nodes, err := roots(doc, option.Selector)
	if err != nil {
		return nil, err
	}
	m := &mapper{logger: option.Logger}
	return m.document(nodes), nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

// decode returns r as UTF-8. Input is taken as UTF-8 unless a BOM or a
// <meta charset> names another encoding and the bytes are not valid UTF-8.
func decode(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Errorf(EINPUT, "read html: %w", err)
	}
	_, name, certain := charset.DetermineEncoding(data, "")
	if name == "utf-8" || (!certain && utf8.Valid(data)) {
		return bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)), nil
	}
	dr, err := charset.NewReaderLabel(name, bytes.NewReader(data))
	if err != nil {
		return nil, Errorf(EINPUT, "decode %s: %w", name, err)
	}
	return dr, nil
}

// Convert convert HTML to TOML. Read HTML from r and write to w.
func Convert(w io.Writer, r io.Reader, option *Option) error {
	if option == nil {
		option = &Option{}
	}
	t, err := Document(r, option)
	if err != nil {
		return err
	}
	enc := NewEncoder(w)
	enc.Validate = option.Validate
	return enc.Encode(t)
}
