package html2toml

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mattn/go-runewidth"

	"golang.org/x/net/html"
)

// TextKey is the key holding the text of an element without child elements.
const TextKey = "text"

const previewWidth = 40

func attrKey(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}

func preview(s string) string {
	return runewidth.Truncate(strings.Join(strings.Fields(s), " "), previewWidth, "...")
}

type mapper struct {
	logger *slog.Logger
}

func (m *mapper) debug(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}

func (m *mapper) enabled() bool {
	return m.logger != nil && m.logger.Enabled(context.Background(), slog.LevelDebug)
}

func (m *mapper) element(node *html.Node, path string) (*Table, bool) {
	if node == nil || node.Type != html.ElementNode {
		return nil, false
	}
	t := NewTable()
	for _, a := range node.Attr {
		t.Set(attrKey(a), String(a.Val))
	}

	var hasChildElements bool
	var text strings.Builder
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			hasChildElements = true
			var sub string
			if m.enabled() {
				sub = path + "." + c.Data
			}
			if v, ok := m.element(c, sub); ok {
				t.Merge(c.Data, v)
			}
		case html.TextNode:
			text.WriteString(c.Data)
			text.WriteByte(' ')
		}
	}

	if !hasChildElements {
		if s := strings.TrimSpace(text.String()); s != "" {
			if m.enabled() {
				m.debug("text", "path", path, "preview", preview(s))
			}
			t.Set(TextKey, String(s))
		}
	}

	if t.Len() == 0 {
		m.debug("drop empty element", "path", path)
		return nil, false
	}
	return t, true
}

func (m *mapper) document(roots []*html.Node) *Table {
	doc := NewTable()
	for _, node := range roots {
		if node == nil {
			continue
		}
		if t, ok := m.element(node, node.Data); ok {
			doc.Merge(node.Data, t)
		}
	}
	return doc
}

// MapElement converts an element and its descendants into a table.
// Attributes come first, in source order, followed by one key per child
// tag. Text is kept under TextKey only when the element has no child
// elements. It reports false when the element carries no attributes, no
// mapped children and no text; nodes other than elements always report
// false.
func MapElement(node *html.Node) (*Table, bool) {
	return (&mapper{}).element(node, "")
}

// MapDocument maps each of roots with MapElement and collects the results
// into one table keyed by tag name. Elements that map to nothing are
// skipped.
func MapDocument(roots []*html.Node) *Table {
	return (&mapper{}).document(roots)
}

// TopLevel returns the element children of node in document order.
func TopLevel(node *html.Node) []*html.Node {
	var roots []*html.Node
	if node == nil {
		return roots
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			roots = append(roots, c)
		}
	}
	return roots
}
