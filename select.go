package html2toml

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"golang.org/x/net/html"
)

// roots returns the elements treated as the top level of the document:
// the element children of doc, or every element matching selector.
func roots(doc *html.Node, selector string) ([]*html.Node, error) {
	if selector == "" {
		return TopLevel(doc), nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid selector %q: %v", selector, err)
	}
	return goquery.NewDocumentFromNode(doc).FindMatcher(sel).Nodes, nil
}
