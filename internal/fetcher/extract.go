package fetcher

import (
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nao1215/schoolscan/internal/model"
)

// DefaultMarker is the class that marks an assessment details element.
const DefaultMarker = "assessment-details"

// Extract parses an HTML document and returns the text content of every
// element whose class list contains marker. When tag is not empty only
// elements with that tag name are considered.
//
// Text is returned verbatim, including surrounding whitespace. Text inside
// script and style elements is not part of an element's text. Matches nested
// inside other matches are returned as well, after their ancestor.
func Extract(r io.Reader, marker, tag string) (model.ExtractedWebData, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	tag = strings.ToLower(tag)
	data := model.ExtractedWebData{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (tag == "" || n.Data == tag) && hasClass(n, marker) {
			data = append(data, textContent(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return data, nil
}

// hasClass reports whether n's class attribute contains class as one of its
// whitespace-separated tokens.
func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(getAttr(n, "class")), class)
}

// textContent concatenates the text nodes below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// getAttr returns the value of the named attribute, or an empty string.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
