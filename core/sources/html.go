package sources

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseHTML(doc []byte) (*html.Node, error) {
	return html.Parse(bytes.NewReader(doc))
}

// findAll returns every element below n, in document order, for which
// match returns true.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)

	return out
}

// find returns the first element below n matching match, or nil.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func isTag(tags ...atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, tag := range tags {
			if n.DataAtom == tag {
				return true
			}
		}
		return false
	}
}

func withID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return attr(n, "id") == id
	}
}

// withClasses matches elements carrying every one of classes.
func withClasses(classes ...string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		have := strings.Fields(attr(n, "class"))
		for _, want := range classes {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// text returns the concatenated text below n, trimmed.
func text(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.TrimSpace(b.String())
}

func nextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// nextTable returns the first table among the element siblings after n.
func nextTable(n *html.Node) *html.Node {
	for s := nextElement(n); s != nil; s = nextElement(s) {
		if s.DataAtom == atom.Table {
			return s
		}
	}
	return nil
}

// tableRows returns the cells of every body row of table, skipping rows
// without td cells (header rows).
func tableRows(table *html.Node) [][]*html.Node {
	var rows [][]*html.Node

	for _, tr := range findAll(table, isTag(atom.Tr)) {
		var cells []*html.Node
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Td {
				cells = append(cells, c)
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	return rows
}

// cellText returns the text of cells[i], or "" when the row is too short.
func cellText(cells []*html.Node, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return text(cells[i])
}
