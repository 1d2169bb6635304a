package reader

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node is one element of the parsed XML tree. Namespace prefixes are
// stripped during parsing, so Name is always the local name. Text holds
// the trimmed character data directly inside the element.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// parseTree decodes an XML document into a Node tree. The decoder accepts
// non-UTF-8 encodings via a charset-aware reader, matching the lenient
// parsers the EHX ecosystem's exporters were tested against.
func parseTree(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = true

	var root *Node
	var stack []*Node
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					// encoding/xml rejects trailing content itself;
					// this guards decoder configuration changes.
					return nil, io.ErrUnexpectedEOF
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
			text.Reset()
		case xml.CharData:
			if len(stack) > 0 {
				text.Write(t)
			}
		case xml.EndElement:
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.Text == "" {
				n.Text = strings.TrimSpace(text.String())
			}
			text.Reset()
		}
	}
	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// Child returns the first direct child with the given local name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildText returns the trimmed text of the first direct child whose name
// matches any of names, in fallback order. Children with empty text are
// skipped, so later fallback names can still supply a value.
func (n *Node) ChildText(names ...string) string {
	if n == nil {
		return ""
	}
	for _, name := range names {
		if c := n.Child(name); c != nil && c.Text != "" {
			return c.Text
		}
	}
	return ""
}

// ChildFloat parses the first matching child's text as a float. The
// boolean is false when no child matched or the text did not parse.
func (n *Node) ChildFloat(names ...string) (float64, bool) {
	s := n.ChildText(names...)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Descendants returns every descendant element with the given local name
// in document order. The receiver itself is not considered.
func (n *Node) Descendants(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	n.walk(func(c *Node) {
		if c.Name == name {
			out = append(out, c)
		}
	})
	return out
}

// FirstDescendant returns the first descendant with the given local name
// in document order, or nil.
func (n *Node) FirstDescendant(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
		if found := c.FirstDescendant(name); found != nil {
			return found
		}
	}
	return nil
}

// walk visits every descendant in document order.
func (n *Node) walk(visit func(*Node)) {
	for _, c := range n.Children {
		visit(c)
		c.walk(visit)
	}
}
