// SPDX-License-Identifier: GPL-3.0-only

// Package xmltree turns interchange documents into a generic labelled tree.
//
// Every child is reachable by name and every name maps to an ordered
// sequence of nodes, even when the document holds a single element.
// Attributes share the namespace of child elements and carry their value as
// text. The document element is the root handed to callers.
//
// A nil *Node stands for an absent branch; every accessor accepts a nil
// receiver and returns the zero value, so deep lookups never need guarding.
package xmltree

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"raex-server/commons"
	"sort"
	"strings"

	"golang.org/x/net/html/charset"
)

type Node struct {
	Name     string
	Text     string
	children map[string][]*Node
}

func newNode(name string) *Node {
	return &Node{Name: name}
}

func (n *Node) add(child *Node) {
	if n.children == nil {
		n.children = make(map[string][]*Node)
	}
	n.children[child.Name] = append(n.children[child.Name], child)
}

// Parse decodes an interchange document and returns its document element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(skipBOM(r))
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
		texts []*bytes.Buffer
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", commons.ErrMalformedDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := newNode(qualifiedName(t.Name))
			for _, attr := range t.Attr {
				node.add(&Node{Name: qualifiedName(attr.Name), Text: attr.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: more than one document element", commons.ErrMalformedDocument)
				}
				root = node
			} else {
				stack[len(stack)-1].add(node)
			}
			stack = append(stack, node)
			texts = append(texts, &bytes.Buffer{})
		case xml.EndElement:
			top := stack[len(stack)-1]
			top.Text = strings.TrimSpace(texts[len(texts)-1].String())
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("%w: text outside the document element", commons.ErrMalformedDocument)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no document element", commons.ErrMalformedDocument)
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unclosed element %s", commons.ErrMalformedDocument, stack[len(stack)-1].Name)
	}
	return root, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

func qualifiedName(name xml.Name) string {
	// encoding/xml resolves prefixes to namespace URLs except for xmlns itself
	if name.Space == "xmlns" {
		return "xmlns:" + name.Local
	}
	return name.Local
}

// Normalize turns an absent value, a single node or a sequence of nodes into
// an ordered sequence. It is idempotent and never returns nil.
func Normalize(v any) []*Node {
	switch t := v.(type) {
	case nil:
		return []*Node{}
	case *Node:
		if t == nil {
			return []*Node{}
		}
		return []*Node{t}
	case []*Node:
		if t == nil {
			return []*Node{}
		}
		return t
	default:
		return []*Node{}
	}
}

// Children returns the nodes named name directly under n.
func (n *Node) Children(name string) []*Node {
	if n == nil {
		return Normalize(nil)
	}
	return Normalize(n.children[name])
}

// All follows path from n, taking the first element at each intermediate
// step, and returns every node found at the last step.
func (n *Node) All(path ...string) []*Node {
	if len(path) == 0 {
		return Normalize(n)
	}
	cur := n
	for _, name := range path[:len(path)-1] {
		cur = cur.child(name)
		if cur == nil {
			return Normalize(nil)
		}
	}
	return cur.Children(path[len(path)-1])
}

// First returns the first node at path, or nil when any step is absent.
func (n *Node) First(path ...string) *Node {
	cur := n
	for _, name := range path {
		cur = cur.child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func (n *Node) child(name string) *Node {
	if n == nil {
		return nil
	}
	if kids := n.children[name]; len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// Has reports whether at least one node exists at path.
func (n *Node) Has(path ...string) bool {
	return len(n.All(path...)) > 0
}

// Str returns the text of the first node at path, or nil when it is absent.
func (n *Node) Str(path ...string) *string {
	node := n.First(path...)
	if node == nil {
		return nil
	}
	text := node.Text
	return &text
}

// NonEmpty is like Str but also treats empty text as absent.
func (n *Node) NonEmpty(path ...string) *string {
	s := n.Str(path...)
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// Texts returns the text of every node at path, in document order.
func (n *Node) Texts(path ...string) []string {
	nodes := n.All(path...)
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Text)
	}
	return out
}

// Names lists the distinct child names of n in sorted order.
func (n *Node) Names() []string {
	if n == nil {
		return nil
	}
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value renders the subtree as generic data: a leaf becomes its text, an
// inner node a map from child name to a list of values, with any own text
// under "_".
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	if len(n.children) == 0 {
		return n.Text
	}
	out := make(map[string]any, len(n.children)+1)
	for name, kids := range n.children {
		values := make([]any, 0, len(kids))
		for _, kid := range kids {
			values = append(values, kid.Value())
		}
		out[name] = values
	}
	if n.Text != "" {
		out["_"] = n.Text
	}
	return out
}
