package scan

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/matzehuels/depchecker/pkg/errors"
)

// element is a parsed XML element. Namespaces are resolved, so Name.Space
// holds the namespace URL rather than the prefix.
type element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*element
}

// parseXML reads an XML document into an element tree.
func parseXML(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{Name: t.Name, Attrs: t.Copy().Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeParse, "empty xml document")
	}
	return root, nil
}

// attr returns the unprefixed attribute called name.
func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// text returns the trimmed character data of e.
func (e *element) text() string {
	return strings.TrimSpace(e.Text)
}

// walk calls fn with every element of the tree, e included, and its
// parent. The parent of e is nil.
func (e *element) walk(fn func(el, parent *element)) {
	var rec func(el, parent *element)
	rec = func(el, parent *element) {
		fn(el, parent)
		for _, c := range el.Children {
			rec(c, el)
		}
	}
	rec(e, nil)
}
