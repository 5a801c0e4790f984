// Package doc models the structured rich-text card format and renders it
// as Markdown.
//
// A document is a JSON array of nodes. A node carrying a "text" field is a
// text leaf whose boolean mark fields ("bold", "italic", ...) format it. A
// node carrying a "type" field is an element with ordered "children" and
// type-specific attributes ("url", "lang", "checked", "variant", "alt",
// "value").
package doc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotArray is returned by Parse when the input is not a JSON array of objects.
var ErrNotArray = errors.New("document is not a json array of nodes")

// Mark is a set of inline formatting flags on a text node.
type Mark uint8

const (
	Bold Mark = 1 << iota
	Italic
	Code
	Strikethrough
	Highlight
)

// markOrder is the fixed wrapping order. The first entry wraps the raw text,
// each later entry wraps the output of the previous one.
var markOrder = []struct {
	mark  Mark
	key   string
	delim string
}{
	{Bold, "bold", "**"},
	{Italic, "italic", "*"},
	{Code, "code", "`"},
	{Strikethrough, "strikethrough", "~~"},
	{Highlight, "highlight", "=="},
}

// Has reports whether every flag in m2 is set in m.
func (m Mark) Has(m2 Mark) bool { return m&m2 == m2 }

// Node is either a Text or an Element.
type Node interface {
	isNode()
}

// Text is a leaf node.
type Text struct {
	Text  string
	Marks Mark
}

// Element is a tagged node with ordered children.
type Element struct {
	Type     string
	Children []Node
	Attrs    Attrs
}

func (Text) isNode()    {}
func (Element) isNode() {}

// Document is the ordered list of top-level nodes.
type Document []Node

// Attrs holds the element fields other than type and children.
type Attrs map[string]any

// String returns the attribute as a string. Numbers and booleans are
// formatted; anything else, including a missing key, yields "".
func (a Attrs) String(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Bool returns the attribute as a boolean; only a JSON true is true.
func (a Attrs) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Parse decodes a JSON array into a Document. It fails only when the input is
// not an array of objects; malformed nodes inside the array decode to empty
// elements so rendering stays total.
func Parse(data []byte) (Document, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	if raw == nil {
		return nil, ErrNotArray
	}
	out := make(Document, 0, len(raw))
	for _, obj := range raw {
		out = append(out, nodeFrom(obj))
	}
	return out, nil
}

// ParseString is Parse for string content.
func ParseString(s string) (Document, error) {
	return Parse([]byte(s))
}

func nodeFrom(obj map[string]any) Node {
	if t, ok := obj["text"]; ok {
		s, _ := t.(string)
		return Text{Text: s, Marks: marksFrom(obj)}
	}
	el := Element{Attrs: Attrs{}}
	el.Type, _ = obj["type"].(string)
	for k, v := range obj {
		switch k {
		case "type":
		case "children":
			kids, _ := v.([]any)
			for _, kid := range kids {
				if m, ok := kid.(map[string]any); ok {
					el.Children = append(el.Children, nodeFrom(m))
				}
			}
		default:
			el.Attrs[k] = v
		}
	}
	return el
}

func marksFrom(obj map[string]any) Mark {
	var m Mark
	for _, mk := range markOrder {
		if on, _ := obj[mk.key].(bool); on {
			m |= mk.mark
		}
	}
	return m
}
