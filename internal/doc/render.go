package doc

import (
	"strconv"
	"strings"
)

// Element types understood by the renderer. Matching is case-sensitive;
// anything else renders its children unchanged.
const (
	TypeParagraph  = "p"
	TypeBlockquote = "blockquote"
	TypeBulleted   = "ul"
	TypeNumbered   = "ol"
	TypeListItem   = "li"
	TypeListBody   = "lic"
	TypeTodo       = "action_item"
	TypeCodeBlock  = "code_block"
	TypeCodeLine   = "code_line"
	TypeLink       = "a"
	TypeRule       = "hr"
	TypeImage      = "img"
	TypeMention    = "mention"
	TypeCallout    = "callout"
)

// DefaultCalloutVariant is used when a callout has no variant attribute.
const DefaultCalloutVariant = "note"

// Render converts a document to Markdown. It never fails: nodes it cannot
// interpret contribute their children or nothing.
func Render(d Document) string {
	var b strings.Builder
	for i, n := range d {
		s := renderNode(n)
		b.WriteString(s)
		if i < len(d)-1 && !strings.HasSuffix(s, "\n") {
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}

// RenderNode renders a single node without top-level trimming.
func RenderNode(n Node) string {
	return renderNode(n)
}

func renderNode(n Node) string {
	switch v := n.(type) {
	case Text:
		return renderText(v)
	case *Text:
		if v == nil {
			return ""
		}
		return renderText(*v)
	case Element:
		return renderElement(v)
	case *Element:
		if v == nil {
			return ""
		}
		return renderElement(*v)
	default:
		return ""
	}
}

func renderText(t Text) string {
	s := t.Text
	for _, mk := range markOrder {
		if t.Marks.Has(mk.mark) {
			s = mk.delim + s + mk.delim
		}
	}
	return s
}

func renderChildren(kids []Node) string {
	var b strings.Builder
	for _, k := range kids {
		b.WriteString(renderNode(k))
	}
	return b.String()
}

func renderElement(e Element) string {
	inner := renderChildren(e.Children)
	if level, ok := headingLevel(e.Type); ok {
		return strings.Repeat("#", level) + " " + inner + "\n"
	}
	switch e.Type {
	case TypeParagraph:
		return inner + "\n"
	case TypeBlockquote:
		return quoteLines(inner) + "\n"
	case TypeBulleted, TypeNumbered, TypeCodeLine:
		return inner
	case TypeListItem, TypeListBody:
		return "- " + strings.TrimSpace(inner) + "\n"
	case TypeTodo:
		box := "[ ]"
		if e.Attrs.Bool("checked") {
			box = "[x]"
		}
		return "- " + box + " " + strings.TrimSpace(inner) + "\n"
	case TypeCodeBlock:
		return "```" + e.Attrs.String("lang") + "\n" + strings.TrimSpace(inner) + "\n```\n"
	case TypeLink:
		return "[" + inner + "](" + e.Attrs.String("url") + ")"
	case TypeRule:
		return "---\n"
	case TypeImage:
		return "![" + e.Attrs.String("alt") + "](" + e.Attrs.String("url") + ")\n"
	case TypeMention:
		return "[[" + e.Attrs.String("value") + "]]"
	case TypeCallout:
		variant := e.Attrs.String("variant")
		if variant == "" {
			variant = DefaultCalloutVariant
		}
		return "> [!" + variant + "]\n" + quoteLines(inner) + "\n"
	default:
		return inner
	}
}

// headingLevel maps "h1".."h6" to 1..6.
func headingLevel(tag string) (int, bool) {
	if len(tag) != 2 || tag[0] != 'h' {
		return 0, false
	}
	n, err := strconv.Atoi(tag[1:])
	if err != nil || n < 1 || n > 6 {
		return 0, false
	}
	return n, true
}

// quoteLines prefixes every line of s with "> ". A trailing newline does not
// produce an extra empty quoted line.
func quoteLines(s string) string {
	s = strings.TrimRight(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}
