package xmlcodec

import (
	"fmt"
	"strings"

	"github.com/andyle182810/gtracker/resource"
	"github.com/antchfx/xmlquery"
)

const (
	attrType  = "type"
	attrNil   = "nil"
	typeArray = "array"

	// ContentKey holds the text of a leaf element that also carries attributes.
	ContentKey = "__content__"
)

// Parse turns an XML document into a mapping keyed by the root element name.
//
// An element marked type="array" becomes a list of its child elements, even when
// it has zero or one child. Repeated sibling elements collapse into a list.
// Leaf elements decode to strings; empty leaves and nil="true" decode to null. A
// leaf with attributes keeps them, and its text goes under ContentKey.
func Parse(text string) (resource.Value, error) {
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return resource.Null(), fmt.Errorf("%w: %w", ErrParse, err)
	}

	root := firstElement(doc)
	if root == nil {
		return resource.Null(), ErrNoRootElement
	}

	return resource.NewMap(resource.Field{Key: elementName(root), Value: decodeElement(root)}), nil
}

func decodeElement(node *xmlquery.Node) resource.Value {
	if strings.EqualFold(attrValue(node, attrNil), "true") {
		return resource.Null()
	}

	children := childElements(node)

	if attrValue(node, attrType) == typeArray {
		items := make([]resource.Value, 0, len(children))
		for _, child := range children {
			items = append(items, decodeElement(child))
		}

		return resource.List(items...)
	}

	attrs := plainAttrs(node)

	if len(children) == 0 {
		text := textOf(node)
		hasText := strings.TrimSpace(text) != ""

		switch {
		case len(attrs) == 0 && hasText:
			return resource.String(text)
		case len(attrs) == 0:
			return resource.Null()
		case hasText:
			return resource.NewMap(append(attrs, resource.Field{Key: ContentKey, Value: resource.String(text)})...)
		}
	}

	fields := make([]resource.Field, 0, len(attrs)+len(children))
	fields = append(fields, attrs...)

	return resource.NewMap(append(fields, groupChildren(children)...)...)
}

// groupChildren keeps first-seen order of element names; a name seen more than once
// maps to a list of all its occurrences.
func groupChildren(children []*xmlquery.Node) []resource.Field {
	order := make([]string, 0, len(children))
	grouped := make(map[string][]resource.Value, len(children))

	for _, child := range children {
		name := elementName(child)
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}

		grouped[name] = append(grouped[name], decodeElement(child))
	}

	fields := make([]resource.Field, 0, len(order))

	for _, name := range order {
		values := grouped[name]
		if len(values) == 1 {
			fields = append(fields, resource.Field{Key: name, Value: values[0]})

			continue
		}

		fields = append(fields, resource.Field{Key: name, Value: resource.List(values...)})
	}

	return fields
}

func firstElement(doc *xmlquery.Node) *xmlquery.Node {
	for node := doc.FirstChild; node != nil; node = node.NextSibling {
		if node.Type == xmlquery.ElementNode {
			return node
		}
	}

	return nil
}

func childElements(node *xmlquery.Node) []*xmlquery.Node {
	var children []*xmlquery.Node

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, child)
		}
	}

	return children
}

func textOf(node *xmlquery.Node) string {
	var sb strings.Builder

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			sb.WriteString(child.Data)
		}
	}

	return sb.String()
}

func plainAttrs(node *xmlquery.Node) []resource.Field {
	fields := make([]resource.Field, 0, len(node.Attr))

	for _, attr := range node.Attr {
		if attr.Name.Space != "" {
			continue
		}

		if attr.Name.Local == attrType || attr.Name.Local == attrNil {
			continue
		}

		fields = append(fields, resource.Field{Key: attr.Name.Local, Value: resource.String(attr.Value)})
	}

	return fields
}

func attrValue(node *xmlquery.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Name.Space == "" && attr.Name.Local == name {
			return attr.Value
		}
	}

	return ""
}

func elementName(node *xmlquery.Node) string {
	if node.Prefix != "" {
		return node.Prefix + ":" + node.Data
	}

	return node.Data
}
