package xmlcodec

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/andyle182810/gtracker/resource"
	"github.com/antchfx/xmlquery"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Encode serializes fields under the given root element as compact XML: no
// declaration, no indentation, keys in sorted order. Nested maps become nested
// elements and nil values are written as nil="true".
func Encode(root string, fields map[string]any) (string, error) {
	if !namePattern.MatchString(root) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, root)
	}

	node := newElement(root)

	if err := appendFields(node, fields); err != nil {
		return "", err
	}

	return node.OutputXMLWithOptions(xmlquery.WithOutputSelf(), xmlquery.WithPreserveSpace()), nil
}

func appendFields(parent *xmlquery.Node, fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		if err := appendValue(parent, key, fields[key]); err != nil {
			return err
		}
	}

	return nil
}

//nolint:cyclop
func appendValue(parent *xmlquery.Node, key string, value any) error {
	if !namePattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidName, key)
	}

	elem := newElement(key)
	xmlquery.AddChild(parent, elem)

	switch val := value.(type) {
	case nil:
		xmlquery.AddAttr(elem, attrNil, "true")
	case map[string]any:
		return appendFields(elem, val)
	case map[string]string:
		nested := make(map[string]any, len(val))
		for k, v := range val {
			nested[k] = v
		}

		return appendFields(elem, nested)
	case resource.Value:
		return appendResource(elem, val)
	default:
		text, ok := FormatScalar(val)
		if !ok {
			return fmt.Errorf("%w: %s is %T", ErrUnsupportedValue, key, value)
		}

		appendText(elem, text)
	}

	return nil
}

func appendResource(elem *xmlquery.Node, value resource.Value) error {
	switch value.Kind() {
	case resource.KindNull:
		xmlquery.AddAttr(elem, attrNil, "true")
	case resource.KindString:
		appendText(elem, value.Str())
	case resource.KindMap:
		for _, key := range value.Keys() {
			if err := appendValue(elem, key, value.Get(key)); err != nil {
				return err
			}
		}
	case resource.KindList:
		return fmt.Errorf("%w: list under %s", ErrUnsupportedValue, elem.Data)
	}

	return nil
}

// FormatScalar renders a leaf value the way Tracker expects it in request bodies.
// Labels are comma-separated and times use the Tracker datetime layout.
func FormatScalar(value any) (string, bool) {
	switch val := value.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint32:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case []string:
		return strings.Join(val, ","), true
	case time.Time:
		return val.UTC().Format(resource.TrackerTimeLayout), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

func newElement(name string) *xmlquery.Node {
	return &xmlquery.Node{ //nolint:exhaustruct
		Type: xmlquery.ElementNode,
		Data: name,
	}
}

func appendText(elem *xmlquery.Node, text string) {
	if text == "" {
		return
	}

	xmlquery.AddChild(elem, &xmlquery.Node{ //nolint:exhaustruct
		Type: xmlquery.TextNode,
		Data: text,
	})
}
