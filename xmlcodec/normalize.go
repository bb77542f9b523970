package xmlcodec

import (
	"regexp"
	"strings"
)

// DefaultCollections are the elements Tracker uses for lists of resources. The API
// only sometimes marks them with type="array".
var DefaultCollections = []string{ //nolint:gochecknoglobals
	"projects",
	"memberships",
	"iterations",
	"stories",
	"activities",
	"notes",
}

// attrPattern matches one whole quoted attribute, so text inside a value is never
// mistaken for an attribute of its own.
var attrPattern = regexp.MustCompile(`\s+([^\s=/>]+)\s*=\s*(?:"[^"]*"|'[^']*')`)

// Normalizer marks known collection elements as arrays so that collections of zero
// or one item decode as lists.
type Normalizer struct {
	names   []string
	pattern *regexp.Regexp
}

func NewNormalizer(names ...string) *Normalizer {
	cleaned := make([]string, 0, len(names))
	quoted := make([]string, 0, len(names))

	for _, name := range names {
		if name == "" {
			continue
		}

		cleaned = append(cleaned, name)
		quoted = append(quoted, regexp.QuoteMeta(name))
	}

	if len(quoted) == 0 {
		return &Normalizer{names: cleaned, pattern: nil}
	}

	// Comments and CDATA sections are matched so they can be skipped verbatim.
	pattern := regexp.MustCompile(
		`(?s)<!--.*?-->|<!\[CDATA\[.*?\]\]>|<(` + strings.Join(quoted, "|") + `)(\s[^<>]*?)?(/?)>`,
	)

	return &Normalizer{names: cleaned, pattern: pattern}
}

func (n *Normalizer) Names() []string {
	names := make([]string, len(n.names))
	copy(names, n.names)

	return names
}

// Normalize rewrites every opening or self-closing tag named exactly after a
// collection to carry type="array", replacing any type attribute already present.
// Everything else is left byte-identical, and a second pass changes nothing.
func (n *Normalizer) Normalize(body string) string {
	if n.pattern == nil {
		return body
	}

	matches := n.pattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body
	}

	var sb strings.Builder

	sb.Grow(len(body) + len(matches)*len(` type="array"`))

	last := 0

	for _, m := range matches {
		// m[2] < 0 means a comment or CDATA section matched.
		if m[2] < 0 {
			continue
		}

		sb.WriteString(body[last:m[0]])

		name := body[m[2]:m[3]]

		attrs := ""
		if m[4] >= 0 {
			attrs = stripTypeAttr(body[m[4]:m[5]])
		}

		sb.WriteString("<" + name + ` type="array"` + attrs + body[m[6]:m[7]] + ">")

		last = m[1]
	}

	sb.WriteString(body[last:])

	return sb.String()
}

// stripTypeAttr drops every attribute named type and keeps the rest byte-identical.
func stripTypeAttr(attrs string) string {
	matches := attrPattern.FindAllStringSubmatchIndex(attrs, -1)

	var sb strings.Builder

	last := 0

	for _, m := range matches {
		if attrs[m[2]:m[3]] != "type" {
			continue
		}

		sb.WriteString(attrs[last:m[0]])
		last = m[1]
	}

	sb.WriteString(attrs[last:])

	return sb.String()
}

func NormalizeCollections(body string, names []string) string {
	return NewNormalizer(names...).Normalize(body)
}
