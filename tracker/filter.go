package tracker

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Filter is a Tracker search expression: space separated field:value terms.
// Terms keep the order they were added in.
type Filter struct {
	terms []string
}

func NewFilter() Filter {
	return Filter{terms: nil}
}

// Where appends a field:value term.
func (f Filter) Where(field, value string) Filter {
	terms := slices.Clone(f.terms)

	return Filter{terms: append(terms, field+":"+value)}
}

// RawFilter uses expr verbatim as the filter value.
func RawFilter(expr string) Filter {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return NewFilter()
	}

	return Filter{terms: []string{expr}}
}

// FilterFromMap builds a filter from field/value pairs in sorted key order.
func FilterFromMap(fields map[string]string) Filter {
	f := NewFilter()
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		f = f.Where(key, fields[key])
	}

	return f
}

func (f Filter) IsZero() bool {
	return len(f.terms) == 0
}

func (f Filter) String() string {
	return strings.Join(f.terms, " ")
}

// StoryQuery narrows a story listing. Zero values are left out of the request.
type StoryQuery struct {
	Filter Filter
	Limit  int
	Offset int
}

func (q StoryQuery) params() []queryParam {
	var params []queryParam

	if !q.Filter.IsZero() {
		params = append(params, queryParam{key: "filter", value: q.Filter.String()})
	}

	if q.Limit > 0 {
		params = append(params, queryParam{key: "limit", value: strconv.Itoa(q.Limit)})
	}

	if q.Offset > 0 {
		params = append(params, queryParam{key: "offset", value: strconv.Itoa(q.Offset)})
	}

	return params
}
