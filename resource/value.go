// Package resource holds the generic value decoded from a Tracker response.
//
// A Value is a mapping, an ordered list, a string scalar or null. Field access
// never fails: a missing key, an out of range index or a lookup on the wrong kind
// yields a null Value, so callers can chain lookups and check the result once.
package resource

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Tracker renders datetimes as "2010/03/26 14:48:51 UTC".
const TrackerTimeLayout = "2006/01/02 15:04:05 MST"

type Value struct {
	kind  Kind
	str   string
	keys  []string
	items []Value
}

type Field struct {
	Key   string
	Value Value
}

func Null() Value {
	return Value{kind: KindNull, str: "", keys: nil, items: nil}
}

func String(s string) Value {
	return Value{kind: KindString, str: s, keys: nil, items: nil}
}

// NewMap builds a mapping that keeps the order of fields. A repeated key replaces
// the earlier value in place.
func NewMap(fields ...Field) Value {
	keys := make([]string, 0, len(fields))
	items := make([]Value, 0, len(fields))

	for _, f := range fields {
		if idx := indexOf(keys, f.Key); idx >= 0 {
			items[idx] = f.Value

			continue
		}

		keys = append(keys, f.Key)
		items = append(items, f.Value)
	}

	return Value{kind: KindMap, str: "", keys: keys, items: items}
}

func List(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)

	return Value{kind: KindList, str: "", keys: nil, items: copied}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) IsMap() bool {
	return v.kind == KindMap
}

func (v Value) IsList() bool {
	return v.kind == KindList
}

func (v Value) Get(key string) Value {
	if v.kind != KindMap {
		return Null()
	}

	if idx := indexOf(v.keys, key); idx >= 0 {
		return v.items[idx]
	}

	return Null()
}

func (v Value) Has(key string) bool {
	return v.kind == KindMap && indexOf(v.keys, key) >= 0
}

// Path follows keys through nested mappings.
func (v Value) Path(keys ...string) Value {
	cur := v
	for _, key := range keys {
		cur = cur.Get(key)
	}

	return cur
}

func (v Value) Index(i int) Value {
	if v.kind != KindList || i < 0 || i >= len(v.items) {
		return Null()
	}

	return v.items[i]
}

// Len is the number of list elements or map entries, 0 for scalars and null.
func (v Value) Len() int {
	switch v.kind {
	case KindMap, KindList:
		return len(v.items)
	default:
		return 0
	}
}

func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}

	keys := make([]string, len(v.keys))
	copy(keys, v.keys)

	return keys
}

// Items views the value as a sequence: list elements in order, a single mapping or
// scalar as one element, and null as nothing.
func (v Value) Items() []Value {
	switch v.kind {
	case KindNull:
		return []Value{}
	case KindList:
		items := make([]Value, len(v.items))
		copy(items, v.items)

		return items
	default:
		return []Value{v}
	}
}

// Str returns the scalar text, or "" for anything that is not a string.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}

	return v.str
}

func (v Value) Int() (int64, bool) {
	if v.kind != KindString {
		return 0, false
	}

	n, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindString {
		return false, false
	}

	b, err := strconv.ParseBool(strings.TrimSpace(v.str))
	if err != nil {
		return false, false
	}

	return b, true
}

func (v Value) Time() (time.Time, bool) {
	if v.kind != KindString {
		return time.Time{}, false
	}

	s := strings.TrimSpace(v.str)

	for _, layout := range []string{TrackerTimeLayout, time.RFC3339, "2006/01/02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Interface converts the value to plain Go types: nil, string, map[string]any and
// []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindMap:
		m := make(map[string]any, len(v.keys))
		for i, key := range v.keys {
			m[key] = v.items[i].Interface()
		}

		return m
	case KindList:
		list := make([]any, len(v.items))
		for i, item := range v.items {
			list[i] = item.Interface()
		}

		return list
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNull:
		return "<null>"
	default:
		b, err := v.MarshalJSON()
		if err != nil {
			return "<" + v.kind.String() + ">"
		}

		return string(b)
	}
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}

	return -1
}
