// Package relaxed parses JavaScript-style object and array literals (unquoted
// keys, single-quoted strings, trailing commas, comments) into a closed,
// read-only value tree.
//
// Every accessor on Value, List and Map reports success with a bool instead of
// panicking, so callers can walk untrusted shapes and skip what does not fit.
package relaxed

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one node of a parsed tree. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list List
	m    Map
}

// List is an ordered sequence of values.
type List []Value

// Member is one key/value pair of a Map.
type Member struct {
	Key   string
	Value Value
}

// Map is an ordered mapping from string keys to values. Keys keep the order
// of their first appearance; a repeated key overwrites the earlier value.
type Map struct {
	members []Member
	index   map[string]int
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps n.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, s: s} }

// NewList wraps items.
func NewList(items ...Value) Value {
	if items == nil {
		items = List{}
	}
	return Value{kind: KindList, list: items}
}

// NewMap builds a map value from members, in order.
func NewMap(members ...Member) Value {
	m := Map{index: make(map[string]int, len(members))}
	for _, mem := range members {
		m.set(mem.Key, mem.Value)
	}
	return Value{kind: KindMap, m: m}
}

func (m *Map) set(key string, v Value) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.members[i].Value = v
		return
	}
	m.index[key] = len(m.members)
	m.members = append(m.members, Member{Key: key, Value: v})
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsList returns the list held by v.
func (v Value) AsList() (List, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsMap returns the map held by v.
func (v Value) AsMap() (Map, bool) {
	if v.kind != KindMap {
		return Map{}, false
	}
	return v.m, true
}

// Len returns the number of items.
func (l List) Len() int { return len(l) }

// At returns the item at index i.
func (l List) At(i int) (Value, bool) {
	if i < 0 || i >= len(l) {
		return Value{}, false
	}
	return l[i], true
}

// Len returns the number of keys.
func (m Map) Len() int { return len(m.members) }

// Get returns the value stored under key.
func (m Map) Get(key string) (Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.members[i].Value, true
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Keys returns the keys in order.
func (m Map) Keys() []string {
	keys := make([]string, len(m.members))
	for i, mem := range m.members {
		keys[i] = mem.Key
	}
	return keys
}

// Members returns a copy of the key/value pairs in order.
func (m Map) Members() []Member {
	return append([]Member(nil), m.members...)
}

// Equal reports whether v and other are structurally equal. Map key order is
// significant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m.members) != len(other.m.members) {
			return false
		}
		for i, mem := range v.m.members {
			o := other.m.members[i]
			if mem.Key != o.Key || !mem.Value.Equal(o.Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v in a compact JSON-like form for logs and test failures.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.n, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.write(sb)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i, mem := range v.m.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(mem.Key))
			sb.WriteByte(':')
			mem.Value.write(sb)
		}
		sb.WriteByte('}')
	}
}
