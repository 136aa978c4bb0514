package dossier

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI is the JSON engine used for text encoding.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value any
}

// Mapping is an ordered key/value structure. Keys keep their insertion
// order; setting an existing key replaces its value in place. Values are
// scalars, nested *Mapping values, or anything a codec produced.
//
// The zero Mapping is empty and ready to use.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{}
}

// MappingOf lifts an unordered map. Keys are ordered lexicographically and
// nested map[string]any values are lifted recursively.
func MappingOf(m map[string]any) *Mapping {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := &Mapping{}
	for _, k := range keys {
		v := m[k]
		if nested, ok := v.(map[string]any); ok {
			v = MappingOf(nested)
		}
		out.Set(k, v)
	}
	return out
}

// Set stores v under key.
func (m *Mapping) Set(key string, v any) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (any, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Delete removes key, preserving the order of the remaining keys.
func (m *Mapping) Delete(key string) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].Key] = j
	}
	return true
}

// Len returns the number of keys.
func (m *Mapping) Len() int { return len(m.entries) }

// Keys returns the keys in order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the key/value pairs in order.
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Map returns an unordered copy, converting nested mappings recursively.
func (m *Mapping) Map() map[string]any {
	out := make(map[string]any, len(m.entries))
	for _, e := range m.entries {
		if nested, ok := asMapping(e.Value); ok {
			out[e.Key] = nested.Map()
			continue
		}
		out[e.Key] = e.Value
	}
	return out
}

// MarshalJSON encodes m as a JSON object with keys in order.
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := jsonAPI.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := jsonAPI.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", e.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order. Nested objects
// become *Mapping values. Integral numbers decode as int64 (uint64 above
// the int64 range), all others as float64.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("unexpected end of JSON input")
	}

	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		iter.Skip()
		if err := readError(iter, data); err != nil {
			return err
		}
		return fmt.Errorf("expected JSON object, got %s", valueTypeName(next))
	}

	parsed := readObject(iter)
	if err := readError(iter, data); err != nil {
		return err
	}
	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue {
		iter.ReportError("UnmarshalJSON", "unexpected "+valueTypeName(next)+" after JSON object")
		return iter.Error
	}

	*m = *parsed
	return nil
}

// readError returns the iterator's diagnostic. A bare io.EOF means the
// input stopped mid-value.
func readError(iter *jsoniter.Iterator, data []byte) error {
	switch {
	case iter.Error == nil:
		return nil
	case errors.Is(iter.Error, io.EOF):
		return fmt.Errorf("unexpected end of JSON input after %d bytes", len(data))
	default:
		return iter.Error
	}
}

func readObject(iter *jsoniter.Iterator) *Mapping {
	m := &Mapping{}
	iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
		m.Set(key, readValue(it))
		return it.Error == nil
	})
	return m
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		return readObject(iter)
	case jsoniter.ArrayValue:
		out := []any{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			out = append(out, readValue(it))
			return it.Error == nil
		})
		return out
	case jsoniter.NumberValue:
		return readNumber(iter)
	default:
		return iter.Read()
	}
}

// readNumber keeps integers exact instead of rounding them through float64.
func readNumber(iter *jsoniter.Iterator) any {
	n := iter.ReadNumber()
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return u
	}
	f, err := n.Float64()
	if err != nil {
		iter.ReportError("readNumber", err.Error())
		return nil
	}
	return f
}

func valueTypeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "boolean"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid input"
	}
}

// asMapping recognizes the mapping shapes a decoded value may take.
func asMapping(v any) (*Mapping, bool) {
	switch x := v.(type) {
	case *Mapping:
		return x, x != nil
	case Mapping:
		return &x, true
	case map[string]any:
		return MappingOf(x), true
	default:
		return nil, false
	}
}
