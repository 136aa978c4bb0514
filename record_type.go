package dossier

import (
	"context"
	"fmt"
	"sort"
)

// Keywords maps field names to values for construction and Copy.
type Keywords map[string]any

// RecordType is a named, ordered schema of fields. It is immutable once
// defined and safe for concurrent use. Identity is nominal: two types
// defined from identical field lists are distinct.
type RecordType struct {
	name       string
	fields     []Field
	index      map[string]int
	positional []int // indices of positional-eligible fields, in declaration order
}

// Define creates a record type from an ordered list of field specs.
//
//	Profile := dossier.MustDefine("Profile", dossier.Name("bio"))
//	User, err := dossier.Define("User",
//	    dossier.Name("username"),
//	    dossier.NewField("profile", dossier.Nested(Profile)),
//	    dossier.NewField("password", dossier.Default("password1"), dossier.HideDefault()),
//	)
func Define(name string, specs ...FieldSpec) (*RecordType, error) {
	rt := &RecordType{
		name:   name,
		fields: make([]Field, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
	}

	for _, fs := range specs {
		if fs == nil {
			return nil, fmt.Errorf("%w: nil field descriptor in %s", ErrInvalidField, name)
		}
		f := fs.descriptor()
		if f.name == "" {
			return nil, fmt.Errorf("%w: empty field name in %s", ErrInvalidField, name)
		}
		if _, dup := rt.index[f.name]; dup {
			return nil, &DuplicateFieldError{Type: name, Field: f.name}
		}
		if err := f.actions.validate(f.name); err != nil {
			return nil, err
		}

		rt.index[f.name] = len(rt.fields)
		if f.Positional() {
			rt.positional = append(rt.positional, len(rt.fields))
		}
		rt.fields = append(rt.fields, f)
	}

	emitTypeDefined(context.Background(), name, len(rt.fields))
	return rt, nil
}

// MustDefine is like Define but panics on error.
// It simplifies package-level record type declarations.
func MustDefine(name string, specs ...FieldSpec) *RecordType {
	rt, err := Define(name, specs...)
	if err != nil {
		panic("dossier: Define(" + name + "): " + err.Error())
	}
	return rt
}

// Name returns the display name of the type.
func (t *RecordType) Name() string { return t.name }

// String returns the display name of the type.
func (t *RecordType) String() string { return t.name }

// Len returns the number of declared fields.
func (t *RecordType) Len() int { return len(t.fields) }

// PositionalCount returns the number of fields that may be supplied positionally.
func (t *RecordType) PositionalCount() int { return len(t.positional) }

// Fields returns a copy of the field descriptors in declaration order.
func (t *RecordType) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Field returns the descriptor for name.
func (t *RecordType) Field(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// Index returns the declaration position of name, or -1.
func (t *RecordType) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// New constructs an instance from positional values only.
func (t *RecordType) New(positional ...any) (*Record, error) {
	return t.Construct(positional, nil)
}

// Construct builds an instance in two phases: positional values fill the
// positional-eligible fields in declaration order, then every remaining field
// is resolved from keywords or its default.
func (t *RecordType) Construct(positional []any, keywords Keywords) (*Record, error) {
	if len(positional) > len(t.positional) {
		return nil, &ArityError{Type: t.name, Expected: len(t.positional), Given: len(positional)}
	}

	values := make([]Value, len(t.fields))
	filled := make([]bool, len(t.fields))
	for i, v := range positional {
		idx := t.positional[i]
		values[idx] = ValueOf(v)
		filled[idx] = true
	}

	for i, f := range t.fields {
		if filled[i] {
			continue
		}
		if v, ok := keywords[f.name]; ok {
			values[i] = ValueOf(v)
			continue
		}
		if f.hasDefault {
			values[i] = ValueOf(f.def)
			continue
		}
		return nil, &MissingFieldError{Type: t.name, Field: f.name}
	}

	if err := t.checkKeywords(keywords, filled); err != nil {
		return nil, err
	}

	return &Record{typ: t, values: values}, nil
}

// checkKeywords reports the first keyword, in name order, that was not
// consumed: either it names no field or its field was filled positionally.
func (t *RecordType) checkKeywords(keywords Keywords, filled []bool) error {
	if len(keywords) == 0 {
		return nil
	}

	names := make([]string, 0, len(keywords))
	for k := range keywords {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		idx, ok := t.index[k]
		if !ok {
			return &UnknownKeywordError{Type: t.name, Keyword: k}
		}
		if filled[idx] {
			return &DuplicateArgumentError{Type: t.name, Field: k}
		}
	}
	return nil
}
