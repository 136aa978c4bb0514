package dossier

// Record is an instance of a RecordType: one Value per declared field, in
// declaration order. Records are immutable; Copy derives new ones.
type Record struct {
	typ    *RecordType
	values []Value
}

// Type returns the record type of r.
func (r *Record) Type() *RecordType { return r.typ }

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.values) }

// At returns the value of the i-th declared field.
func (r *Record) At(i int) Value { return r.values[i] }

// Get returns the value of the named field as a scalar or *Record.
func (r *Record) Get(name string) (any, bool) {
	i, ok := r.typ.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i].Interface(), true
}

// Values returns the field values in declaration order.
func (r *Record) Values() []any {
	out := make([]any, len(r.values))
	for i, v := range r.values {
		out[i] = v.Interface()
	}
	return out
}

// Equal reports whether other is a record of the same type whose fields
// are pairwise equal. Any other value, including a structurally identical
// record of a different type, is simply not equal.
func (r *Record) Equal(other any) bool {
	var o *Record
	switch x := other.(type) {
	case *Record:
		o = x
	case Record:
		o = &x
	default:
		return false
	}

	if r == nil || o == nil {
		return r == nil && o == nil
	}
	if r == o {
		return true
	}
	if r.typ != o.typ {
		return false
	}
	for i := range r.values {
		if !r.values[i].Equal(o.values[i]) {
			return false
		}
	}
	return true
}

// Copy returns a new record of the same type with every field taken from r
// except those named in overrides. Override names must be declared fields.
// r is never modified.
func (r *Record) Copy(overrides Keywords) (*Record, error) {
	kw := make(Keywords, len(r.values)+len(overrides))
	for i, f := range r.typ.fields {
		kw[f.name] = r.values[i]
	}
	for k, v := range overrides {
		kw[k] = v
	}
	return r.typ.Construct(nil, kw)
}

// with returns a copy of r whose i-th field holds v.
func (r *Record) with(i int, v Value) *Record {
	values := make([]Value, len(r.values))
	copy(values, r.values)
	values[i] = v
	return &Record{typ: r.typ, values: values}
}
