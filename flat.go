package dossier

import "context"

// Flatten lists the scalar leaves of r in pre-order: fields in declaration
// order, nested records expanded in place. No names or type tags are
// emitted. A nil record flattens to nil.
func Flatten(r *Record) []any {
	if r == nil {
		return nil
	}
	out := make([]any, 0, len(r.values))
	return flattenInto(out, r)
}

func flattenInto(out []any, r *Record) []any {
	for _, v := range r.values {
		switch v.Kind() {
		case KindRecord:
			out = flattenInto(out, v.Record())
		default:
			out = append(out, v.Scalar())
		}
	}
	return out
}

// Width returns the number of leaves an instance of rt flattens to.
func Width(rt *RecordType) int {
	n := 0
	for _, f := range rt.fields {
		if f.typ != nil {
			n += Width(f.typ)
			continue
		}
		n++
	}
	return n
}

// Unflatten rebuilds an instance of rt from a flat sequence, consuming one
// value per scalar field and Width(nested) values per nested field. A short
// sequence fails with *UnderflowError. Values left over after rt is filled
// are ignored; they are reported through SignalUnflattenTrailing.
func Unflatten(values []any, rt *RecordType) (*Record, error) {
	d := &flatDecoder{values: values}
	rec, err := d.decode(rt)
	if err != nil {
		return nil, err
	}

	if trailing := len(values) - d.pos; trailing > 0 {
		emitUnflattenTrailing(context.Background(), rt.name, trailing)
	}
	return rec, nil
}

type flatDecoder struct {
	values []any
	pos    int
}

func (d *flatDecoder) decode(rt *RecordType) (*Record, error) {
	kw := make(Keywords, len(rt.fields))
	for _, f := range rt.fields {
		if f.typ != nil {
			nested, err := d.decode(f.typ)
			if err != nil {
				return nil, err
			}
			kw[f.name] = nested
			continue
		}

		if d.pos >= len(d.values) {
			return nil, &UnderflowError{Type: rt.name, Field: f.name}
		}
		kw[f.name] = d.values[d.pos]
		d.pos++
	}
	return rt.Construct(nil, kw)
}
