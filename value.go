package dossier

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind classifies a field value.
type Kind uint8

const (
	// KindScalar is an opaque leaf: string, number, boolean, nil or any
	// other value that is not a record.
	KindScalar Kind = iota

	// KindRecord is a nested record instance.
	KindRecord
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is a field value: exactly one of a scalar or a nested record.
// The zero Value is the nil scalar.
type Value struct {
	kind   Kind
	scalar any
	record *Record
}

// ValueOf classifies v. Records (by pointer or value) become KindRecord;
// a nil *Record and everything else become KindScalar.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case *Record:
		if x == nil {
			return Value{}
		}
		return Value{kind: KindRecord, record: x}
	case Record:
		return Value{kind: KindRecord, record: &x}
	default:
		return Value{scalar: v}
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsRecord reports whether v holds a nested record.
func (v Value) IsRecord() bool { return v.kind == KindRecord }

// Scalar returns the scalar held by v, or nil for records.
func (v Value) Scalar() any { return v.scalar }

// Record returns the nested record held by v, or nil for scalars.
func (v Value) Record() *Record { return v.record }

// Interface returns the held scalar or *Record.
func (v Value) Interface() any {
	if v.kind == KindRecord {
		return v.record
	}
	return v.scalar
}

// Equal reports whether v and o hold equal values. Records compare
// structurally within the same record type; scalars compare numerically
// when both are numbers and deeply otherwise.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindRecord {
		return v.record.Equal(o.record)
	}
	return scalarEqual(v.scalar, o.scalar)
}

// String renders v the way it appears inside a record's textual form.
func (v Value) String() string {
	if v.kind == KindRecord {
		return v.record.String()
	}
	return formatScalar(v.scalar)
}

// Equal reports whether a and b are equal values. It is total: any two
// values may be compared, and a record only ever equals a record of the
// same type.
func Equal(a, b any) bool {
	return ValueOf(a).Equal(ValueOf(b))
}

// number is a normalized numeric scalar.
type number struct {
	kind uint8 // 'i', 'u' or 'f'
	i    int64
	u    uint64
	f    float64
}

func (n number) equal(o number) bool {
	switch {
	case n.kind == 'i' && o.kind == 'i':
		return n.i == o.i
	case n.kind == 'u' && o.kind == 'u':
		return n.u == o.u
	case n.kind == 'i' && o.kind == 'u':
		return n.i >= 0 && uint64(n.i) == o.u
	case n.kind == 'u' && o.kind == 'i':
		return o.i >= 0 && uint64(o.i) == n.u
	case n.kind == 'f' && o.kind == 'f':
		return n.f == o.f
	case n.kind == 'f':
		return o.equalFloat(n.f)
	default:
		return n.equalFloat(o.f)
	}
}

// equalFloat compares an integer n with f exactly: f must be integral and
// convert back to the same integer.
func (n number) equalFloat(f float64) bool {
	if f != math.Trunc(f) {
		return false
	}
	if n.kind == 'u' {
		return f >= 0 && f < 1<<64 && uint64(f) == n.u
	}
	return f >= -(1<<63) && f < 1<<63 && int64(f) == n.i
}

// toNumber normalizes any Go numeric kind or json.Number.
func toNumber(v any) (number, bool) {
	if jn, ok := v.(json.Number); ok {
		if i, err := jn.Int64(); err == nil {
			return number{kind: 'i', i: i}, true
		}
		if f, err := jn.Float64(); err == nil {
			return number{kind: 'f', f: f}, true
		}
		return number{}, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: 'i', i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: 'u', u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: 'f', f: rv.Float()}, true
	default:
		return number{}, false
	}
}

func scalarEqual(a, b any) bool {
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if aok || bok {
		return aok && bok && an.equal(bn)
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if isList(av) && isList(bv) {
		if av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !Equal(av.Index(i).Interface(), bv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// isList reports a slice or array other than []byte.
func isList(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice:
		return v.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return quote(x)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	}

	if n, ok := toNumber(v); ok {
		switch n.kind {
		case 'i':
			return strconv.FormatInt(n.i, 10)
		case 'u':
			return strconv.FormatUint(n.u, 10)
		default:
			return formatFloat(n.f)
		}
	}

	return fmtValue(v)
}

// formatFloat renders f in shortest form, keeping a ".0" on integral values
// so 2.0 and 2 stay distinguishable. Exponent form is used below 1e-4 and
// from 1e16 up.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
