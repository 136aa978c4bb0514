package dossier

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag(bindTag)
}

// bindTag is the struct tag read by Bind.
//
//	dossier:"name,keyword,hash=argon2,encrypt=aes,mask=email,redact=***"
//
// "-" skips the field. An empty name keeps the snake_case Go field name.
const bindTag = "dossier"

var (
	timeType            = reflect.TypeFor[time.Time]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Binding converts between a Go struct type and records of the record type
// derived from it.
type Binding[T any] struct {
	s *structBinding
}

// structBinding is the untyped form of Binding, shared with nested structs.
type structBinding struct {
	rt     *RecordType
	goType reflect.Type
	fields []boundField
}

// boundField links one record field to a Go struct field.
type boundField struct {
	name   string
	index  []int
	nested *structBinding // non-nil for struct and *struct fields
}

// Bind derives a record type from struct T. Exported fields become record
// fields in declaration order, named by the dossier tag or the snake_case
// form of the Go name. Struct and pointer-to-struct fields become nested
// record types; time.Time and text marshalers stay scalar.
func Bind[T any]() (*Binding[T], error) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: Bind requires a struct type, got %s", ErrInvalidField, typ)
	}

	s, err := bindStruct(sentinel.Scan[T](), typ, map[reflect.Type]bool{})
	if err != nil {
		return nil, err
	}
	return &Binding[T]{s: s}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any]() *Binding[T] {
	b, err := Bind[T]()
	if err != nil {
		panic("dossier: Bind: " + err.Error())
	}
	return b
}

// Type returns the derived record type.
func (b *Binding[T]) Type() *RecordType { return b.s.rt }

// Record converts v to a record of the derived type.
func (b *Binding[T]) Record(v T) (*Record, error) {
	return b.s.record(reflect.ValueOf(v))
}

// Value converts r back to T. Numeric scalars are converted to the Go field
// kind, so records decoded from any codec bind cleanly.
func (b *Binding[T]) Value(r *Record) (T, error) {
	var out T
	if r == nil {
		return out, fmt.Errorf("%w: nil record", ErrFormat)
	}
	if err := b.s.assign(reflect.ValueOf(&out).Elem(), r); err != nil {
		return out, err
	}
	return out, nil
}

// bindStruct derives the binding for typ. active holds the struct types on
// the current path; records cannot contain themselves.
func bindStruct(meta sentinel.Metadata, typ reflect.Type, active map[reflect.Type]bool) (*structBinding, error) {
	if active[typ] {
		return nil, fmt.Errorf("%w: %s refers to itself", ErrInvalidField, typ)
	}
	active[typ] = true
	defer delete(active, typ)

	s := &structBinding{goType: typ}
	specs := make([]FieldSpec, 0, len(meta.Fields))

	for _, fm := range meta.Fields {
		if !isExported(fm.Name) {
			continue
		}
		tag, ok := fm.Tags[bindTag]
		if !ok {
			tag = typ.FieldByIndex(fm.Index).Tag.Get(bindTag)
		}
		if tag == "-" {
			continue
		}

		name, opts := parseBindTag(tag)
		if name == "" {
			name = FromCamelCase(fm.Name)
		}

		bf := boundField{name: name, index: fm.Index}
		if st, isStruct := nestedStruct(fm.ReflectType); isStruct {
			nested, err := bindStruct(scanNestedType(st), st, active)
			if err != nil {
				return nil, err
			}
			bf.nested = nested
			opts = append(opts, Nested(nested.rt))
		}

		s.fields = append(s.fields, bf)
		specs = append(specs, NewField(name, opts...))
	}

	typeName := meta.TypeName
	if typeName == "" {
		typeName = typ.Name()
	}
	rt, err := Define(typeName, specs...)
	if err != nil {
		return nil, err
	}
	s.rt = rt
	return s, nil
}

// parseBindTag splits a dossier tag into the field name and field options.
func parseBindTag(tag string) (string, []FieldOption) {
	parts := strings.Split(tag, ",")
	var opts []FieldOption
	for _, part := range parts[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch key {
		case "keyword":
			opts = append(opts, KeywordOnly())
		case "hash":
			opts = append(opts, Hash(HashAlgo(val)))
		case "encrypt":
			opts = append(opts, Encrypt(EncryptAlgo(val)))
		case "mask":
			opts = append(opts, Mask(MaskType(val)))
		case "redact":
			opts = append(opts, Redact(val))
		}
	}
	return strings.TrimSpace(parts[0]), opts
}

// nestedStruct reports whether t binds as a nested record type.
func nestedStruct(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return nil, false
	}
	if t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType) {
		return nil, false
	}
	return t, true
}

// scanNestedType returns sentinel metadata for a nested struct, scanning it
// by reflection when sentinel has not seen it.
func scanNestedType(rt reflect.Type) sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if tag, ok := sf.Tag.Lookup(bindTag); ok {
			fm.Tags[bindTag] = tag
		}
		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}
		meta.Fields = append(meta.Fields, fm)
	}
	return meta
}

func (s *structBinding) record(v reflect.Value) (*Record, error) {
	kw := make(Keywords, len(s.fields))
	for _, bf := range s.fields {
		fv := v.FieldByIndex(bf.index)
		if bf.nested == nil {
			kw[bf.name] = fv.Interface()
			continue
		}

		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				kw[bf.name] = nil
				continue
			}
			fv = fv.Elem()
		}
		nested, err := bf.nested.record(fv)
		if err != nil {
			return nil, err
		}
		kw[bf.name] = nested
	}
	return s.rt.Construct(nil, kw)
}

func (s *structBinding) assign(dst reflect.Value, r *Record) error {
	if r.typ != s.rt {
		return fmt.Errorf("%w: binding for %s got %s", ErrTypeMismatch, s.rt.name, r.typ.name)
	}

	for i, bf := range s.fields {
		fv := dst.FieldByIndex(bf.index)
		v := r.values[i]

		if bf.nested != nil && v.IsRecord() {
			if fv.Kind() == reflect.Ptr {
				fv.Set(reflect.New(bf.nested.goType))
				fv = fv.Elem()
			}
			if err := bf.nested.assign(fv, v.Record()); err != nil {
				return err
			}
			continue
		}

		if err := assignScalar(fv, v.Scalar()); err != nil {
			return newFormatError(bf.name, err)
		}
	}
	return nil
}

// assignScalar stores src in dst, converting between numeric kinds and
// parsing text for TextUnmarshaler targets.
func assignScalar(dst reflect.Value, src any) error {
	if src == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	sv := reflect.ValueOf(src)
	switch {
	case sv.Type().AssignableTo(dst.Type()):
		dst.Set(sv)
		return nil
	case isNumeric(sv.Kind()) && isNumeric(dst.Kind()):
		return assignNumber(dst, sv)
	case sv.Kind() == reflect.String && reflect.PointerTo(dst.Type()).Implements(textUnmarshalerType):
		return dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(sv.String()))
	case sv.Kind() == dst.Kind() && sv.Type().ConvertibleTo(dst.Type()):
		dst.Set(sv.Convert(dst.Type()))
		return nil
	case dst.Kind() == reflect.Slice && (sv.Kind() == reflect.Slice || sv.Kind() == reflect.Array):
		out := reflect.MakeSlice(dst.Type(), sv.Len(), sv.Len())
		for i := 0; i < sv.Len(); i++ {
			if err := assignScalar(out.Index(i), sv.Index(i).Interface()); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dst.Set(out)
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", src, dst.Type())
}

// assignNumber converts sv into dst, refusing fractions, sign changes and
// values outside dst's range.
func assignNumber(dst, sv reflect.Value) error {
	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		var f float64
		switch {
		case sv.CanInt():
			f = float64(sv.Int())
		case sv.CanUint():
			f = float64(sv.Uint())
		default:
			f = sv.Float()
		}
		if dst.OverflowFloat(f) {
			return fmt.Errorf("%v overflows %s", f, dst.Type())
		}
		dst.SetFloat(f)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		switch {
		case sv.CanInt():
			if sv.Int() < 0 {
				return fmt.Errorf("negative value %d for %s", sv.Int(), dst.Type())
			}
			u = uint64(sv.Int())
		case sv.CanUint():
			u = sv.Uint()
		default:
			f := sv.Float()
			if f != math.Trunc(f) {
				return fmt.Errorf("fractional value %v for %s", f, dst.Type())
			}
			if f < 0 || f >= 1<<64 {
				return fmt.Errorf("%v overflows %s", f, dst.Type())
			}
			u = uint64(f)
		}
		if dst.OverflowUint(u) {
			return fmt.Errorf("%d overflows %s", u, dst.Type())
		}
		dst.SetUint(u)
		return nil

	default:
		var i int64
		switch {
		case sv.CanInt():
			i = sv.Int()
		case sv.CanUint():
			if sv.Uint() > math.MaxInt64 {
				return fmt.Errorf("%d overflows %s", sv.Uint(), dst.Type())
			}
			i = int64(sv.Uint())
		default:
			f := sv.Float()
			if f != math.Trunc(f) {
				return fmt.Errorf("fractional value %v for %s", f, dst.Type())
			}
			if f < -(1<<63) || f >= 1<<63 {
				return fmt.Errorf("%v overflows %s", f, dst.Type())
			}
			i = int64(f)
		}
		if dst.OverflowInt(i) {
			return fmt.Errorf("%d overflows %s", i, dst.Type())
		}
		dst.SetInt(i)
		return nil
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isExported(name string) bool {
	return name != "" && strings.ToUpper(name[:1]) == name[:1] && name[0] != '_'
}
