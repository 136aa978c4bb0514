package dossier

import (
	"context"
	"fmt"
	"time"
)

// textCodec is the JSON codec behind Serialize and Deserialize.
type textCodec struct{}

func (textCodec) ContentType() string { return "application/json" }

func (textCodec) Marshal(v any) ([]byte, error) { return jsonAPI.Marshal(v) }

func (textCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(*Mapping); ok {
		return m.UnmarshalJSON(data)
	}
	return jsonAPI.Unmarshal(data, v)
}

// ToMapping converts r to an ordered mapping keyed by the camelCase form of
// each field name, in declaration order. Nested records become nested
// mappings; scalars pass through unchanged.
func ToMapping(r *Record) *Mapping {
	if r == nil {
		return nil
	}

	m := &Mapping{}
	for i, f := range r.typ.fields {
		m.Set(ToCamelCase(f.name), exportValue(r.values[i]))
	}
	return m
}

func exportValue(v Value) any {
	switch v.Kind() {
	case KindRecord:
		return ToMapping(v.Record())
	default:
		return v.Scalar()
	}
}

// FromMapping builds an instance of rt from m. Keys are translated from
// camelCase to field names; keys naming no field of rt are ignored. Values
// of nested fields are converted recursively against the nested type. The
// result goes through the regular constructor, so missing fields and
// defaults behave as in Construct.
func FromMapping(m *Mapping, rt *RecordType) (*Record, error) {
	if m == nil {
		return nil, newFormatError("", fmt.Errorf("expected mapping for %s, got null", rt.name))
	}

	kw := make(Keywords, m.Len())
	for _, e := range m.entries {
		name := FromCamelCase(e.Key)
		idx, ok := rt.index[name]
		if !ok {
			continue
		}

		v, err := importValue(rt.fields[idx], e.Value)
		if err != nil {
			return nil, err
		}
		kw[name] = v
	}

	return rt.Construct(nil, kw)
}

func importValue(f Field, v any) (any, error) {
	if f.typ == nil || v == nil {
		return v, nil
	}
	if rec, ok := v.(*Record); ok {
		return rec, nil
	}

	nested, ok := asMapping(v)
	if !ok {
		return nil, newFormatError(f.name, fmt.Errorf("expected mapping for %s, got %T", f.typ.name, v))
	}
	return FromMapping(nested, f.typ)
}

// Serialize encodes r as JSON text of ToMapping(r).
func Serialize(r *Record) (string, error) {
	data, err := Encode(textCodec{}, r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Deserialize parses JSON text and builds an instance of rt with FromMapping.
// Parse failures are returned as *FormatError.
func Deserialize(text string, rt *RecordType) (*Record, error) {
	return Decode(textCodec{}, []byte(text), rt)
}

// Encode marshals ToMapping(r) with codec.
func Encode(codec Codec, r *Record) ([]byte, error) {
	ctx := context.Background()
	typeName := typeNameOf(r)
	start := time.Now()
	emitEncodeStart(ctx, codec.ContentType(), typeName)

	data, err := encode(codec, r)
	emitEncodeComplete(ctx, codec.ContentType(), typeName, len(data), time.Since(start), err)
	return data, err
}

// Decode unmarshals data with codec and builds an instance of rt with
// FromMapping. Unmarshal failures are returned as *FormatError.
func Decode(codec Codec, data []byte, rt *RecordType) (*Record, error) {
	ctx := context.Background()
	start := time.Now()
	emitDecodeStart(ctx, codec.ContentType(), rt.name)

	rec, err := decode(codec, data, rt)
	emitDecodeComplete(ctx, codec.ContentType(), rt.name, len(data), time.Since(start), err)
	return rec, err
}

func encode(codec Codec, r *Record) ([]byte, error) {
	var payload any
	if r != nil {
		payload = ToMapping(r)
	}
	data, err := codec.Marshal(payload)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

func decode(codec Codec, data []byte, rt *RecordType) (*Record, error) {
	var m Mapping
	if err := codec.Unmarshal(data, &m); err != nil {
		return nil, newFormatError("", err)
	}
	return FromMapping(&m, rt)
}

func typeNameOf(r *Record) string {
	if r == nil {
		return ""
	}
	return r.typ.name
}
