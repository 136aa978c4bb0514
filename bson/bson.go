// Package bson provides a BSON codec implementation.
package bson

import (
	"github.com/zoobzio/dossier"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements dossier.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec. *dossier.Mapping values are converted to and
// from bson.D so element order survives.
func New() dossier.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(*dossier.Mapping); ok && m != nil {
		return bson.Marshal(toD(m))
	}
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*dossier.Mapping)
	if !ok {
		return bson.Unmarshal(data, v)
	}

	var d bson.D
	if err := bson.Unmarshal(data, &d); err != nil {
		return err
	}
	fillMapping(m, d)
	return nil
}

func toD(m *dossier.Mapping) bson.D {
	d := make(bson.D, 0, m.Len())
	for _, e := range m.Entries() {
		d = append(d, bson.E{Key: e.Key, Value: toBSON(e.Value)})
	}
	return d
}

func toBSON(v any) any {
	switch x := v.(type) {
	case *dossier.Mapping:
		if x != nil {
			return toD(x)
		}
	case []any:
		a := make(bson.A, len(x))
		for i, item := range x {
			a[i] = toBSON(item)
		}
		return a
	}
	return v
}

func fillMapping(m *dossier.Mapping, d bson.D) {
	for _, e := range d {
		m.Set(e.Key, fromBSON(e.Value))
	}
}

func fromBSON(v any) any {
	switch x := v.(type) {
	case bson.D:
		m := dossier.NewMapping()
		fillMapping(m, x)
		return m
	case bson.M:
		return dossier.MappingOf(x)
	case bson.A:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = fromBSON(item)
		}
		return out
	default:
		return v
	}
}
