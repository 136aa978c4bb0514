// Package json provides a JSON codec implementation.
package json

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/zoobzio/dossier"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonCodec implements dossier.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec. Mappings keep their key order through
// dossier.Mapping's JSON methods.
func New() dossier.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(*dossier.Mapping); ok {
		return m.UnmarshalJSON(data)
	}
	return api.Unmarshal(data, v)
}
