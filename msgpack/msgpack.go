// Package msgpack provides a MessagePack codec implementation.
package msgpack

import (
	"bytes"
	"errors"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"github.com/zoobzio/dossier"
)

// msgpackCodec implements dossier.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec. *dossier.Mapping values are streamed as
// maps in key order.
func New() dossier.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(*dossier.Mapping)
	if !ok || m == nil {
		return msgpack.Marshal(v)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeMapping(enc, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*dossier.Mapping)
	if !ok {
		return msgpack.Unmarshal(data, v)
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	return decodeMapping(dec, m)
}

func encodeMapping(enc *msgpack.Encoder, m *dossier.Mapping) error {
	if err := enc.EncodeMapLen(m.Len()); err != nil {
		return err
	}
	for _, e := range m.Entries() {
		if err := enc.EncodeString(e.Key); err != nil {
			return err
		}
		if err := encodeValue(enc, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func encodeValue(enc *msgpack.Encoder, v any) error {
	switch x := v.(type) {
	case *dossier.Mapping:
		if x != nil {
			return encodeMapping(enc, x)
		}
	case []any:
		if err := enc.EncodeArrayLen(len(x)); err != nil {
			return err
		}
		for _, item := range x {
			if err := encodeValue(enc, item); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.Encode(v)
}

func decodeMapping(dec *msgpack.Decoder, m *dossier.Mapping) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n < 0 {
		return errors.New("msgpack: expected map, got nil")
	}

	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}
		val, err := decodeValue(dec)
		if err != nil {
			return err
		}
		m.Set(key, val)
	}
	return nil
}

func decodeValue(dec *msgpack.Decoder) (any, error) {
	code, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
		m := dossier.NewMapping()
		if err := decodeMapping(dec, m); err != nil {
			return nil, err
		}
		return m, nil
	case msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return dec.DecodeInterfaceLoose()
	}
}
