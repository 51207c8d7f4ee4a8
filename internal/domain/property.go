package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// PropertyKind discriminates the closed set of metadata value variants.
type PropertyKind string

const (
	PropertyNat  PropertyKind = "nat"
	PropertyInt  PropertyKind = "int"
	PropertyText PropertyKind = "text"
	PropertyBlob PropertyKind = "blob"
)

// Property is a closed tagged-union metadata value: an unsigned number, a
// signed number, a text string, or a binary blob. It round-trips through
// JSON as {"kind": ..., "value": ...} with blobs base64-encoded.
type Property struct {
	kind PropertyKind
	nat  uint64
	i    int64
	text string
	blob []byte
}

func NatProperty(v uint64) Property  { return Property{kind: PropertyNat, nat: v} }
func IntProperty(v int64) Property   { return Property{kind: PropertyInt, i: v} }
func TextProperty(v string) Property { return Property{kind: PropertyText, text: v} }
func BlobProperty(v []byte) Property { return Property{kind: PropertyBlob, blob: v} }

// Kind returns the variant tag.
func (p Property) Kind() PropertyKind { return p.kind }

// Nat returns the unsigned value; ok is false for other variants.
func (p Property) Nat() (uint64, bool) { return p.nat, p.kind == PropertyNat }

// Int returns the signed value; ok is false for other variants.
func (p Property) Int() (int64, bool) { return p.i, p.kind == PropertyInt }

// Text returns the text value; ok is false for other variants.
func (p Property) Text() (string, bool) { return p.text, p.kind == PropertyText }

// Blob returns the binary value; ok is false for other variants.
func (p Property) Blob() ([]byte, bool) { return p.blob, p.kind == PropertyBlob }

type propertyJSON struct {
	Kind  PropertyKind    `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (p Property) MarshalJSON() ([]byte, error) {
	var value any
	switch p.kind {
	case PropertyNat:
		value = p.nat
	case PropertyInt:
		value = p.i
	case PropertyText:
		value = p.text
	case PropertyBlob:
		value = base64.StdEncoding.EncodeToString(p.blob)
	default:
		return nil, fmt.Errorf("property has no kind")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(propertyJSON{Kind: p.kind, Value: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Property) UnmarshalJSON(data []byte) error {
	var env propertyJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Kind {
	case PropertyNat:
		var v uint64
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return err
		}
		*p = NatProperty(v)
	case PropertyInt:
		var v int64
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return err
		}
		*p = IntProperty(v)
	case PropertyText:
		var v string
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return err
		}
		*p = TextProperty(v)
	case PropertyBlob:
		var encoded string
		if err := json.Unmarshal(env.Value, &encoded); err != nil {
			return err
		}
		v, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("invalid blob property: %w", err)
		}
		*p = BlobProperty(v)
	default:
		return fmt.Errorf("unknown property kind %q", env.Kind)
	}
	return nil
}
