package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/nft-registry/internal/domain"
)

func TestProperty_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		property domain.Property
		wire     string
	}{
		{
			name:     "nat",
			property: domain.NatProperty(42),
			wire:     `{"kind":"nat","value":42}`,
		},
		{
			name:     "int",
			property: domain.IntProperty(-7),
			wire:     `{"kind":"int","value":-7}`,
		},
		{
			name:     "text",
			property: domain.TextProperty("generative"),
			wire:     `{"kind":"text","value":"generative"}`,
		},
		{
			name:     "blob",
			property: domain.BlobProperty([]byte{0xde, 0xad}),
			wire:     `{"kind":"blob","value":"3q0="}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := json.Marshal(tt.property)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wire, string(encoded))

			var decoded domain.Property
			require.NoError(t, json.Unmarshal(encoded, &decoded))
			assert.Equal(t, tt.property, decoded)
		})
	}
}

func TestProperty_Accessors(t *testing.T) {
	p := domain.TextProperty("hello")

	text, ok := p.Text()
	require.True(t, ok)
	assert.Equal(t, "hello", text)
	assert.Equal(t, domain.PropertyText, p.Kind())

	_, ok = p.Nat()
	assert.False(t, ok)
	_, ok = p.Int()
	assert.False(t, ok)
	_, ok = p.Blob()
	assert.False(t, ok)
}

func TestProperty_MarshalZeroValueFails(t *testing.T) {
	var p domain.Property
	_, err := json.Marshal(p)
	assert.Error(t, err)
}

func TestProperty_UnmarshalUnknownKind(t *testing.T) {
	var p domain.Property
	err := json.Unmarshal([]byte(`{"kind":"float","value":1.5}`), &p)
	assert.Error(t, err)
}
