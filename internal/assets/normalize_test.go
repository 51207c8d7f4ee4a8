package assets_test

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/nft-registry/internal/assets"
)

func TestNormalizeSVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><circle r="4"/></svg>`
	withDecl := `<?xml version="1.0"?>` + svg

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain svg passes through",
			input:    svg,
			expected: svg,
		},
		{
			name:     "xml declaration passes through",
			input:    withDecl,
			expected: withDecl,
		},
		{
			name:     "base64 body decoded",
			input:    base64.StdEncoding.EncodeToString([]byte(svg)),
			expected: svg,
		},
		{
			name:     "bare hex body decoded",
			input:    hex.EncodeToString([]byte(svg)),
			expected: svg,
		},
		{
			name:     `hex with \x prefix decoded`,
			input:    `\x` + hex.EncodeToString([]byte(svg)),
			expected: svg,
		},
		{
			name:     `hex with \u{...} wrapper decoded`,
			input:    `\u{` + hex.EncodeToString([]byte(svg)) + `}`,
			expected: svg,
		},
		{
			name:     "undecodable body survives verbatim",
			input:    "not really an svg at all!",
			expected: "not really an svg at all!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(assets.NormalizeSVG([]byte(tt.input))))
		})
	}
}
