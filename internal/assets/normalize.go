package assets

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// NormalizeSVG best-effort decodes an uploaded SVG payload. Upload tooling
// delivers SVG bodies either as plain text, base64, or hex (optionally with
// a \x or \u{...} escape prefix). Decode failures fall back to the original
// bytes so a direct UTF-8 upload always survives.
func NormalizeSVG(data []byte) []byte {
	s := strings.TrimSpace(string(data))

	// Already plain SVG text.
	if strings.HasPrefix(s, "<?xml") || strings.HasPrefix(s, "<svg") {
		return data
	}

	if looksBase64(s) {
		if decoded, err := base64.StdEncoding.DecodeString(s); err == nil && utf8.Valid(decoded) {
			return decoded
		}
	}

	hexStr := s
	if strings.HasPrefix(hexStr, `\x`) {
		hexStr = hexStr[2:]
	} else if strings.HasPrefix(hexStr, `\u{`) && strings.HasSuffix(hexStr, "}") {
		hexStr = hexStr[3 : len(hexStr)-1]
	}
	if decoded, err := hex.DecodeString(hexStr); err == nil {
		return decoded
	}

	return data
}

// looksBase64 reports whether the string plausibly is base64: long enough
// and drawn entirely from the base64 alphabet.
func looksBase64(s string) bool {
	if len(s) <= 8 {
		return false
	}
	for _, c := range s {
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '+' || c == '/' || c == '='
		if !valid {
			return false
		}
	}
	return true
}
