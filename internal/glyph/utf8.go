package glyph

import "unicode/utf8"

// Placeholder replaces every malformed UTF-8 sequence.
const Placeholder = '?'

const bom = "\xef\xbb\xbf"

// Decode converts UTF-8 text into runes. A leading byte-order mark is
// skipped. Each invalid byte becomes Placeholder and decoding resumes at the
// next byte.
func Decode(b []byte) []rune {
	if len(b) >= len(bom) && string(b[:len(bom)]) == bom {
		b = b[len(bom):]
	}

	out := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			out = append(out, Placeholder)
			b = b[1:]
			continue
		}
		out = append(out, r)
		b = b[size:]
	}
	return out
}

// DecodeString is Decode for strings.
func DecodeString(s string) []rune {
	return Decode([]byte(s))
}

// Encode returns the UTF-8 form of r, or Placeholder for values that are not
// valid scalar values (surrogates, above U+10FFFF).
func Encode(r rune) string {
	if !utf8.ValidRune(r) {
		return string(Placeholder)
	}
	return string(r)
}
