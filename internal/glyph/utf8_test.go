package glyph

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiteStainX/ncmatrix/internal/engine"
)

func TestDecodeValid(t *testing.T) {
	assert.Equal(t, []rune("aｱ書😂"), DecodeString("aｱ書😂"))
}

func TestDecodeSkipsBOM(t *testing.T) {
	assert.Equal(t, []rune("ab"), Decode([]byte("\xef\xbb\xbfab")))
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []rune
	}{
		{"lone continuation", []byte{0x80, 'a'}, []rune{'?', 'a'}},
		{"truncated two byte", []byte{0xC3}, []rune{'?'}},
		{"bad continuation", []byte{0xE3, 'a', 'b'}, []rune{'?', 'a', 'b'}},
		{"overlong", []byte{0xC0, 0xAF}, []rune{'?', '?'}},
		{"surrogate", []byte{0xED, 0xA0, 0x80}, []rune{'?', '?', '?'}},
		{"invalid lead", []byte{0xFF, 'z'}, []rune{'?', 'z'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.input))
		})
	}
}

func TestDecodeKeepsEncodedReplacementChar(t *testing.T) {
	assert.Equal(t, []rune{utf8.RuneError}, DecodeString("�"))
}

func TestEncodeRoundTrip(t *testing.T) {
	r := engine.NewRandom(99)
	for i := 0; i < 5000; i++ {
		cp := rune(r.IntN(0x110000))
		if cp >= 0xD800 && cp <= 0xDFFF {
			continue
		}
		got := DecodeString(Encode(cp))
		require.Len(t, got, 1, "codepoint %U", cp)
		require.Equal(t, cp, got[0], "codepoint %U", cp)
	}
}

func TestEncodeInvalid(t *testing.T) {
	assert.Equal(t, "?", Encode(0x110000))
	assert.Equal(t, "?", Encode(0xD800))
	assert.Equal(t, "?", Encode(-1))
}
