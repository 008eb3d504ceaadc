// Package glyph resolves the characters a rain stream is drawn with: named and
// file-backed character sets, the built-in fallback alphabet, and the palette
// that samples from them.
package glyph
