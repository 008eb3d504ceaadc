package glyph

import (
	"bytes"
	"os"
	"sort"

	"github.com/pkg/errors"
)

const alnum = "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz"

// Fallback is used when neither an inline set nor a character file is usable.
var Fallback = []rune(alnum + "@#$%&*")

// Named character sets selectable by name from configuration.
var Named = map[string][]rune{
	"alnum":    []rune(alnum),
	"matrix":   []rune("λｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789"),
	"binary":   []rune("01"),
	"hex":      []rune("0123456789ABCDEF"),
	"symbols":  []rune("!@#$%^&*()_+-=[]{}|;':\",./<>?"),
	"kanji":    []rune("書道日本漢字文化侍"),
	"greek":    []rune("αβγδεζηθικλμνξοπρστυφχψω"),
	"cyrillic": []rune("абвгдежзийклмнопрстуфхцчшщъыьэюя"),
}

// ErrEmptyCharset is returned when a character file holds no glyphs.
var ErrEmptyCharset = errors.New("glyph: character set is empty")

// Lookup returns a copy of the named set.
func Lookup(name string) ([]rune, bool) {
	set, ok := Named[name]
	if !ok {
		return nil, false
	}
	return append([]rune(nil), set...), true
}

// NamedSets lists the names of the built-in sets in sorted order.
func NamedSets() []string {
	names := make([]string, 0, len(Named))
	for name := range Named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads newline-separated UTF-8 text and returns every glyph in file
// order. Line breaks (LF and CRLF) are not glyphs.
func LoadFile(path string) ([]rune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read character set %s", path)
	}

	var set []rune
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSuffix(line, []byte{'\r'})
		set = append(set, Decode(line)...)
	}
	if len(set) == 0 {
		return nil, errors.Wrapf(ErrEmptyCharset, "character set %s", path)
	}
	return set, nil
}

// Resolve picks the first usable source: inline, then the file at path, then
// Fallback. The error reports why the file was not used; the returned set is
// always usable.
func Resolve(inline []rune, path string) ([]rune, error) {
	if len(inline) > 0 {
		return append([]rune(nil), inline...), nil
	}
	if path == "" {
		return append([]rune(nil), Fallback...), nil
	}
	set, err := LoadFile(path)
	if err != nil {
		return append([]rune(nil), Fallback...), err
	}
	return set, nil
}
