package config

import (
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Charset is an inline character set. In a config file it is either a
// string, each rune a glyph, or a list whose entries are strings (the first
// rune is taken) or integer codepoints.
type Charset []rune

func (c Charset) MarshalText() ([]byte, error) {
	return []byte(string(c)), nil
}

func (c *Charset) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*c = Charset(v)
	case []any:
		set := make(Charset, 0, len(v))
		for _, item := range v {
			switch item := item.(type) {
			case string:
				if r, ok := firstRune(item); ok {
					set = append(set, r)
				}
			case int64:
				set = append(set, rune(item))
			default:
				return errors.Errorf("character set entry must be a string or integer, got %T", item)
			}
		}
		*c = set
	default:
		return errors.Errorf("character set must be a string or list, got %T", v)
	}
	return nil
}

func (c *Charset) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*c = Charset(n.Value)
	case yaml.SequenceNode:
		set := make(Charset, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return errors.Errorf("character set entry must be a scalar (line %d)", item.Line)
			}
			if item.Tag == "!!int" {
				v, err := strconv.ParseInt(item.Value, 0, 32)
				if err != nil {
					return errors.Wrapf(err, "character set entry (line %d)", item.Line)
				}
				set = append(set, rune(v))
				continue
			}
			if r, ok := firstRune(item.Value); ok {
				set = append(set, r)
			}
		}
		*c = set
	default:
		return errors.Errorf("character set must be a string or list (line %d)", n.Line)
	}
	return nil
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}
