package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/whiteStainX/ncmatrix/internal/engine"
)

// Color is a packed 0xRRGGBBAA colour. In a config file it may be an
// integer, a numeric string ("0x00FF00FF", "16777215") or a "#rrggbb" hex
// string.
type Color engine.RGBA

func (c Color) RGBA() engine.RGBA { return engine.RGBA(c) }

func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hc, err := colorful.Hex(s)
		if err != nil {
			return 0, errors.Wrapf(err, "parse colour %q", s)
		}
		r, g, b := hc.RGB255()
		return Color(engine.PackRGB(r, g, b)), nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "parse colour %q", s)
	}
	return Color(v), nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%08X", uint32(c))), nil
}

func (c *Color) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		*c = Color(uint32(v))
	case string:
		parsed, err := ParseColor(v)
		if err != nil {
			return err
		}
		*c = parsed
	default:
		return errors.Errorf("colour must be an integer or string, got %T", v)
	}
	return nil
}

func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errors.Errorf("colour must be a scalar (line %d)", n.Line)
	}
	parsed, err := ParseColor(n.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
