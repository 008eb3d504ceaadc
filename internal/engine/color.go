package engine

import "fmt"

// RGB is a 24-bit foreground colour.
type RGB struct {
	R, G, B uint8
}

// RGBA is a colour packed as 0xRRGGBBAA. The alpha byte is carried but never
// used for drawing.
type RGBA uint32

// RGB unpacks the colour channels, dropping alpha.
func (c RGBA) RGB() RGB {
	return RGB{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
	}
}

// PackRGB packs r, g, b with an opaque alpha byte.
func PackRGB(r, g, b uint8) RGBA {
	return RGBA(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xFF)
}

// Scale multiplies every channel by f, truncating toward zero.
// f is clamped to [0, 1].
func (c RGB) Scale(f float64) RGB {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return RGB{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
