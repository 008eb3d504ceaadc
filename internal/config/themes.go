package config

import "github.com/whiteStainX/ncmatrix/internal/engine"

// Theme is a named pair of lead and tail colours.
type Theme struct {
	Name string
	Lead Color
	Tail Color
}

var (
	ThemeClassic = Theme{
		Name: "classic",
		Lead: Color(engine.PackRGB(0xff, 0xff, 0xff)),
		Tail: Color(engine.PackRGB(0x00, 0xff, 0x00)),
	}

	ThemeAmber = Theme{
		Name: "amber",
		Lead: Color(engine.PackRGB(0xff, 0xf2, 0xcc)),
		Tail: Color(engine.PackRGB(0xff, 0xb0, 0x00)),
	}

	ThemeIce = Theme{
		Name: "ice",
		Lead: Color(engine.PackRGB(0xe0, 0xf0, 0xff)),
		Tail: Color(engine.PackRGB(0x00, 0xa8, 0xcc)),
	}

	ThemeBlood = Theme{
		Name: "blood",
		Lead: Color(engine.PackRGB(0xff, 0xf5, 0xf5)),
		Tail: Color(engine.PackRGB(0xff, 0x00, 0x00)),
	}

	ThemeSynthwave = Theme{
		Name: "synthwave",
		Lead: Color(engine.PackRGB(0x00, 0xff, 0xff)),
		Tail: Color(engine.PackRGB(0xff, 0x00, 0xff)),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeAmber,
		ThemeIce,
		ThemeBlood,
		ThemeSynthwave,
	}
)

func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
