package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColor is returned when a color string is neither hex nor a palette name
var ErrUnknownColor = errors.New("unknown color")

// Named palette for scene files, ordered dark-to-light within each hue group
var palette = map[string]RGB{
	// --- Achromatic ---
	"black":  {0, 0, 0},
	"gray":   {128, 128, 128},
	"silver": {180, 180, 180},
	"white":  {255, 255, 255},

	// --- Red / Orange ---
	"crimson": {139, 0, 0},
	"red":     {255, 0, 0},
	"coral":   {255, 80, 80},
	"orange":  {255, 165, 0},

	// --- Yellow ---
	"gold":   {255, 215, 0},
	"yellow": {255, 255, 0},

	// --- Green ---
	"forest": {34, 139, 34},
	"green":  {0, 128, 0},
	"lime":   {0, 255, 0},
	"mint":   {100, 220, 130},

	// --- Cyan / Blue ---
	"teal":       {0, 139, 139},
	"cyan":       {0, 255, 255},
	"navy":       {30, 60, 120},
	"blue":       {0, 0, 255},
	"royal":      {65, 105, 225},
	"cornflower": {80, 130, 255},
	"sky":        {135, 206, 250},

	// --- Purple / Pink ---
	"purple":  {120, 40, 180},
	"violet":  {180, 130, 255},
	"magenta": {255, 0, 255},
	"pink":    {255, 192, 203},
}

// ParseColor resolves "#rrggbb", "#rgb" or a palette name
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %v", ErrUnknownColor, s, err)
		}
		return FromColorful(c), nil
	}

	if c, ok := palette[strings.ToLower(s)]; ok {
		return c, nil
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Colorful returns the go-colorful representation of c
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex formats c as "#rrggbb"
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}
