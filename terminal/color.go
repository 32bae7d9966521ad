package terminal

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// ErrUnknownColorMode is returned for an unrecognized color mode name
var ErrUnknownColorMode = errors.New("unknown color mode")

// String returns the canonical name used by flags and scene files
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves a flag or config value, "auto" and "" detect from environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "truecolor", "true", "24bit", "24":
		return ColorModeTrueColor, nil
	case "256", "8":
		return ColorMode256, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
// Pre-computed at init time
var cubeIndex [256]uint8

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 converts RGB to nearest 256-color palette index
// Near-gray colors are matched against the grayscale ramp as well as the cube
func RGBTo256(c RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	cube := 16 + 36*cubeIndex[c.R] + 6*cubeIndex[c.G] + cubeIndex[c.B]

	gray := (r + g + b) / 3
	if max(abs(r-gray), abs(g-gray), abs(b-gray)) >= 10 {
		return cube
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}

	// Grayscale ramp: level = 8 + 10*(index-232)
	grayIdx := min(grayscaleStart+(gray-8)/10, 255)
	level := 8 + (grayIdx-grayscaleStart)*10
	grayDist := abs(r-level) + abs(g-level) + abs(b-level)
	cubeDist := abs(r-int(cubeValues[cubeIndex[c.R]])) +
		abs(g-int(cubeValues[cubeIndex[c.G]])) +
		abs(b-int(cubeValues[cubeIndex[c.B]]))

	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cube
}
