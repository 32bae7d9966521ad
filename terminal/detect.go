package terminal

import (
	"os"
	"strings"
)

// ColorModeEnv overrides detection when set to a value ParseColorMode accepts
// "auto" and unrecognized values fall through to detection
const ColorModeEnv = "TERMDRAW_COLOR"

// Emulators known to render 24-bit SGR, keyed by the variable they export
var trueColorEmulators = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"ALACRITTY_LOG",
	"WEZTERM_PANE",
}

// TERM fragments that advertise direct color
var trueColorTerms = []string{"truecolor", "24bit", "direct"}

// DetectColorMode determines the half-block color encoding from environment
func DetectColorMode() ColorMode {
	if mode, ok := colorModeOverride(); ok {
		return mode
	}

	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}

	for _, k := range trueColorEmulators {
		if os.Getenv(k) != "" {
			return ColorModeTrueColor
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	for _, frag := range trueColorTerms {
		if strings.Contains(term, frag) {
			return ColorModeTrueColor
		}
	}

	// Multiplexers strip COLORTERM but pass 24-bit through when the outer terminal supports it
	if os.Getenv("TMUX") != "" && strings.HasPrefix(term, "tmux") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// colorModeOverride reads ColorModeEnv
func colorModeOverride() (ColorMode, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(ColorModeEnv))) {
	case "truecolor", "true", "24bit", "24":
		return ColorModeTrueColor, true
	case "256", "8":
		return ColorMode256, true
	}
	return 0, false
}
