package dotfield

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Theme selects the dot colour. It never affects particle positions.
type Theme uint8

const (
	Light Theme = iota
	Dark
)

// Dot opacities per theme.
const (
	LightOpacity = 0.08
	DarkOpacity  = 0.18
)

var ErrUnknownTheme = errors.New("unknown theme")

func (t Theme) String() string {
	switch t {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("Theme(%d)", uint8(t))
	}
}

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Color is the dot fill: translucent white on dark, translucent black on
// light.
func (t Theme) Color() color.NRGBA {
	if t == Dark {
		return color.NRGBA{R: 255, G: 255, B: 255, A: alpha(DarkOpacity)}
	}
	return color.NRGBA{R: 0, G: 0, B: 0, A: alpha(LightOpacity)}
}

// Background is the opaque page colour the dots sit on. Hosts that cannot
// composite translucent dots over other content paint it first.
func (t Theme) Background() color.NRGBA {
	if t == Dark {
		return color.NRGBA{R: 0x09, G: 0x09, B: 0x0b, A: 0xff}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

func alpha(opacity float64) uint8 {
	return uint8(math.Round(opacity * 255))
}
