package core

import (
	"fmt"
	"math/rand/v2"
)

// Color identifies one of the four lamp/button pairs on the panel
type Color uint8

const (
	Red Color = iota
	Yellow
	Green
	Blue
)

// NumColors is the number of lamp/button pairs; always 4
const NumColors = 4

// Colors lists every color in panel order (used by the welcome show)
var Colors = [NumColors]Color{Red, Yellow, Green, Blue}

// Button line masks as they appear in the capture register.
// One bit per button, bits 0-3.
const (
	RedMask    uint8 = 0b00000001
	YellowMask uint8 = 0b00000010
	GreenMask  uint8 = 0b00000100
	BlueMask   uint8 = 0b00001000

	// ButtonMask covers all four button lines
	ButtonMask = RedMask | YellowMask | GreenMask | BlueMask
)

var colorMasks = [NumColors]uint8{RedMask, YellowMask, GreenMask, BlueMask}

var colorNames = [NumColors]string{"red", "yellow", "green", "blue"}

// Mask returns the single-bit capture mask for the color
func (c Color) Mask() uint8 {
	if !c.Valid() {
		return 0
	}
	return colorMasks[c]
}

// Valid reports whether c is one of the four known colors
func (c Color) Valid() bool {
	return c < NumColors
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// LookupColor maps a capture bitmask to its color.
// Anything other than exactly one known button bit is ErrUnknownButton.
func LookupColor(mask uint8) (Color, error) {
	switch mask {
	case RedMask:
		return Red, nil
	case YellowMask:
		return Yellow, nil
	case GreenMask:
		return Green, nil
	case BlueMask:
		return Blue, nil
	}
	return 0, fmt.Errorf("%w: %#02x", ErrUnknownButton, mask)
}

// ParseColor accepts a color name or its single-letter code (r, y, g, b)
func ParseColor(s string) (Color, error) {
	switch s {
	case "r", "red":
		return Red, nil
	case "y", "yellow":
		return Yellow, nil
	case "g", "green":
		return Green, nil
	case "b", "blue":
		return Blue, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// PickColor returns a uniformly random color.
//
// The color count is a power of two, so the top two bits of a 32-bit
// sample select a color with no modulo bias and no retry loop.
func PickColor(rng *rand.Rand) Color {
	return Colors[rng.Uint32()>>30]
}
