// Package render turns cube state into draw calls: render colors, cubie
// model transforms and one draw per visible facelet.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Standard sticker shades.
var (
	white  = colorful.Color{R: 0.95, G: 0.95, B: 0.95}
	yellow = colorful.Color{R: 1.00, G: 0.84, B: 0.00}
	green  = colorful.Color{R: 0.00, G: 0.61, B: 0.28}
	blue   = colorful.Color{R: 0.00, G: 0.27, B: 0.68}
	red    = colorful.Color{R: 0.72, G: 0.07, B: 0.20}
	orange = colorful.Color{R: 1.00, G: 0.35, B: 0.00}
)

// Palette returns the display color of c. The switch is exhaustive over
// the six facelet colors; anything else renders black.
func Palette(c cube.Color) colorful.Color {
	switch c {
	case cube.White:
		return white
	case cube.Yellow:
		return yellow
	case cube.Green:
		return green
	case cube.Blue:
		return blue
	case cube.Red:
		return red
	case cube.Orange:
		return orange
	default:
		return colorful.Color{}
	}
}

// ColorOf returns the RGBA shader color of c.
func ColorOf(c cube.Color) mgl32.Vec4 {
	return toVec4(Palette(c))
}

// Hex returns the #rrggbb form of c for terminal styling.
func Hex(c cube.Color) string {
	return Palette(c).Hex()
}

// Highlight blends c towards white by t in [0,1], in Lab space so the
// shade stays perceptually even across the palette.
func Highlight(c cube.Color, t float64) colorful.Color {
	if t <= 0 {
		return Palette(c)
	}
	if t > 1 {
		t = 1
	}
	return Palette(c).BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped()
}

func toVec4(c colorful.Color) mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), 1}
}
