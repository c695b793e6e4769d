package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
)

// highlight is how far a turning layer's stickers blend towards white at
// the start of the turn; it fades as the turn completes.
const highlight = 0.45

// netView draws the cube as an unfolded net of colored cells:
//
//	   U
//	L  F  R  B
//	   D
type netView struct {
	net    cubesim.Net
	layer  cubesim.Layer
	amount float64 // highlight strength, 0 when idle
}

func newNetView(c *cubesim.RubiksCube) netView {
	v := netView{net: c.Net()}
	if a, ok := c.Active(); ok {
		v.layer = a.Layer
		v.amount = highlight * (1 - a.Angle/90)
	}
	return v
}

func (v netView) cell(f cube.Face, i int) string {
	c := v.net.Facelets[f][i]
	col := render.Palette(c)
	if v.amount > 0 && v.layer.Contains(f.Slot(i)) {
		col = render.Highlight(c, v.amount)
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(col.Hex())).
		Render("  ")
}

func (v netView) row(f cube.Face, r int) string {
	var b strings.Builder
	for col := 0; col < cube.Size; col++ {
		b.WriteString(v.cell(f, r*cube.Size+col))
	}
	return b.String()
}

func (v netView) String() string {
	pad := strings.Repeat(" ", 2*cube.Size+1)
	var b strings.Builder
	for r := 0; r < cube.Size; r++ {
		b.WriteString(pad + v.row(cube.U, r) + "\n")
	}
	b.WriteString("\n")
	for r := 0; r < cube.Size; r++ {
		parts := make([]string, 0, 4)
		for _, f := range []cube.Face{cube.L, cube.F, cube.R, cube.B} {
			parts = append(parts, v.row(f, r))
		}
		b.WriteString(strings.Join(parts, " ") + "\n")
	}
	b.WriteString("\n")
	for r := 0; r < cube.Size; r++ {
		b.WriteString(pad + v.row(cube.D, r) + "\n")
	}
	return b.String()
}
