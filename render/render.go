/*package render turns simulation state into colors and images. It knows
nothing about windows or input; the interactive front end and the headless
snapshot writer both draw through it.
*/
package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/DinoEracleous/fluidsim/grid"
)

// SpeedColor maps a particle speed onto a blue-to-red ramp. vmax is the
// speed that saturates the ramp; speeds above it all come out the same red.
func SpeedColor(speed, vmax float64) color.Color {
	t := 0.0
	if vmax > 0 { t = speed / vmax }
	if t > 1 { t = 1 }
	// Hue 240 is blue, 0 is red.
	return colorful.Hsv(240*(1-t), 0.9, 1)
}

// CellColor maps a cell onto a fill color: gray for solids, black for air,
// and a density-shaded blue for water. rest is the grid's rest density; a
// zero rest (not latched yet) shades nothing.
func CellColor(t grid.CellType, density, rest float64) color.Color {
	switch t {
	case grid.Solid:
		return color.RGBA{100, 100, 100, 255}
	case grid.Water:
		v := 1.0
		if rest > 0 {
			v = density / (2 * rest)
			if v > 1 { v = 1 }
		}
		return colorful.Hsv(240, 0.85, 0.3+0.7*v)
	}
	return color.Black
}
