package grid

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// UpdateDensities rebuilds the per-cell particle density estimate. Each
// particle distributes a unit of mass over the four cell centers around it
// with the same bilinear stencil the velocity transfer uses, sampled at the
// cell-centered offset (h/2, h/2).
func (g *Grid) UpdateDensities(pos []r2.Vec) {
	for i := range g.Density { g.Density[i] = 0 }

	for _, p := range pos {
		p.X -= g.H / 2
		p.Y -= g.H / 2
		p.X = clamp(p.X, g.H, g.H*float64(g.Nx-1))
		p.Y = clamp(p.Y, g.H, g.H*float64(g.Ny-1))

		st := g.stencilAt(p)
		g.Density[st.q0] += st.w0
		g.Density[st.q1] += st.w1
		g.Density[st.q2] += st.w2
		g.Density[st.q3] += st.w3
	}
}

// latchRestDensity computes the rest density the drift compensation steers
// toward: the mean density over Water cells, measured once on the first
// projection that sees any fluid at all. Later calls are no-ops.
func (g *Grid) latchRestDensity() {
	if g.restSet { return }

	sum, n := 0.0, 0
	for i, t := range g.Type {
		if t != Water { continue }
		sum += g.Density[i]
		n++
	}
	if n == 0 { return }

	g.restDensity = sum / float64(n)
	g.restSet = true
}
