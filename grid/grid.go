/*package grid implements the staggered MAC grid that the simulation transfers
particle velocities onto: cell addressing, per-cell state, the bilinear
particle<->grid transfers, density estimation, and the iterative projection
that clears divergence.
*/
package grid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CellType tags a cell as solid wall, empty air, or fluid.
type CellType int

const (
	Solid CellType = iota
	Air
	Water
)

// Grid provides an interface for reasoning over 1D slices of per-cell state
// as if they were a 2D staggered grid. Storage is column-major with Ny as
// the stride: the neighbor in +y is at idx+1 and the neighbor in +x is at
// idx+Ny. The projection stencils depend on this layout.
//
// U velocities live on the left face of each cell, at (i*h, (j+0.5)*h), and
// V velocities on the bottom face, at ((i+0.5)*h, j*h).
type Grid struct {
	Nx, Ny int
	H      float64

	Type []CellType

	U, V             []float64
	PrevU, PrevV     []float64
	WeightU, WeightV []float64

	Density []float64

	restDensity float64
	restSet     bool
}

// NewGrid returns a grid of nx x ny cells with spacing h. The single ring of
// boundary cells is marked Solid and stays Solid for the life of the grid.
func NewGrid(nx, ny int, h float64) *Grid {
	g := &Grid{
		Nx: nx, Ny: ny, H: h,
		Type:    make([]CellType, nx*ny),
		U:       make([]float64, nx*ny),
		V:       make([]float64, nx*ny),
		PrevU:   make([]float64, nx*ny),
		PrevV:   make([]float64, nx*ny),
		WeightU: make([]float64, nx*ny),
		WeightV: make([]float64, nx*ny),
		Density: make([]float64, nx*ny),
	}

	for i := range g.Type { g.Type[i] = Air }
	for i := 0; i < nx; i++ {
		g.Type[g.Idx(i, 0)] = Solid
		g.Type[g.Idx(i, ny-1)] = Solid
	}
	for j := 0; j < ny; j++ {
		g.Type[g.Idx(0, j)] = Solid
		g.Type[g.Idx(nx-1, j)] = Solid
	}

	return g
}

// Idx returns the slice index corresponding to a cell coordinate.
func (g *Grid) Idx(i, j int) int { return g.Ny*i + j }

// Coords returns the i, j coordinates of a cell from its slice index.
func (g *Grid) Coords(idx int) (i, j int) {
	return idx / g.Ny, idx % g.Ny
}

// CellOf returns the coordinate of the cell containing pos, clamped to the
// grid. Clamping has to happen before any indexing: a particle sitting
// exactly on the domain edge can otherwise round out of range.
func (g *Grid) CellOf(pos r2.Vec) (i, j int) {
	i = clampInt(int(math.Floor(pos.X/g.H)), 0, g.Nx-1)
	j = clampInt(int(math.Floor(pos.Y/g.H)), 0, g.Ny-1)
	return i, j
}

// SetSolid pins the cell at (i, j) as a solid obstacle. Meant for seeding
// interior pillars before the first step; the boundary ring is already Solid.
func (g *Grid) SetSolid(i, j int) {
	g.Type[g.Idx(i, j)] = Solid
}

// RestDensity returns the latched rest density, or 0 before the first
// projection that saw a Water cell.
func (g *Grid) RestDensity() float64 { return g.restDensity }

// WaterCells returns the number of cells currently tagged Water.
func (g *Grid) WaterCells() int {
	n := 0
	for _, t := range g.Type {
		if t == Water { n++ }
	}
	return n
}

// MaxDivergence returns the largest |div u| over interior Water cells.
func (g *Grid) MaxDivergence() float64 {
	max := 0.0
	for i := 1; i < g.Nx-1; i++ {
		for j := 1; j < g.Ny-1; j++ {
			idx := g.Idx(i, j)
			if g.Type[idx] != Water { continue }
			d := g.U[idx+g.Ny] - g.U[idx] + g.V[idx+1] - g.V[idx]
			if d < 0 { d = -d }
			if d > max { max = d }
		}
	}
	return max
}

func clampInt(x, lo, hi int) int {
	if x < lo { return lo }
	if x > hi { return hi }
	return x
}

func clamp(x, lo, hi float64) float64 {
	if x < lo { return lo }
	if x > hi { return hi }
	return x
}
