/*package hash buckets particles by grid cell so the pairwise push-apart pass
only has to look at 3x3 neighborhoods. The index is two dense int slices: a
prefix-sum offset table and a flat list of particle ids grouped by cell, in
the style of a counting sort. It stores indices rather than references so two
entries in the same pass can both mutate particle state without aliasing.
*/
package hash

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/DinoEracleous/fluidsim/grid"
)

// Index is a rebuilt-per-call spatial hash over the simulation grid.
type Index struct {
	g *grid.Grid

	// cellStart[c] is the offset of cell c's bucket in ids. The extra
	// sentinel slot holds the particle count, so cell c's bucket is always
	// ids[cellStart[c]:cellStart[c+1]].
	cellStart []int
	ids       []int
}

// New returns an index over g sized for n particles.
func New(g *grid.Grid, n int) *Index {
	return &Index{
		g:         g,
		cellStart: make([]int, g.Nx*g.Ny+1),
		ids:       make([]int, n),
	}
}

// Build rebuilds the index from scratch: count particles per cell, turn the
// counts into running totals, then place each id by decrementing its cell's
// running total, so each bucket fills from its end and cellStart[c] finishes
// at the bucket's start.
func (ix *Index) Build(pos []r2.Vec) {
	cells := ix.g.Nx * ix.g.Ny
	for c := 0; c <= cells; c++ { ix.cellStart[c] = 0 }

	for _, p := range pos {
		i, j := ix.g.CellOf(p)
		ix.cellStart[ix.g.Idx(i, j)]++
	}

	total := 0
	for c := 0; c < cells; c++ {
		total += ix.cellStart[c]
		ix.cellStart[c] = total
	}
	ix.cellStart[cells] = len(pos)

	for i, p := range pos {
		cx, cy := ix.g.CellOf(p)
		c := ix.g.Idx(cx, cy)
		ix.cellStart[c]--
		ix.ids[ix.cellStart[c]] = i
	}
}

// Bucket returns the ids of the particles that were in cell c at Build time.
func (ix *Index) Bucket(c int) []int {
	return ix.ids[ix.cellStart[c]:ix.cellStart[c+1]]
}

// Separate runs iters passes of pairwise push-apart over pos: any two
// particles closer than 2*radius are moved half the overlap each, along the
// line between them. Coincident pairs are skipped rather than divided by
// zero; a later pass usually resolves them through a shared neighbor.
//
// The index is built once per call, not per pass. Particles can drift across
// cell boundaries mid-pass and still be tested against their original
// bucket; the lost pairs are picked up on the next step's rebuild.
func (ix *Index) Separate(pos []r2.Vec, radius float64, iters int) {
	ix.Build(pos)

	minDist := 2 * radius
	minDist2 := minDist * minDist

	for k := 0; k < iters; k++ {
		for i := range pos {
			cx, cy := ix.g.CellOf(pos[i])

			x0 := maxInt(cx-1, 1)
			x1 := minInt(cx+1, ix.g.Nx-2)
			y0 := maxInt(cy-1, 1)
			y1 := minInt(cy+1, ix.g.Ny-2)

			for x := x0; x <= x1; x++ {
				for y := y0; y <= y1; y++ {
					for _, id := range ix.Bucket(ix.g.Idx(x, y)) {
						if id == i { continue }

						d := r2.Sub(pos[id], pos[i])
						d2 := d.X*d.X + d.Y*d.Y
						if d2 >= minDist2 || d2 == 0 { continue }

						dist := math.Sqrt(d2)
						s := r2.Scale((radius - dist/2) / dist, d)
						pos[i] = r2.Sub(pos[i], s)
						pos[id] = r2.Add(pos[id], s)
					}
				}
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b { return a }
	return b
}

func maxInt(a, b int) int {
	if a > b { return a }
	return b
}
