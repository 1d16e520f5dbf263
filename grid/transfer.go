package grid

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// stencil is the four-cell bilinear footprint of one staggered sample point.
// The u and v components sample at different offsets, so each component gets
// its own stencil per particle.
type stencil struct {
	q0, q1, q2, q3 int
	w0, w1, w2, w3 float64
}

// shifted moves a particle position to the dual cell of the component being
// transferred (0 for u on left faces, 1 for v on bottom faces) and clamps it
// to the addressable part of the domain.
func (g *Grid) shifted(pos r2.Vec, component int) r2.Vec {
	if component == 0 {
		pos.Y -= g.H / 2
	} else {
		pos.X -= g.H / 2
	}
	pos.X = clamp(pos.X, g.H, g.H*float64(g.Nx-1))
	pos.Y = clamp(pos.Y, g.H, g.H*float64(g.Ny-1))
	return pos
}

func (g *Grid) stencilAt(pos r2.Vec) stencil {
	x0, y0 := g.CellOf(pos)
	x1 := minInt(x0+1, g.Nx-2)
	y1 := minInt(y0+1, g.Ny-2)

	sx := (pos.X - float64(x0)*g.H) / g.H
	sy := (pos.Y - float64(y0)*g.H) / g.H
	tx, ty := 1-sx, 1-sy

	return stencil{
		q0: g.Idx(x0, y0), q1: g.Idx(x1, y0),
		q2: g.Idx(x1, y1), q3: g.Idx(x0, y1),
		w0: tx * ty, w1: sx * ty,
		w2: sx * sy, w3: tx * sy,
	}
}

// TransferToGrid splats particle velocities onto the staggered faces. Cell
// categories are refreshed first: every non-Solid cell resets to Air, then
// cells containing a particle become Water. Faces that no particle touched
// are left at zero velocity.
func (g *Grid) TransferToGrid(pos, vel []r2.Vec) {
	for i := range g.U {
		g.U[i], g.V[i] = 0, 0
		g.WeightU[i], g.WeightV[i] = 0, 0
		if g.Type[i] != Solid { g.Type[i] = Air }
	}
	for _, p := range pos {
		i, j := g.CellOf(p)
		idx := g.Idx(i, j)
		if g.Type[idx] == Air { g.Type[idx] = Water }
	}

	for c := 0; c < 2; c++ {
		faceVel, faceWt := g.U, g.WeightU
		if c == 1 { faceVel, faceWt = g.V, g.WeightV }

		for i := range pos {
			v := vel[i].X
			if c == 1 { v = vel[i].Y }

			st := g.stencilAt(g.shifted(pos[i], c))
			faceVel[st.q0] += st.w0 * v
			faceVel[st.q1] += st.w1 * v
			faceVel[st.q2] += st.w2 * v
			faceVel[st.q3] += st.w3 * v
			faceWt[st.q0] += st.w0
			faceWt[st.q1] += st.w1
			faceWt[st.q2] += st.w2
			faceWt[st.q3] += st.w3
		}
	}

	for i := range g.U {
		if g.WeightU[i] > 0 { g.U[i] /= g.WeightU[i] }
		if g.WeightV[i] > 0 { g.V[i] /= g.WeightV[i] }
	}
}

// TransferFromGrid writes grid velocities back onto the particles, blending
// the FLIP increment against the PIC average by flipRatio: 1 is pure FLIP,
// 0 is pure PIC. A face only participates if one of the two cells sharing
// it holds fluid or solid; faces surrounded by air carry no information.
// Particles whose entire stencil is invalid keep their velocity.
func (g *Grid) TransferFromGrid(pos, vel []r2.Vec, flipRatio float64) {
	for c := 0; c < 2; c++ {
		faceVel, facePrev := g.U, g.PrevU
		off := g.Ny
		if c == 1 {
			faceVel, facePrev = g.V, g.PrevV
			off = 1
		}

		for i := range pos {
			st := g.stencilAt(g.shifted(pos[i], c))

			v0 := g.faceValid(st.q0, off)
			v1 := g.faceValid(st.q1, off)
			v2 := g.faceValid(st.q2, off)
			v3 := g.faceValid(st.q3, off)

			d := v0*st.w0 + v1*st.w1 + v2*st.w2 + v3*st.w3
			if d == 0 { continue }

			pic := (v0*st.w0*faceVel[st.q0] + v1*st.w1*faceVel[st.q1] +
				v2*st.w2*faceVel[st.q2] + v3*st.w3*faceVel[st.q3]) / d
			corr := (v0*st.w0*(faceVel[st.q0]-facePrev[st.q0]) +
				v1*st.w1*(faceVel[st.q1]-facePrev[st.q1]) +
				v2*st.w2*(faceVel[st.q2]-facePrev[st.q2]) +
				v3*st.w3*(faceVel[st.q3]-facePrev[st.q3])) / d

			if c == 0 {
				vel[i].X = flipRatio*(vel[i].X+corr) + (1-flipRatio)*pic
			} else {
				vel[i].Y = flipRatio*(vel[i].Y+corr) + (1-flipRatio)*pic
			}
		}
	}
}

func (g *Grid) faceValid(idx, off int) float64 {
	if g.Type[idx] != Air || g.Type[idx-off] != Air { return 1 }
	return 0
}

func minInt(a, b int) int {
	if a < b { return a }
	return b
}
