package grid

// Project runs iters Gauss-Seidel sweeps that push the face velocities of
// every Water cell toward zero divergence. overRelax scales each correction
// (1.9 is a good default; 1 is plain Gauss-Seidel). stiffness scales the
// density-drift term: cells packed beyond the rest density get a bias toward
// net outflow so particles stop clumping over long runs.
//
// The pre-projection velocities are snapshotted first; the next
// TransferFromGrid call diffs against them for the FLIP increment.
func (g *Grid) Project(iters int, overRelax, stiffness float64) {
	copy(g.PrevU, g.U)
	copy(g.PrevV, g.V)

	g.latchRestDensity()

	for k := 0; k < iters; k++ {
		for i := 1; i < g.Nx-1; i++ {
			for j := 1; j < g.Ny-1; j++ {
				idx := g.Idx(i, j)
				if g.Type[idx] != Water { continue }

				// Open faces. Solid neighbors pin their shared face.
				sL := open(g.Type[idx-g.Ny])
				sR := open(g.Type[idx+g.Ny])
				sB := open(g.Type[idx-1])
				sT := open(g.Type[idx+1])
				s := sL + sR + sB + sT
				if s == 0 { continue }

				div := g.U[idx+g.Ny] - g.U[idx] + g.V[idx+1] - g.V[idx]
				div *= overRelax

				if g.restSet {
					if c := g.Density[idx] - g.restDensity; c > 0 {
						div -= stiffness * c
					}
				}

				p := div / s
				g.U[idx] += p * sL
				g.U[idx+g.Ny] -= p * sR
				g.V[idx] += p * sB
				g.V[idx+1] -= p * sT
			}
		}
	}
}

func open(t CellType) float64 {
	if t == Solid { return 0 }
	return 1
}
