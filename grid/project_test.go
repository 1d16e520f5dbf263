package grid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// waterBlock marks the cells in [i0, i1] x [j0, j1] as Water directly,
// bypassing the transfer, so projection can be tested in isolation.
func waterBlock(g *Grid, i0, i1, j0, j1 int) {
	for i := i0; i <= i1; i++ {
		for j := j0; j <= j1; j++ {
			g.Type[g.Idx(i, j)] = Water
		}
	}
}

func TestProjectClearsDivergence(t *testing.T) {
	g := NewGrid(10, 10, 1.0)
	waterBlock(g, 3, 6, 3, 6)

	rnd := rand.New(rand.NewSource(42))
	for i := range g.U {
		g.U[i] = rnd.Float64()*2 - 1
		g.V[i] = rnd.Float64()*2 - 1
	}

	before := g.MaxDivergence()
	assert.Greater(t, before, 0.0)

	g.Project(200, 1.0, 0)

	after := g.MaxDivergence()
	assert.Less(t, after, before)
	assert.Less(t, after, 1e-6)
}

func TestProjectOverRelaxedStillConverges(t *testing.T) {
	g := NewGrid(10, 10, 1.0)
	waterBlock(g, 3, 6, 3, 6)

	rnd := rand.New(rand.NewSource(43))
	for i := range g.U {
		g.U[i] = rnd.Float64()*2 - 1
		g.V[i] = rnd.Float64()*2 - 1
	}

	before := g.MaxDivergence()
	g.Project(200, 1.9, 0)
	assert.Less(t, g.MaxDivergence(), before)

	for _, u := range g.U {
		if math.IsNaN(u) { t.Fatal("projection produced NaN") }
	}
}

func TestProjectSnapshotsPrev(t *testing.T) {
	g := NewGrid(8, 8, 1.0)
	waterBlock(g, 2, 5, 2, 5)

	rnd := rand.New(rand.NewSource(44))
	for i := range g.U {
		g.U[i] = rnd.Float64()
		g.V[i] = rnd.Float64()
	}
	wantU := append([]float64{}, g.U...)
	wantV := append([]float64{}, g.V...)

	// The snapshot is taken before any sweep runs, so even a full
	// projection preserves the pre-projection field in PrevU/PrevV.
	g.Project(10, 1.9, 0)

	assert.Equal(t, wantU, g.PrevU)
	assert.Equal(t, wantV, g.PrevV)
}

func TestProjectSkipsLandlockedCell(t *testing.T) {
	g := NewGrid(5, 5, 1.0)
	g.Type[g.Idx(2, 2)] = Water
	g.Type[g.Idx(1, 2)] = Solid
	g.Type[g.Idx(3, 2)] = Solid
	g.Type[g.Idx(2, 1)] = Solid
	g.Type[g.Idx(2, 3)] = Solid

	idx := g.Idx(2, 2)
	g.U[idx], g.U[idx+g.Ny] = -1, 1

	g.Project(5, 1.9, 0)

	// All four neighbors closed: the cell's divergence has nowhere to go
	// and must be left alone rather than divided by zero.
	assert.Equal(t, -1.0, g.U[idx])
	assert.Equal(t, 1.0, g.U[idx+g.Ny])
}

func TestProjectLeavesAirAlone(t *testing.T) {
	g := NewGrid(10, 10, 1.0)
	waterBlock(g, 3, 4, 3, 4)

	for i := range g.U { g.U[i] = 1 }

	g.Project(10, 1.9, 0)

	// A divergence-free region far from the water block keeps its field.
	idx := g.Idx(7, 7)
	assert.Equal(t, 1.0, g.U[idx])
}

func TestDriftCompensationPushesOutflow(t *testing.T) {
	g := NewGrid(7, 7, 1.0)
	idx := g.Idx(3, 3)
	g.Type[idx] = Water

	// Zero-divergence velocities, but the cell is packed well past rest.
	g.restDensity = 2
	g.restSet = true
	g.Density[idx] = 5

	g.Project(1, 1.0, 2.0)

	// div was biased by -stiffness*(5-2) = -6 over four open faces, so
	// every face now points away from the cell.
	assert.InDelta(t, -1.5, g.U[idx], 1e-12)
	assert.InDelta(t, 1.5, g.U[idx+g.Ny], 1e-12)
	assert.InDelta(t, -1.5, g.V[idx], 1e-12)
	assert.InDelta(t, 1.5, g.V[idx+1], 1e-12)
}

func TestDriftCompensationIgnoresRarefaction(t *testing.T) {
	g := NewGrid(7, 7, 1.0)
	idx := g.Idx(3, 3)
	g.Type[idx] = Water

	g.restDensity = 2
	g.restSet = true
	g.Density[idx] = 1 // below rest: no bias in either direction

	g.Project(1, 1.0, 2.0)

	assert.Equal(t, 0.0, g.U[idx])
	assert.Equal(t, 0.0, g.U[idx+g.Ny])
}

func BenchmarkProject(b *testing.B) {
	g := NewGrid(200, 80, 1.1)
	waterBlock(g, 1, 100, 1, 40)

	rnd := rand.New(rand.NewSource(7))
	for i := range g.U {
		g.U[i] = rnd.Float64()
		g.V[i] = rnd.Float64()
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		g.Project(3, 1.9, 2.0)
	}
}
