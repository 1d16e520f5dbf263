/*package fluidsim is the core of a 2D hybrid particle-grid incompressible
fluid simulator. Each Step advects a fixed population of particles under
gravity, pushes overlapping particles apart with a spatial hash, keeps them
out of the walls and the moving disk obstacle, splats their velocities onto a
staggered MAC grid, clears the grid's divergence with an over-relaxed
Gauss-Seidel sweep (with a density-drift bias), and blends the corrected grid
velocities back onto the particles FLIP/PIC style.

The package is a plain data library: no I/O, no clock, no window. A front end
supplies dt, moves the obstacle between steps, and reads the particle and
cell state back out for drawing.
*/
package fluidsim

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/DinoEracleous/fluidsim/grid"
	"github.com/DinoEracleous/fluidsim/hash"
)

// Simulation owns every array for its lifetime: the particle state, the grid,
// the spatial hash, and the obstacle record. A Step call is one synchronous,
// atomic unit of work; callers may borrow the particle and cell state between
// steps but must not hold a borrow across one.
type Simulation struct {
	cfg Config

	pos, vel []r2.Vec

	grid  *grid.Grid
	index *hash.Index

	obstacle Obstacle
}

// New builds a simulation with the initial particle block layout the
// original used: rows of particles packed into the left half of the domain,
// all moving up and to the right.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Check(); err != nil { return nil, err }

	parts := make([]Particle, cfg.Particles)
	for i := range parts {
		parts[i].Pos = r2.Vec{
			X: float64(i%(cfg.Nx/2)) + cfg.Spacing + cfg.Radius,
			Y: float64(2*i/cfg.Nx) + cfg.Spacing + cfg.Radius,
		}
		parts[i].Vel = r2.Vec{X: 10, Y: 10}
	}
	return NewFromLayout(cfg, parts)
}

// NewFromLayout builds a simulation from an explicit initial particle
// layout. len(parts) must equal cfg.Particles.
func NewFromLayout(cfg Config, parts []Particle) (*Simulation, error) {
	if err := cfg.Check(); err != nil { return nil, err }
	if len(parts) != cfg.Particles {
		return nil, fmt.Errorf(
			"Layout has %d particles, but the configuration asks for %d.",
			len(parts), cfg.Particles,
		)
	}

	g := grid.NewGrid(cfg.Nx, cfg.Ny, cfg.Spacing)

	s := &Simulation{
		cfg:   cfg,
		pos:   make([]r2.Vec, len(parts)),
		vel:   make([]r2.Vec, len(parts)),
		grid:  g,
		index: hash.New(g, len(parts)),
	}
	for i, p := range parts {
		s.pos[i] = p.Pos
		s.vel[i] = p.Vel
	}

	center := r2.Vec{
		X: cfg.Spacing * float64(cfg.Nx) / 2,
		Y: cfg.Spacing * float64(cfg.Ny) / 2,
	}
	s.obstacle = Obstacle{
		Pos: center, PrevPos: center, Radius: cfg.ObstacleRadius,
	}

	return s, nil
}

// Step advances the fluid by dt (scaled by the configured TimeScale). The
// phase order is fixed: integrate, separate, obstacles, transfer to grid,
// densities, project, transfer from grid. After it returns the particle and
// cell state are consistent and readable.
func (s *Simulation) Step(dt float64) {
	dt *= s.cfg.TimeScale

	s.integrate(dt)
	s.index.Separate(s.pos, s.cfg.Radius, s.cfg.SeparationIters)
	s.handleObstacles(dt)
	s.grid.TransferToGrid(s.pos, s.vel)
	s.grid.UpdateDensities(s.pos)
	s.grid.Project(s.cfg.PressureIters, s.cfg.OverRelaxation, s.cfg.Stiffness)
	s.grid.TransferFromGrid(s.pos, s.vel, s.cfg.FlipRatio)
}

// Config returns the construction-time configuration.
func (s *Simulation) Config() Config { return s.cfg }

// Positions returns a read-only borrow of the particle positions. The slice
// aliases live state: don't hold it across a Step call.
func (s *Simulation) Positions() []r2.Vec { return s.pos }

// Velocities returns a read-only borrow of the particle velocities, under
// the same borrow rule as Positions.
func (s *Simulation) Velocities() []r2.Vec { return s.vel }

// Particle returns a copy of particle i.
func (s *Simulation) Particle(i int) Particle {
	return Particle{Pos: s.pos[i], Vel: s.vel[i]}
}

// Grid returns the simulation's grid for read-only inspection of cell
// categories, face velocities, and densities.
func (s *Simulation) Grid() *grid.Grid { return s.grid }

// Obstacle returns a copy of the current obstacle record.
func (s *Simulation) Obstacle() Obstacle { return s.obstacle }

// SetObstaclePos moves the disk obstacle. Call it between steps; the next
// obstacle pass turns the displacement into a velocity.
func (s *Simulation) SetObstaclePos(pos r2.Vec) {
	s.obstacle.Pos = pos
}

// SetSolid pins cell (i, j) as a solid obstacle. Meant to be called before
// the first Step to seed interior pillars.
func (s *Simulation) SetSolid(i, j int) { s.grid.SetSolid(i, j) }

// KineticEnergy returns the summed kinetic energy of all particles, with
// unit particle mass.
func (s *Simulation) KineticEnergy() float64 {
	e := 0.0
	for _, v := range s.vel {
		e += 0.5 * (v.X*v.X + v.Y*v.Y)
	}
	return e
}
