/*package io reads simulation configuration files and initial particle
layouts. The core simulation package does no file I/O of its own; everything
here belongs to the front end.
*/
package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/DinoEracleous/fluidsim"
)

// SimConfig is the [simulation] section of a config file. Zero-valued
// optional fields fall back to the defaults from fluidsim.DefaultConfig.
type SimConfig struct {
	// Required
	GridX, GridY int

	// Optional
	Spacing         float64
	Particles       int
	ParticleRadius  float64
	Gravity         float64
	FlipRatio       float64
	OverRelaxation  float64
	Stiffness       float64
	SeparationIters int
	PressureIters   int
	TimeScale       float64
}

func (sim *SimConfig) CheckInit() error {
	if sim.GridX == 0 || sim.GridY == 0 {
		return fmt.Errorf(
			"Need to specify GridX and GridY in the [simulation] section.",
		)
	}
	if sim.GridX < 3 || sim.GridY < 3 {
		return fmt.Errorf(
			"Grid must be at least 3x3 cells, but is %dx%d.",
			sim.GridX, sim.GridY,
		)
	}

	def := fluidsim.DefaultConfig()
	if sim.Spacing == 0 { sim.Spacing = def.Spacing }
	if sim.Particles == 0 { sim.Particles = def.Particles }
	if sim.ParticleRadius == 0 { sim.ParticleRadius = def.Radius }
	if sim.Gravity == 0 { sim.Gravity = def.Gravity }
	if sim.FlipRatio == 0 { sim.FlipRatio = def.FlipRatio }
	if sim.OverRelaxation == 0 { sim.OverRelaxation = def.OverRelaxation }
	if sim.Stiffness == 0 { sim.Stiffness = def.Stiffness }
	if sim.SeparationIters == 0 { sim.SeparationIters = def.SeparationIters }
	if sim.PressureIters == 0 { sim.PressureIters = def.PressureIters }
	if sim.TimeScale == 0 { sim.TimeScale = def.TimeScale }

	if sim.Spacing < 0 {
		return fmt.Errorf("Need a positive Spacing, but got %g.", sim.Spacing)
	}
	if sim.Particles < 0 {
		return fmt.Errorf(
			"Need a non-negative particle count, but got %d.", sim.Particles,
		)
	}
	if sim.FlipRatio < 0 || sim.FlipRatio > 1 {
		return fmt.Errorf(
			"FlipRatio must be in [0, 1], but is %g.", sim.FlipRatio,
		)
	}

	return nil
}

// ObstacleConfig is the [obstacle] section.
type ObstacleConfig struct {
	Radius float64
}

func (obs *ObstacleConfig) CheckInit() error {
	if obs.Radius == 0 { obs.Radius = fluidsim.DefaultConfig().ObstacleRadius }
	if obs.Radius < 0 {
		return fmt.Errorf(
			"Need a non-negative obstacle Radius, but got %g.", obs.Radius,
		)
	}
	return nil
}

// RenderConfig is the [render] section, read by the front end only.
type RenderConfig struct {
	Width, Height int
	ParticleSize  int
}

func (r *RenderConfig) CheckInit() error {
	if r.Width == 0 { r.Width = 1200 }
	if r.Height == 0 { r.Height = 480 }
	if r.ParticleSize == 0 { r.ParticleSize = 3 }
	if r.Width < 0 || r.Height < 0 || r.ParticleSize < 0 {
		return fmt.Errorf(
			"Render dimensions must be positive, but are %dx%d with "+
				"ParticleSize %d.", r.Width, r.Height, r.ParticleSize,
		)
	}
	return nil
}

// PillarConfig is one [pillar "name"] subsection: a rectangle of interior
// cells pinned solid before the run.
type PillarConfig struct {
	// Required
	X, Y, Width, Height int

	// Optional
	Name string
}

func (p *PillarConfig) CheckInit(name string, nx, ny int) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf(
			"Need a positive Width and Height for Pillar '%s'.", name,
		)
	}
	if p.X < 1 || p.X+p.Width > nx-1 {
		return fmt.Errorf(
			"Pillar '%s' must fit in the grid interior [1, %d), but spans "+
				"[%d, %d).", name, nx-1, p.X, p.X+p.Width,
		)
	}
	if p.Y < 1 || p.Y+p.Height > ny-1 {
		return fmt.Errorf(
			"Pillar '%s' must fit in the grid interior [1, %d), but spans "+
				"[%d, %d).", name, ny-1, p.Y, p.Y+p.Height,
		)
	}
	p.Name = name
	return nil
}

// SimFile is a whole parsed configuration file.
type SimFile struct {
	Simulation SimConfig
	Obstacle   ObstacleConfig
	Render     RenderConfig
	Pillar     map[string]*PillarConfig
}

// ReadConfig parses and validates fname.
func ReadConfig(fname string) (*SimFile, error) {
	f := &SimFile{}
	if err := gcfg.ReadFileInto(f, fname); err != nil { return nil, err }

	if err := f.Simulation.CheckInit(); err != nil { return nil, err }
	if err := f.Obstacle.CheckInit(); err != nil { return nil, err }
	if err := f.Render.CheckInit(); err != nil { return nil, err }
	for name, p := range f.Pillar {
		err := p.CheckInit(name, f.Simulation.GridX, f.Simulation.GridY)
		if err != nil { return nil, err }
	}

	return f, nil
}

// Config converts the file into the core configuration record.
func (f *SimFile) Config() fluidsim.Config {
	return fluidsim.Config{
		Nx:              f.Simulation.GridX,
		Ny:              f.Simulation.GridY,
		Spacing:         f.Simulation.Spacing,
		Particles:       f.Simulation.Particles,
		Radius:          f.Simulation.ParticleRadius,
		Gravity:         f.Simulation.Gravity,
		FlipRatio:       f.Simulation.FlipRatio,
		OverRelaxation:  f.Simulation.OverRelaxation,
		Stiffness:       f.Simulation.Stiffness,
		SeparationIters: f.Simulation.SeparationIters,
		PressureIters:   f.Simulation.PressureIters,
		TimeScale:       f.Simulation.TimeScale,
		ObstacleRadius:  f.Obstacle.Radius,
	}
}

// Pillars applies every configured pillar to sim. Call before the first
// Step.
func (f *SimFile) Pillars(sim *fluidsim.Simulation) {
	for _, p := range f.Pillar {
		for i := p.X; i < p.X+p.Width; i++ {
			for j := p.Y; j < p.Y+p.Height; j++ {
				sim.SetSolid(i, j)
			}
		}
	}
}

// ExampleConfig returns a template configuration file.
func ExampleConfig() string {
	return `[simulation]
GridX = 200
GridY = 80
Spacing = 1.1
Particles = 5000
ParticleRadius = 0.5
Gravity = -9.81
FlipRatio = 0.9
OverRelaxation = 1.9
Stiffness = 2.0
SeparationIters = 3
PressureIters = 3
TimeScale = 1.0

[obstacle]
Radius = 15.0

[render]
Width = 1200
Height = 480
ParticleSize = 3

[pillar "column"]
X = 120
Y = 1
Width = 6
Height = 30
`
}
