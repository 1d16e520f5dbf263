package fluidsim

import (
	"fmt"
)

// Config fixes every parameter of a simulation at construction time. Nothing
// here is reconfigurable mid-run.
type Config struct {
	// Grid dimensions in cells and the cell spacing in world units.
	Nx, Ny  int
	Spacing float64

	// Particle count and particle radius.
	Particles int
	Radius    float64

	Gravity float64

	// FlipRatio blends the velocity transfer back from the grid: 1 is pure
	// FLIP, 0 is pure PIC.
	FlipRatio float64

	// OverRelaxation scales each Gauss-Seidel correction; Stiffness scales
	// the density-drift compensation term.
	OverRelaxation float64
	Stiffness      float64

	SeparationIters int
	PressureIters   int

	// TimeScale multiplies every dt handed to Step.
	TimeScale float64

	ObstacleRadius float64
}

// DefaultConfig returns the parameter set the original simulation shipped
// with: a 200x80 grid of 1.1-unit cells holding 5000 particles.
func DefaultConfig() Config {
	return Config{
		Nx: 200, Ny: 80,
		Spacing:         1.1,
		Particles:       5000,
		Radius:          0.5,
		Gravity:         -9.81,
		FlipRatio:       0.9,
		OverRelaxation:  1.9,
		Stiffness:       2.0,
		SeparationIters: 3,
		PressureIters:   3,
		TimeScale:       1,
		ObstacleRadius:  15,
	}
}

// Check validates the construction preconditions. Some failing Configs make
// the step loop index out of range (a grid under 3 cells wide), others only
// make the numerics meaningless; New refuses them all.
func (c *Config) Check() error {
	if c.Nx < 3 || c.Ny < 3 {
		return fmt.Errorf(
			"Grid must be at least 3x3 cells, but is %dx%d.", c.Nx, c.Ny,
		)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("Need a positive cell spacing, not %g.", c.Spacing)
	}
	if c.Particles < 0 {
		return fmt.Errorf("Need a non-negative particle count, not %d.", c.Particles)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("Need a positive particle radius, not %g.", c.Radius)
	}
	if c.FlipRatio < 0 || c.FlipRatio > 1 {
		return fmt.Errorf(
			"FlipRatio must be in [0, 1], but is %g.", c.FlipRatio,
		)
	}
	if c.OverRelaxation <= 0 {
		return fmt.Errorf(
			"Need a positive over-relaxation factor, not %g.", c.OverRelaxation,
		)
	}
	if c.SeparationIters < 0 || c.PressureIters < 0 {
		return fmt.Errorf(
			"Iteration counts must be non-negative, but are %d and %d.",
			c.SeparationIters, c.PressureIters,
		)
	}
	if c.ObstacleRadius < 0 {
		return fmt.Errorf(
			"Need a non-negative obstacle radius, not %g.", c.ObstacleRadius,
		)
	}
	return nil
}
