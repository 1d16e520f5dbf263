package fluidsim

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is one point sample of the fluid: a position and a velocity.
type Particle struct {
	Pos r2.Vec
	Vel r2.Vec
}

// Obstacle is the single moving disk the fluid flows around. Its position is
// the one writable seam the front end gets: input code moves it between
// steps and the obstacle handler derives its velocity from the displacement.
type Obstacle struct {
	Pos     r2.Vec
	PrevPos r2.Vec
	Vel     r2.Vec
	Radius  float64
}

// Fraction of the obstacle's velocity imparted to particles it overlaps.
// The disk pushes by velocity impulse only; it never corrects positions.
const obstaclePush = 0.3
