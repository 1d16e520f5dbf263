package fluidsim

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// integrate advances every particle by one semi-implicit Euler step under
// gravity: velocity first, then position with the new velocity. Gravity acts
// on the vertical component only. No sub-stepping.
func (s *Simulation) integrate(dt float64) {
	g := s.cfg.Gravity
	for i := range s.pos {
		s.vel[i].Y += dt * g
		s.pos[i].X += dt * s.vel[i].X
		s.pos[i].Y += dt * s.vel[i].Y
	}
}

// handleObstacles keeps every particle inside the walls and imparts the disk
// obstacle's motion to particles it overlaps. It runs after separation and
// before the grid transfers, so every particle is inside the walls when the
// transfers and density pass run; separation, which indexes the grid
// earlier in the step, relies on CellOf's clamp instead.
func (s *Simulation) handleObstacles(dt float64) {
	if dt > 0 {
		d := r2.Sub(s.obstacle.Pos, s.obstacle.PrevPos)
		s.obstacle.Vel = r2.Scale(1/dt, d)
	}
	s.obstacle.PrevPos = s.obstacle.Pos

	h, r := s.cfg.Spacing, s.cfg.Radius
	left, right := h, h*float64(s.cfg.Nx-1)
	bottom, top := h, h*float64(s.cfg.Ny-1)

	reach := s.cfg.Radius + s.obstacle.Radius
	reach2 := reach * reach

	for i := range s.pos {
		d := r2.Sub(s.pos[i], s.obstacle.Pos)
		if d.X*d.X+d.Y*d.Y < reach2 {
			s.vel[i] = r2.Add(s.vel[i], r2.Scale(obstaclePush, s.obstacle.Vel))
		}

		if s.pos[i].X < left+r {
			s.pos[i].X = left + r
			s.vel[i].X = 0
		}
		if s.pos[i].X > right-r {
			s.pos[i].X = right - r
			s.vel[i].X = 0
		}
		if s.pos[i].Y < bottom+r {
			s.pos[i].Y = bottom + r
			s.vel[i].Y = 0
		}
		if s.pos[i].Y > top-r {
			s.pos[i].Y = top - r
			s.vel[i].Y = 0
		}
	}
}
