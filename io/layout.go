package io

import (
	"fmt"

	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/DinoEracleous/fluidsim"
)

// ReadLayout reads an initial particle layout from a whitespace-separated
// table with one particle per row and columns x, y, vx, vy. The row count
// must match the configured particle count exactly; the caller passes it in
// so the mismatch is caught here rather than deep inside construction.
func ReadLayout(fname string, particles int) ([]fluidsim.Particle, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil { return nil, err }

	xs, ys, vxs, vys := cols[0], cols[1], cols[2], cols[3]
	if len(xs) != particles {
		return nil, fmt.Errorf(
			"Layout file '%s' has %d rows, but the configuration asks for "+
				"%d particles.", fname, len(xs), particles,
		)
	}

	parts := make([]fluidsim.Particle, len(xs))
	for i := range parts {
		parts[i] = fluidsim.Particle{
			Pos: r2.Vec{X: xs[i], Y: ys[i]},
			Vel: r2.Vec{X: vxs[i], Y: vys[i]},
		}
	}
	return parts, nil
}
