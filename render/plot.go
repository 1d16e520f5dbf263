package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/DinoEracleous/fluidsim"
	"github.com/DinoEracleous/fluidsim/grid"
)

// SaveScatter writes a scatter plot of the current particle positions to
// fname. The format follows the extension (png, pdf, svg, ...).
func SaveScatter(sim *fluidsim.Simulation, fname string) error {
	pos := sim.Positions()
	pts := make(plotter.XYs, len(pos))
	for i, p := range pos {
		pts[i].X, pts[i].Y = p.X, p.Y
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil { return err }
	sc.GlyphStyle.Radius = vg.Points(1)

	cfg := sim.Config()
	p := plot.New()
	p.Title.Text = "particles"
	p.X.Min, p.X.Max = 0, cfg.Spacing*float64(cfg.Nx)
	p.Y.Min, p.Y.Max = 0, cfg.Spacing*float64(cfg.Ny)
	p.Add(sc)

	return p.Save(8*vg.Inch, 8*vg.Inch*vg.Length(cfg.Ny)/vg.Length(cfg.Nx), fname)
}

// SaveDensity writes a heat map of the per-cell density estimate to fname.
func SaveDensity(sim *fluidsim.Simulation, fname string) error {
	hm := plotter.NewHeatMap(&densityGrid{sim.Grid()}, palette.Heat(12, 1))

	cfg := sim.Config()
	p := plot.New()
	p.Title.Text = "density"
	p.Add(hm)

	return p.Save(8*vg.Inch, 8*vg.Inch*vg.Length(cfg.Ny)/vg.Length(cfg.Nx), fname)
}

// densityGrid adapts the grid's density field to plotter.GridXYZ.
type densityGrid struct {
	g *grid.Grid
}

func (d *densityGrid) Dims() (c, r int) { return d.g.Nx, d.g.Ny }

func (d *densityGrid) Z(c, r int) float64 { return d.g.Density[d.g.Idx(c, r)] }

func (d *densityGrid) X(c int) float64 { return d.g.H * (float64(c) + 0.5) }

func (d *densityGrid) Y(r int) float64 { return d.g.H * (float64(r) + 0.5) }
