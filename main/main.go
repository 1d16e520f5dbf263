package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime/pprof"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/DinoEracleous/fluidsim"
	simio "github.com/DinoEracleous/fluidsim/io"
	"github.com/DinoEracleous/fluidsim/render"
)

func main() {
	var (
		config, layout, out, cpuprofile string
		steps, every                    int
		exampleConfig                   bool
	)

	flag.StringVar(
		&config, "Config", "",
		"Configuration file. Defaults are used when not given.",
	)
	flag.StringVar(
		&layout, "Layout", "",
		"Initial particle layout table with columns x, y, vx, vy. "+
			"Replaces the builtin block layout.",
	)
	flag.IntVar(
		&steps, "Steps", 0,
		"Run headless for the given number of steps instead of opening "+
			"a window.",
	)
	flag.IntVar(
		&every, "Every", 60,
		"Snapshot interval in steps for headless runs.",
	)
	flag.StringVar(
		&out, "Out", ".",
		"Output directory for headless snapshots.",
	)
	flag.StringVar(
		&cpuprofile, "CPUProfile", "",
		"Write a CPU profile to the given file.",
	)
	flag.BoolVar(
		&exampleConfig, "ExampleConfig", false,
		"Print an example configuration file to stdout and exit.",
	)

	flag.Parse()

	if exampleConfig {
		fmt.Print(simio.ExampleConfig())
		return
	}

	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil { log.Fatal(err.Error()) }
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	file := defaultFile()
	if config != "" {
		var err error
		file, err = simio.ReadConfig(config)
		if err != nil { log.Fatal(err.Error()) }
	}
	cfg := file.Config()

	var (
		sim *fluidsim.Simulation
		err error
	)
	if layout != "" {
		parts, err := simio.ReadLayout(layout, cfg.Particles)
		if err != nil { log.Fatal(err.Error()) }
		sim, err = fluidsim.NewFromLayout(cfg, parts)
		if err != nil { log.Fatal(err.Error()) }
	} else {
		sim, err = fluidsim.New(cfg)
		if err != nil { log.Fatal(err.Error()) }
	}
	file.Pillars(sim)

	if steps > 0 {
		runHeadless(sim, steps, every, out)
		return
	}

	runWindow(sim, &file.Render)
}

func defaultFile() *simio.SimFile {
	def := fluidsim.DefaultConfig()
	f := &simio.SimFile{}
	f.Simulation.GridX, f.Simulation.GridY = def.Nx, def.Ny
	if err := f.Simulation.CheckInit(); err != nil { log.Fatal(err.Error()) }
	if err := f.Obstacle.CheckInit(); err != nil { log.Fatal(err.Error()) }
	if err := f.Render.CheckInit(); err != nil { log.Fatal(err.Error()) }
	return f
}

func runHeadless(sim *fluidsim.Simulation, steps, every int, out string) {
	const dt = 1.0 / 60

	for n := 0; n < steps; n++ {
		sim.Step(dt)
		if every <= 0 || (n+1)%every != 0 { continue }

		scatter := path.Join(out, fmt.Sprintf("particles_%05d.png", n+1))
		if err := render.SaveScatter(sim, scatter); err != nil {
			log.Fatal(err.Error())
		}
		density := path.Join(out, fmt.Sprintf("density_%05d.png", n+1))
		if err := render.SaveDensity(sim, density); err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("step %d: wrote %s, %s", n+1, scatter, density)
	}
}

// game is the interactive ebiten front end. The mouse cursor drives the disk
// obstacle; everything else just draws.
type game struct {
	sim   *fluidsim.Simulation
	rcfg  *simio.RenderConfig
	scale float64
}

func runWindow(sim *fluidsim.Simulation, rcfg *simio.RenderConfig) {
	cfg := sim.Config()
	g := &game{
		sim:   sim,
		rcfg:  rcfg,
		scale: float64(rcfg.Width) / (cfg.Spacing * float64(cfg.Nx)),
	}

	ebiten.SetWindowSize(rcfg.Width, rcfg.Height)
	ebiten.SetWindowTitle("fluidsim")
	if err := ebiten.RunGame(g); err != nil { log.Fatal(err.Error()) }
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) ||
		ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	mx, my := ebiten.CursorPosition()
	g.sim.SetObstaclePos(g.toWorld(mx, my))

	g.sim.Step(1.0 / 60)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	cfg := g.sim.Config()
	gd := g.sim.Grid()

	cell := float32(cfg.Spacing * g.scale)
	for i := 0; i < gd.Nx; i++ {
		for j := 0; j < gd.Ny; j++ {
			idx := gd.Idx(i, j)
			sx, sy := g.toScreen(float64(i)*cfg.Spacing, float64(j+1)*cfg.Spacing)
			vector.DrawFilledRect(
				screen, float32(sx), float32(sy), cell, cell,
				render.CellColor(gd.Type[idx], gd.Density[idx], gd.RestDensity()),
				false,
			)
		}
	}

	vmax := cfg.Spacing * float64(gd.Ny) // speed that saturates the ramp
	pos, vel := g.sim.Positions(), g.sim.Velocities()
	pr := float32(g.rcfg.ParticleSize)
	for i := range pos {
		sx, sy := g.toScreen(pos[i].X, pos[i].Y)
		speed := r2.Norm(vel[i])
		vector.DrawFilledCircle(
			screen, float32(sx), float32(sy), pr,
			render.SpeedColor(speed, vmax), false,
		)
	}

	obs := g.sim.Obstacle()
	ox, oy := g.toScreen(obs.Pos.X, obs.Pos.Y)
	vector.StrokeCircle(
		screen, float32(ox), float32(oy), float32(obs.Radius*g.scale), 2,
		render.SpeedColor(0, 1), true,
	)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS: %0.1f  E: %0.1f  water: %d  div: %0.3g",
		ebiten.ActualTPS(), g.sim.KineticEnergy(),
		gd.WaterCells(), gd.MaxDivergence(),
	))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.rcfg.Width, g.rcfg.Height
}

func (g *game) toScreen(x, y float64) (sx, sy float64) {
	return x * g.scale, float64(g.rcfg.Height) - y*g.scale
}

func (g *game) toWorld(mx, my int) r2.Vec {
	return r2.Vec{
		X: float64(mx) / g.scale,
		Y: (float64(g.rcfg.Height) - float64(my)) / g.scale,
	}
}
