package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/flockworks/boids/internal/config"
	"github.com/flockworks/boids/internal/render/screen"
	"github.com/flockworks/boids/internal/simulation"
)

// Game drives the simulation from ebiten's update loop: each Update is
// one pulse.
type Game struct {
	sim     *simulation.Simulation
	surface *screen.Surface
	width   int
	height  int
	hud     bool
}

func runGraphical(cfg *config.Config, background color.RGBA, log *zap.Logger) error {
	surface := screen.New(background)
	sim, err := simulation.New(cfg, surface, log)
	if err != nil {
		return err
	}
	defer sim.Close()
	printSummary(sim.Stats())

	g := &Game{
		sim:     sim,
		surface: surface,
		width:   int(cfg.Simulation.BoundX),
		height:  int(cfg.Simulation.BoundY),
		hud:     cfg.Render.HUD,
	}

	ebiten.SetWindowSize(int(float64(g.width)*cfg.Render.Scale), int(float64(g.height)*cfg.Render.Scale))
	ebiten.SetWindowTitle(cfg.Render.Title)
	printReady("window open (space pause, s step, + spawn, p predator, h hud, q quit)")

	sim.World().Start()
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	ctrl := g.sim.Controller()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		ctrl.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		ctrl.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		ctrl.Spawn(g.sim.SpawnBatch(), 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		ctrl.Spawn(1, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.hud = !g.hud
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		ctrl.Quit()
	}

	done, err := g.sim.Frame()
	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	g.surface.Draw(dst)
	if g.hud {
		ebitenutil.DebugPrint(dst, g.sim.Status())
	}
}

// Layout keeps one logical pixel per field unit; ebiten scales to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
