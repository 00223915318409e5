//go:build ebiten

package app

import (
	"time"

	"mad-cat/internal/core"
	"mad-cat/internal/render"
	"mad-cat/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type toggler interface {
	Toggle(x, y int)
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	stepper *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	// mono draws every live cell white, catalyst or not.
	mono bool
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, speed int, seed int64) *Game {
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:     sim,
		painter: gp,
		overlay: ui.NewOverlay(sim),
		stepper: core.NewFixedStep(speed),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.mono = !g.mono
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if t, ok := g.sim.(toggler); ok {
			x, y := ebiten.CursorPosition()
			t.Toggle(x/g.scale, y/g.scale)
		}
	}

	g.overlay.SetPaused(g.paused)
	g.overlay.Update()

	step := g.stepper.ShouldStep()
	if (!g.paused && step) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	palette := render.LifePalette
	if g.mono {
		palette = render.MonoPalette
	}
	g.painter.BlitPalette(screen, g.sim.Cells(), palette, g.scale)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
