//go:build ebiten

package ui

import (
	"image/color"

	"mad-cat/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the status line on top of the simulation.
type Overlay struct {
	sim     core.Sim
	visible bool
	paused  bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim) *Overlay {
	return &Overlay{sim: sim, visible: true}
}

// SetPaused records the pause state shown in the status line.
func (o *Overlay) SetPaused(paused bool) { o.paused = paused }

// Update toggles the overlay with the H key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.visible = !o.visible
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible {
		return
	}
	text.Draw(screen, StatusLine(o.sim, o.paused), basicfont.Face7x13, 4, 14, color.RGBA{R: 255, G: 220, B: 120, A: 255})
}
