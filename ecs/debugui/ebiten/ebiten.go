// Package ebiten runs a scheduler inside an Ebiten game loop with the Dear ImGui
// backend and sprite rendering wired in.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/stencil/ecs"
	"github.com/plus3/stencil/ecs/render"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game implements ebiten.Game. Every Update runs one scheduler frame between
// the ImGui frame markers; sprites are drawn into an offscreen image during the
// Draw phase and copied to the screen by Game.Draw, since Ebiten only hands out
// the screen outside Update.
type Game struct {
	Scheduler *ecs.Scheduler
	Backend   *ImguiBackend
	Sprites   *render.SpriteSystem

	offscreen *ebiten.Image
}

// NewGame returns a game driving scheduler. backend and sprites may be nil.
func NewGame(scheduler *ecs.Scheduler, backend *ImguiBackend, sprites *render.SpriteSystem) *Game {
	return &Game{Scheduler: scheduler, Backend: backend, Sprites: sprites}
}

func (g *Game) Update() error {
	if g.Backend != nil {
		g.Backend.BeginFrame()
	}
	if g.offscreen != nil {
		g.offscreen.Clear()
		if g.Sprites != nil {
			g.Sprites.SetCanvas(g.offscreen)
		}
	}

	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))

	if g.Backend != nil {
		g.Backend.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.offscreen != nil {
		screen.DrawImage(g.offscreen, nil)
	}
	if g.Backend != nil {
		g.Backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Backend != nil {
		g.Backend.Layout(outsideWidth, outsideHeight)
	}
	if g.offscreen == nil || g.offscreen.Bounds().Dx() != outsideWidth || g.offscreen.Bounds().Dy() != outsideHeight {
		if g.offscreen != nil {
			g.offscreen.Deallocate()
		}
		g.offscreen = ebiten.NewImage(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
