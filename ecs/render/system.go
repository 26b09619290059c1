package render

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/stencil/ecs"
)

// Property names declared by SpriteSystem.
const (
	PropPosition = "position"
	PropSprite   = "sprite"
	PropVisible  = "visible"
	PropLayer    = "layer"
)

// SpriteSystem draws every visible member's sprite at its position, in
// ascending layer order and join order within a layer.
type SpriteSystem struct {
	ecs.BaseSystem

	sprites Sprites
	canvas  Canvas
	missing map[string]bool
	queue   []*ecs.Object
}

func NewSpriteSystem(sprites Sprites) *SpriteSystem {
	return &SpriteSystem{
		BaseSystem: ecs.NewBaseSystem("sprites"),
		sprites:    sprites,
		missing:    make(map[string]bool),
	}
}

// SetCanvas sets the target for the next Draw calls. Ebiten hands out the
// screen per frame, so callers set it from their Game.Draw.
func (s *SpriteSystem) SetCanvas(c Canvas) {
	s.canvas = c
}

func (s *SpriteSystem) AddProperties(store *ecs.PropertyStore) {
	ecs.Ensure(store, PropPosition, mgl64.Vec2{})
	ecs.Ensure(store, PropSprite, "")
	ecs.Ensure(store, PropVisible, true)
	ecs.Ensure(store, PropLayer, 0)
}

func (s *SpriteSystem) Draw(frame *ecs.UpdateFrame) {
	if s.canvas == nil || s.sprites == nil {
		return
	}

	s.queue = s.queue[:0]
	for o := range s.Members().Each() {
		if ecs.Get[bool](o.Props(), PropVisible) {
			s.queue = append(s.queue, o)
		}
	}
	slices.SortStableFunc(s.queue, func(a, b *ecs.Object) int {
		return ecs.Get[int](a.Props(), PropLayer) - ecs.Get[int](b.Props(), PropLayer)
	})

	for _, o := range s.queue {
		id := ecs.Get[string](o.Props(), PropSprite)
		if id == "" {
			continue
		}
		img, ok := s.sprites.Sprite(id)
		if !ok {
			if !s.missing[id] {
				s.missing[id] = true
				o.World().Logger().Warn("render: sprite not found", "object", o.ID(), "sprite", id)
			}
			continue
		}
		pos := ecs.Get[mgl64.Vec2](o.Props(), PropPosition)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(pos.X(), pos.Y())
		s.canvas.DrawImage(img, op)
	}
	clear(s.queue)
}
