// Package render draws objects with sprite properties. Image loading and
// ownership stay with the caller; the package only resolves handles by id.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprites resolves a sprite id to an image handle.
type Sprites interface {
	Sprite(id string) (*ebiten.Image, bool)
}

// Canvas is a draw target. *ebiten.Image satisfies it.
type Canvas interface {
	DrawImage(img *ebiten.Image, options *ebiten.DrawImageOptions)
}

// SpriteCache is a map-backed Sprites. Handles are borrowed: the cache never
// disposes an image.
type SpriteCache struct {
	images map[string]*ebiten.Image
}

func NewSpriteCache() *SpriteCache {
	return &SpriteCache{images: make(map[string]*ebiten.Image)}
}

// Put stores img under id, replacing any previous handle.
func (c *SpriteCache) Put(id string, img *ebiten.Image) {
	c.images[id] = img
}

func (c *SpriteCache) Sprite(id string) (*ebiten.Image, bool) {
	img, ok := c.images[id]
	return img, ok && img != nil
}

// Delete forgets id and returns the handle so the owner can dispose it.
func (c *SpriteCache) Delete(id string) *ebiten.Image {
	img := c.images[id]
	delete(c.images, id)
	return img
}

// Len returns the number of cached handles.
func (c *SpriteCache) Len() int {
	return len(c.images)
}
