package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var glowColor = color.RGBA{0xff, 0xd7, 0x00, 0xff}

// glowCache builds and keeps one glow outline per frame path.
type glowCache struct {
	src    frameSource
	images map[string]*ebiten.Image
}

func newGlowCache(src frameSource) *glowCache {
	return &glowCache{src: src, images: make(map[string]*ebiten.Image)}
}

func (c *glowCache) get(path string) *ebiten.Image {
	if img, ok := c.images[path]; ok {
		return img
	}
	frame, ok := c.src.Image(path)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(outline(frame, 3, glowColor))
	c.images[path] = img
	return img
}

// outline marks every transparent pixel within thickness of an opaque one.
// The result has the bounds of src translated to the origin.
func outline(src image.Image, thickness int, col color.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	isOpaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		_, _, _, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return a != 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if isOpaque(x, y) {
				continue
			}
			found := false
			ymin, ymax := max(y-thickness, 0), min(y+thickness, h-1)
			xmin, xmax := max(x-thickness, 0), min(x+thickness, w-1)
			for yy := ymin; yy <= ymax && !found; yy++ {
				for xx := xmin; xx <= xmax; xx++ {
					if isOpaque(xx, yy) {
						found = true
						break
					}
				}
			}
			if found {
				out.Set(x, y, col)
			}
		}
	}
	return out
}
