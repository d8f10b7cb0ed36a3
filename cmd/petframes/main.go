// Command petframes previews one pet's animations frame by frame at their
// configured rate. Left and right switch animation, space replays.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/petshow/assets"
	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/prefabs"
)

const viewSize = 512

type previewGame struct {
	sched  *clock.Scheduler
	player *player
	lib    *assets.Library
	names  []string
	index  int
	images map[string]*ebiten.Image
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.switchTo(g.index + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.switchTo(g.index - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.restart()
	}
	g.sched.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *previewGame) switchTo(i int) {
	n := len(g.names)
	g.index = ((i % n) + n) % n
	if err := g.player.play(g.names[g.index]); err != nil {
		log.Printf("petframes: %v", err)
	}
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	ebitenutil.DebugPrint(screen, g.player.status())

	img := g.image(g.player.path())
	if img == nil {
		return
	}
	fw := img.Bounds().Dx()
	fh := img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(viewSize-fw)/2, float64(viewSize-fh)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

func (g *previewGame) image(path string) *ebiten.Image {
	if img, ok := g.images[path]; ok {
		return img
	}
	src, ok := g.lib.Image(path)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	g.images[path] = img
	return img
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	configPath := flag.String("config", prefabs.ShowcaseFile, "showcase config to read the pet from")
	assetDir := flag.String("assets", ".", "directory frame paths are resolved against")
	petID := flag.String("pet", "trex", "pet id to preview")
	anim := flag.String("anim", "", "animation to start on; defaults to the pet's default")
	flag.Parse()

	cfg, err := prefabs.LoadShowcase(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	p, ok := cfg.Pet(*petID)
	if !ok {
		log.Fatalf("petframes: unknown pet %q", *petID)
	}

	lib := assets.NewDirLibrary(*assetDir)
	if err := lib.Preload(context.Background(), p.FramePaths(cfg.AssetBase, cfg.Extension)); err != nil {
		log.Printf("petframes: %v", err)
	}

	sched := clock.NewScheduler()
	g := &previewGame{
		sched:  sched,
		player: newPlayer(sched, p, cfg.AssetBase, cfg.Extension),
		lib:    lib,
		names:  p.AnimationNames(),
		images: make(map[string]*ebiten.Image),
	}
	start := *anim
	if start == "" {
		start = p.DefaultAnimation()
	}
	for i, name := range g.names {
		if name == start {
			g.index = i
		}
	}
	if err := g.player.play(start); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle(fmt.Sprintf("%s frames", p.ID))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
