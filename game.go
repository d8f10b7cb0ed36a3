package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/petshow/assets"
	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/component"
	"github.com/milk9111/petshow/pet"
	"github.com/milk9111/petshow/prefabs"
	"github.com/milk9111/petshow/stage"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var (
	backgroundColor = color.RGBA{0x1d, 0x20, 0x2b, 0xff}
	groundColor     = color.RGBA{0x5a, 0x60, 0x78, 0xff}
	placeholder     = color.RGBA{0x80, 0x80, 0x90, 0xff}
)

type Game struct {
	frames int

	cfgPath string
	async   bool
	seed    int64
	logger  *log.Logger

	lib     *assets.Library
	images  map[string]*ebiten.Image
	glows   *glowCache
	watcher *prefabs.Watcher

	sched   *clock.Scheduler
	surface *surface
	stage   *stage.Stage
	ui      *ebitenui.UI

	width, height float64
	resized       bool
}

func NewGame(cfgPath, assetDir string, async, watch bool, seed int64) (*Game, error) {
	cfg, err := prefabs.LoadShowcase(cfgPath)
	if err != nil {
		return nil, err
	}

	lib := assets.NewDirLibrary(assetDir)
	g := &Game{
		cfgPath: cfgPath,
		async:   async,
		seed:    seed,
		logger:  log.Default(),
		lib:     lib,
		images:  make(map[string]*ebiten.Image),
		glows:   newGlowCache(lib),
		width:   baseWidth,
		height:  baseHeight,
	}

	if watch {
		dirs := []string{prefabs.Dir(cfgPath)}
		if scripts := filepath.Join(dirs[0], "scripts"); isDir(scripts) {
			dirs = append(dirs, scripts)
		}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("viewer: watch %v: %v", dirs, err)
		} else {
			g.watcher = w
		}
	}

	g.build(cfg)
	return g, nil
}

// build replaces the running showcase with one built from cfg.
func (g *Game) build(cfg component.Showcase) {
	if g.stage != nil {
		g.stage.Destroy()
	}
	g.sched = clock.NewScheduler()
	g.surface = newSurface(g.lib, g.width, g.height)
	g.stage = stage.New(cfg, g.sched, g.surface, g.surface,
		stage.WithPreloader(g.lib),
		stage.WithLogger(g.logger),
		stage.WithRand(rand.New(rand.NewSource(g.seed))),
		stage.WithObserver(g.observe),
		stage.WithAsyncLoad(g.async),
	)
	if err := g.stage.Init(context.Background()); err != nil {
		g.logger.Printf("viewer: %v", err)
	}
	g.ui = NewShowcaseUI(g.surface)
}

func (g *Game) observe(ev pet.Event) {
	if ev.User && ev.Kind == pet.EventStarted {
		g.logger.Printf("viewer: %s plays %s", ev.Pet, ev.Animation)
	}
}

func (g *Game) Update() error {
	g.frames++

	g.reload()

	if g.resized {
		g.resized = false
		g.surface.resize(g.width, g.height)
		g.stage.Resize()
	}

	g.sched.Advance(time.Second / time.Duration(ebiten.TPS()))
	g.surface.reveal()
	g.ui.Update()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.surface.click(float64(x), float64(y))
	}

	return nil
}

// reload rebuilds the showcase when the config or a picker script changed.
// A config that fails to load keeps the current showcase running.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	name, ok := g.watcher.Poll()
	if !ok {
		return
	}
	cfg, err := prefabs.LoadShowcase(g.cfgPath)
	if err != nil {
		g.logger.Printf("viewer: reload after %s: %v", name, err)
		return
	}
	g.logger.Printf("viewer: reloaded after %s changed", name)
	g.build(cfg)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for i, row := range g.surface.rows {
		g.drawPet(screen, g.surface.petTop(i), row)
	}
	for i, w := range g.surface.walkers {
		g.drawWalker(screen, g.surface.walkerTop(i), w)
	}
	top := g.surface.staticTop()
	for i, st := range g.surface.statics {
		g.drawStatic(screen, trackMargin+float64(i)*staticSlot, top, st)
	}

	g.ui.Draw(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS()), int(g.width)-90, int(g.height)-20)
}

func (g *Game) drawPet(screen *ebiten.Image, top float64, row *petRow) {
	ground := top + petRowHeight - groundInset
	vector.FillRect(screen, trackMargin, float32(ground), float32(g.surface.trackWidth()), 2, groundColor, false)

	img := g.frame(row.sprite.frame)
	if img == nil {
		vector.FillRect(screen, float32(trackMargin+row.body.x), float32(ground-spriteHeight), float32(component.FallbackPetWidth), spriteHeight, placeholder, false)
		return
	}

	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	scale := spriteHeight / ih
	pop := 1.0
	if row.sprite.emphasis == pet.EmphasisPop {
		pop = 1.15
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih)
	if row.body.left {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(scale*pop, scale*pop)
	op.GeoM.Translate(trackMargin+row.body.x+iw*scale/2, ground)

	switch {
	case row.sprite.loading:
		op.ColorScale.ScaleAlpha(0.4)
	case row.sprite.degraded:
		op.ColorScale.Scale(1, 0.7, 0.7, 1)
	}

	if row.sprite.emphasis != pet.EmphasisNone {
		if glow := g.glows.get(row.sprite.frame); glow != nil {
			gop := &ebiten.DrawImageOptions{GeoM: op.GeoM}
			screen.DrawImage(glow, gop)
		}
	}
	screen.DrawImage(img, op)
}

func (g *Game) drawWalker(screen *ebiten.Image, top float64, w *walkerRow) {
	img := g.frame(w.sprite.frame)
	if img == nil {
		return
	}
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	scale := walkerHeight / ih

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	if w.body.left {
		op.GeoM.Scale(-1, 1)
	}
	applyTransform(&op.GeoM, scale, w.sprite)
	op.GeoM.Translate(trackMargin+w.body.x+iw*scale/2, top+walkerRowHeight/2)

	if w.sprite.glow {
		if glow := g.glows.get(w.sprite.frame); glow != nil {
			screen.DrawImage(glow, &ebiten.DrawImageOptions{GeoM: op.GeoM})
		}
	}
	screen.DrawImage(img, op)
}

func (g *Game) drawStatic(screen *ebiten.Image, left, top float64, st *staticPet) {
	size := staticSize * st.sprite.t.Scale
	x := left + (staticSize-size)/2
	y := top + (staticSize-size)/2
	fill := placeholder
	if st.sprite.glow {
		fill = glowColor
	}
	vector.FillRect(screen, float32(x), float32(y), float32(size), float32(size), fill, false)
	ebitenutil.DebugPrintAt(screen, st.id, int(left), int(top+staticSize+4))
}

// applyTransform scales and rotates around the sprite center.
func applyTransform(m *ebiten.GeoM, base float64, s *walkerSprite) {
	scale := s.t.Scale
	if scale == 0 {
		scale = 1
	}
	m.Scale(base*scale, base*scale)
	m.Rotate(s.t.Rotation * math.Pi / 180)
}

// frame converts a decoded frame into an ebiten image once.
func (g *Game) frame(path string) *ebiten.Image {
	if path == "" {
		return nil
	}
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

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.resized = true
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Close stops the showcase and the config watcher.
func (g *Game) Close() {
	g.stage.Destroy()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
