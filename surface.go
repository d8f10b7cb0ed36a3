package main

import (
	"fmt"
	"image"

	"github.com/milk9111/petshow/component"
	"github.com/milk9111/petshow/pet"
	"github.com/milk9111/petshow/showcase"
	"github.com/milk9111/petshow/walker"
)

// Screen layout in pixels.
const (
	buttonRowHeight = 36.0
	panelPadding    = 16.0
	trackMargin     = 24.0
	groundInset     = 14.0
	petRowHeight    = 150.0
	walkerRowHeight = 100.0
	staticSlot      = 110.0
	staticSize      = 64.0
	spriteHeight    = 128.0
	walkerHeight    = 80.0
)

// frameSource serves decoded frames by path. *assets.Library is one.
type frameSource interface {
	Image(path string) (image.Image, bool)
}

// fit is the scale that renders img at the given height.
func fit(img image.Image, height float64) float64 {
	h := img.Bounds().Dy()
	if h <= 0 {
		return 1
	}
	return height / float64(h)
}

type petSprite struct {
	src      frameSource
	frame    string
	loading  bool
	degraded bool
	emphasis pet.Emphasis
}

func (s *petSprite) SetFrame(p string)         { s.frame = p }
func (s *petSprite) SetLoading(loading bool)   { s.loading = loading }
func (s *petSprite) SetDegraded(degraded bool) { s.degraded = degraded }

func (s *petSprite) SetEmphasis(e pet.Emphasis, _ string) { s.emphasis = e }

// Width is the on-screen width of the current frame at rest.
func (s *petSprite) Width() (float64, bool) {
	img, ok := s.image()
	if !ok {
		return 0, false
	}
	return float64(img.Bounds().Dx()) * fit(img, spriteHeight), true
}

func (s *petSprite) image() (image.Image, bool) {
	if s.src == nil || s.frame == "" {
		return nil, false
	}
	return s.src.Image(s.frame)
}

type body struct {
	x    float64
	left bool
}

func (b *body) SetPosition(x float64)   { b.x = x }
func (b *body) SetFacingLeft(left bool) { b.left = left }

type track struct{ s *surface }

func (t track) Width() (float64, bool) {
	w := t.s.trackWidth()
	return w, w > 0
}

// buttons backs one pet's row of trigger buttons. relabel is set by the UI
// so state changes reach the widgets.
type buttons struct {
	names   []string
	active  string
	pressed map[string]bool
	onClick func(string)
	relabel func()
}

func (b *buttons) Highlight(active string) {
	b.active = active
	b.refresh()
}

func (b *buttons) Press(name string, on bool) {
	b.pressed[name] = on
	b.refresh()
}

func (b *buttons) OnClick(fn func(string)) { b.onClick = fn }

func (b *buttons) click(name string) {
	if b.onClick != nil {
		b.onClick(name)
	}
}

func (b *buttons) refresh() {
	if b.relabel != nil {
		b.relabel()
	}
}

// label is the text a button shows for its current state.
func (b *buttons) label(name string) string {
	switch {
	case b.pressed[name]:
		return "[" + name + "]"
	case name == b.active:
		return "> " + name
	default:
		return name
	}
}

// visibility calls its subscriber once the pet's row fits on screen.
type visibility struct {
	fn       func()
	revealed bool
}

func (v *visibility) OnEnter(fn func()) func() {
	v.fn = fn
	return func() { v.fn = nil }
}

func (v *visibility) Reveal() { v.revealed = true }

type petRow struct {
	cfg     component.PetConfig
	sprite  *petSprite
	body    *body
	buttons *buttons
	vis     *visibility
}

type walkerSprite struct {
	src   frameSource
	frame string
	t     walker.Transform
	glow  bool
}

func (s *walkerSprite) SetFrame(p string)               { s.frame = p }
func (s *walkerSprite) SetTransform(t walker.Transform) { s.t = t }
func (s *walkerSprite) SetGlow(on bool)                 { s.glow = on }

func (s *walkerSprite) Width() (float64, bool) {
	if s.src == nil || s.frame == "" {
		return 0, false
	}
	img, ok := s.src.Image(s.frame)
	if !ok {
		return 0, false
	}
	return float64(img.Bounds().Dx()) * fit(img, walkerHeight), true
}

type walkerRow struct {
	id     string
	sprite *walkerSprite
	body   *body
}

type staticPet struct {
	id     string
	sprite *walkerSprite
}

// surface places every pet on screen and resolves their rendering handles.
// It implements showcase.Surface and walker.Surface.
type surface struct {
	src           frameSource
	width, height float64

	rows    []*petRow
	byID    map[string]*petRow
	walkers []*walkerRow
	statics []*staticPet
	clicks  map[string]func()
}

func newSurface(src frameSource, width, height float64) *surface {
	return &surface{
		src:    src,
		width:  width,
		height: height,
		byID:   make(map[string]*petRow),
		clicks: make(map[string]func()),
	}
}

func (s *surface) Handles(cfg component.PetConfig) (pet.Handles, error) {
	if _, ok := s.byID[cfg.ID]; ok {
		return pet.Handles{}, fmt.Errorf("viewer: pet %q already placed", cfg.ID)
	}
	row := &petRow{
		cfg:     cfg,
		sprite:  &petSprite{src: s.src},
		body:    &body{},
		buttons: &buttons{names: cfg.Specials, pressed: make(map[string]bool)},
		vis:     &visibility{},
	}
	s.rows = append(s.rows, row)
	s.byID[cfg.ID] = row
	return pet.Handles{Sprite: row.sprite, Body: row.body, Track: track{s}}, nil
}

func (s *surface) Buttons(id string) showcase.ButtonGroup {
	row, ok := s.byID[id]
	if !ok || len(row.buttons.names) == 0 {
		return nil
	}
	return row.buttons
}

func (s *surface) Visibility(id string) showcase.Visibility {
	row, ok := s.byID[id]
	if !ok {
		return nil
	}
	return row.vis
}

func (s *surface) Walker(id string) (walker.Handles, error) {
	w := &walkerRow{id: id, sprite: &walkerSprite{src: s.src}, body: &body{}}
	s.walkers = append(s.walkers, w)
	return walker.Handles{Sprite: w.sprite, Body: w.body, Track: track{s}}, nil
}

func (s *surface) Static(id string) (walker.Sprite, error) {
	st := &staticPet{id: id, sprite: &walkerSprite{src: s.src, t: walker.Identity}}
	s.statics = append(s.statics, st)
	return st.sprite, nil
}

func (s *surface) OnClick(id string, fn func()) { s.clicks[id] = fn }

func (s *surface) resize(width, height float64) {
	s.width, s.height = width, height
}

func (s *surface) trackWidth() float64 {
	return s.width - 2*trackMargin
}

func (s *surface) panelHeight() float64 {
	return float64(len(s.rows))*buttonRowHeight + panelPadding
}

// petTop is the top edge of pet row i.
func (s *surface) petTop(i int) float64 {
	return s.panelHeight() + float64(i)*petRowHeight
}

func (s *surface) walkerTop(i int) float64 {
	return s.petTop(len(s.rows)) + float64(i)*walkerRowHeight
}

func (s *surface) staticTop() float64 {
	return s.walkerTop(len(s.walkers))
}

// reveal notifies every pet whose row is fully on screen.
func (s *surface) reveal() {
	for i, row := range s.rows {
		if row.vis.fn != nil && s.petTop(i)+petRowHeight <= s.height {
			row.vis.fn()
		}
	}
}

// click bounces the walker or static pet under the cursor.
func (s *surface) click(x, y float64) bool {
	for i, w := range s.walkers {
		top := s.walkerTop(i)
		width, ok := w.sprite.Width()
		if !ok {
			width = component.FallbackWalkerWidth
		}
		left := trackMargin + w.body.x
		if y >= top && y < top+walkerRowHeight && x >= left && x < left+width {
			return s.fire(w.id)
		}
	}
	top := s.staticTop()
	for i, st := range s.statics {
		left := trackMargin + float64(i)*staticSlot
		if y >= top && y < top+staticSlot && x >= left && x < left+staticSize {
			return s.fire(st.id)
		}
	}
	return false
}

func (s *surface) fire(id string) bool {
	fn, ok := s.clicks[id]
	if !ok {
		return false
	}
	fn()
	return true
}
