package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/petshow/assets"
	"github.com/milk9111/petshow/component"
	"github.com/milk9111/petshow/pet"
	"github.com/milk9111/petshow/showcase"
	"github.com/milk9111/petshow/walker"
)

// cellPx is how many layout pixels one terminal column stands for.
const cellPx = 8.0

// margin is the number of columns left blank on each side of a track.
const margin = 2

const header = "petterm  1-9 select  a-z trigger  tab next  click bounce  q quit"

var (
	styleText     = tcell.StyleDefault
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleActive   = tcell.StyleDefault.Reverse(true)
	stylePressed  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleDegraded = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleGlow     = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
)

type petSprite struct {
	lib      *assets.Library
	frame    string
	loading  bool
	degraded bool
	emphasis pet.Emphasis
}

func (s *petSprite) SetFrame(p string)         { s.frame = p }
func (s *petSprite) SetLoading(loading bool)   { s.loading = loading }
func (s *petSprite) SetDegraded(degraded bool) { s.degraded = degraded }

func (s *petSprite) SetEmphasis(e pet.Emphasis, _ string) { s.emphasis = e }

// Width is the decoded frame width. Frames that never loaded report nothing
// and the engine falls back to its nominal width.
func (s *petSprite) Width() (float64, bool) {
	return frameWidth(s.lib, s.frame)
}

type body struct {
	x    float64
	left bool
}

func (b *body) SetPosition(x float64)   { b.x = x }
func (b *body) SetFacingLeft(left bool) { b.left = left }

// track spans the screen minus the margins.
type track struct{ v *view }

func (t track) Width() (float64, bool) {
	cols := t.v.width - 2*margin
	if cols <= 0 {
		return 0, false
	}
	return float64(cols) * cellPx, true
}

type buttons struct {
	names   []string
	active  string
	pressed map[string]bool
	onClick func(string)
}

func (b *buttons) Highlight(active string)    { b.active = active }
func (b *buttons) OnClick(fn func(string))    { b.onClick = fn }
func (b *buttons) Press(name string, on bool) { b.pressed[name] = on }

func (b *buttons) nth(i int) (string, bool) {
	if i < 0 || i >= len(b.names) {
		return "", false
	}
	return b.names[i], true
}

func (b *buttons) click(name string) {
	if b.onClick != nil {
		b.onClick(name)
	}
}

// visibility fires its subscriber the first time the pet's rows are drawn
// inside the screen.
type visibility struct {
	fn       func()
	revealed bool
}

func (v *visibility) OnEnter(fn func()) func() {
	v.fn = fn
	return func() { v.fn = nil }
}

func (v *visibility) Reveal() { v.revealed = true }

func (v *visibility) seen() {
	if v.fn != nil {
		v.fn()
	}
}

type petRow struct {
	cfg     component.PetConfig
	sprite  *petSprite
	body    *body
	buttons *buttons
	vis     *visibility
}

type walkerSprite struct {
	lib   *assets.Library
	frame string
	t     walker.Transform
	glow  bool
}

func (s *walkerSprite) SetFrame(p string)               { s.frame = p }
func (s *walkerSprite) SetTransform(t walker.Transform) { s.t = t }
func (s *walkerSprite) SetGlow(on bool)                 { s.glow = on }
func (s *walkerSprite) Width() (float64, bool)          { return frameWidth(s.lib, s.frame) }

type walkerRow struct {
	id     string
	sprite *walkerSprite
	body   *body
}

type staticPet struct {
	id     string
	sprite *walkerSprite
}

// target is a clickable span drawn on the last frame.
type target struct {
	y, x0, x1 int
	fn        func()
}

// view lays every pet out as text rows and routes keys and clicks back into
// the engine. It implements both showcase.Surface and walker.Surface.
type view struct {
	lib *assets.Library

	rows     []*petRow
	byID     map[string]*petRow
	walkers  []*walkerRow
	statics  []*staticPet
	clicks   map[string]func()
	selected int
	cursor   bool

	width, height int
	targets       []target
}

func newView(lib *assets.Library, width, height int) *view {
	return &view{
		lib:    lib,
		byID:   make(map[string]*petRow),
		clicks: make(map[string]func()),
		width:  width,
		height: height,
	}
}

func (v *view) Handles(cfg component.PetConfig) (pet.Handles, error) {
	if _, ok := v.byID[cfg.ID]; ok {
		return pet.Handles{}, fmt.Errorf("petterm: pet %q already has a row", cfg.ID)
	}
	row := &petRow{
		cfg:    cfg,
		sprite: &petSprite{lib: v.lib},
		body:   &body{},
		buttons: &buttons{
			names:   cfg.Specials,
			pressed: make(map[string]bool),
		},
		vis: &visibility{},
	}
	v.rows = append(v.rows, row)
	v.byID[cfg.ID] = row
	return pet.Handles{Sprite: row.sprite, Body: row.body, Track: track{v}}, nil
}

func (v *view) Buttons(id string) showcase.ButtonGroup {
	row, ok := v.byID[id]
	if !ok || len(row.buttons.names) == 0 {
		return nil
	}
	return row.buttons
}

func (v *view) Visibility(id string) showcase.Visibility {
	row, ok := v.byID[id]
	if !ok {
		return nil
	}
	return row.vis
}

func (v *view) Walker(id string) (walker.Handles, error) {
	w := &walkerRow{id: id, sprite: &walkerSprite{lib: v.lib}, body: &body{}}
	v.walkers = append(v.walkers, w)
	return walker.Handles{Sprite: w.sprite, Body: w.body, Track: track{v}}, nil
}

func (v *view) Static(id string) (walker.Sprite, error) {
	s := &staticPet{id: id, sprite: &walkerSprite{lib: v.lib}}
	v.statics = append(v.statics, s)
	return s.sprite, nil
}

func (v *view) OnClick(id string, fn func()) { v.clicks[id] = fn }

func (v *view) resize(width, height int) {
	v.width, v.height = width, height
}

// key handles a printable key. It reports whether the key did anything.
func (v *view) key(r rune) bool {
	switch {
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i >= len(v.rows) {
			return false
		}
		v.selected = i
		return true
	case r >= 'a' && r <= 'z':
		row := v.selectedRow()
		if row == nil {
			return false
		}
		name, ok := row.buttons.nth(int(r - 'a'))
		if !ok {
			return false
		}
		row.buttons.click(name)
		return true
	}
	return false
}

func (v *view) next() {
	if len(v.rows) > 0 {
		v.selected = (v.selected + 1) % len(v.rows)
	}
}

func (v *view) selectedRow() *petRow {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return nil
	}
	return v.rows[v.selected]
}

// click runs the target under the given cell.
func (v *view) click(x, y int) bool {
	for _, t := range v.targets {
		if t.y == y && x >= t.x0 && x < t.x1 {
			t.fn()
			return true
		}
	}
	return false
}

func (v *view) draw(s tcell.Screen) {
	v.targets = v.targets[:0]
	v.text(s, 0, 0, header, styleDim)

	y := 2
	for i, row := range v.rows {
		if y+1 < v.height {
			row.vis.seen()
		}
		v.drawPet(s, y, i, row)
		y += 3
	}

	for _, w := range v.walkers {
		label := facing(w.body.left) + " " + frameLabel(w.sprite.frame)
		style := styleText
		if w.sprite.glow {
			style = styleGlow
		}
		x := v.column(w.body.x)
		end := v.text(s, x, y, label, style)
		v.addTarget(y, x, end, v.clicks[w.id])
		y++
	}

	if len(v.statics) > 0 {
		x := margin
		for _, st := range v.statics {
			style := styleText
			if st.sprite.glow {
				style = styleGlow
			}
			label := st.id
			if st.sprite.t.Scale > 1 {
				label = strings.ToUpper(label)
			}
			end := v.text(s, x, y+1, label, style)
			v.addTarget(y+1, x, end, v.clicks[st.id])
			x = end + 2
		}
	}
}

func (v *view) drawPet(s tcell.Screen, y, index int, row *petRow) {
	style := styleText
	switch {
	case row.sprite.degraded:
		style = styleDegraded
	case row.sprite.emphasis != pet.EmphasisNone:
		style = styleSelected
	}

	name := row.cfg.ID
	if index == v.selected && v.cursor {
		name = "[" + name + "]"
	}
	label := facing(row.body.left) + " " + name
	switch {
	case row.sprite.loading:
		label += " loading"
	case !row.vis.revealed:
		label += " ..."
	default:
		label += " " + frameLabel(row.sprite.frame)
	}
	v.text(s, v.column(row.body.x), y, label, style)

	x := margin
	for i, anim := range row.buttons.names {
		bs := styleDim
		if anim == row.buttons.active {
			bs = styleActive
		}
		if row.buttons.pressed[anim] {
			bs = stylePressed
		}
		end := v.text(s, x, y+1, fmt.Sprintf("%c:%s", 'a'+i, anim), bs)
		v.addTarget(y+1, x, end, func() { row.buttons.click(anim) })
		x = end + 1
	}
}

func (v *view) addTarget(y, x0, x1 int, fn func()) {
	if fn != nil {
		v.targets = append(v.targets, target{y: y, x0: x0, x1: x1, fn: fn})
	}
}

// column converts a layout position to a screen column.
func (v *view) column(x float64) int {
	return margin + int(x/cellPx)
}

// text writes str and returns the column after it. Cells off screen are
// skipped.
func (v *view) text(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		if x >= 0 && x < v.width && y >= 0 && y < v.height {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

func facing(left bool) string {
	if left {
		return "<"
	}
	return ">"
}

// frameLabel shortens a frame path to its file stem.
func frameLabel(path string) string {
	if path == "" {
		return "-"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func frameWidth(lib *assets.Library, path string) (float64, bool) {
	if lib == nil || path == "" {
		return 0, false
	}
	img, ok := lib.Image(path)
	if !ok {
		return 0, false
	}
	return float64(img.Bounds().Dx()), true
}
