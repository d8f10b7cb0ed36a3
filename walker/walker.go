// Package walker runs the ambient pets that only ever walk, plus the static
// pets that bounce when clicked.
package walker

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/component"
	"github.com/milk9111/petshow/pet"
)

// Transform is a scale and a rotation in degrees applied around a sprite's
// center.
type Transform struct {
	Scale    float64
	Rotation float64
}

// Identity is the resting transform.
var Identity = Transform{Scale: 1}

// BounceSequence is applied at the matching Timing.BounceSteps offsets.
var BounceSequence = [3]Transform{
	{Scale: 1.3, Rotation: 5},
	{Scale: 1.1, Rotation: 0},
	{Scale: 1.0, Rotation: 0},
}

type Sprite interface {
	SetFrame(path string)
	SetTransform(t Transform)
	SetGlow(on bool)
	Width() (w float64, ok bool)
}

// Handles are the rendering collaborators of one walker.
type Handles struct {
	Sprite Sprite
	Body   pet.Body
	Track  pet.Track
}

// Surface resolves walker and static pet handles and delivers clicks.
type Surface interface {
	Walker(id string) (Handles, error)
	Static(id string) (Sprite, error)
	OnClick(id string, fn func())
}

const (
	slotFrame clock.Slot = iota
	slotMovement
	slotRestart
	slotBounce0
	slotBounce1
	slotBounce2
	slotGlow
)

type bouncer struct {
	sprite Sprite
	timers clock.TimerSet
}

// Walker is one walking pet.
type Walker struct {
	bouncer
	id     string
	index  int
	h      Handles
	motion component.Motion
	maxPos float64
	frame  int
}

func (w *Walker) ID() string           { return w.id }
func (w *Walker) Position() float64    { return w.motion.Position }
func (w *Walker) MaxPosition() float64 { return w.maxPos }
func (w *Walker) Direction() int       { return w.motion.Direction }
func (w *Walker) FacingLeft() bool     { return w.motion.FacingLeft }
func (w *Walker) Walking() bool        { return w.timers.Active(slotMovement) }
func (w *Walker) Restarting() bool     { return w.timers.Active(slotRestart) }

// Manager owns every walker and static pet. It runs on the scheduler's loop.
type Manager struct {
	cfg       component.WalkerConfig
	timing    component.Timing
	sched     *clock.Scheduler
	assetBase string
	ext       string
	logger    *log.Logger

	walkers []*Walker
	byID    map[string]*Walker
	statics map[string]*bouncer
}

func New(cfg component.WalkerConfig, timing component.Timing, sched *clock.Scheduler, assetBase, ext string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	if assetBase == "" {
		assetBase = component.DefaultAssetBase
	}
	if ext == "" {
		ext = component.DefaultExtension
	}
	return &Manager{
		cfg:       cfg,
		timing:    timing.WithDefaults(),
		sched:     sched,
		assetBase: assetBase,
		ext:       ext,
		logger:    logger,
		byID:      make(map[string]*Walker),
		statics:   make(map[string]*bouncer),
	}
}

// Init resolves every configured walker and static pet, wires clicks to
// Bounce and starts walking. Pets whose handles cannot be resolved are
// skipped; the errors are joined.
func (m *Manager) Init(surface Surface) error {
	var errs []error
	for i, id := range m.cfg.IDs {
		h, err := surface.Walker(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("walker: %s: %w", id, err))
			continue
		}
		w := m.Add(id, i, h)
		surface.OnClick(id, func() { m.Bounce(id) })
		m.start(w)
	}
	for _, id := range m.cfg.Static {
		s, err := surface.Static(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("walker: static %s: %w", id, err))
			continue
		}
		m.AddStatic(id, s)
		surface.OnClick(id, func() { m.Bounce(id) })
	}
	if err := errors.Join(errs...); err != nil {
		m.logger.Printf("%v", err)
		return err
	}
	return nil
}

// Add registers a walker without starting it. index fixes its initial
// position along the track.
func (m *Manager) Add(id string, index int, h Handles) *Walker {
	if h.Sprite == nil {
		h.Sprite = nopSprite{}
	}
	w := &Walker{bouncer: bouncer{sprite: h.Sprite}, id: id, index: index, h: h, motion: component.NewMotion()}
	m.walkers = append(m.walkers, w)
	m.byID[id] = w
	return w
}

func (m *Manager) AddStatic(id string, s Sprite) {
	m.statics[id] = &bouncer{sprite: s}
}

func (m *Manager) Walker(id string) (*Walker, bool) {
	w, ok := m.byID[id]
	return w, ok
}

// Start begins walking one walker from its initial position.
func (m *Manager) Start(id string) bool {
	w, ok := m.byID[id]
	if !ok {
		return false
	}
	m.start(w)
	return true
}

func (m *Manager) start(w *Walker) {
	w.timers.Cancel(slotFrame, slotMovement, slotRestart)

	m.measure(w)
	w.motion = component.NewMotion()
	if w.maxPos > 0 {
		w.motion.Position = math.Mod(float64(w.index)*m.cfg.Spacing, w.maxPos)
	}
	w.frame = 0
	m.render(w)

	walk := m.cfg.Walk()
	w.timers.Set(slotFrame, m.sched.Every(walk.Interval(), func() {
		w.sprite.SetFrame(m.cfg.FramePath(m.assetBase, m.ext, w.frame))
		w.frame = (w.frame + 1) % walk.Frames
	}))
	// Bounds are sampled once per start; HandleResize restarts to re-sample.
	w.timers.Set(slotMovement, m.sched.Every(m.timing.MovementInterval, func() {
		w.motion.Step(m.cfg.Speed, w.maxPos)
		m.render(w)
	}))
}

func (m *Manager) stop(w *Walker) {
	w.timers.Cancel(slotFrame, slotMovement, slotRestart)
}

func (m *Manager) measure(w *Walker) {
	track := component.FallbackTrackWidth
	if w.h.Track != nil {
		if v, ok := w.h.Track.Width(); ok && v > 0 {
			track = v
		}
	}
	width := component.FallbackWalkerWidth
	if v, ok := w.sprite.Width(); ok && v > 0 {
		width = v
	}
	w.maxPos = component.MaxPosition(track, width)
}

func (m *Manager) render(w *Walker) {
	if w.h.Body == nil {
		return
	}
	w.h.Body.SetPosition(w.motion.Position)
	w.h.Body.SetFacingLeft(w.motion.FacingLeft)
}

// Bounce plays the click bounce and glow on a walker or static pet. Clicking
// again restarts the sequence.
func (m *Manager) Bounce(id string) bool {
	var b *bouncer
	if w, ok := m.byID[id]; ok {
		b = &w.bouncer
	} else if s, ok := m.statics[id]; ok {
		b = s
	} else {
		return false
	}

	slots := [3]clock.Slot{slotBounce0, slotBounce1, slotBounce2}
	for i, tr := range BounceSequence {
		b.timers.Set(slots[i], m.sched.After(m.timing.BounceSteps[i], func() {
			b.sprite.SetTransform(tr)
		}))
	}
	b.sprite.SetGlow(true)
	b.timers.Set(slotGlow, m.sched.After(m.timing.Glow, func() {
		b.sprite.SetGlow(false)
	}))
	return true
}

// HandleResize stops every walker and restarts it after the restart delay so
// its bounds are re-sampled against the new track.
func (m *Manager) HandleResize() {
	for _, w := range m.walkers {
		m.stop(w)
		w.timers.Set(slotRestart, m.sched.After(m.timing.WalkerRestart, func() {
			m.start(w)
		}))
	}
}

// Destroy cancels every walker and bounce timer.
func (m *Manager) Destroy() {
	for _, w := range m.walkers {
		w.timers.CancelAll()
	}
	for _, s := range m.statics {
		s.timers.CancelAll()
	}
}

type nopSprite struct{}

func (nopSprite) SetFrame(string)        {}
func (nopSprite) SetTransform(Transform) {}
func (nopSprite) SetGlow(bool)           {}
func (nopSprite) Width() (float64, bool) { return 0, false }
