// Package pet drives one showcase pet: its current animation, frame and loop
// counters, position on the track, and the timers that advance them.
package pet

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/petshow/assets"
	"github.com/milk9111/petshow/behavior"
	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/component"
)

const (
	slotFrame clock.Slot = iota
	slotMovement
	slotAuto
	slotSettle
	slotCooldown
	slotEmphasisRaise
	slotEmphasisClear
)

// Animator is the animation state machine of one pet. All methods except
// Preload must run on the scheduler's loop.
type Animator struct {
	cfg    component.PetConfig
	sched  *clock.Scheduler
	h      Handles
	timers clock.TimerSet

	timing    component.Timing
	picker    behavior.Picker
	rng       *rand.Rand
	logger    *log.Logger
	preloader assets.Preloader
	observer  Observer
	assetBase string
	ext       string

	phase          Phase
	current        string
	frame          int
	loops          int
	userControlled bool
	motion         component.Motion
	placed         bool
	maxPos         float64
	lastSpecial    string
}

// New builds an animator in the Uninitialized phase. cfg is assumed valid.
func New(cfg component.PetConfig, sched *clock.Scheduler, h Handles, opts ...Option) *Animator {
	a := &Animator{
		cfg:       cfg,
		sched:     sched,
		h:         h.withDefaults(),
		timing:    component.DefaultTiming(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    log.Default(),
		assetBase: component.DefaultAssetBase,
		ext:       component.DefaultExtension,
		motion:    component.NewMotion(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.picker == nil {
		a.picker = behavior.NewUniformPicker(a.rng)
	}
	return a
}

// Init preloads every frame and enters the default state. Preload failures
// are logged and leave the pet degraded but running.
func (a *Animator) Init(ctx context.Context) {
	if !a.Begin() {
		return
	}
	a.Finish(a.Preload(ctx))
}

// Begin enters the Loading phase. It reports false if the animator was
// already started or destroyed.
func (a *Animator) Begin() bool {
	if a.phase != PhaseUninitialized {
		return false
	}
	a.phase = PhaseLoading
	a.h.Sprite.SetLoading(true)
	return true
}

// Preload fetches every frame of every animation. It only reads immutable
// config, so it may run off the loop.
func (a *Animator) Preload(ctx context.Context) error {
	if a.preloader == nil {
		return nil
	}
	return a.preloader.Preload(ctx, a.cfg.FramePaths(a.assetBase, a.ext))
}

// Finish leaves Loading with the result of Preload.
func (a *Animator) Finish(err error) {
	if a.phase != PhaseLoading {
		return
	}
	if err != nil {
		a.logger.Printf("pet: %s: some frames failed to load: %v", a.cfg.ID, err)
		a.h.Sprite.SetDegraded(true)
	}
	a.h.Sprite.SetLoading(false)
	a.emit(EventReady, "", false)

	a.start(a.cfg.DefaultAnimation(), false, false)
	a.ScheduleRandomAnimation()
}

// StartAnimation plays name from its first frame. Unknown names are logged
// and leave the state untouched.
func (a *Animator) StartAnimation(name string, userTriggered bool) bool {
	if a.phase == PhaseDestroyed {
		return false
	}
	return a.start(name, userTriggered, userTriggered)
}

// TriggerUserAnimation is the entry point for user input. It is ignored until
// loading finishes and after Destroy.
func (a *Animator) TriggerUserAnimation(name string) bool {
	if !a.Ready() {
		return false
	}
	return a.start(name, true, true)
}

func (a *Animator) start(name string, user, emphasize bool) bool {
	def, ok := a.cfg.Animation(name)
	if !ok {
		a.logger.Printf("pet: %s: animation %q not found", a.cfg.ID, name)
		return false
	}

	a.timers.Cancel(slotFrame, slotAuto, slotSettle, slotCooldown)
	a.clearEmphasis()

	a.current = name
	a.frame = 0
	a.loops = 0
	a.userControlled = user

	if a.cfg.IsDefault(name) {
		a.h.Buttons.Highlight("")
	} else {
		a.h.Buttons.Highlight(name)
	}
	a.emit(EventStarted, name, user)

	if name == component.AnimWalk {
		a.walk(def)
		return true
	}

	a.timers.Cancel(slotMovement)
	if emphasize && !a.cfg.IsDefault(name) {
		a.emphasize(name)
	}
	a.phase = PhasePlaying
	a.timers.Set(slotFrame, a.sched.Every(def.Interval(), a.advanceFrame))
	return true
}

func (a *Animator) emphasize(name string) {
	a.h.Sprite.SetEmphasis(EmphasisPop, name)
	a.timers.Set(slotEmphasisRaise, a.sched.After(a.timing.EmphasisRaise, func() {
		a.h.Sprite.SetEmphasis(EmphasisActive, name)
	}))
	a.timers.Set(slotEmphasisClear, a.sched.After(a.timing.EmphasisClear, func() {
		a.timers.Cancel(slotEmphasisRaise)
		a.h.Sprite.SetEmphasis(EmphasisNone, "")
	}))
}

// clearEmphasis drops an emphasis left over from an earlier user start.
func (a *Animator) clearEmphasis() {
	if !a.timers.Active(slotEmphasisRaise) && !a.timers.Active(slotEmphasisClear) {
		return
	}
	a.timers.Cancel(slotEmphasisRaise, slotEmphasisClear)
	a.h.Sprite.SetEmphasis(EmphasisNone, "")
}

func (a *Animator) advanceFrame() {
	def, ok := a.cfg.Animation(a.current)
	if !ok {
		return
	}

	a.h.Sprite.SetFrame(a.cfg.FramePath(a.assetBase, a.ext, a.current, a.frame))
	a.frame++
	if a.frame < def.Frames {
		return
	}

	a.frame = 0
	a.loops++
	if def.Finite() && a.loops >= def.Loops {
		a.complete()
	}
}

func (a *Animator) complete() {
	name := a.current
	a.timers.Cancel(slotFrame, slotAuto)
	a.h.Buttons.Highlight("")
	a.phase = PhaseCompleting
	if !a.cfg.IsDefault(name) {
		a.lastSpecial = name
	}
	a.emit(EventCompleted, name, a.userControlled)

	a.timers.Set(slotSettle, a.sched.After(a.timing.SettleDelay, a.settle))
}

// settle returns to the default animation. A user-triggered animation keeps
// autonomous scheduling off for the cooldown.
func (a *Animator) settle() {
	user := a.userControlled
	a.start(a.cfg.DefaultAnimation(), user, false)
	if !user {
		a.ScheduleRandomAnimation()
		return
	}
	a.timers.Set(slotCooldown, a.sched.After(a.timing.UserCooldown, func() {
		a.userControlled = false
		a.emit(EventReleased, a.current, false)
		a.ScheduleRandomAnimation()
	}))
}

// ScheduleRandomAnimation arms the autonomous trigger with a delay drawn from
// [AutoMin, AutoMax). It does nothing while the user is in control.
func (a *Animator) ScheduleRandomAnimation() {
	if a.userControlled || a.phase == PhaseDestroyed || len(a.cfg.Specials) == 0 {
		return
	}
	delay := a.timing.AutoMin
	if span := a.timing.AutoMax - a.timing.AutoMin; span > 0 {
		delay += time.Duration(a.rng.Int63n(int64(span)))
	}
	a.timers.Set(slotAuto, a.sched.After(delay, a.fireRandom))
}

func (a *Animator) fireRandom() {
	if a.userControlled {
		return
	}
	name, ok := a.picker.Pick(a.cfg.Specials, a.lastSpecial)
	if !ok {
		return
	}
	a.start(name, false, false)
}

// Destroy cancels every timer. The animator ignores all further calls.
func (a *Animator) Destroy() {
	if a.phase == PhaseDestroyed {
		return
	}
	a.timers.CancelAll()
	a.phase = PhaseDestroyed
	a.emit(EventDestroyed, a.current, false)
}

func (a *Animator) emit(kind EventKind, anim string, user bool) {
	if a.observer == nil {
		return
	}
	a.observer(Event{Kind: kind, Pet: a.cfg.ID, Animation: anim, User: user})
}

func (a *Animator) ID() string                  { return a.cfg.ID }
func (a *Animator) Config() component.PetConfig { return a.cfg }
func (a *Animator) Phase() Phase                { return a.phase }
func (a *Animator) Frame() int                  { return a.frame }
func (a *Animator) Loops() int                  { return a.loops }
func (a *Animator) UserControlled() bool        { return a.userControlled }

// CurrentAnimation reports the playing animation; ok is false before the
// first start.
func (a *Animator) CurrentAnimation() (string, bool) {
	return a.current, a.current != ""
}

// Ready reports whether user triggers are accepted.
func (a *Animator) Ready() bool {
	switch a.phase {
	case PhaseUninitialized, PhaseLoading, PhaseDestroyed:
		return false
	}
	return true
}
