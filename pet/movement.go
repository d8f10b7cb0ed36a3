package pet

import "github.com/milk9111/petshow/component"

// walk starts the walk cycle. Frame ticks follow the walk fps while movement
// ticks run at the fixed movement interval.
func (a *Animator) walk(def component.AnimationDef) {
	a.phase = PhaseWalking
	a.measure()
	if !a.placed {
		a.motion.Position = a.rng.Float64() * a.maxPos
		a.placed = true
	}
	a.motion.Clamp(a.maxPos)
	a.render()

	a.timers.Set(slotFrame, a.sched.Every(def.Interval(), a.advanceFrame))
	a.timers.Set(slotMovement, a.sched.Every(a.timing.MovementInterval, a.step))
}

func (a *Animator) step() {
	a.measure()
	a.motion.Step(a.cfg.WalkSpeed, a.maxPos)
	a.render()
}

// RecalculateBounds re-measures the track and pulls the pet back inside it.
// The visible frame is not touched.
func (a *Animator) RecalculateBounds() {
	if a.phase == PhaseDestroyed {
		return
	}
	a.measure()
	if a.motion.Clamp(a.maxPos) {
		a.render()
	}
}

func (a *Animator) measure() {
	track, ok := a.h.Track.Width()
	if !ok || track <= 0 {
		track = component.FallbackTrackWidth
	}
	w, ok := a.h.Sprite.Width()
	if !ok || w <= 0 {
		w = component.FallbackPetWidth
	}
	a.maxPos = component.MaxPosition(track, w)
}

func (a *Animator) render() {
	a.h.Body.SetPosition(a.motion.Position)
	a.h.Body.SetFacingLeft(a.motion.FacingLeft)
}

func (a *Animator) Position() float64    { return a.motion.Position }
func (a *Animator) MaxPosition() float64 { return a.maxPos }
func (a *Animator) Direction() int       { return a.motion.Direction }
func (a *Animator) FacingLeft() bool     { return a.motion.FacingLeft }
