package pet

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/petshow/component"
)

func TestFiniteAnimationCompletesOnce(t *testing.T) {
	cfg := trexConfig()
	cfg.Specials = nil
	r := newRig(t, cfg)

	r.a.StartAnimation("eat", false)
	for tick := 1; tick <= 39; tick++ {
		r.sched.Advance(100 * time.Millisecond)
		if f := r.a.Frame(); f < 0 || f >= 10 {
			t.Fatalf("tick %d: frame %d out of range", tick, f)
		}
	}
	if n := r.count(EventCompleted); n != 0 {
		t.Fatalf("completed after 39 ticks (%d)", n)
	}
	if r.a.Loops() != 3 {
		t.Fatalf("expected 3 loops after 39 ticks, got %d", r.a.Loops())
	}

	r.sched.Advance(100 * time.Millisecond)
	if n := r.count(EventCompleted); n != 1 {
		t.Fatalf("expected completion on tick 40, got %d", n)
	}
	if r.a.Phase() != PhaseCompleting {
		t.Fatalf("expected completing, got %s", r.a.Phase())
	}

	r.sched.Advance(30 * time.Second)
	if n := r.count(EventCompleted); n != 1 {
		t.Fatalf("completion fired %d times", n)
	}
	if cur, _ := r.a.CurrentAnimation(); cur != "walk" {
		t.Fatalf("expected walk after settle, got %s", cur)
	}
}

func TestFiniteAnimationRealTimeBoundary(t *testing.T) {
	cfg := trexConfig()
	cfg.Specials = nil
	r := newRig(t, cfg)

	r.a.StartAnimation("eat", false)
	r.sched.Advance(3900 * time.Millisecond)
	if r.count(EventCompleted) != 0 {
		t.Fatalf("completed before 4000ms")
	}
	r.sched.Advance(100 * time.Millisecond)
	if r.count(EventCompleted) != 1 {
		t.Fatalf("expected completion at 4000ms")
	}
}

func TestInfiniteAnimationNeverCompletes(t *testing.T) {
	cfg := trexConfig()
	cfg.Specials = nil
	r := newRig(t, cfg)

	r.a.StartAnimation("idle", false)
	for i := 0; i < 600; i++ {
		r.sched.Advance(100 * time.Millisecond)
		if f := r.a.Frame(); f < 0 || f >= 20 {
			t.Fatalf("frame %d out of range", f)
		}
	}
	if r.count(EventCompleted) != 0 {
		t.Fatalf("infinite animation completed")
	}
	if r.a.Loops() != 30 {
		t.Fatalf("expected 30 loops, got %d", r.a.Loops())
	}
}

func TestUserTriggerSuppressesAutoUntilCooldown(t *testing.T) {
	r := newRig(t, trexConfig())
	r.a.Init(context.Background())
	if !r.a.timers.Active(slotAuto) {
		t.Fatalf("auto schedule should be armed after init")
	}
	if r.a.UserControlled() {
		t.Fatalf("should start autonomous")
	}

	if !r.a.TriggerUserAnimation("eat") {
		t.Fatalf("trigger rejected")
	}
	if !r.a.UserControlled() {
		t.Fatalf("user control should be set immediately")
	}
	if r.a.timers.Active(slotAuto) {
		t.Fatalf("pending auto schedule should be cancelled")
	}

	r.sched.Advance(4000 * time.Millisecond)
	if r.count(EventCompleted) != 1 {
		t.Fatalf("expected eat to complete")
	}
	r.sched.Advance(500 * time.Millisecond)
	if cur, _ := r.a.CurrentAnimation(); cur != "walk" {
		t.Fatalf("expected walk after settle, got %s", cur)
	}
	if !r.a.UserControlled() || r.a.timers.Active(slotAuto) {
		t.Fatalf("cooldown should keep autonomous scheduling off")
	}

	r.sched.Advance(2999 * time.Millisecond)
	if !r.a.UserControlled() || r.a.timers.Active(slotAuto) {
		t.Fatalf("released before the cooldown elapsed")
	}
	r.sched.Advance(time.Millisecond)
	if r.a.UserControlled() {
		t.Fatalf("expected release 3000ms after settle")
	}
	if !r.a.timers.Active(slotAuto) {
		t.Fatalf("auto schedule should be re-armed after release")
	}
	if r.count(EventReleased) != 1 {
		t.Fatalf("expected one release event")
	}
}

func TestWalkFlipsExactlyAtBound(t *testing.T) {
	r := newRig(t, trexConfig())
	r.a.measure()
	if r.a.MaxPosition() != 200 {
		t.Fatalf("expected max 200, got %g", r.a.MaxPosition())
	}

	for tick := 1; tick <= 285; tick++ {
		r.a.step()
		if r.a.Direction() != 1 || r.a.FacingLeft() {
			t.Fatalf("flipped early on tick %d", tick)
		}
	}
	r.a.step()
	if r.a.Direction() != -1 || !r.a.FacingLeft() {
		t.Fatalf("expected flip on tick 286")
	}
	if !r.body.left || r.body.x != 200 {
		t.Fatalf("body not updated: x=%g left=%v", r.body.x, r.body.left)
	}
}

func TestWalkStaysInBoundsOnSchedule(t *testing.T) {
	cfg := trexConfig()
	cfg.Specials = nil
	r := newRig(t, cfg)
	r.a.Init(context.Background())
	if r.a.Phase() != PhaseWalking {
		t.Fatalf("expected walking, got %s", r.a.Phase())
	}

	for i := 0; i < 2000; i++ {
		r.sched.Advance(16 * time.Millisecond)
		if p := r.a.Position(); p < 0 || p > r.a.MaxPosition() {
			t.Fatalf("position %g outside [0, %g]", p, r.a.MaxPosition())
		}
	}
	if r.body.renders < 2000 {
		t.Fatalf("expected a render per movement tick, got %d", r.body.renders)
	}
}

func TestUnknownAnimationIsNoop(t *testing.T) {
	r := newRig(t, trexConfig())
	r.a.StartAnimation("eat", false)
	r.sched.Advance(250 * time.Millisecond)

	frame, armed := r.a.Frame(), r.sched.Active()
	cur, _ := r.a.CurrentAnimation()
	highlights := len(r.buttons.history)

	if r.a.StartAnimation("nonexistent", false) {
		t.Fatalf("unknown animation accepted")
	}
	if got, _ := r.a.CurrentAnimation(); got != cur {
		t.Fatalf("current changed to %s", got)
	}
	if r.a.Frame() != frame || r.sched.Active() != armed || !r.a.timers.Active(slotFrame) {
		t.Fatalf("state or timers changed")
	}
	if len(r.buttons.history) != highlights {
		t.Fatalf("buttons touched")
	}
}

func TestRestartLeavesOneFrameStream(t *testing.T) {
	r := newRig(t, trexConfig())

	r.a.StartAnimation("eat", false)
	r.a.StartAnimation("roar", false)
	if r.a.timers.Len() != 1 || r.sched.Active() != 1 {
		t.Fatalf("expected exactly one armed timer, got %d/%d", r.a.timers.Len(), r.sched.Active())
	}

	r.sched.Advance(time.Second)
	if len(r.sprite.frames) != 10 {
		t.Fatalf("expected 10 frame writes in one second, got %d", len(r.sprite.frames))
	}
	for _, f := range r.sprite.frames {
		if !strings.HasPrefix(f, "./assets/pets/trex_yellow_roar-") {
			t.Fatalf("unexpected frame %s", f)
		}
	}

	r.a.StartAnimation("walk", false)
	r.a.StartAnimation("walk", false)
	if r.sched.Active() != 2 {
		t.Fatalf("walk should hold one frame and one movement timer, got %d", r.sched.Active())
	}
}

func TestButtonHighlights(t *testing.T) {
	r := newRig(t, trexConfig())
	r.a.Init(context.Background())
	if r.buttons.last() != "" {
		t.Fatalf("default walk should clear buttons, got %q", r.buttons.last())
	}

	r.a.TriggerUserAnimation("roar")
	if r.buttons.last() != "roar" {
		t.Fatalf("expected roar highlighted, got %q", r.buttons.last())
	}
	r.sched.Advance(4200 * time.Millisecond)
	if r.buttons.last() != "" {
		t.Fatalf("completion should clear buttons, got %q", r.buttons.last())
	}

	r.a.TriggerUserAnimation("idle")
	if r.buttons.last() != "" {
		t.Fatalf("idle is not selectable, got %q", r.buttons.last())
	}
}

func TestIdleDefaultUsesAliasedFrames(t *testing.T) {
	r := newRig(t, apeChefConfig())
	r.a.Init(context.Background())

	if cur, _ := r.a.CurrentAnimation(); cur != "idle" {
		t.Fatalf("expected idle default, got %s", cur)
	}
	if r.a.Phase() != PhasePlaying {
		t.Fatalf("expected playing, got %s", r.a.Phase())
	}
	r.sched.Advance(100 * time.Millisecond)
	if got := r.sprite.frames[0]; got != "./assets/pets/ape_chef_front-0.png" {
		t.Fatalf("unexpected idle frame %s", got)
	}
	if r.a.timers.Active(slotMovement) {
		t.Fatalf("idle default should not move")
	}
}

func TestIdleDefaultKeepsCooldown(t *testing.T) {
	r := newRig(t, apeChefConfig())
	r.a.Init(context.Background())

	r.a.TriggerUserAnimation("eat")
	r.sched.Advance(16 * time.Second)
	if r.count(EventCompleted) != 1 {
		t.Fatalf("expected eat to complete")
	}
	r.sched.Advance(500 * time.Millisecond)
	if cur, _ := r.a.CurrentAnimation(); cur != "idle" {
		t.Fatalf("expected idle, got %s", cur)
	}
	if !r.a.UserControlled() {
		t.Fatalf("cooldown should apply after returning to idle")
	}
	r.sched.Advance(3 * time.Second)
	if r.a.UserControlled() {
		t.Fatalf("expected release after cooldown")
	}
}

func TestLoadingRejectsTriggers(t *testing.T) {
	pre := &fakePreloader{}
	r := newRig(t, trexConfig(), WithPreloader(pre))

	if r.a.TriggerUserAnimation("eat") {
		t.Fatalf("uninitialized animator accepted trigger")
	}
	if !r.a.Begin() {
		t.Fatalf("begin failed")
	}
	if !r.sprite.loading {
		t.Fatalf("loading visual not applied")
	}
	if r.a.TriggerUserAnimation("eat") {
		t.Fatalf("loading animator accepted trigger")
	}
	if _, ok := r.a.CurrentAnimation(); ok {
		t.Fatalf("no animation should have started")
	}

	r.a.Finish(r.a.Preload(context.Background()))
	if r.sprite.loading {
		t.Fatalf("loading visual not cleared")
	}
	if !r.a.TriggerUserAnimation("eat") {
		t.Fatalf("ready animator rejected trigger")
	}
	if r.a.Begin() {
		t.Fatalf("second begin should fail")
	}
}

func TestPreloadFailureDegrades(t *testing.T) {
	cfg := apeChefConfig()
	pre := &fakePreloader{err: errFrames}
	r := newRig(t, cfg, WithPreloader(pre))

	r.a.Init(context.Background())
	if len(pre.paths) != 33+33+32+8 {
		t.Fatalf("expected every frame preloaded, got %d", len(pre.paths))
	}
	if !r.sprite.degraded || r.sprite.loading {
		t.Fatalf("expected degraded, not loading")
	}
	if cur, _ := r.a.CurrentAnimation(); cur != "idle" || r.count(EventReady) != 1 {
		t.Fatalf("expected default state despite failures")
	}
}

func TestRecalculateBoundsIdempotent(t *testing.T) {
	cfg := trexConfig()
	cfg.Specials = nil
	r := newRig(t, cfg)
	r.a.Init(context.Background())
	r.a.StartAnimation("eat", false)
	r.a.motion.Position = 180

	r.track.width = 300
	frames := len(r.sprite.frames)
	r.a.RecalculateBounds()
	if r.a.Position() != 100 || r.body.x != 100 {
		t.Fatalf("expected clamp to 100, got %g", r.a.Position())
	}
	renders := r.body.renders
	r.a.RecalculateBounds()
	if r.a.Position() != 100 || r.body.renders != renders {
		t.Fatalf("second recalculation changed state")
	}
	if len(r.sprite.frames) != frames {
		t.Fatalf("recalculation should not touch the frame")
	}

	r.track.width = 0
	r.a.RecalculateBounds()
	if r.a.MaxPosition() != 200 {
		t.Fatalf("expected fallback geometry, got %g", r.a.MaxPosition())
	}
}

func TestEmphasisSequence(t *testing.T) {
	r := newRig(t, trexConfig())
	r.a.Init(context.Background())

	r.a.TriggerUserAnimation("eat")
	if len(r.sprite.emphasis) != 1 || r.sprite.emphasis[0] != EmphasisPop {
		t.Fatalf("expected immediate pop, got %v", r.sprite.emphasis)
	}
	r.sched.Advance(300 * time.Millisecond)
	if r.sprite.emphasis[len(r.sprite.emphasis)-1] != EmphasisActive || r.sprite.emphasisA[1] != "eat" {
		t.Fatalf("expected active emphasis at 300ms, got %v", r.sprite.emphasis)
	}
	r.sched.Advance(1700 * time.Millisecond)
	if r.sprite.emphasis[len(r.sprite.emphasis)-1] != EmphasisNone {
		t.Fatalf("expected emphasis cleared at 2000ms, got %v", r.sprite.emphasis)
	}

	r.a.StartAnimation("roar", false)
	if len(r.sprite.emphasis) != 3 {
		t.Fatalf("autonomous start should not emphasize")
	}
}

func TestAutonomousScheduleWindow(t *testing.T) {
	r := newRig(t, trexConfig())
	r.a.Init(context.Background())

	autonomous := func() int {
		n := 0
		for _, ev := range r.events {
			if ev.Kind != EventStarted || ev.Animation == "walk" {
				continue
			}
			if ev.User {
				t.Fatalf("autonomous start of %s marked as user", ev.Animation)
			}
			n++
		}
		return n
	}

	r.sched.Advance(4999 * time.Millisecond)
	if n := autonomous(); n != 0 {
		t.Fatalf("special started before 5000ms")
	}
	r.sched.Advance(10001 * time.Millisecond)
	if n := autonomous(); n < 1 {
		t.Fatalf("expected a special by 15000ms")
	}
	if r.a.UserControlled() {
		t.Fatalf("autonomous start must not take user control")
	}
}

func TestDestroyStopsEverything(t *testing.T) {
	r := newRig(t, trexConfig())
	r.a.Init(context.Background())
	r.a.TriggerUserAnimation("eat")
	r.sched.Advance(4100 * time.Millisecond)

	r.a.Destroy()
	if r.sched.Active() != 0 {
		t.Fatalf("expected no armed timers, got %d", r.sched.Active())
	}
	frames := len(r.sprite.frames)
	r.sched.Advance(time.Minute)
	if len(r.sprite.frames) != frames {
		t.Fatalf("frames written after destroy")
	}
	if r.a.TriggerUserAnimation("roar") || r.a.StartAnimation("roar", false) {
		t.Fatalf("destroyed animator accepted a start")
	}
	r.a.ScheduleRandomAnimation()
	r.a.RecalculateBounds()
	if r.sched.Active() != 0 {
		t.Fatalf("destroyed animator armed a timer")
	}
	r.a.Destroy()
	if r.count(EventDestroyed) != 1 {
		t.Fatalf("destroy should be idempotent")
	}
}

func TestResumeAtLeftBoundKeepsPosition(t *testing.T) {
	cfg := trexConfig()
	cfg.Specials = nil
	r := newRig(t, cfg)
	r.a.Init(context.Background())

	r.a.motion = component.Motion{Position: 0.5, Direction: -1, FacingLeft: true}
	r.a.step()
	if r.a.Position() != 0 || r.a.Direction() != 1 {
		t.Fatalf("expected bounce at 0, got pos=%g dir=%d", r.a.Position(), r.a.Direction())
	}

	r.a.StartAnimation("eat", false)
	r.sched.Advance(4500 * time.Millisecond)
	if r.a.Phase() != PhaseWalking {
		t.Fatalf("expected walking after settle, got %s", r.a.Phase())
	}
	if p := r.a.Position(); p > 1 {
		t.Fatalf("walk resumed away from the bound at %g", p)
	}
}

func TestLaterStartDropsPendingEmphasis(t *testing.T) {
	r := newRig(t, trexConfig())
	r.a.Init(context.Background())

	r.a.TriggerUserAnimation("eat")
	r.sched.Advance(100 * time.Millisecond)
	r.a.StartAnimation("roar", false)
	r.sched.Advance(3 * time.Second)

	want := []Emphasis{EmphasisPop, EmphasisNone}
	if len(r.sprite.emphasis) != len(want) {
		t.Fatalf("expected %v, got %v", want, r.sprite.emphasis)
	}
	for i, e := range want {
		if r.sprite.emphasis[i] != e {
			t.Fatalf("expected %v, got %v", want, r.sprite.emphasis)
		}
	}
}
