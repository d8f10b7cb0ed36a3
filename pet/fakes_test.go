package pet

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand"
	"testing"

	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/component"
)

type fakeSprite struct {
	frames    []string
	width     float64
	loading   bool
	degraded  bool
	emphasis  []Emphasis
	emphasisA []string
}

func (s *fakeSprite) SetFrame(path string) { s.frames = append(s.frames, path) }
func (s *fakeSprite) Width() (float64, bool) {
	return s.width, s.width > 0
}
func (s *fakeSprite) SetLoading(v bool)  { s.loading = v }
func (s *fakeSprite) SetDegraded(v bool) { s.degraded = v }
func (s *fakeSprite) SetEmphasis(e Emphasis, anim string) {
	s.emphasis = append(s.emphasis, e)
	s.emphasisA = append(s.emphasisA, anim)
}

type fakeBody struct {
	x       float64
	left    bool
	renders int
}

func (b *fakeBody) SetPosition(x float64)   { b.x = x; b.renders++ }
func (b *fakeBody) SetFacingLeft(left bool) { b.left = left }

type fakeTrack struct{ width float64 }

func (t *fakeTrack) Width() (float64, bool) { return t.width, t.width > 0 }

type fakeButtons struct{ history []string }

func (b *fakeButtons) Highlight(active string) { b.history = append(b.history, active) }

func (b *fakeButtons) last() string {
	if len(b.history) == 0 {
		return "<none>"
	}
	return b.history[len(b.history)-1]
}

type fakePreloader struct {
	paths []string
	err   error
}

func (p *fakePreloader) Preload(_ context.Context, paths []string) error {
	p.paths = append(p.paths, paths...)
	return p.err
}

var errFrames = errors.New("2 of 10 frames failed")

type rig struct {
	sched   *clock.Scheduler
	sprite  *fakeSprite
	body    *fakeBody
	track   *fakeTrack
	buttons *fakeButtons
	events  []Event
	a       *Animator
}

func (r *rig) count(kind EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func newRig(t *testing.T, cfg component.PetConfig, opts ...Option) *rig {
	t.Helper()
	r := &rig{
		sched:   clock.NewScheduler(),
		sprite:  &fakeSprite{width: 200},
		body:    &fakeBody{},
		track:   &fakeTrack{width: 400},
		buttons: &fakeButtons{},
	}
	base := []Option{
		WithRand(rand.New(rand.NewSource(42))),
		WithLogger(log.New(io.Discard, "", 0)),
		WithObserver(func(ev Event) { r.events = append(r.events, ev) }),
	}
	r.a = New(cfg, r.sched, Handles{
		Sprite:  r.sprite,
		Body:    r.body,
		Track:   r.track,
		Buttons: r.buttons,
	}, append(base, opts...)...)
	return r
}

func trexConfig() component.PetConfig {
	return component.PetConfig{
		ID:          "trex",
		ImageID:     "trexImage",
		PetID:       "trexPet",
		AssetPrefix: "trex_yellow",
		WalkSpeed:   0.7,
		Animations: map[string]component.AnimationDef{
			"walk":  {Frames: 6, Loops: -1, FPS: 10},
			"idle":  {Frames: 20, Loops: -1, FPS: 10},
			"eat":   {Frames: 10, Loops: 4, FPS: 10},
			"roar":  {Frames: 14, Loops: 3, FPS: 10},
			"front": {Frames: 15, Loops: 2, FPS: 10},
		},
		Specials: []string{"eat", "roar"},
	}
}

func apeChefConfig() component.PetConfig {
	return component.PetConfig{
		ID:           "ape_chef",
		ImageID:      "apeChefImage",
		PetID:        "apeChefPet",
		AssetPrefix:  "ape_chef",
		WalkSpeed:    0.7,
		Default:      component.AnimIdle,
		FrameAliases: map[string]string{"idle": "front"},
		Animations: map[string]component.AnimationDef{
			"front": {Frames: 33, Loops: 5, FPS: 10},
			"idle":  {Frames: 33, Loops: -1, FPS: 10},
			"eat":   {Frames: 32, Loops: 5, FPS: 10},
			"walk":  {Frames: 8, Loops: -1, FPS: 10},
		},
		Specials: []string{"eat"},
	}
}
