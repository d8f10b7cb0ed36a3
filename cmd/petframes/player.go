package main

import (
	"fmt"

	"github.com/milk9111/petshow/clock"
	"github.com/milk9111/petshow/component"
)

// player steps through one animation's frames. Finite animations hold their
// last frame once every loop has played.
type player struct {
	cfg       component.PetConfig
	base, ext string

	name  string
	def   component.AnimationDef
	frame int
	loops int
	done  bool

	sched *clock.Scheduler
	clock *clock.Clock
}

func newPlayer(sched *clock.Scheduler, cfg component.PetConfig, base, ext string) *player {
	return &player{cfg: cfg, base: base, ext: ext, sched: sched}
}

func (p *player) play(name string) error {
	def, ok := p.cfg.Animation(name)
	if !ok {
		return fmt.Errorf("animation %q not found for %s", name, p.cfg.ID)
	}
	if p.clock != nil {
		p.clock.Stop()
	}
	p.name, p.def = name, def
	p.clock = clock.NewClock(p.sched, def.Interval(), p.tick)
	p.restart()
	return nil
}

func (p *player) restart() {
	if p.clock == nil {
		return
	}
	p.frame, p.loops, p.done = 0, 0, false
	p.clock.Start()
}

func (p *player) tick() {
	if p.frame+1 < p.def.Frames {
		p.frame++
		return
	}
	p.loops++
	if p.def.Finite() && p.loops >= p.def.Loops {
		p.done = true
		p.clock.Stop()
		return
	}
	p.frame = 0
}

func (p *player) path() string {
	return p.cfg.FramePath(p.base, p.ext, p.name, p.frame)
}

func (p *player) status() string {
	loops := "forever"
	if p.def.Finite() {
		loops = fmt.Sprintf("%d/%d", min(p.loops+1, p.def.Loops), p.def.Loops)
	}
	s := fmt.Sprintf("%s  %s  frame %d/%d  loop %s  %.0f fps", p.cfg.ID, p.name, p.frame+1, p.def.Frames, loops, p.def.FPS)
	if p.done {
		s += "  done"
	}
	return s
}
