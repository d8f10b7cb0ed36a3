package component

import (
	"fmt"
	"time"
)

// LoopForever marks an animation that repeats until something else replaces it.
const LoopForever = -1

// Animation names with engine-level meaning.
const (
	AnimWalk  = "walk"
	AnimIdle  = "idle"
	AnimFront = "front"
)

// AnimationDef describes one animation of a pet: how many frames it has, how
// many times it repeats and how fast it plays. Defs are loaded once and never
// mutated.
type AnimationDef struct {
	Frames int
	Loops  int
	FPS    float64
}

// Interval is the time between two frame ticks.
func (d AnimationDef) Interval() time.Duration {
	if d.FPS <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / d.FPS)
}

// Finite reports whether the animation completes on its own.
func (d AnimationDef) Finite() bool {
	return d.Loops > 0
}

// TotalFrames is the number of frame ticks a finite animation plays before
// completing, or 0 for an animation that loops forever.
func (d AnimationDef) TotalFrames() int {
	if !d.Finite() {
		return 0
	}
	return d.Frames * d.Loops
}

// Validate checks the def for values the engine cannot play. A loop count of
// zero is rejected rather than interpreted.
func (d AnimationDef) Validate() error {
	if d.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", d.Frames)
	}
	if d.Loops == 0 {
		return fmt.Errorf("loops must be -1 or positive, got 0")
	}
	if d.Loops < LoopForever {
		return fmt.Errorf("loops must be -1 or positive, got %d", d.Loops)
	}
	if d.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %g", d.FPS)
	}
	return nil
}
