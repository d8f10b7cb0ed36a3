package component

// Motion is a position on a bounded horizontal track and the direction of
// travel. FacingLeft is true exactly when Direction is -1.
type Motion struct {
	Position   float64
	Direction  int
	FacingLeft bool
}

// NewMotion starts at position zero heading right.
func NewMotion() Motion {
	return Motion{Direction: 1}
}

// MaxPosition is the furthest a sprite of width entity can go on a track of
// width track.
func MaxPosition(track, entity float64) float64 {
	if track-entity < 0 {
		return 0
	}
	return track - entity
}

// Step advances one movement tick. Direction flips on the tick that reaches a
// bound, then the position is clamped into [0, max]. It reports whether the
// direction flipped.
func (m *Motion) Step(speed, max float64) bool {
	if m.Direction == 0 {
		m.Direction = 1
	}
	m.Position += float64(m.Direction) * speed

	flipped := false
	if m.Position >= max && m.Direction > 0 {
		m.Direction = -1
		m.FacingLeft = true
		flipped = true
	} else if m.Position <= 0 && m.Direction < 0 {
		m.Direction = 1
		m.FacingLeft = false
		flipped = true
	}
	m.Clamp(max)
	return flipped
}

// Clamp pulls the position back into [0, max] and reports whether it moved.
func (m *Motion) Clamp(max float64) bool {
	if max < 0 {
		max = 0
	}
	switch {
	case m.Position > max:
		m.Position = max
		return true
	case m.Position < 0:
		m.Position = 0
		return true
	}
	return false
}
