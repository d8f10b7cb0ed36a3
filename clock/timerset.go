package clock

// Slot names one timer owned by a TimerSet.
type Slot int

// TimerSet owns at most one timer per slot. Arming a slot always cancels the
// timer it replaces, so a slot can never carry two tick streams.
type TimerSet struct {
	timers map[Slot]*Timer
}

// Set stores t in slot after stopping whatever the slot held.
func (ts *TimerSet) Set(slot Slot, t *Timer) {
	if ts.timers == nil {
		ts.timers = make(map[Slot]*Timer)
	}
	if prev, ok := ts.timers[slot]; ok {
		prev.Stop()
	}
	ts.timers[slot] = t
}

// Cancel stops and forgets the timers in the given slots.
func (ts *TimerSet) Cancel(slots ...Slot) {
	for _, slot := range slots {
		if t, ok := ts.timers[slot]; ok {
			t.Stop()
			delete(ts.timers, slot)
		}
	}
}

// CancelAll stops every owned timer.
func (ts *TimerSet) CancelAll() {
	for slot, t := range ts.timers {
		t.Stop()
		delete(ts.timers, slot)
	}
}

// Active reports whether slot holds an armed timer.
func (ts *TimerSet) Active(slot Slot) bool {
	return ts.timers[slot].Active()
}

// Len counts the armed timers in the set.
func (ts *TimerSet) Len() int {
	n := 0
	for _, t := range ts.timers {
		if t.Active() {
			n++
		}
	}
	return n
}
