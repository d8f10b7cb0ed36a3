package clock

import (
	"container/heap"
	"sync"
	"time"
)

// Scheduler runs timers against a virtual clock. It is not safe for concurrent
// use: every method except Post must be called from the loop that owns it, and
// every callback runs on that loop inside Advance.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
	armed int

	postMu sync.Mutex
	posted []func()
}

// NewScheduler creates a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Active reports how many timers are currently armed.
func (s *Scheduler) Active() int {
	return s.armed
}

// Every arms a periodic timer. The first tick fires one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.arm(interval, interval, fn)
}

// After arms a one-shot timer.
func (s *Scheduler) After(delay time.Duration, fn func()) *Timer {
	if delay < 0 {
		delay = 0
	}
	return s.arm(delay, 0, fn)
}

func (s *Scheduler) arm(delay, interval time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{
		s:        s,
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
		active:   true,
	}
	heap.Push(&s.queue, t)
	s.armed++
	return t
}

// Post queues fn to run on the loop at the start of the next Advance. It is
// the only method that may be called from other goroutines.
func (s *Scheduler) Post(fn func()) {
	if fn == nil {
		return
	}
	s.postMu.Lock()
	s.posted = append(s.posted, fn)
	s.postMu.Unlock()
}

func (s *Scheduler) drainPosted() {
	s.postMu.Lock()
	batch := s.posted
	s.posted = nil
	s.postMu.Unlock()

	for _, fn := range batch {
		fn()
	}
}

// Advance moves the virtual clock forward by d, firing every timer that comes
// due on the way in due-time order. Timers armed by callbacks fire within the
// same call when their due time falls inside the window.
func (s *Scheduler) Advance(d time.Duration) {
	s.drainPosted()
	if d < 0 {
		d = 0
	}
	target := s.now + d

	for s.queue.Len() > 0 {
		t := s.queue[0]
		if !t.active {
			heap.Pop(&s.queue)
			continue
		}
		if t.due > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = t.due

		if t.interval > 0 {
			t.due += t.interval
			s.seq++
			t.seq = s.seq
			heap.Push(&s.queue, t)
		} else {
			t.active = false
			s.armed--
		}
		if t.fn != nil {
			t.fn()
		}
	}
	s.now = target
}

// Timer is a cancelable handle to a scheduled callback.
type Timer struct {
	s        *Scheduler
	due      time.Duration
	interval time.Duration
	seq      uint64
	index    int
	fn       func()
	active   bool
}

// Stop disarms the timer. It reports whether the timer was armed.
func (t *Timer) Stop() bool {
	if t == nil || !t.active {
		return false
	}
	t.active = false
	t.s.armed--
	return true
}

// Active reports whether the timer will still fire.
func (t *Timer) Active() bool {
	return t != nil && t.active
}

// Periodic reports whether the timer re-arms itself after firing.
func (t *Timer) Periodic() bool {
	return t != nil && t.interval > 0
}

type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	t.index = -1
	return t
}
