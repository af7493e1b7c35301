package clock

import "time"

// Millis is a free-running millisecond counter. It is 32 bits wide and wraps
// roughly every 49.7 days, so callers must only ever compare two readings by
// unsigned subtraction.
type Millis interface {
	Millis() uint32
}

// MillisFunc adapts a function to Millis.
type MillisFunc func() uint32

func (f MillisFunc) Millis() uint32 { return f() }

// Since returns a Millis counting from start.
func Since(start time.Time) Millis {
	return MillisFunc(func() uint32 {
		return uint32(time.Since(start).Milliseconds())
	})
}

// Elapsed returns now-prev, correct across one wrap of the counter.
func Elapsed(now, prev uint32) uint32 {
	return now - prev
}

// Timer fires every Interval milliseconds of a Millis counter.
type Timer struct {
	Interval uint32
	prev     uint32
}

func NewTimer(interval time.Duration) Timer {
	return Timer{Interval: uint32(interval.Milliseconds())}
}

// Due reports whether Interval has elapsed since the last Reset.
func (t *Timer) Due(now uint32) bool {
	return Elapsed(now, t.prev) >= t.Interval
}

// Reset restarts the interval at now.
func (t *Timer) Reset(now uint32) {
	t.prev = now
}

// Fire is Due followed by Reset when due.
func (t *Timer) Fire(now uint32) bool {
	if !t.Due(now) {
		return false
	}
	t.prev = now
	return true
}
