// Package progress computes how much of a span of time remains.
package progress

import "time"

const secondsPerHour = 3600

// Progress is the remaining share of a span. Past the end of the span both
// fields go negative; that is surfaced as-is so the display can show the
// owner is overdue.
type Progress struct {
	PercentRemaining float64
	HoursRemaining   float64
}

// Compute returns the remaining percentage and hours of a span of total
// seconds with remaining seconds left. A non-positive total has no meaningful
// percentage and yields zero.
func Compute(total, remaining int64) Progress {
	p := Progress{HoursRemaining: float64(remaining) / secondsPerHour}
	if total > 0 {
		p.PercentRemaining = float64(remaining) / float64(total) * 100
	}
	return p
}

// PercentElapsed is the complement of PercentRemaining.
func (p Progress) PercentElapsed() float64 {
	return 100 - p.PercentRemaining
}

func (p Progress) Overdue() bool {
	return p.HoursRemaining < 0
}

// Year returns the length of the calendar year containing the local epoch
// now, and the seconds left in it.
func Year(now int64) (total, remaining int64) {
	t := time.Unix(now, 0).UTC()
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Date(t.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	return end - start, end - now
}

// Life returns the span from birth to death and the seconds left at now.
// birth after death is not rejected; total is then negative and Compute
// reports zero percent.
func Life(now, birth, death int64) (total, remaining int64) {
	return death - birth, death - now
}
