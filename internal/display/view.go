package display

import (
	"fmt"
	"math"
	"time"

	"github.com/barrettotte/memento-mori/internal/config"
	"github.com/barrettotte/memento-mori/internal/nav"
	"github.com/barrettotte/memento-mori/internal/ntp"
	"github.com/barrettotte/memento-mori/internal/progress"
)

// Snapshot is everything a page needs to be drawn.
type Snapshot struct {
	Page   nav.Page
	Field  nav.DateField
	Now    int64
	Synced bool
	Config config.Config
	NTP    ntp.Outcome
	Frame  int
}

// View draws one page per call.
type View struct {
	c *Canvas
}

func NewView(c *Canvas) *View {
	return &View{c: c}
}

// Draw clears the canvas, draws the page and presents it.
func (v *View) Draw(s Snapshot) error {
	v.c.Clear()
	switch s.Page {
	case nav.IdleTime:
		v.drawTime(s)
	case nav.IdleYear:
		v.drawYear(s)
	case nav.IdleLife:
		v.drawLife(s)
	case nav.ShowUTC, nav.SetUTC:
		v.title("UTC OFFSET", s.Page == nav.SetUTC)
		v.value(FormatUTC(s.Config.UTCOffset), s.Page == nav.SetUTC)
	case nav.ShowBirth, nav.SetBirth:
		v.drawDate("BIRTH", s.Config.Birth, s.Page == nav.SetBirth, s.Field)
	case nav.ShowDeath, nav.SetDeath:
		v.drawDate("DEATH", s.Config.Death, s.Page == nav.SetDeath, s.Field)
	case nav.ShowNTP:
		v.title("NTP RESYNC", false)
		v.c.DrawCenteredText("press to sync", true, false)
		v.c.DrawCenteredText("last: "+s.NTP.String(), true, false)
	}
	return v.c.Present()
}

func (v *View) title(s string, editing bool) {
	if editing {
		s = "SET " + s
	}
	v.c.SetCursor(0, 2)
	v.c.DrawCenteredText(s, true, false)
	y := v.c.cy
	v.c.DrawLine(0, y, v.c.w-1)
	v.c.SetCursor(0, y+4)
}

func (v *View) value(s string, editing bool) {
	v.c.DrawCenteredText(s, true, true)
	if editing {
		x := (v.c.w - v.c.TextWidth(s)) / 2
		v.c.DrawLine(x, v.c.cy-1, x+v.c.TextWidth(s)-1)
	}
}

func (v *View) drawTime(s Snapshot) {
	if !s.Synced {
		v.c.SetCursor(0, 16)
		v.c.DrawCenteredText("--:--:--", true, false)
		v.c.DrawCenteredText("NO SYNC", true, false)
		return
	}
	t := time.Unix(s.Now, 0).UTC()
	v.c.SetCursor(0, 16)
	v.c.DrawCenteredText(t.Format("2006-01-02"), true, false)
	v.c.DrawCenteredText(t.Format("15:04:05"), true, false)
}

func (v *View) drawYear(s Snapshot) {
	if !s.Synced {
		v.title("YEAR", false)
		v.c.DrawCenteredText("NO SYNC", true, false)
		return
	}
	t := time.Unix(s.Now, 0).UTC()
	p := progress.Compute(progress.Year(s.Now))
	v.title(fmt.Sprintf("YEAR %d", t.Year()), false)
	v.c.DrawCenteredText(fmt.Sprintf("%.2f%%", p.PercentElapsed()), true, false)
	v.bar(p.PercentElapsed())
}

func (v *View) drawLife(s Snapshot) {
	v.title("LIFE", false)
	if !s.Synced {
		v.c.DrawCenteredText("NO SYNC", true, false)
		return
	}
	p := progress.Compute(progress.Life(s.Now, s.Config.Birth, s.Config.Death))
	v.c.DrawBitmapFrame(s.Frame, 4, v.c.cy)
	v.c.DrawCenteredText(fmt.Sprintf("%.4f%%", p.PercentElapsed()), true, false)
	if p.Overdue() {
		v.c.DrawCenteredText("OVERDUE", true, false)
	} else {
		v.c.DrawCenteredText(fmt.Sprintf("%.0f h left", math.Floor(p.HoursRemaining)), true, false)
	}
	v.bar(p.PercentElapsed())
}

// bar draws a progress bar along the bottom of the screen.
func (v *View) bar(percent float64) {
	x0, x1 := int16(4), v.c.w-5
	top, bottom := v.c.h-10, v.c.h-3
	v.c.DrawLine(x0, top, x1)
	v.c.DrawLine(x0, bottom, x1)
	fill := int16(math.Round(math.Max(0, math.Min(100, percent)) / 100 * float64(x1-x0)))
	if fill == 0 {
		return
	}
	for y := top + 2; y <= bottom-2; y++ {
		v.c.DrawLine(x0, y, x0+fill)
	}
}

func (v *View) drawDate(label string, epoch int64, editing bool, field nav.DateField) {
	v.title(label, editing)
	t := time.Unix(epoch, 0).UTC()
	s := fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
	v.c.DrawCenteredText(s, true, true)
	if !editing {
		return
	}

	// underline the field under edit
	left := (v.c.w - v.c.TextWidth(s)) / 2
	parts := [...][2]int{{0, 4}, {5, 7}, {8, 10}}
	if len(s) != 10 {
		// years past 9999 or before 0 widen the year
		n := len(s) - 6
		parts = [...][2]int{{0, n}, {n + 1, n + 3}, {n + 4, n + 6}}
	}
	p := parts[field]
	x := left + v.c.TextWidth(s[:p[0]])
	v.c.DrawLine(x, v.c.cy-1, x+v.c.TextWidth(s[p[0]:p[1]])-1)
}

// FormatUTC renders an offset in hours as UTC±hh:mm.
func FormatUTC(h float64) string {
	sign := '+'
	if h < 0 {
		sign = '-'
		h = -h
	}
	mins := int(math.Round(h * 60))
	return fmt.Sprintf("UTC%c%02d:%02d", sign, mins/60, mins%60)
}
