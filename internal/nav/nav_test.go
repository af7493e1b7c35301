package nav

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/barrettotte/memento-mori/internal/config"
	"github.com/barrettotte/memento-mori/internal/encoder"
)

type fakeSaver struct {
	saved []config.Config
	err   error
}

func (s *fakeSaver) Save(c config.Config) error {
	s.saved = append(s.saved, c)
	return s.err
}

type fakeSyncer struct {
	calls int
	seen  []float64
	cfg   *config.Config
	err   error
}

func (s *fakeSyncer) Resync(context.Context) error {
	s.calls++
	s.seen = append(s.seen, s.cfg.UTCOffset)
	return s.err
}

type harness struct {
	m       *Machine
	cfg     *config.Config
	saver   *fakeSaver
	syncer  *fakeSyncer
	redraws int
}

func newHarness() *harness {
	cfg := config.Default()
	h := &harness{cfg: &cfg, saver: &fakeSaver{}}
	h.syncer = &fakeSyncer{cfg: h.cfg}
	h.m = New(h.cfg, h.saver, h.syncer, func() { h.redraws++ }, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return h
}

func (h *harness) goTo(t *testing.T, p Page) {
	t.Helper()
	for i := 0; i < BrowseCount && h.m.Page() != p; i++ {
		h.m.Tick(encoder.CW)
	}
	if h.m.Page() != p {
		t.Fatalf("could not reach %v", p)
	}
	h.redraws = 0
}

func TestBootPage(t *testing.T) {
	h := newHarness()
	if h.m.Page() != IdleTime {
		t.Fatalf("boot page = %v", h.m.Page())
	}
	if _, ok := h.m.Cursor(); ok {
		t.Fatal("cursor outside date edit")
	}
}

func TestBrowseWraparound(t *testing.T) {
	h := newHarness()
	h.m.Tick(encoder.CCW)
	if h.m.Page() != ShowNTP {
		t.Fatalf("CCW from IdleTime = %v, want ShowNTP", h.m.Page())
	}
	h.m.Tick(encoder.CW)
	if h.m.Page() != IdleTime {
		t.Fatalf("CW from ShowNTP = %v, want IdleTime", h.m.Page())
	}
	if h.redraws != 2 {
		t.Fatalf("redraws = %d, want 2", h.redraws)
	}
}

func TestBrowseRandomTicks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		h := newHarness()
		start := rng.Intn(BrowseCount)
		h.goTo(t, Page(start))

		sum := 0
		n := rng.Intn(100)
		for i := 0; i < n; i++ {
			dir := encoder.CW
			if rng.Intn(2) == 0 {
				dir = encoder.CCW
			}
			sum += int(dir)
			h.m.Tick(dir)
			if !h.m.Page().Browse() {
				t.Fatalf("left browse range: %v", h.m.Page())
			}
		}
		want := ((start+sum)%BrowseCount + BrowseCount) % BrowseCount
		if int(h.m.Page()) != want {
			t.Fatalf("trial %d: page = %d, want %d", trial, h.m.Page(), want)
		}
		if h.redraws != n {
			t.Fatalf("trial %d: redraws = %d, want %d", trial, h.redraws, n)
		}
	}
}

func TestPressOnIdleIsNoop(t *testing.T) {
	for _, p := range []Page{IdleTime, IdleYear, IdleLife} {
		h := newHarness()
		h.goTo(t, p)
		h.m.Press(context.Background())
		if h.m.Page() != p || h.redraws != 0 {
			t.Fatalf("press on %v moved to %v with %d redraws", p, h.m.Page(), h.redraws)
		}
	}
}

func TestEditUTC(t *testing.T) {
	h := newHarness()
	h.goTo(t, ShowUTC)

	h.m.Press(context.Background())
	if h.m.Page() != SetUTC {
		t.Fatalf("page = %v, want SetUTC", h.m.Page())
	}
	if _, ok := h.m.Cursor(); ok {
		t.Fatal("cursor while editing UTC")
	}

	h.m.Tick(encoder.CW)
	h.m.Tick(encoder.CW)
	h.m.Tick(encoder.CCW)
	h.m.Tick(encoder.CW)
	if h.cfg.UTCOffset != config.DefaultUTC+0.5 {
		t.Fatalf("UTCOffset = %v", h.cfg.UTCOffset)
	}
	if h.m.Page() != SetUTC {
		t.Fatal("tick while editing changed page")
	}
	if len(h.saver.saved) != 0 {
		t.Fatal("saved on tick")
	}

	h.redraws = 0
	h.m.Press(context.Background())
	if h.m.Page() != ShowUTC {
		t.Fatalf("page after commit = %v, want ShowUTC", h.m.Page())
	}
	if len(h.saver.saved) != 1 || h.saver.saved[0].UTCOffset != config.DefaultUTC+0.5 {
		t.Fatalf("saved = %+v", h.saver.saved)
	}
	if h.syncer.calls != 1 || h.syncer.seen[0] != config.DefaultUTC+0.5 {
		t.Fatalf("resync calls = %d seen %v, want one with new offset", h.syncer.calls, h.syncer.seen)
	}
	if h.redraws != 1 {
		t.Fatalf("redraws = %d, want 1", h.redraws)
	}
}

func TestEditUTCClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h := newHarness()
	h.goTo(t, ShowUTC)
	h.m.Press(context.Background())

	start := h.cfg.UTCOffset
	for i := 0; i < 500; i++ {
		dir := encoder.CW
		if rng.Intn(3) == 0 {
			dir = encoder.CCW
		}
		h.m.Tick(dir)
		v := h.cfg.UTCOffset
		if v < config.MinUTC || v > config.MaxUTC {
			t.Fatalf("offset %v out of range", v)
		}
		if q := (v - start) / config.UTCStep; q != float64(int(q)) {
			t.Fatalf("offset %v not a quarter step from %v", v, start)
		}
	}
}

func TestEditBirthThreePresses(t *testing.T) {
	h := newHarness()
	h.goTo(t, ShowBirth)

	h.m.Press(context.Background())
	if h.m.Page() != SetBirth {
		t.Fatalf("page = %v, want SetBirth", h.m.Page())
	}
	if f, ok := h.m.Cursor(); !ok || f != Year {
		t.Fatalf("cursor = %v, %v; want year", f, ok)
	}

	for i, want := range []DateField{Month, Day} {
		h.m.Press(context.Background())
		if f, _ := h.m.Cursor(); f != want {
			t.Fatalf("press %d: cursor = %v, want %v", i+1, f, want)
		}
		if len(h.saver.saved) != 0 {
			t.Fatalf("press %d: saved early", i+1)
		}
	}

	h.m.Press(context.Background())
	if h.m.Page() != ShowBirth {
		t.Fatalf("page = %v, want ShowBirth", h.m.Page())
	}
	if len(h.saver.saved) != 1 {
		t.Fatalf("saves = %d, want 1", len(h.saver.saved))
	}
	if _, ok := h.m.Cursor(); ok {
		t.Fatal("cursor survived commit")
	}
	if h.syncer.calls != 0 {
		t.Fatal("date commit triggered resync")
	}

	// re-entering starts from the year again
	h.m.Press(context.Background())
	if f, ok := h.m.Cursor(); !ok || f != Year {
		t.Fatalf("cursor on re-entry = %v", f)
	}
}

func TestEditDateFields(t *testing.T) {
	h := newHarness()
	h.goTo(t, ShowDeath)
	h.m.Press(context.Background())

	h.m.Tick(encoder.CW) // year +1
	h.m.Press(context.Background())
	h.m.Tick(encoder.CCW) // month -1
	h.m.Tick(encoder.CCW) // month -1
	h.m.Press(context.Background())
	h.m.Tick(encoder.CW) // day +1

	got := time.Unix(h.cfg.Death, 0).UTC()
	want := time.Date(2076, time.November, 2, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("death = %v, want %v", got, want)
	}
	if h.cfg.Birth != config.DefaultBirth {
		t.Fatal("birth changed while editing death")
	}

	h.m.Press(context.Background())
	if h.m.Page() != ShowDeath || len(h.saver.saved) != 1 || h.saver.saved[0].Death != want.Unix() {
		t.Fatalf("page %v saved %+v", h.m.Page(), h.saver.saved)
	}
}

func TestEditDateUnbounded(t *testing.T) {
	h := newHarness()
	h.goTo(t, ShowBirth)
	h.m.Press(context.Background())
	for i := 0; i < 100; i++ {
		h.m.Tick(encoder.CW)
	}
	if h.cfg.Birth <= h.cfg.Death {
		t.Fatal("expected birth to be pushed past death")
	}
}

func TestForceResync(t *testing.T) {
	h := newHarness()
	h.goTo(t, ShowNTP)
	h.syncer.err = errors.New("timeout")

	h.m.Press(context.Background())
	if h.syncer.calls != 1 {
		t.Fatalf("resync calls = %d", h.syncer.calls)
	}
	if h.m.Page() != IdleTime {
		t.Fatalf("page = %v, want IdleTime", h.m.Page())
	}
	if h.redraws != 1 {
		t.Fatalf("redraws = %d, want 1", h.redraws)
	}
}

func TestSaveFailureStillLeavesEdit(t *testing.T) {
	h := newHarness()
	h.saver.err = errors.New("flash full")
	h.goTo(t, ShowUTC)
	h.m.Press(context.Background())
	h.m.Press(context.Background())
	if h.m.Page() != ShowUTC {
		t.Fatalf("page = %v", h.m.Page())
	}
}

func TestHandleDispatch(t *testing.T) {
	h := newHarness()
	h.m.Handle(context.Background(), encoder.Event{Kind: encoder.Tick, Dir: encoder.CW})
	if h.m.Page() != IdleYear {
		t.Fatalf("page = %v", h.m.Page())
	}
	h.goTo(t, ShowUTC)
	h.m.Handle(context.Background(), encoder.Event{Kind: encoder.Press})
	if h.m.Page() != SetUTC {
		t.Fatalf("page = %v", h.m.Page())
	}
}
