// Package nav is the page and edit state machine driven by encoder events.
// It is the only writer of the current page, the edit cursor and, while
// editing, the in-memory configuration.
package nav

import (
	"context"
	"log/slog"
	"time"

	"github.com/barrettotte/memento-mori/internal/config"
	"github.com/barrettotte/memento-mori/internal/encoder"
)

// Saver persists a committed configuration.
type Saver interface {
	Save(config.Config) error
}

// Syncer resynchronizes the time source over NTP using the current
// configuration.
type Syncer interface {
	Resync(ctx context.Context) error
}

type Machine struct {
	state  State
	cfg    *config.Config
	saver  Saver
	syncer Syncer
	redraw func()
	logger *slog.Logger
}

// New returns a Machine on IdleTime. cfg is edited in place; redraw is called
// once for every event that changes what is shown.
func New(cfg *config.Config, saver Saver, syncer Syncer, redraw func(), logger *slog.Logger) *Machine {
	return &Machine{
		state:  Browse{Current: IdleTime},
		cfg:    cfg,
		saver:  saver,
		syncer: syncer,
		redraw: redraw,
		logger: logger,
	}
}

func (m *Machine) State() State { return m.state }
func (m *Machine) Page() Page   { return m.state.Page() }

// Cursor returns the date field under edit, if a date is being edited.
func (m *Machine) Cursor() (DateField, bool) {
	if e, ok := m.state.(EditDate); ok {
		return e.Field, true
	}
	return 0, false
}

// Handle dispatches one encoder event.
func (m *Machine) Handle(ctx context.Context, ev encoder.Event) {
	switch ev.Kind {
	case encoder.Tick:
		m.Tick(ev.Dir)
	case encoder.Press:
		m.Press(ctx)
	}
}

// Tick moves between browse pages, or changes the value under edit.
func (m *Machine) Tick(dir encoder.Direction) {
	switch s := m.state.(type) {
	case Browse:
		next := (int(s.Current) + int(dir)) % BrowseCount
		if next < 0 {
			next += BrowseCount
		}
		m.transition(Browse{Current: Page(next)})
	case EditUTC:
		m.cfg.UTCOffset = config.StepUTC(m.cfg.UTCOffset, int(dir))
		m.redraw()
	case EditDate:
		v := m.date(s.Target)
		*v = stepDate(*v, s.Field, int(dir))
		m.redraw()
	}
}

// Press enters, advances or commits an edit, or forces an NTP resync.
func (m *Machine) Press(ctx context.Context) {
	switch s := m.state.(type) {
	case Browse:
		switch s.Current {
		case ShowUTC:
			m.transition(EditUTC{})
		case ShowBirth:
			m.transition(EditDate{Target: Birth})
		case ShowDeath:
			m.transition(EditDate{Target: Death})
		case ShowNTP:
			m.resync(ctx)
			m.transition(Browse{Current: IdleTime})
		}
	case EditUTC:
		m.commit()
		m.transition(Browse{Current: ShowUTC})
		m.resync(ctx)
	case EditDate:
		if s.Field < lastField {
			s.Field++
			m.state = s
			m.redraw()
			return
		}
		m.commit()
		m.transition(Browse{Current: s.show()})
	}
}

func (m *Machine) transition(next State) {
	m.logger.Debug("nav: transition", "from", m.state.Page(), "to", next.Page())
	m.state = next
	m.redraw()
}

func (m *Machine) date(t DateTarget) *int64 {
	if t == Death {
		return &m.cfg.Death
	}
	return &m.cfg.Birth
}

func (m *Machine) commit() {
	if err := m.saver.Save(*m.cfg); err != nil {
		m.logger.Error("nav: save config", "err", err)
		return
	}
	m.logger.Info("nav: config saved", "utc", m.cfg.UTCOffset, "birth", m.cfg.Birth, "death", m.cfg.Death)
}

func (m *Machine) resync(ctx context.Context) {
	if err := m.syncer.Resync(ctx); err != nil {
		m.logger.Warn("nav: resync", "err", err)
	}
}

// stepDate moves one calendar field of epoch by dir units. Overflowing days
// and months roll into the next larger field; no bound is enforced.
func stepDate(epoch int64, f DateField, dir int) int64 {
	t := time.Unix(epoch, 0).UTC()
	switch f {
	case Year:
		t = t.AddDate(dir, 0, 0)
	case Month:
		t = t.AddDate(0, dir, 0)
	case Day:
		t = t.AddDate(0, 0, dir)
	}
	return t.Unix()
}
