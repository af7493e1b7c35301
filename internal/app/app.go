// Package app is the device main loop. App owns all process-lifetime state:
// the configuration, the time source, the navigation machine and the redraw
// and resync schedules. Only the encoder.Decoder it reads from is shared with
// interrupt handlers.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/barrettotte/memento-mori/internal/clock"
	"github.com/barrettotte/memento-mori/internal/config"
	"github.com/barrettotte/memento-mori/internal/display"
	"github.com/barrettotte/memento-mori/internal/encoder"
	"github.com/barrettotte/memento-mori/internal/nav"
	"github.com/barrettotte/memento-mori/internal/ntp"
)

const (
	DefaultDisplayInterval = time.Second
	DefaultSyncInterval    = 300 * time.Second

	// pause between loop passes
	pollTime = 5 * time.Millisecond
)

// Store loads and persists the configuration record.
type Store interface {
	Load() (config.Config, error)
	Save(config.Config) error
}

// TimeSyncer runs one NTP exchange. *ntp.Client satisfies it.
type TimeSyncer interface {
	Sync(ctx context.Context, utcOffsetHours float64) (int64, error)
	LastOutcome() ntp.Outcome
}

// Renderer draws a page. *display.View satisfies it.
type Renderer interface {
	Draw(display.Snapshot) error
}

type Options struct {
	Store    Store
	NTP      TimeSyncer
	Renderer Renderer
	Decoder  *encoder.Decoder
	Millis   clock.Millis
	Logger   *slog.Logger

	DisplayInterval time.Duration
	SyncInterval    time.Duration
}

type App struct {
	cfg    config.Config
	store  Store
	ntp    TimeSyncer
	view   Renderer
	dec    *encoder.Decoder
	millis clock.Millis
	logger *slog.Logger

	src       clock.Source
	nav       *nav.Machine
	drawTimer clock.Timer
	syncTimer clock.Timer

	dirty   bool
	syncing bool
	frame   int
}

func New(opts Options) *App {
	if opts.DisplayInterval <= 0 {
		opts.DisplayInterval = DefaultDisplayInterval
	}
	if opts.SyncInterval <= 0 {
		opts.SyncInterval = DefaultSyncInterval
	}
	a := &App{
		cfg:       config.Default(),
		store:     opts.Store,
		ntp:       opts.NTP,
		view:      opts.Renderer,
		dec:       opts.Decoder,
		millis:    opts.Millis,
		logger:    opts.Logger,
		drawTimer: clock.NewTimer(opts.DisplayInterval),
		syncTimer: clock.NewTimer(opts.SyncInterval),
	}
	a.nav = nav.New(&a.cfg, opts.Store, a, a.invalidate, opts.Logger)
	return a
}

// Boot loads the configuration, falling back to defaults, takes a first NTP
// sample and draws the first page. Neither failure stops the device.
func (a *App) Boot(ctx context.Context) {
	cfg, err := a.store.Load()
	if err != nil {
		a.logger.Warn("app: load config, using defaults", "err", err)
	}
	a.cfg = cfg
	a.logger.Info("app: config", "utc", a.cfg.UTCOffset, "birth", a.cfg.Birth, "death", a.cfg.Death)

	_ = a.Resync(ctx)

	now := a.millis.Millis()
	a.drawTimer.Reset(now)
	a.syncTimer.Reset(now)
	a.draw(now)
}

// Run calls Step until ctx is done.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		a.Step(ctx)
		time.Sleep(pollTime)
	}
}

// Step is one pass of the main loop: at most one encoder event, a due
// periodic resync, and a redraw if anything visible changed.
func (a *App) Step(ctx context.Context) {
	if ev, ok := a.dec.Next(); ok {
		a.logger.Debug("app: input", "event", ev, "page", a.nav.Page())
		a.nav.Handle(ctx, ev)
	}

	now := a.millis.Millis()
	if !a.syncing && a.syncTimer.Fire(now) {
		_ = a.Resync(ctx)
		now = a.millis.Millis()
	}
	if a.drawTimer.Fire(now) {
		a.frame++
		if a.nav.Page().Live() {
			a.dirty = true
		}
	}
	if a.dirty {
		a.draw(now)
	}
}

// Resync sets the time source from NTP using the configured offset. On
// failure the time source keeps counting from its last sample.
func (a *App) Resync(ctx context.Context) error {
	if a.syncing {
		return ntp.ErrBusy
	}
	a.syncing = true
	defer func() { a.syncing = false }()

	epoch, err := a.ntp.Sync(ctx, a.cfg.UTCOffset)
	now := a.millis.Millis()
	a.syncTimer.Reset(now)
	if err != nil {
		a.logger.Warn("app: ntp sync failed", "err", err, "outcome", a.ntp.LastOutcome())
		return err
	}
	a.src.Set(epoch, now)
	a.logger.Info("app: time synced", "time", time.Unix(epoch, 0).UTC().Format(time.DateTime))
	return nil
}

// Config returns a copy of the in-memory configuration.
func (a *App) Config() config.Config { return a.cfg }

// Now returns local epoch seconds, and false while never synced.
func (a *App) Now() (int64, bool) { return a.src.Now(a.millis.Millis()) }

func (a *App) Page() nav.Page { return a.nav.Page() }

func (a *App) invalidate() {
	a.dirty = true
}

func (a *App) draw(now uint32) {
	a.dirty = false
	epoch, synced := a.src.Now(now)
	field, _ := a.nav.Cursor()
	err := a.view.Draw(display.Snapshot{
		Page:   a.nav.Page(),
		Field:  field,
		Now:    epoch,
		Synced: synced,
		Config: a.cfg,
		NTP:    a.ntp.LastOutcome(),
		Frame:  a.frame,
	})
	if err != nil {
		a.logger.Error("app: draw", "err", err)
	}
}
