//go:build !tinygo

// mementomori-sim runs the clock in a desktop window. The arrow keys turn the
// knob and Enter presses it. Settings come from MM_* environment variables;
// the configuration record persists in a file-backed flash image.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/barrettotte/memento-mori/internal/app"
	"github.com/barrettotte/memento-mori/internal/clock"
	"github.com/barrettotte/memento-mori/internal/config"
	"github.com/barrettotte/memento-mori/internal/display"
	"github.com/barrettotte/memento-mori/internal/encoder"
	"github.com/barrettotte/memento-mori/internal/ntp"
	"github.com/barrettotte/memento-mori/internal/settings"
	"github.com/barrettotte/memento-mori/internal/sim"
	"github.com/barrettotte/memento-mori/internal/storage"
)

// flash image geometry, matching a 256K external flash part
const (
	pageSize  = 256
	blockSize = 4096
	blocks    = 64
)

func main() {
	boot := time.Now()

	s, err := settings.LoadFromEnv()
	if err != nil {
		slog.Error("settings", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: s.LogLevel}))

	dev, err := storage.OpenFileDevice(s.StoragePath, pageSize, blockSize, blocks)
	if err != nil {
		logger.Error("storage", "err", err)
		os.Exit(1)
	}
	defer dev.Close()
	lfs, err := storage.Mount(dev, logger)
	if err != nil {
		logger.Error("storage", "err", err)
		os.Exit(1)
	}
	defer lfs.Unmount()

	millis := clock.Since(boot)
	dec := encoder.New(s.Debounce)
	panel := sim.NewPanel(128, 64)

	client := ntp.New(ntp.Config{Host: s.NTPHost, Port: s.NTPPort, Timeout: s.NTPTimeout}, logger)
	a := app.New(app.Options{
		Store:           config.NewStore(lfs),
		NTP:             client,
		Renderer:        display.NewView(display.NewCanvas(panel)),
		Decoder:         dec,
		Millis:          millis,
		Logger:          logger,
		DisplayInterval: s.DisplayInterval,
		SyncInterval:    s.SyncInterval,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Boot(ctx)
		_ = a.Run(ctx)
	}()

	if err := runWindow("memento mori", panel, sim.NewKnob(dec, millis), 4); err != nil {
		logger.Error("window", "err", err)
	}
	cancel()
	<-done
	_ = client.Close()
}
