//go:build !tinygo

// mementomori-pi runs the clock on a Raspberry Pi with an SSD1306 on I2C and
// a rotary encoder on GPIO. The network link is the host's own.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/barrettotte/memento-mori/internal/app"
	"github.com/barrettotte/memento-mori/internal/clock"
	"github.com/barrettotte/memento-mori/internal/config"
	"github.com/barrettotte/memento-mori/internal/display"
	"github.com/barrettotte/memento-mori/internal/encoder"
	"github.com/barrettotte/memento-mori/internal/ntp"
	"github.com/barrettotte/memento-mori/internal/oled"
	"github.com/barrettotte/memento-mori/internal/pins"
	"github.com/barrettotte/memento-mori/internal/settings"
	"github.com/barrettotte/memento-mori/internal/storage"
)

var (
	busFlag    = flag.String("bus", "", "I2C bus name (default: first available)")
	pinA       = flag.String("a", "GPIO17", "encoder CLK pin")
	pinB       = flag.String("b", "GPIO27", "encoder DT pin")
	pinSwitch  = flag.String("sw", "GPIO22", "encoder switch pin")
	heightFlag = flag.Int("height", 64, "panel height, 32 or 64")
)

func main() {
	flag.Parse()
	boot := time.Now()

	s, err := settings.LoadFromEnv()
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: s.LogLevel}))

	if _, err := host.Init(); err != nil {
		log.Fatalf("host init: %v", err)
	}
	bus, err := i2creg.Open(*busFlag)
	if err != nil {
		log.Fatalf("i2c open: %v", err)
	}
	defer bus.Close()

	opts := ssd1306.DefaultOpts
	opts.H = *heightFlag
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		log.Fatalf("ssd1306: %v", err)
	}
	defer dev.Halt()

	enc := pins.Encoder{
		A:      gpioreg.ByName(*pinA),
		B:      gpioreg.ByName(*pinB),
		Button: gpioreg.ByName(*pinSwitch),
	}
	if enc.A == nil || enc.B == nil || enc.Button == nil {
		log.Fatalf("unknown encoder pin in %s/%s/%s", *pinA, *pinB, *pinSwitch)
	}

	blk, err := storage.OpenFileDevice(s.StoragePath, 256, 4096, 64)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer blk.Close()
	lfs, err := storage.Mount(blk, logger)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer lfs.Unmount()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	millis := clock.Since(boot)
	dec := encoder.New(s.Debounce)
	watch, err := enc.Attach(ctx, dec, millis)
	if err != nil {
		log.Fatalf("encoder: %v", err)
	}

	client := ntp.New(ntp.Config{Host: s.NTPHost, Port: s.NTPPort, Timeout: s.NTPTimeout}, logger)
	a := app.New(app.Options{
		Store:           config.NewStore(lfs),
		NTP:             client,
		Renderer:        display.NewView(display.NewCanvas(oled.NewFramebuffer(dev))),
		Decoder:         dec,
		Millis:          millis,
		Logger:          logger,
		DisplayInterval: s.DisplayInterval,
		SyncInterval:    s.SyncInterval,
	})

	a.Boot(ctx)
	_ = a.Run(ctx)

	watch.Wait()
	_ = client.Close()
	logger.Info("shutdown")
}
