//go:build tinygo

package main

import (
	"context"
	"log/slog"
	"machine"
	"time"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers/ssd1306"

	"github.com/barrettotte/memento-mori/internal/app"
	"github.com/barrettotte/memento-mori/internal/board"
	"github.com/barrettotte/memento-mori/internal/clock"
	"github.com/barrettotte/memento-mori/internal/config"
	"github.com/barrettotte/memento-mori/internal/display"
	"github.com/barrettotte/memento-mori/internal/encoder"
	"github.com/barrettotte/memento-mori/internal/ntp"
	"github.com/barrettotte/memento-mori/internal/settings"
	"github.com/barrettotte/memento-mori/internal/storage"
	"github.com/barrettotte/memento-mori/internal/wifi"
)

var (
	// set with -ldflags "-X main.wifiSSID=... -X main.wifiPassword=..."
	wifiSSID     string
	wifiPassword string
)

func main() {
	boot := time.Now()
	time.Sleep(time.Second)

	b := board.Current()
	b.Blink()
	if err := b.Configure(); err != nil {
		earlyPanic(b, err)
	}
	b.Blink()

	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	dev := ssd1306.NewI2C(b.I2C)
	dev.Configure(ssd1306.Config{Width: 128, Height: 64, Address: b.DisplayAddr, VccState: ssd1306.SWITCHCAPVCC})
	dev.ClearBuffer()
	dev.ClearDisplay()
	b.Blink()

	buf, err := textbuf.New(dev, textbuf.FontSize6x8)
	if err != nil {
		earlyPanic(b, err)
	}
	buf.AutoFlush = true
	_ = buf.Println("memento mori")

	lfs, err := storage.Mount(machine.Flash, logger)
	if err != nil {
		earlyPanic(b, err)
	}
	_ = buf.Println("Storage: ok")

	s := settings.Defaults()
	s.WifiSSID, s.WifiPassword = wifiSSID, wifiPassword
	if _, err := wifi.Connect(s.WifiSSID, s.WifiPassword, buf); err != nil {
		// keep going offline; every resync will fail until the next boot
		logger.Error("wifi: connect", "err", err)
		buf.PrintlnInverse("Wifi: " + err.Error())
		time.Sleep(2 * time.Second)
	}

	millis := clock.Since(boot)
	dec := encoder.New(s.Debounce)
	if err := b.AttachEncoder(dec, millis); err != nil {
		earlyPanic(b, err)
	}

	client := ntp.New(ntp.Config{Host: s.NTPHost, Port: s.NTPPort, Timeout: s.NTPTimeout}, logger)
	a := app.New(app.Options{
		Store:           config.NewStore(lfs),
		NTP:             client,
		Renderer:        display.NewView(display.NewCanvas(dev)),
		Decoder:         dec,
		Millis:          millis,
		Logger:          logger,
		DisplayInterval: s.DisplayInterval,
		SyncInterval:    s.SyncInterval,
	})

	ctx := context.Background()
	a.Boot(ctx)
	_ = a.Run(ctx)
}

// earlyPanic halts the device: there is no way to run without a display or
// storage. The error is repeated on the serial console.
func earlyPanic(b board.Board, err error) {
	for i := 0; ; i++ {
		b.Blink()
		if i%5 == 0 {
			println(err.Error())
		}
	}
}
