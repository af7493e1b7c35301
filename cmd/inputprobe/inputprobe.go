//go:build tinygo

// inputprobe shows raw encoder levels and decoded events on the display, for
// checking the wiring and debounce of a new board.
package main

import (
	"fmt"
	"time"

	"github.com/ajanata/textbuf"
	"tinygo.org/x/drivers/ssd1306"

	"github.com/barrettotte/memento-mori/internal/board"
	"github.com/barrettotte/memento-mori/internal/clock"
	"github.com/barrettotte/memento-mori/internal/encoder"
)

func main() {
	boot := time.Now()
	time.Sleep(time.Second)
	println("start")

	b := board.Current()
	b.Blink()
	if err := b.Configure(); err != nil {
		panic(err)
	}

	disp := ssd1306.NewI2C(b.I2C)
	disp.Configure(ssd1306.Config{Width: 128, Height: 64, Address: b.DisplayAddr, VccState: ssd1306.SWITCHCAPVCC})
	disp.ClearDisplay()
	b.Blink()

	buf, err := textbuf.New(disp, textbuf.FontSize6x8)
	if err != nil {
		panic(err)
	}
	buf.AutoFlush = true
	buf.PrintlnInverse("input probe")

	dec := encoder.New(encoder.DefaultDebounce)
	if err := b.AttachEncoder(dec, clock.Since(boot)); err != nil {
		panic(err)
	}

	var ticks, presses int
	for {
		time.Sleep(20 * time.Millisecond)
		if ev, ok := dec.Next(); ok {
			switch ev.Kind {
			case encoder.Tick:
				ticks += int(ev.Dir)
			case encoder.Press:
				presses++
			}
			buf.SetLine(2, "last: "+ev.String())
			println(ev.String())
		}
		buf.SetLine(3, fmt.Sprintf("ticks: %d", ticks))
		buf.SetLine(4, fmt.Sprintf("presses: %d", presses))
		buf.SetLine(6, fmt.Sprintf("A=%t B=%t SW=%t", b.EncoderA.Get(), b.EncoderB.Get(), b.Button.Get()))
	}
}
