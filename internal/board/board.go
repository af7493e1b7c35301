//go:build tinygo

// Package board describes the pins and buses of each supported board.
package board

import (
	"machine"
	"time"

	"github.com/barrettotte/memento-mori/internal/clock"
	"github.com/barrettotte/memento-mori/internal/encoder"
)

type Board struct {
	I2C         *machine.I2C
	I2CConfig   machine.I2CConfig
	DisplayAddr uint16

	EncoderA machine.Pin // CLK
	EncoderB machine.Pin // DT
	Button   machine.Pin // SW, active low

	LED machine.Pin
}

// Configure brings up the display bus.
func (b Board) Configure() error {
	return b.I2C.Configure(b.I2CConfig)
}

// AttachEncoder configures the encoder pins with pull-ups and routes their
// interrupts into dec. The handlers only sample pins and touch dec's atomics.
func (b Board) AttachEncoder(dec *encoder.Decoder, millis clock.Millis) error {
	for _, p := range []machine.Pin{b.EncoderA, b.EncoderB, b.Button} {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	// A idles high under the pull-up; seed its level without creating a tick
	dec.Seed(b.EncoderA.Get())

	a, bb := b.EncoderA, b.EncoderB
	err := a.SetInterrupt(machine.PinToggle, func(machine.Pin) {
		dec.OnChannelEdge(a.Get(), bb.Get())
	})
	if err != nil {
		return err
	}
	return b.Button.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		dec.OnButtonEdge(true, millis.Millis())
	})
}

func (b Board) Blink() {
	led := b.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High()
	time.Sleep(100 * time.Millisecond)
	led.Low()
	time.Sleep(100 * time.Millisecond)
}
