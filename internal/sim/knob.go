package sim

import (
	"github.com/barrettotte/memento-mori/internal/clock"
	"github.com/barrettotte/memento-mori/internal/encoder"
)

// Knob feeds a Decoder the pin edges a real encoder would produce.
type Knob struct {
	dec    *encoder.Decoder
	millis clock.Millis
}

func NewKnob(dec *encoder.Decoder, millis clock.Millis) *Knob {
	return &Knob{dec: dec, millis: millis}
}

// Turn emits one detent: A falls then rises, with B high for clockwise.
func (k *Knob) Turn(dir encoder.Direction) {
	cw := dir == encoder.CW
	k.dec.OnChannelEdge(false, !cw)
	k.dec.OnChannelEdge(true, cw)
}

// Press emits the falling edge of the active-low switch.
func (k *Knob) Press() {
	k.dec.OnButtonEdge(true, k.millis.Millis())
}

// Release emits the rising edge, which the decoder ignores.
func (k *Knob) Release() {
	k.dec.OnButtonEdge(false, k.millis.Millis())
}
