// Package encoder turns the raw edges of a rotary encoder with a push button
// into discrete, debounced events.
//
// Decoder is the only state shared between interrupt handlers and the main
// loop. Every field is a single atomic word, the handlers do constant work and
// never allocate, and the main loop only ever reads-and-clears the pending
// flags. The channel handler assumes both quadrature channels are filtered in
// hardware (roughly 0.1µF to ground); it looks at a single edge per detent and
// does not run a full quadrature state table.
package encoder

import (
	"sync/atomic"
	"time"
)

// DefaultDebounce is the minimum spacing between two accepted button presses.
const DefaultDebounce = 250 * time.Millisecond

type Direction int8

const (
	CCW Direction = -1
	CW  Direction = 1
)

func (d Direction) String() string {
	switch d {
	case CW:
		return "CW"
	case CCW:
		return "CCW"
	default:
		return "none"
	}
}

type Kind uint8

const (
	Tick Kind = iota + 1
	Press
)

// Event is a single rotation tick or button press.
type Event struct {
	Kind Kind
	Dir  Direction
}

func (e Event) String() string {
	switch e.Kind {
	case Tick:
		return "tick " + e.Dir.String()
	case Press:
		return "press"
	default:
		return "none"
	}
}

// pending tick encodings; zero means no tick.
const (
	tickNone uint32 = iota
	tickCW
	tickCCW
)

type Decoder struct {
	debounce uint32

	prevA atomic.Bool
	tick  atomic.Uint32

	press     atomic.Bool
	armed     atomic.Bool
	lastPress atomic.Uint32
}

// New returns a Decoder that accepts button presses at most once per debounce.
func New(debounce time.Duration) *Decoder {
	return &Decoder{debounce: uint32(debounce.Milliseconds())}
}

// Seed records the resting level of channel A before interrupts are enabled.
// It never produces a tick.
func (d *Decoder) Seed(levelA bool) {
	d.prevA.Store(levelA)
}

// OnChannelEdge is called from the channel A interrupt with the instantaneous
// levels of both channels. On a rising edge of A the direction is clockwise
// when B differs from A's previous level.
func (d *Decoder) OnChannelEdge(levelA, levelB bool) {
	prev := d.prevA.Swap(levelA)
	if !levelA || prev {
		return
	}
	if levelB != prev {
		d.tick.Store(tickCW)
	} else {
		d.tick.Store(tickCCW)
	}
}

// OnButtonEdge is called from the button interrupt. The button is active-low,
// so only falling edges are presses. A press within the debounce interval of
// the last accepted one is dropped.
func (d *Decoder) OnButtonEdge(falling bool, nowMs uint32) {
	if !falling {
		return
	}
	if d.armed.Load() && nowMs-d.lastPress.Load() < d.debounce {
		return
	}
	d.lastPress.Store(nowMs)
	d.armed.Store(true)
	d.press.Store(true)
}

// ConsumeTick returns and clears the pending tick.
func (d *Decoder) ConsumeTick() (Direction, bool) {
	switch d.tick.Swap(tickNone) {
	case tickCW:
		return CW, true
	case tickCCW:
		return CCW, true
	default:
		return 0, false
	}
}

// ConsumePress returns and clears the pending press.
func (d *Decoder) ConsumePress() bool {
	return d.press.Swap(false)
}

// Next returns at most one pending event. A press wins over a tick; the tick
// stays pending for the next call.
func (d *Decoder) Next() (Event, bool) {
	if d.ConsumePress() {
		return Event{Kind: Press}, true
	}
	if dir, ok := d.ConsumeTick(); ok {
		return Event{Kind: Tick, Dir: dir}, true
	}
	return Event{}, false
}
