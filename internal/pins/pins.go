// Package pins feeds an encoder.Decoder from Linux GPIO lines. Each line gets
// a goroutine blocked on its edge interrupt, standing in for the pin
// interrupt handlers of the microcontroller builds.
package pins

import (
	"context"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/barrettotte/memento-mori/internal/clock"
	"github.com/barrettotte/memento-mori/internal/encoder"
)

// how long a watcher blocks before checking for cancellation
const edgeWait = 100 * time.Millisecond

type Encoder struct {
	A, B, Button gpio.PinIn
}

// Attach configures the lines with pull-ups and starts watching A and the
// button. The watchers stop when ctx is done; Wait blocks until they have.
func (e Encoder) Attach(ctx context.Context, dec *encoder.Decoder, millis clock.Millis) (*Watch, error) {
	if err := e.A.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("pins: %s: %w", e.A, err)
	}
	if err := e.B.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("pins: %s: %w", e.B, err)
	}
	if err := e.Button.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return nil, fmt.Errorf("pins: %s: %w", e.Button, err)
	}
	dec.Seed(bool(e.A.Read()))

	w := &Watch{}
	w.wg.Add(2)
	go w.loop(ctx, e.A, func(l gpio.Level) {
		dec.OnChannelEdge(bool(l), bool(e.B.Read()))
	})
	go w.loop(ctx, e.Button, func(l gpio.Level) {
		dec.OnButtonEdge(l == gpio.Low, millis.Millis())
	})
	return w, nil
}

type Watch struct {
	wg sync.WaitGroup
}

func (w *Watch) Wait() { w.wg.Wait() }

func (w *Watch) loop(ctx context.Context, p gpio.PinIn, fn func(gpio.Level)) {
	defer w.wg.Done()
	for ctx.Err() == nil {
		if p.WaitForEdge(edgeWait) {
			fn(p.Read())
		}
	}
}
