package encoder

import (
	"math"
	"testing"
)

// detent drives one full A pulse with B held at b.
func detent(d *Decoder, b bool) {
	d.OnChannelEdge(true, b)
	d.OnChannelEdge(false, b)
}

func TestChannelDirection(t *testing.T) {
	tests := []struct {
		name string
		b    bool
		want Direction
	}{
		{name: "B high leads", b: true, want: CW},
		{name: "B low lags", b: false, want: CCW},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(DefaultDebounce)
			detent(d, tt.b)
			dir, ok := d.ConsumeTick()
			if !ok {
				t.Fatal("expected tick")
			}
			if dir != tt.want {
				t.Fatalf("dir = %v, want %v", dir, tt.want)
			}
			if _, ok := d.ConsumeTick(); ok {
				t.Fatal("tick not cleared")
			}
		})
	}
}

func TestSeedHighNoTick(t *testing.T) {
	d := New(DefaultDebounce)
	d.Seed(true)
	if ev, ok := d.Next(); ok {
		t.Fatalf("Seed(true) left %v pending", ev)
	}

	// the first real edge after a high seed is falling; the next rising edge
	// is the first tick
	d.OnChannelEdge(false, false)
	if _, ok := d.ConsumeTick(); ok {
		t.Fatal("tick from falling edge after seed")
	}
	d.OnChannelEdge(true, false)
	if dir, ok := d.ConsumeTick(); !ok || dir != CCW {
		t.Fatalf("ConsumeTick = %v, %v, want CCW", dir, ok)
	}
}

func TestSeedLowThenRise(t *testing.T) {
	d := New(DefaultDebounce)
	d.Seed(false)
	if _, ok := d.ConsumeTick(); ok {
		t.Fatal("Seed(false) produced a tick")
	}
	d.OnChannelEdge(true, true)
	if dir, ok := d.ConsumeTick(); !ok || dir != CW {
		t.Fatalf("ConsumeTick = %v, %v, want CW", dir, ok)
	}
}

func TestChannelFallingEdgeIgnored(t *testing.T) {
	d := New(DefaultDebounce)
	d.OnChannelEdge(true, true)
	d.ConsumeTick()
	d.OnChannelEdge(false, false)
	d.OnChannelEdge(false, true)
	if _, ok := d.ConsumeTick(); ok {
		t.Fatal("tick from falling/steady edge")
	}
}

func TestButtonDebounce(t *testing.T) {
	d := New(DefaultDebounce)
	d.OnButtonEdge(true, 1000)
	d.OnButtonEdge(true, 1100)
	if !d.ConsumePress() {
		t.Fatal("expected one press")
	}
	if d.ConsumePress() {
		t.Fatal("bounce registered as second press")
	}

	d.OnButtonEdge(true, 1250)
	if !d.ConsumePress() {
		t.Fatal("press after debounce interval dropped")
	}
}

func TestButtonFirstPressAtBoot(t *testing.T) {
	d := New(DefaultDebounce)
	d.OnButtonEdge(true, 3)
	if !d.ConsumePress() {
		t.Fatal("first press dropped")
	}
}

func TestButtonRisingIgnored(t *testing.T) {
	d := New(DefaultDebounce)
	d.OnButtonEdge(false, 1000)
	if d.ConsumePress() {
		t.Fatal("release counted as press")
	}
}

func TestButtonDebounceAcrossWrap(t *testing.T) {
	d := New(DefaultDebounce)
	d.OnButtonEdge(true, math.MaxUint32-100)
	d.ConsumePress()
	d.OnButtonEdge(true, 50) // 151ms later
	if d.ConsumePress() {
		t.Fatal("bounce across wrap accepted")
	}
	d.OnButtonEdge(true, 200) // 301ms later
	if !d.ConsumePress() {
		t.Fatal("press across wrap dropped")
	}
}

func TestNextOneEventPerCall(t *testing.T) {
	d := New(DefaultDebounce)
	detent(d, true)
	d.OnButtonEdge(true, 10)

	ev, ok := d.Next()
	if !ok || ev.Kind != Press {
		t.Fatalf("first event = %v, want press", ev)
	}
	ev, ok = d.Next()
	if !ok || ev.Kind != Tick || ev.Dir != CW {
		t.Fatalf("second event = %v, want tick CW", ev)
	}
	if ev, ok := d.Next(); ok {
		t.Fatalf("unexpected event %v", ev)
	}
}
