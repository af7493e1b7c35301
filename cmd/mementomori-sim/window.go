//go:build !tinygo

package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/barrettotte/memento-mori/internal/encoder"
	"github.com/barrettotte/memento-mori/internal/sim"
)

// runWindow opens a window showing panel, scaled by scale, and maps the arrow
// keys to knob turns and Enter or Space to the button. It blocks until the
// window closes.
func runWindow(title string, panel *sim.Panel, knob *sim.Knob, scale int) error {
	w, h := panel.Size()
	g := &game{panel: panel, knob: knob, scratch: make([]byte, int(w)*int(h)*4)}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(w)*scale, int(h)*scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type game struct {
	panel   *sim.Panel
	knob    *sim.Knob
	img     *ebiten.Image
	scratch []byte
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight), inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.knob.Turn(encoder.CW)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft), inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.knob.Turn(encoder.CCW)
	}
	for _, k := range []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace} {
		if inpututil.IsKeyJustPressed(k) {
			g.knob.Press()
		}
		if inpututil.IsKeyJustReleased(k) {
			g.knob.Release()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.panel.Size()
	if g.img == nil {
		g.img = ebiten.NewImage(int(w), int(h))
	}
	g.panel.CopyTo(g.scratch)
	g.img.WritePixels(g.scratch)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.panel.Size()
	return int(w), int(h)
}
