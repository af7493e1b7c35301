// Package sim runs the clock on a desktop: a monochrome panel standing in for
// the OLED and a keyboard-driven knob standing in for the rotary encoder.
package sim

import (
	"image"
	"image/color"
	"sync"
)

var (
	// OLED-ish foreground and background
	On  = color.RGBA{R: 0x9c, G: 0xe8, B: 0xff, A: 0xff}
	Off = color.RGBA{A: 0xff}
)

// Panel is a 1-bit drivers.Displayer. Drawing goes to a back buffer; Display
// publishes it to the front image that the window reads.
type Panel struct {
	w, h int16
	back []bool

	mu    sync.Mutex
	front *image.RGBA
	shown int
}

func NewPanel(w, h int16) *Panel {
	p := &Panel{
		w:     w,
		h:     h,
		back:  make([]bool, int(w)*int(h)),
		front: image.NewRGBA(image.Rect(0, 0, int(w), int(h))),
	}
	p.paint()
	return p
}

func (p *Panel) Size() (x, y int16) { return p.w, p.h }

// SetPixel lights any pixel whose color is not black.
func (p *Panel) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	p.back[int(y)*int(p.w)+int(x)] = c.R|c.G|c.B != 0
}

func (p *Panel) ClearBuffer() {
	clear(p.back)
}

func (p *Panel) Display() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paint()
	p.shown++
	return nil
}

func (p *Panel) paint() {
	for i, lit := range p.back {
		c := Off
		if lit {
			c = On
		}
		j := i * 4
		p.front.Pix[j+0] = c.R
		p.front.Pix[j+1] = c.G
		p.front.Pix[j+2] = c.B
		p.front.Pix[j+3] = c.A
	}
}

// CopyTo copies the last displayed frame into dst, which must be
// len(front.Pix) bytes.
func (p *Panel) CopyTo(dst []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(dst, p.front.Pix)
}

// Lit reports whether (x, y) was lit in the last displayed frame.
func (p *Panel) Lit(x, y int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.front.RGBAAt(x, y) == On
}

// Frames is the number of Display calls so far.
func (p *Panel) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}
