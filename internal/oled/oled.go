// Package oled drives an SSD1306 from Linux through periph.io. Framebuffer
// adapts the panel to drivers.Displayer so the same display code runs on
// microcontrollers and on a Raspberry Pi.
package oled

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Drawer is the part of *ssd1306.Dev the framebuffer pushes frames to.
type Drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

type Framebuffer struct {
	dev  Drawer
	img  *image1bit.VerticalLSB
	w, h int16
}

func NewFramebuffer(dev Drawer) *Framebuffer {
	r := dev.Bounds()
	return &Framebuffer{
		dev: dev,
		img: image1bit.NewVerticalLSB(r),
		w:   int16(r.Dx()),
		h:   int16(r.Dy()),
	}
}

func (f *Framebuffer) Size() (x, y int16) { return f.w, f.h }

// SetPixel lights any pixel whose color is not black.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.img.SetBit(int(x), int(y), image1bit.Bit(c.R|c.G|c.B != 0))
}

func (f *Framebuffer) ClearBuffer() {
	clear(f.img.Pix)
}

// Display sends the whole frame.
func (f *Framebuffer) Display() error {
	return f.dev.Draw(f.dev.Bounds(), f.img, image.Point{})
}
