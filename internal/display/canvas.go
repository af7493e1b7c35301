// Package display draws the device pages on any tinygo drivers.Displayer.
package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

type clearer interface {
	ClearBuffer()
}

// Canvas is a text cursor plus a handful of primitives over a monochrome
// display. It keeps no pixel buffer of its own.
type Canvas struct {
	dev  drivers.Displayer
	font *tinyfont.Font

	w, h   int16
	line   int16
	ascent int16

	cx, cy int16
}

func NewCanvas(dev drivers.Displayer) *Canvas {
	w, h := dev.Size()
	font := &proggy.TinySZ8pt7b
	line := int16(font.YAdvance)
	return &Canvas{
		dev:    dev,
		font:   font,
		w:      w,
		h:      h,
		line:   line,
		ascent: line - line/4,
	}
}

func (c *Canvas) Size() (w, h int16) { return c.w, c.h }

// LineHeight is the vertical advance of one line of text.
func (c *Canvas) LineHeight() int16 { return c.line }

// Clear blanks the display and homes the cursor.
func (c *Canvas) Clear() {
	c.cx, c.cy = 0, 0
	if cl, ok := c.dev.(clearer); ok {
		cl.ClearBuffer()
		return
	}
	for y := int16(0); y < c.h; y++ {
		for x := int16(0); x < c.w; x++ {
			c.dev.SetPixel(x, y, black)
		}
	}
}

// SetCursor moves the top-left of the next line of text.
func (c *Canvas) SetCursor(x, y int16) {
	c.cx, c.cy = x, y
}

// TextWidth is the rendered width of s in pixels.
func (c *Canvas) TextWidth(s string) int16 {
	_, w := tinyfont.LineWidth(c.font, s)
	return int16(w)
}

// DrawText writes s with its top-left corner at (x, y) and moves the cursor
// to the start of the next line.
func (c *Canvas) DrawText(x, y int16, s string) {
	tinyfont.WriteLine(c.dev, c.font, x, y+c.ascent, s, white)
	c.cx, c.cy = x, y+c.line
}

// DrawCenteredText writes s centered on the requested axes. An axis that is
// not centered takes its position from the cursor.
func (c *Canvas) DrawCenteredText(s string, centerH, centerV bool) {
	x, y := c.cx, c.cy
	if centerH {
		x = (c.w - c.TextWidth(s)) / 2
	}
	if centerV {
		y = (c.h - c.line) / 2
	}
	c.DrawText(x, y, s)
	c.cx = 0
}

// DrawLine draws a horizontal line from x1 to x2 inclusive on row y.
func (c *Canvas) DrawLine(x1, y, x2 int16) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.dev.SetPixel(x, y, white)
	}
}

// DrawBitmapFrame draws frame index of the hourglass animation with its
// top-left corner at (x, y). The index wraps.
func (c *Canvas) DrawBitmapFrame(index int, x, y int16) {
	frame := hourglass[index%len(hourglass)]
	for row := 0; row < iconSize; row++ {
		bits := uint16(frame[2*row])<<8 | uint16(frame[2*row+1])
		for col := 0; col < iconSize; col++ {
			if bits&(0x8000>>col) != 0 {
				c.dev.SetPixel(x+int16(col), y+int16(row), white)
			}
		}
	}
}

// Present flushes the frame to the panel.
func (c *Canvas) Present() error {
	return c.dev.Display()
}
