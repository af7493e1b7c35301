package display

const iconSize = 16

// hourglass frames, 16x16, one bit per pixel, MSB leftmost
var hourglass = [...][2 * iconSize]byte{
	{
		0x7F, 0xFE, 0x40, 0x02, 0x3F, 0xFC, 0x1F, 0xF8,
		0x0F, 0xF0, 0x07, 0xE0, 0x03, 0xC0, 0x01, 0x80,
		0x01, 0x80, 0x02, 0x40, 0x04, 0x20, 0x08, 0x10,
		0x10, 0x08, 0x20, 0x04, 0x40, 0x02, 0x7F, 0xFE,
	},
	{
		0x7F, 0xFE, 0x40, 0x02, 0x20, 0x04, 0x1F, 0xF8,
		0x0F, 0xF0, 0x07, 0xE0, 0x03, 0xC0, 0x01, 0x80,
		0x01, 0x80, 0x02, 0x40, 0x04, 0x20, 0x08, 0x10,
		0x10, 0x08, 0x23, 0xC4, 0x47, 0xE2, 0x7F, 0xFE,
	},
	{
		0x7F, 0xFE, 0x40, 0x02, 0x20, 0x04, 0x10, 0x08,
		0x08, 0x10, 0x07, 0xE0, 0x03, 0xC0, 0x01, 0x80,
		0x01, 0x80, 0x02, 0x40, 0x04, 0x20, 0x09, 0x90,
		0x13, 0xC8, 0x27, 0xE4, 0x4F, 0xF2, 0x7F, 0xFE,
	},
	{
		0x7F, 0xFE, 0x40, 0x02, 0x20, 0x04, 0x10, 0x08,
		0x08, 0x10, 0x04, 0x20, 0x02, 0x40, 0x01, 0x80,
		0x01, 0x80, 0x02, 0x40, 0x05, 0xA0, 0x0B, 0xD0,
		0x17, 0xE8, 0x2F, 0xF4, 0x5F, 0xFA, 0x7F, 0xFE,
	},
}

// Frames is the number of hourglass animation frames.
const Frames = len(hourglass)
