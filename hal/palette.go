package hal

import "image/color"

// vgaPalette is the default 16-color text mode palette.
var vgaPalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff}, // black
	{0x00, 0x00, 0xaa, 0xff}, // blue
	{0x00, 0xaa, 0x00, 0xff}, // green
	{0x00, 0xaa, 0xaa, 0xff}, // cyan
	{0xaa, 0x00, 0x00, 0xff}, // red
	{0xaa, 0x00, 0xaa, 0xff}, // magenta
	{0xaa, 0x55, 0x00, 0xff}, // brown
	{0xaa, 0xaa, 0xaa, 0xff}, // light gray
	{0x55, 0x55, 0x55, 0xff}, // dark gray
	{0x55, 0x55, 0xff, 0xff}, // light blue
	{0x55, 0xff, 0x55, 0xff}, // light green
	{0x55, 0xff, 0xff, 0xff}, // light cyan
	{0xff, 0x55, 0x55, 0xff}, // light red
	{0xff, 0x55, 0xff, 0xff}, // light magenta
	{0xff, 0xff, 0x55, 0xff}, // yellow
	{0xff, 0xff, 0xff, 0xff}, // white
}

// attrColors decodes a cell attribute byte.
func attrColors(attr byte) (fg, bg color.RGBA, blink bool) {
	return vgaPalette[attr&0x0f], vgaPalette[(attr>>4)&0x07], attr&0x80 != 0
}
