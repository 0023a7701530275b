package sink

import (
	"hash/fnv"
	"image/color"
)

// palette is the fill cycle for boxes. A box keeps its colour across solves
// because the index is derived from its ID.
var palette = []color.RGBA{
	{0x8e, 0xca, 0xe6, 0xff},
	{0xff, 0xb7, 0x03, 0xff},
	{0x95, 0xd5, 0xb2, 0xff},
	{0xf4, 0xa2, 0x61, 0xff},
	{0xb8, 0xb8, 0xff, 0xff},
	{0xe9, 0xc4, 0x6a, 0xff},
	{0xc9, 0xad, 0xa7, 0xff},
}

var (
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	stroke     = color.RGBA{0x33, 0x33, 0x33, 0xff}
	guideColor = color.RGBA{0xe6, 0x39, 0x46, 0xff}
)

func fillFor(id string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}

func hexColor(c color.RGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}
