package scene

type brailleBuf struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	color [][]Color // last colour written per cell
	owner [][]int   // primitive that owns the cell, 0 for none
}

func newBrailleBuf(w, h int) *brailleBuf {
	b := &brailleBuf{w: w, h: h}
	b.m = make([][]uint8, h)
	b.color = make([][]Color, h)
	b.owner = make([][]int, h)
	for i := 0; i < h; i++ {
		b.m[i] = make([]uint8, w)
		b.color[i] = make([]Color, w)
		b.owner[i] = make([]int, w)
	}
	return b
}

// dotBits maps the 2x4 position inside a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// cellOf returns the cell of a dot and whether it is on the canvas.
func (b *brailleBuf) cellOf(mx, my int) (int, int, bool) {
	if mx < 0 || my < 0 {
		return 0, 0, false
	}
	cx, cy := mx/2, my/4
	return cx, cy, cx < b.w && cy < b.h
}

// setPixel sets a dot at micro coords (2x4 per cell).
func (b *brailleBuf) setPixel(mx, my int) {
	cx, cy, ok := b.cellOf(mx, my)
	if !ok {
		return
	}
	b.m[cy][cx] |= dotBits[mx%2][my%4]
}

func (b *brailleBuf) rune(cx, cy int) rune {
	mask := b.m[cy][cx]
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
