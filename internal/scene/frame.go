package scene

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Frame is one render pass. Primitives draw into it in collection order.
type Frame struct {
	Number   uint64
	Viewport Viewport

	buf     *brailleBuf
	text    [][]rune // overlay glyphs, 0 for none
	textCol [][]Color
}

func NewFrame(number uint64, vp Viewport) *Frame {
	f := &Frame{Number: number, Viewport: vp, buf: newBrailleBuf(vp.Width, vp.Height)}
	f.text = make([][]rune, vp.Height)
	f.textCol = make([][]Color, vp.Height)
	for i := range f.text {
		f.text[i] = make([]rune, vp.Width)
		f.textCol[i] = make([]Color, vp.Width)
	}
	return f
}

// stroke describes how a primitive marks dots.
type stroke struct {
	owner     int
	color     Color
	depthTest bool
	depthFail Color
	stipple   bool
	// failStipple stipples the cells that fail the depth test.
	failStipple bool
	dashed      bool
}

// plot marks one dot. With depthTest, a cell owned by another primitive keeps
// its owner and takes the depth-fail colour.
func (f *Frame) plot(mx, my int, s stroke) {
	cx, cy, ok := f.buf.cellOf(mx, my)
	if !ok {
		return
	}
	prev := f.buf.owner[cy][cx]
	failed := s.depthTest && prev != 0 && prev != s.owner
	stipple := s.stipple
	if failed {
		stipple = s.failStipple
	}
	if stipple && (mx+my)%2 != 0 {
		return
	}
	f.buf.setPixel(mx, my)
	if failed {
		f.buf.color[cy][cx] = s.depthFail
		return
	}
	f.buf.color[cy][cx] = s.color
	f.buf.owner[cy][cx] = s.owner
}

// Overlay writes text starting at a cell, clipped to the canvas.
func (f *Frame) Overlay(cx, cy int, text string, c Color) {
	if cy < 0 || cy >= f.Viewport.Height {
		return
	}
	for i, r := range []rune(text) {
		x := cx + i
		if x < 0 || x >= f.Viewport.Width {
			continue
		}
		f.text[cy][x] = r
		f.textCol[cy][x] = c
	}
}

// Cell reports the glyph and colour shown at a cell.
func (f *Frame) Cell(cx, cy int) (rune, Color) {
	if cx < 0 || cy < 0 || cx >= f.Viewport.Width || cy >= f.Viewport.Height {
		return ' ', Color{}
	}
	if r := f.text[cy][cx]; r != 0 {
		return r, f.textCol[cy][cx]
	}
	return f.buf.rune(cx, cy), f.buf.color[cy][cx]
}

// Owner reports which primitive last claimed a cell, 0 for none.
func (f *Frame) Owner(cx, cy int) int {
	if cx < 0 || cy < 0 || cx >= f.Viewport.Width || cy >= f.Viewport.Height {
		return 0
	}
	return f.buf.owner[cy][cx]
}

// PlainLines renders the frame without colour.
func (f *Frame) PlainLines() []string {
	out := make([]string, f.Viewport.Height)
	for y := range out {
		row := make([]rune, f.Viewport.Width)
		for x := range row {
			row[x], _ = f.Cell(x, y)
		}
		out[y] = string(row)
	}
	return out
}

// String renders the frame with colour, grouping runs of equal colour.
func (f *Frame) String() string {
	lines := make([]string, f.Viewport.Height)
	for y := range lines {
		var sb strings.Builder
		var run []rune
		var runCol Color
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == (Color{}) {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(runCol.Terminal()).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < f.Viewport.Width; x++ {
			r, c := f.Cell(x, y)
			if r == ' ' {
				c = Color{}
			}
			if c != runCol {
				flush()
				runCol = c
			}
			run = append(run, r)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
