package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// A terminal cell holds one braille glyph of 2x4 dots and stands for
// CellWidth x CellHeight surface units, so the field keeps the same
// spacing it has in a window.
const (
	CellWidth  = 8
	CellHeight = 16

	dotWidth  = CellWidth / 2
	dotHeight = CellHeight / 4

	brailleBase = 0x2800
)

// brailleBits maps a dot's column and row inside a cell to its bit in the
// braille block.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type cell struct {
	bits rune
	fill color.NRGBA
}

// brailleSurface rasterises dots into braille cells.
type brailleSurface struct {
	cols, rows int
	cells      []cell
}

func newBrailleSurface(cols, rows int) *brailleSurface {
	s := &brailleSurface{}
	s.resize(cols, rows)
	return s
}

func (s *brailleSurface) resize(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	s.cells = make([]cell, s.cols*s.rows)
}

func (s *brailleSurface) Clear() {
	clear(s.cells)
}

// FillCircle sets the braille dot under (x, y). Dots are far smaller than
// a braille dot's footprint, so the radius is ignored.
func (s *brailleSurface) FillCircle(x, y, r float64, c color.Color) {
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || y < 0 {
		return
	}
	dx, dy := int(x/dotWidth), int(y/dotHeight)
	col, row := dx/2, dy/4
	if col >= s.cols || row >= s.rows {
		return
	}

	i := row*s.cols + col
	s.cells[i].bits |= brailleBits[dx%2][dy%4]
	s.cells[i].fill = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// at returns the glyph for a cell, or ' ' when it has no dots.
func (s *brailleSurface) at(col, row int) (rune, color.NRGBA) {
	c := s.cells[row*s.cols+col]
	if c.bits == 0 {
		return ' ', c.fill
	}
	return brailleBase + c.bits, c.fill
}

// flush copies the cells to screen, blending each dot colour over page.
func (s *brailleSurface) flush(screen tcell.Screen, page color.NRGBA) {
	bg := tcell.NewRGBColor(int32(page.R), int32(page.G), int32(page.B))
	for row := range s.rows {
		for col := range s.cols {
			ch, fill := s.at(col, row)
			fg := blend(fill, page)
			style := tcell.StyleDefault.
				Background(bg).
				Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
			screen.SetContent(col, row, ch, nil, style)
		}
	}
}

// blend composites c over an opaque page colour.
func blend(c, page color.NRGBA) color.NRGBA {
	a := float64(c.A) / 255
	mix := func(fg, bg uint8) uint8 {
		return uint8(math.Round(float64(fg)*a + float64(bg)*(1-a)))
	}
	return color.NRGBA{R: mix(c.R, page.R), G: mix(c.G, page.G), B: mix(c.B, page.B), A: 0xff}
}
