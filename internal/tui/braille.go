package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// canvas is the map area: a braille dot layer with styled cell spans on top.
type canvas struct {
	w, h    int        // in cells
	m       [][]uint8  // per-cell braille mask
	spans   [][]string // styled text starting at a cell
	covered [][]bool   // cell is hidden under a span starting to its left
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.m = make([][]uint8, h)
	c.spans = make([][]string, h)
	c.covered = make([][]bool, h)
	for i := range c.m {
		c.m[i] = make([]uint8, w)
		c.spans[i] = make([]string, w)
		c.covered[i] = make([]bool, w)
	}
	return c
}

// braille bit for each dot of a cell, indexed [column][row].
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setDot sets a dot at dot coordinates (2x4 per cell).
func (c *canvas) setDot(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.m[cy][cx] |= dotBits[mx%2][my%4]
}

// drawLine draws a dot line using Bresenham.
func (c *canvas) drawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setDot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// put places styled text with its first cell at (x, y), clipped to the canvas.
func (c *canvas) put(x, y int, s string) {
	if y < 0 || y >= c.h {
		return
	}
	if x < 0 {
		s = ansi.TruncateLeft(s, -x, "")
		x = 0
	}
	if x >= c.w {
		return
	}
	s = ansi.Truncate(s, c.w-x, "")
	n := lipgloss.Width(s)
	if n == 0 {
		return
	}
	if c.covered[y][x] {
		// cut the span this one lands on
		for o := x - 1; o >= 0; o-- {
			if !c.covered[y][o] {
				c.spans[y][o] = ansi.Truncate(c.spans[y][o], x-o, "")
				break
			}
		}
	}
	c.spans[y][x] = s
	c.covered[y][x] = false
	end := min(x+n, c.w)
	for i := x + 1; i < end; i++ {
		c.covered[y][i] = true
		c.spans[y][i] = ""
	}
	for i := end; i < c.w && c.covered[y][i]; i++ {
		c.covered[y][i] = false
	}
}

func (c *canvas) lines() []string {
	out := make([]string, c.h)
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		b.Reset()
		for x := 0; x < c.w; x++ {
			switch {
			case c.covered[y][x]:
			case c.spans[y][x] != "":
				b.WriteString(c.spans[y][x])
			case c.m[y][x] != 0:
				b.WriteRune(rune(0x2800 + int(c.m[y][x])))
			default:
				b.WriteByte(' ')
			}
		}
		out[y] = b.String()
	}
	return out
}

// splice writes box over lines with its top-left cell at (x, y).
func splice(lines []string, box string, x, y int) {
	for i, bl := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		line := lines[row]
		left := ansi.Truncate(line, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(bl), "")
		lines[row] = left + bl + right
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
