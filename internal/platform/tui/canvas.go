package tui

import (
	"math"
	"strings"

	"github.com/paulmach/orb"

	"github.com/vovakirdan/geoquiz/internal/geo"
)

// worldBound is the whole lon/lat plane.
var worldBound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Canvas is a character grid that shows a lon/lat window using a plain
// equirectangular projection. North is up.
type Canvas struct {
	width  int
	height int
	view   orb.Bound
	cells  [][]rune
}

// NewCanvas creates a blank canvas showing view. An empty view shows the
// whole world.
func NewCanvas(width, height int, view orb.Bound) *Canvas {
	width = max(width, 1)
	height = max(height, 1)
	if geo.Width(view) <= 0 || geo.Height(view) <= 0 {
		view = worldBound
	}

	c := &Canvas{width: width, height: height, view: view}
	c.cells = make([][]rune, height)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", width))
	}
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// Set places a rune at a cell. Out-of-range cells are ignored.
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = r
}

// Get returns the rune at a cell, or a space outside the canvas.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y][x]
}

// Project maps a lon/lat point to a cell. ok is false when p is outside
// the view.
func (c *Canvas) Project(p orb.Point) (x, y int, ok bool) {
	if !c.view.Contains(p) {
		return 0, 0, false
	}
	fx := (p.Lon() - c.view.Min.Lon()) / geo.Width(c.view)
	fy := (c.view.Max.Lat() - p.Lat()) / geo.Height(c.view)

	x = geo.Clamp(int(math.Floor(fx*float64(c.width))), 0, c.width-1)
	y = geo.Clamp(int(math.Floor(fy*float64(c.height))), 0, c.height-1)
	return x, y, true
}

// cellRect returns the cells covered by b, clipped to the canvas.
func (c *Canvas) cellRect(b orb.Bound) (x0, y0, x1, y1 int, ok bool) {
	if !c.view.Intersects(b) {
		return 0, 0, 0, 0, false
	}
	clipped := orb.Bound{
		Min: orb.Point{math.Max(b.Min.Lon(), c.view.Min.Lon()), math.Max(b.Min.Lat(), c.view.Min.Lat())},
		Max: orb.Point{math.Min(b.Max.Lon(), c.view.Max.Lon()), math.Min(b.Max.Lat(), c.view.Max.Lat())},
	}
	x0, y0, _ = c.Project(orb.Point{clipped.Min.Lon(), clipped.Max.Lat()})
	x1, y1, _ = c.Project(orb.Point{clipped.Max.Lon(), clipped.Min.Lat()})
	return x0, y0, x1, y1, true
}

// Fill paints every cell covered by b.
func (c *Canvas) Fill(b orb.Bound, r rune) {
	x0, y0, x1, y1, ok := c.cellRect(b)
	if !ok {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y, r)
		}
	}
}

// Outline draws the edge of b with box-drawing characters. Edges cut off
// by the view are not drawn.
func (c *Canvas) Outline(b orb.Bound) {
	x0, y0, x1, y1, ok := c.cellRect(b)
	if !ok {
		return
	}

	for x := x0; x <= x1; x++ {
		if b.Max.Lat() <= c.view.Max.Lat() {
			c.Set(x, y0, '─')
		}
		if b.Min.Lat() >= c.view.Min.Lat() {
			c.Set(x, y1, '─')
		}
	}
	for y := y0; y <= y1; y++ {
		if b.Min.Lon() >= c.view.Min.Lon() {
			c.Set(x0, y, '│')
		}
		if b.Max.Lon() <= c.view.Max.Lon() {
			c.Set(x1, y, '│')
		}
	}
	if x1 > x0 && y1 > y0 {
		c.Set(x0, y0, '┌')
		c.Set(x1, y0, '┐')
		c.Set(x0, y1, '└')
		c.Set(x1, y1, '┘')
	}
}

// Mark places r at the cell of p, if p is in view.
func (c *Canvas) Mark(p orb.Point, r rune) {
	if x, y, ok := c.Project(p); ok {
		c.Set(x, y, r)
	}
}

// String joins the rows with newlines.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow((c.width + 1) * c.height)
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}
