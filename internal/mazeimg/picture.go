// Package mazeimg rasterizes mazes to images and PNG files.
package mazeimg

import (
	"image"
	"image/color"

	"github.com/vovakirdan/labyrinth/internal/maze"
)

// DefaultCellPixels is the side of one maze cell in pixels.
const DefaultCellPixels = 12

var pathColor = color.RGBA{R: 230, G: 20, B: 20, A: 255}

// Picture draws a maze as black walls on white, one square per cell.
// It satisfies image.Image, so it can be encoded or composed directly.
type Picture struct {
	m      *maze.Maze
	cell   int
	onPath map[maze.Position]bool
}

// NewPicture returns a picture of m with the given cell size. Cells on path
// are shaded. A cell size below 4 pixels uses DefaultCellPixels.
func NewPicture(m *maze.Maze, cellPixels int, path []maze.Position) *Picture {
	if cellPixels < 4 {
		cellPixels = DefaultCellPixels
	}
	onPath := make(map[maze.Position]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	return &Picture{m: m, cell: cellPixels, onPath: onPath}
}

func (p *Picture) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *Picture) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.m.Width()*p.cell, p.m.Height()*p.cell)
}

// CellCenter returns the pixel at the center of a cell.
func (p *Picture) CellCenter(pos maze.Position) image.Point {
	return image.Pt(pos.X*p.cell+p.cell/2, pos.Y*p.cell+p.cell/2)
}

func (p *Picture) At(x, y int) color.Color {
	if !image.Pt(x, y).In(p.Bounds()) {
		return color.Transparent
	}
	pos := maze.Position{X: x / p.cell, Y: y / p.cell}
	ox, oy := x%p.cell, y%p.cell
	last := p.cell - 1

	left := ox == 0
	right := ox == last
	top := oy == 0
	bottom := oy == last

	// Corners are clear only if both adjacent walls are clear
	switch {
	case left && top:
		return wallColor(p.m.HasWall(pos, maze.Left) || p.m.HasWall(pos, maze.Top))
	case right && top:
		return wallColor(p.m.HasWall(pos, maze.Right) || p.m.HasWall(pos, maze.Top))
	case right && bottom:
		return wallColor(p.m.HasWall(pos, maze.Right) || p.m.HasWall(pos, maze.Bottom))
	case left && bottom:
		return wallColor(p.m.HasWall(pos, maze.Left) || p.m.HasWall(pos, maze.Bottom))
	case left:
		return wallColor(p.m.HasWall(pos, maze.Left))
	case right:
		return wallColor(p.m.HasWall(pos, maze.Right))
	case top:
		return wallColor(p.m.HasWall(pos, maze.Top))
	case bottom:
		return wallColor(p.m.HasWall(pos, maze.Bottom))
	}

	// Path cells are shaded more than two pixels away from an edge
	if p.onPath[pos] && ox > 1 && ox < last-1 && oy > 1 && oy < last-1 {
		return pathColor
	}
	return color.White
}

func wallColor(wall bool) color.Color {
	if wall {
		return color.Black
	}
	return color.White
}
