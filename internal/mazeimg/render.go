package mazeimg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/yalue/image_utils"

	"github.com/vovakirdan/labyrinth/internal/maze"
)

// arrowLength is the side of the square entrance and exit arrows in pixels.
const arrowLength = 16

var (
	entranceColor = color.RGBA{R: 40, G: 180, B: 70, A: 255}
	exitColor     = color.RGBA{R: 100, G: 120, B: 255, A: 255}
)

// Options controls how a maze is rasterized.
type Options struct {
	CellPixels int  // side of one cell, DefaultCellPixels when zero
	Solution   bool // shade the shortest route from entrance to exit
}

// Margin returns the blank border around the maze, wide enough for the arrows.
func Margin() int {
	return arrowLength + 4
}

// Render rasterizes m with a white margin, a down arrow into the entrance
// and a down arrow out of the exit.
func Render(m *maze.Maze, opts Options) (*image.RGBA, error) {
	var path []maze.Position
	if opts.Solution {
		path = maze.Solve(m)
	}
	pic := NewPicture(m, opts.CellPixels, path)

	margin := Margin()
	size := pic.Bounds().Size().Add(image.Pt(2*margin, 2*margin))
	background := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(background, background.Bounds(), image.White, image.Point{}, draw.Src)

	decorated := image_utils.NewCompositeImage()
	if err := decorated.AddImage(background, image.Pt(0, 0)); err != nil {
		return nil, fmt.Errorf("mazeimg: cannot add background: %w", err)
	}
	origin := image.Pt(margin, margin)
	if err := decorated.AddImage(image_utils.ToRGBA(pic), origin); err != nil {
		return nil, fmt.Errorf("mazeimg: cannot add maze: %w", err)
	}

	half := arrowLength / 2

	// Tip touches the top edge of the entrance cell
	entrance := pic.CellCenter(m.Entrance()).Add(origin)
	entranceTip := image.Pt(entrance.X, origin.Y)
	entranceAt := image.Pt(entranceTip.X-half, entranceTip.Y-arrowLength-1)
	if err := decorated.AddImage(outlinedDownArrow(entranceColor), entranceAt); err != nil {
		return nil, fmt.Errorf("mazeimg: cannot add entrance arrow: %w", err)
	}

	// Tail starts below the bottom edge of the exit cell
	exit := pic.CellCenter(m.Exit()).Add(origin)
	exitTail := image.Pt(exit.X, origin.Y+pic.Bounds().Dy())
	exitAt := image.Pt(exitTail.X-half, exitTail.Y+1)
	if err := decorated.AddImage(outlinedDownArrow(exitColor), exitAt); err != nil {
		return nil, fmt.Errorf("mazeimg: cannot add exit arrow: %w", err)
	}

	return image_utils.ToRGBA(decorated), nil
}

// outlinedDownArrow returns a down arrow in c with a white inner arrow.
func outlinedDownArrow(c color.Color) image.Image {
	outer := image_utils.ResizeImage(image_utils.DownArrow(c), arrowLength, arrowLength)
	inner := image_utils.ResizeImage(image_utils.DownArrow(color.White), arrowLength/2, arrowLength/2)
	arrow := image_utils.NewCompositeImage()
	arrow.AddImage(outer, image.Pt(0, 0))
	arrow.AddImage(inner, image.Pt(arrowLength/4, arrowLength/4))
	return image_utils.ToRGBA(arrow)
}

// WritePNG renders m and encodes it as PNG to w.
func WritePNG(w io.Writer, m *maze.Maze, opts Options) error {
	img, err := Render(m, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("mazeimg: cannot encode png: %w", err)
	}
	return nil
}
