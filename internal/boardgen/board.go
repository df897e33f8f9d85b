// Package boardgen synthesizes sprite-sheet bitmaps by stamping one tile
// image into the cells of a boolean grid, for handing to the texture
// registry as synthesized textures.
package boardgen

import (
	"image"
	"image/color"
	"image/draw"
)

// BuildGrid lays tile into every cell of mask that is true, on a
// transparent canvas of len(mask) rows by the longest row's length in
// columns, each cell cellSize pixels square, and returns the result. In a
// ragged mask, rows shorter than the longest leave their missing columns
// blank.
func BuildGrid(tile image.Image, mask [][]bool, cellSize int) *image.RGBA {
	rows := len(mask)
	cols := 0
	for _, row := range mask {
		if len(row) > cols {
			cols = len(row)
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, cols*cellSize, rows*cellSize))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 0}), image.Point{}, draw.Src)

	for i, row := range mask {
		for j, on := range row {
			if !on {
				continue
			}
			dest := image.Rect(j*cellSize, i*cellSize, (j+1)*cellSize, (i+1)*cellSize)
			draw.Draw(canvas, dest, tile, tile.Bounds().Min, draw.Over)
		}
	}
	return canvas
}
