// Package render draws board snapshots. The board is composed as SVG and
// rasterized to PNG; coordinate labels are stamped on the raster afterwards.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hoho-hoi/othello/internal/othello"
)

const (
	cellUnits  = 80
	boardUnits = cellUnits * othello.Size
)

// Options controls optional board decorations.
type Options struct {
	// Size is the output edge length in pixels; falls back to 640.
	Size int
	// LastMove marks the most recently placed disc.
	LastMove *othello.Position
	// Hints marks the legal moves of the side to move.
	Hints []othello.Position
}

// BoardPNG renders the board to a PNG image.
func BoardPNG(ctx context.Context, b othello.Board, opts Options) ([]byte, error) {
	size := opts.Size
	if size <= 0 {
		size = 640
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(boardSVG(b, opts)))
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	drawCoordinates(img, size)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func boardSVG(b othello.Board, opts Options) []byte {
	var buf bytes.Buffer
	c := svg.New(&buf)
	c.Start(boardUnits, boardUnits)

	c.Rect(0, 0, boardUnits, boardUnits, `fill="#2e7d32"`)
	for i := 0; i <= othello.Size; i++ {
		at := i * cellUnits
		c.Line(at, 0, at, boardUnits, `stroke="#1b5e20"`, `stroke-width="3"`)
		c.Line(0, at, boardUnits, at, `stroke="#1b5e20"`, `stroke-width="3"`)
	}

	for r := 0; r < othello.Size; r++ {
		for col := 0; col < othello.Size; col++ {
			cx := col*cellUnits + cellUnits/2
			cy := r*cellUnits + cellUnits/2
			switch b[r][col] {
			case othello.Black:
				c.Circle(cx, cy, cellUnits/2-8, `fill="#111111"`)
			case othello.White:
				c.Circle(cx, cy, cellUnits/2-8, `fill="#fafafa"`, `stroke="#9e9e9e"`, `stroke-width="2"`)
			}
		}
	}

	for _, p := range opts.Hints {
		cx := p.Col*cellUnits + cellUnits/2
		cy := p.Row*cellUnits + cellUnits/2
		c.Circle(cx, cy, cellUnits/8, `fill="#a5d6a7"`)
	}

	if p := opts.LastMove; p != nil && p.InBounds() {
		cx := p.Col*cellUnits + cellUnits/2
		cy := p.Row*cellUnits + cellUnits/2
		c.Circle(cx, cy, cellUnits/10, `fill="#ef5350"`)
	}

	c.End()
	return buf.Bytes()
}

// drawCoordinates stamps column letters along the top edge and row numbers
// along the left edge.
func drawCoordinates(img *image.RGBA, size int) {
	cell := size / othello.Size
	face := basicfont.Face7x13
	col := image.NewUniform(color.RGBA{255, 255, 255, 220})
	for i := 0; i < othello.Size; i++ {
		d := &font.Drawer{
			Dst:  img,
			Src:  col,
			Face: face,
			Dot:  fixed.P(i*cell+4, 14),
		}
		d.DrawString(string(rune('a' + i)))

		d = &font.Drawer{
			Dst:  img,
			Src:  col,
			Face: face,
			Dot:  fixed.P(2, i*cell+cell-4),
		}
		d.DrawString(fmt.Sprintf("%d", i+1))
	}
}
