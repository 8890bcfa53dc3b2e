package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"noisekit/internal/heightmap"
)

// Image paints hm through ramp, one pixel per cell.
func Image(hm *heightmap.HeightMap, ramp Ramp) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, hm.Width(), hm.Height()))
	for y := 0; y < hm.Height(); y++ {
		for x := 0; x < hm.Width(); x++ {
			c := ramp.Color(hm.Value(x, y))
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}
	return img
}

// EncodePNG writes hm as a PNG image coloured through ramp.
func EncodePNG(w io.Writer, hm *heightmap.HeightMap, ramp Ramp) error {
	if err := png.Encode(w, Image(hm, ramp)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Lines draws hm as newline-terminated half-block rows for a plain terminal,
// two map rows per line. An odd last row gets a black background.
func Lines(hm *heightmap.HeightMap, ramp Ramp) string {
	var sb strings.Builder
	for y := 0; y < hm.Height(); y += 2 {
		for x := 0; x < hm.Width(); x++ {
			top := ramp.Color(hm.Value(x, y))
			bottom := pixelColor(hm, ramp, x, y+1)
			WriteCellSGR(&sb, Cell{
				Ch:  UpperHalf,
				FgR: top.R, FgG: top.G, FgB: top.B,
				BgR: bottom.R, BgG: bottom.G, BgB: bottom.B,
			})
		}
		sb.WriteString(Reset)
		sb.WriteByte('\n')
	}
	return sb.String()
}
