package render

// Viewport maps terminal pixels onto the noise plane. Each terminal cell is
// one pixel wide and two pixels tall.
type Viewport struct {
	CenterX, CenterY float32 // noise coordinates at the screen centre
	Span             float32 // noise units across the viewport width
	PixW, PixH       int     // viewport size in pixels
}

// NewViewport sizes the viewport to the terminal. hudRows reserves space
// for the HUD at the bottom.
func NewViewport(termW, termH, hudRows int, centerX, centerY, span float32) Viewport {
	return Viewport{
		CenterX: centerX,
		CenterY: centerY,
		Span:    span,
		PixW:    max(termW, 1),
		PixH:    2 * max(termH-hudRows, 1),
	}
}

// ToNoise converts a pixel position to noise coordinates. Pixels are square.
func (v Viewport) ToNoise(px, py int) (float32, float32) {
	scale := v.Span / float32(v.PixW)
	return v.CenterX + float32(px-v.PixW/2)*scale,
		v.CenterY + float32(py-v.PixH/2)*scale
}
