package compositor

// Options carries the optional parameters accepted by [Blend]. Every field
// is a pointer so the zero value of Options means "use the overlay's own
// dimensions / no scale / no rotation / fully opaque / top-left anchor".
type Options struct {
	// Width and Height override the overlay's own pixel dimensions before
	// ScaleX/ScaleY are applied. Nil means use the overlay's bitmap size.
	Width, Height *float64
	// ScaleX and ScaleY multiply Width/Height (or the overlay's own size).
	// Nil means 1.0.
	ScaleX, ScaleY *float64
	// RotationDeg rotates the resized overlay about its own center,
	// clockwise, in degrees. Nil means 0.
	RotationDeg *float64
	// Opacity modulates the overlay's alpha channel, 0..255. Nil means 255
	// (fully opaque — an identity operation).
	Opacity *int
	// AnchorX and AnchorY pick which point of the overlay, in [0,1]^2,
	// lands on (x, y). Nil means 0 (top-left corner).
	AnchorX, AnchorY *float64
}

func f64(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func i(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
