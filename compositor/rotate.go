package compositor

import (
	"image"
	"image/color"
	"math"
)

// expandCanvas returns a transparent canvas sized to the axis-aligned
// bounding box of img rotated by angleDeg, with img pasted centered on it.
// This must run before rotation so the rotated corners never clip.
func expandCanvas(img *image.RGBA, angleDeg float64) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rad := angleDeg * math.Pi / 180
	cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	newW := int(math.Ceil(float64(w)*cos + float64(h)*sin))
	newH := int(math.Ceil(float64(w)*sin + float64(h)*cos))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	canvas := image.NewRGBA(image.Rect(0, 0, newW, newH))
	offX := (newW - w) / 2
	offY := (newH - h) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			canvas.SetRGBA(x+offX, y+offY, img.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return canvas
}

// rotateAboutCenter rotates img by angleDeg clockwise about its own center
// using bilinear interpolation, filling any exposed corner with transparent
// black. The output has the same dimensions as img — callers must have
// already expanded the canvas via expandCanvas so nothing gets clipped.
func rotateAboutCenter(img *image.RGBA, angleDeg float64) *image.RGBA {
	if angleDeg == 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(b)

	rad := angleDeg * math.Pi / 180
	// Rotating the destination coordinate backwards into source space
	// (inverse rotation) is what makes every output pixel defined.
	cos, sin := math.Cos(-rad), math.Sin(-rad)
	cx, cy := float64(w)/2, float64(h)/2

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px, py := float64(dx)-cx, float64(dy)-cy
			sx := px*cos-py*sin + cx
			sy := px*sin+py*cos + cy
			out.SetRGBA(b.Min.X+dx, b.Min.Y+dy, bilinearSample(img, sx, sy))
		}
	}
	return out
}

// bilinearSample samples img at fractional coordinates (x, y) in local
// (bounds-relative) space, returning transparent black outside the image.
func bilinearSample(img *image.RGBA, x, y float64) color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	get := func(ix, iy int) (r, g, bl, a float64) {
		if ix < 0 || ix >= w || iy < 0 || iy >= h {
			return 0, 0, 0, 0
		}
		c := img.RGBAAt(b.Min.X+ix, b.Min.Y+iy)
		return float64(c.R), float64(c.G), float64(c.B), float64(c.A)
	}

	r00, g00, b00, a00 := get(x0, y0)
	r10, g10, b10, a10 := get(x0+1, y0)
	r01, g01, b01, a01 := get(x0, y0+1)
	r11, g11, b11, a11 := get(x0+1, y0+1)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	r := lerp(lerp(r00, r10, fx), lerp(r01, r11, fx), fy)
	g := lerp(lerp(g00, g10, fx), lerp(g01, g11, fx), fy)
	bch := lerp(lerp(b00, b10, fx), lerp(b01, b11, fx), fy)
	a := lerp(lerp(a00, a10, fx), lerp(a01, a11, fx), fy)

	return color.RGBA{R: clampU8(r), G: clampU8(g), B: clampU8(bch), A: clampU8(a)}
}

func clampU8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
