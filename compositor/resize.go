package compositor

import (
	"image"

	"golang.org/x/image/draw"
)

// toRGBA returns img as an *image.RGBA, converting only if necessary. Every
// kernel in this package operates on image.RGBA so pixel math stays in
// plain uint8 arithmetic instead of going through the color.Color
// interface on every access.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

// ToRGBA is the exported form of toRGBA, for callers outside this package
// (the scene cache needs it to materialize the clear texture once at
// scene-init time).
func ToRGBA(img image.Image) *image.RGBA {
	return toRGBA(img)
}

// Clone returns an independent copy of img. Blend always mutates its base
// argument in place, so callers that want to keep a cached frame around
// clone it first rather than blend directly onto the cached copy.
func Clone(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// resizeTriangle resamples img to exactly width x height using a bilinear
// ("triangle") filter.
func resizeTriangle(img image.Image, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
