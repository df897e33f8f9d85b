// Package compositor implements the pixel-level kernels used to draw one
// sprite onto a frame: resize, opacity modulation, rotation with canvas
// expansion, anchor-aware placement, and straight-over alpha blending. All
// work happens on the CPU against image.RGBA; there is no GPU involved.
package compositor

import (
	"image"
)

// Blend composites overlay onto base at (x, y), honoring opts, and returns
// base (mutated in place — the blend is always in-place on the base, so
// output dimensions always equal the base's). Base must already be an
// *image.RGBA; overlay may be any image.Image.
//
// The steps run in a fixed order: resize, opacity, canvas expansion,
// rotation, anchor offset, then the final alpha composite.
func Blend(base *image.RGBA, overlay image.Image, x, y float64, opts Options) *image.RGBA {
	ob := overlay.Bounds()
	overlayW, overlayH := ob.Dx(), ob.Dy()
	if overlayW == 0 || overlayH == 0 {
		return base
	}

	scaleX := f64(opts.ScaleX, 1.0)
	scaleY := f64(opts.ScaleY, 1.0)
	targetW := f64(opts.Width, float64(overlayW)) * scaleX
	targetH := f64(opts.Height, float64(overlayH)) * scaleY

	rotation := f64(opts.RotationDeg, 0)
	opacity := i(opts.Opacity, 255)
	anchorX := f64(opts.AnchorX, 0)
	anchorY := f64(opts.AnchorY, 0)

	resized := resizeTriangle(overlay, int(targetW), int(targetH))
	if resized.Bounds().Dx() == 0 || resized.Bounds().Dy() == 0 {
		return base
	}

	applyOpacity(resized, opacity)

	expanded := expandCanvas(resized, rotation)
	rotated := rotateAboutCenter(expanded, rotation)

	rb := rotated.Bounds()
	destX, destY := anchorOffset(anchorX, anchorY, float64(rb.Dx()), float64(rb.Dy()), x, y)
	blendOver(base, rotated, destX, destY)
	return base
}

// applyOpacity multiplies every pixel's alpha channel by opacity/255,
// clamped to [0, 255]. opacity == 255 is the identity.
func applyOpacity(img *image.RGBA, opacity int) {
	if opacity == 255 {
		return
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 255 {
		opacity = 255
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			newAlpha := float64(c.A) * float64(opacity) / 255.0
			c.A = clampU8(newAlpha)
			img.SetRGBA(x, y, c)
		}
	}
}

// anchorOffset computes the effective top-left placement of the overlay in
// base coordinates. Known limitation: the offset is computed from the
// dimensions of the rotated (expanded) canvas, so for a rotated overlay it
// only lands the anchor point exactly when the anchor is centered
// (0.5, 0.5) — a rotated overlay
// with a non-centered anchor drifts from its nominal anchor point. Left
// as-is rather than patched, since fixing it would change placement for
// every rotated, non-centered sprite already relying on this behavior.
func anchorOffset(anchorX, anchorY, overlayW, overlayH, x, y float64) (float64, float64) {
	anchorOffX := anchorX*overlayW - overlayW*0.5
	anchorOffY := anchorY*overlayH - overlayH*0.5
	unrotatedX := x - anchorOffX - overlayW*0.5
	unrotatedY := y - anchorOffY - overlayH*0.5
	return unrotatedX, unrotatedY
}

// blendOver composites overlay onto base at integer-floored (x, y) using a
// straight (non-premultiplied) alpha-over formula, clipping at the base's
// edges in both directions including negative offsets.
func blendOver(base *image.RGBA, overlay *image.RGBA, x, y float64) {
	baseB := base.Bounds()
	baseW, baseH := baseB.Dx(), baseB.Dy()
	ovB := overlay.Bounds()
	overlayW, overlayH := ovB.Dx(), ovB.Dy()

	xStart := int(floor(x))
	yStart := int(floor(y))

	ovXStart := 0
	if xStart < 0 {
		ovXStart = -xStart
	}
	ovYStart := 0
	if yStart < 0 {
		ovYStart = -yStart
	}

	baseXStart := xStart
	if baseXStart < 0 {
		baseXStart = 0
	}
	baseYStart := yStart
	if baseYStart < 0 {
		baseYStart = 0
	}

	ovXEnd := overlayW
	if rem := ovXStart + baseW - baseXStart; rem < ovXEnd {
		ovXEnd = rem
	}
	ovYEnd := overlayH
	if rem := ovYStart + baseH - baseYStart; rem < ovYEnd {
		ovYEnd = rem
	}

	for oy := ovYStart; oy < ovYEnd; oy++ {
		for ox := ovXStart; ox < ovXEnd; ox++ {
			px := baseXStart + (ox - ovXStart)
			py := baseYStart + (oy - ovYStart)

			basePixel := base.RGBAAt(baseB.Min.X+px, baseB.Min.Y+py)
			overlayPixel := overlay.RGBAAt(ovB.Min.X+ox, ovB.Min.Y+oy)
			base.SetRGBA(baseB.Min.X+px, baseB.Min.Y+py, blendPixel(basePixel, overlayPixel))
		}
	}
}

func floor(v float64) float64 {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}
