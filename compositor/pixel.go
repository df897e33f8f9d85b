package compositor

import "image/color"

// blendPixel composes overlay over base using a straight-over alpha blend:
// alpha_c = alpha_o + alpha_b*(1-alpha_o); if the composite alpha is zero
// the base pixel is returned unchanged, otherwise every channel is the
// alpha-weighted mix.
func blendPixel(base, overlay color.RGBA) color.RGBA {
	alphaO := float64(overlay.A) / 255.0
	alphaB := float64(base.A) / 255.0
	alphaC := alphaO + alphaB*(1-alphaO)

	if alphaC <= 0 {
		return base
	}

	mix := func(o, b uint8) uint8 {
		v := (float64(o)*alphaO + float64(b)*alphaB*(1-alphaO)) / alphaC
		return clampU8(v)
	}

	return color.RGBA{
		R: mix(overlay.R, base.R),
		G: mix(overlay.G, base.G),
		B: mix(overlay.B, base.B),
		A: clampU8(alphaC * 255.0),
	}
}
