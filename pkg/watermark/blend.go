package watermark

import "image/color"

// Blend mixes a watermark pixel into a base pixel. weight is the watermark's
// share in percent (0..100) and each channel is
//
//	(weight*mark + (100-weight)*base) / 100
//
// truncated toward zero. Alpha is ignored on input and the result is opaque.
func Blend(mark, base color.RGBA, weight int) color.RGBA {
	return color.RGBA{
		R: blendChannel(mark.R, base.R, weight),
		G: blendChannel(mark.G, base.G, weight),
		B: blendChannel(mark.B, base.B, weight),
		A: 0xff,
	}
}

func blendChannel(m, b uint8, weight int) uint8 {
	return uint8((weight*int(m) + (100-weight)*int(b)) / 100)
}
