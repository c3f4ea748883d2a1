package watermark

import (
	"fmt"
	"image/color"
)

// ModeKind selects how watermark pixels are masked.
type ModeKind int

const (
	// ModeNone blends every watermark pixel.
	ModeNone ModeKind = iota
	// ModeAlphaChannel gates blending on the watermark's own alpha.
	ModeAlphaChannel
	// ModeColorKey passes the base through wherever the watermark matches a key color.
	ModeColorKey
)

func (k ModeKind) String() string {
	switch k {
	case ModeAlphaChannel:
		return "alpha"
	case ModeColorKey:
		return "color-key"
	default:
		return "none"
	}
}

// TransparencyMode decides, per watermark pixel, whether the base pixel is
// kept or blended. The zero value is ModeNone.
type TransparencyMode struct {
	kind ModeKind
	key  color.RGBA
}

// NoTransparency blends every watermark pixel.
func NoTransparency() TransparencyMode {
	return TransparencyMode{kind: ModeNone}
}

// AlphaChannel uses the watermark alpha: 0 keeps the base pixel, 255 blends
// at the full weight, and anything in between blends at weight*alpha/255.
func AlphaChannel() TransparencyMode {
	return TransparencyMode{kind: ModeAlphaChannel}
}

// ColorKey treats watermark pixels whose RGB equals key as transparent.
func ColorKey(key color.RGBA) TransparencyMode {
	key.A = 0xff
	return TransparencyMode{kind: ModeColorKey, key: key}
}

// Kind reports the masking strategy.
func (m TransparencyMode) Kind() ModeKind { return m.kind }

// Key returns the transparent color of a ModeColorKey mode.
func (m TransparencyMode) Key() (color.RGBA, bool) {
	return m.key, m.kind == ModeColorKey
}

func (m TransparencyMode) String() string {
	if m.kind == ModeColorKey {
		return fmt.Sprintf("%s(%d %d %d)", m.kind, m.key.R, m.key.G, m.key.B)
	}
	return m.kind.String()
}

// Apply returns the output pixel for a watermark pixel laid over base.
// mark is non-premultiplied; its alpha only matters in ModeAlphaChannel.
func (m TransparencyMode) Apply(mark color.NRGBA, base color.RGBA, weight int) color.RGBA {
	base.A = 0xff
	rgb := color.RGBA{R: mark.R, G: mark.G, B: mark.B, A: 0xff}
	switch m.kind {
	case ModeAlphaChannel:
		switch mark.A {
		case 0:
			return base
		case 0xff:
			return Blend(rgb, base, weight)
		default:
			return Blend(rgb, base, weight*int(mark.A)/0xff)
		}
	case ModeColorKey:
		if rgb == m.key {
			return base
		}
		return Blend(rgb, base, weight)
	default:
		return Blend(rgb, base, weight)
	}
}
