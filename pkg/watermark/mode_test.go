package watermark

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransparencyModeApply(t *testing.T) {
	base := color.RGBA{10, 20, 30, 255}
	mark := color.RGBA{200, 100, 50, 255}
	blended := Blend(mark, base, 50)

	test := []struct {
		name string
		mode TransparencyMode
		mark color.NRGBA
		exp  color.RGBA
	}{
		{"none/opaque", NoTransparency(), color.NRGBA{200, 100, 50, 255}, blended},
		{"none/ignores alpha", NoTransparency(), color.NRGBA{200, 100, 50, 0}, blended},
		{"zero value is none", TransparencyMode{}, color.NRGBA{200, 100, 50, 255}, blended},
		{"alpha/transparent", AlphaChannel(), color.NRGBA{200, 100, 50, 0}, base},
		{"alpha/opaque", AlphaChannel(), color.NRGBA{200, 100, 50, 255}, blended},
		{"alpha/partial", AlphaChannel(), color.NRGBA{200, 100, 50, 128}, Blend(mark, base, 25)},
		{"alpha/nearly transparent", AlphaChannel(), color.NRGBA{200, 100, 50, 1}, base},
		{"key/match", ColorKey(color.RGBA{200, 100, 50, 255}), color.NRGBA{200, 100, 50, 255}, base},
		{"key/match ignores key alpha", ColorKey(color.RGBA{200, 100, 50, 0}), color.NRGBA{200, 100, 50, 255}, base},
		{"key/near miss", ColorKey(color.RGBA{200, 100, 51, 255}), color.NRGBA{200, 100, 50, 255}, blended},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, tt.mode.Apply(tt.mark, base, 50))
		})
	}
}

func TestTransparencyModeAlphaEndpointsAtAnyWeight(t *testing.T) {
	base := color.RGBA{90, 80, 70, 255}
	for weight := 0; weight <= 100; weight += 5 {
		assert.Equal(t, base, AlphaChannel().Apply(color.NRGBA{1, 2, 3, 0}, base, weight))
		assert.Equal(t, Blend(color.RGBA{1, 2, 3, 255}, base, weight),
			AlphaChannel().Apply(color.NRGBA{1, 2, 3, 255}, base, weight))
	}
}

func TestTransparencyModeAccessors(t *testing.T) {
	m := ColorKey(color.RGBA{1, 2, 3, 9})
	key, ok := m.Key()
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, key)
	assert.Equal(t, ModeColorKey, m.Kind())
	assert.Equal(t, "color-key(1 2 3)", m.String())

	_, ok = AlphaChannel().Key()
	assert.False(t, ok)
	assert.Equal(t, "alpha", AlphaChannel().String())
	assert.Equal(t, "none", NoTransparency().String())
}
