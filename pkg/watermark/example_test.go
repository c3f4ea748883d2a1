package watermark_test

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"watermarker/pkg/watermark"
)

func ExampleCompositor_Composite() {
	base := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(base, base.Bounds(), image.NewUniform(color.RGBA{10, 20, 30, 255}), image.Point{}, draw.Src)
	mark := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(mark, mark.Bounds(), image.NewUniform(color.RGBA{200, 100, 50, 255}), image.Point{}, draw.Src)

	c, err := watermark.NewCompositor(base, mark, watermark.NoTransparency(), 50)
	if err != nil {
		fmt.Println(err)
		return
	}
	out, err := c.Composite(watermark.Single{X: 1, Y: 1})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out.RGBAAt(0, 0))
	fmt.Println(out.RGBAAt(1, 1))
	fmt.Println(out.RGBAAt(2, 2))
	fmt.Println(out.RGBAAt(3, 3))

	// Output:
	// {10 20 30 255}
	// {105 60 40 255}
	// {105 60 40 255}
	// {10 20 30 255}
}
