package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"watermarker/pkg/watermark"
)

var errInputClosed = errors.New("input closed before all answers were given")

// dialog reads one answer per prompt.
type dialog struct {
	in  *bufio.Reader
	out io.Writer
}

func newDialog(in io.Reader, out io.Writer) *dialog {
	return &dialog{in: bufio.NewReader(in), out: out}
}

func (d *dialog) ask(prompt string) (string, error) {
	fmt.Fprintln(d.out, prompt)
	line, err := d.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", errInputClosed
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (d *dialog) confirm(prompt string) (bool, error) {
	answer, err := d.ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}

func (d *dialog) image(role string) (image.Image, watermark.Info, error) {
	label := ""
	if role != "image" {
		label = role + " "
	}
	name, err := d.ask(fmt.Sprintf("Input the %simage filename:", label))
	if err != nil {
		return nil, watermark.Info{}, err
	}
	return watermark.OpenImage(name, role)
}

// transparency picks the mask mode. Watermarks with an alpha channel are
// offered that channel; others may name a color to treat as transparent.
func (d *dialog) transparency(markHasAlpha bool) (watermark.TransparencyMode, error) {
	if markHasAlpha {
		use, err := d.confirm("Do you want to use the watermark's Alpha channel?")
		if err != nil || !use {
			return watermark.NoTransparency(), err
		}
		return watermark.AlphaChannel(), nil
	}
	set, err := d.confirm("Do you want to set a transparency color?")
	if err != nil || !set {
		return watermark.NoTransparency(), err
	}
	answer, err := d.ask("Input a transparency color ([Red] [Green] [Blue]):")
	if err != nil {
		return watermark.NoTransparency(), err
	}
	key, err := parseColor(answer)
	if err != nil {
		return watermark.NoTransparency(), err
	}
	return watermark.ColorKey(key), nil
}

func (d *dialog) percentage() (int, error) {
	answer, err := d.ask("Input the watermark transparency percentage (Integer 0-100):")
	if err != nil {
		return 0, err
	}
	return parsePercentage(answer)
}

func (d *dialog) placement(base, mark image.Image) (watermark.Placement, error) {
	method, err := d.ask("Choose the position method (single, grid):")
	if err != nil {
		return nil, err
	}
	switch method {
	case "single":
	case "grid":
		return watermark.Grid{}, nil
	default:
		return nil, watermark.NewPositionMethodError()
	}

	limit := watermark.MaxOffset(base, mark)
	answer, err := d.ask(fmt.Sprintf("Input the watermark position ([x 0-%d] [y 0-%d]):", limit.X, limit.Y))
	if err != nil {
		return nil, err
	}
	pos, err := parsePosition(answer)
	if err != nil {
		return nil, err
	}
	if err := watermark.CheckPosition(base, mark, pos); err != nil {
		return nil, err
	}
	return pos, nil
}

func (d *dialog) outputName() (string, error) {
	name, err := d.ask("Input the output image filename (jpg or png extension):")
	if err != nil {
		return "", err
	}
	if _, err := watermark.OutputFormat(name); err != nil {
		return "", err
	}
	return name, nil
}

// run asks every question in order, stopping at the first invalid answer,
// then writes the watermarked image.
func run(in io.Reader, out io.Writer, cfg config) error {
	d := newDialog(in, out)

	base, _, err := d.image("image")
	if err != nil {
		return err
	}
	mark, markInfo, err := d.image("watermark")
	if err != nil {
		return err
	}
	if err := watermark.CheckDimensions(base, mark); err != nil {
		return err
	}
	mode, err := d.transparency(markInfo.Alpha)
	if err != nil {
		return err
	}
	weight, err := d.percentage()
	if err != nil {
		return err
	}
	placement, err := d.placement(base, mark)
	if err != nil {
		return err
	}
	name, err := d.outputName()
	if err != nil {
		return err
	}

	c, err := watermark.NewCompositor(base, mark, mode, weight, watermark.WithWorkers(cfg.workers))
	if err != nil {
		return err
	}
	img, err := c.Composite(placement)
	if err != nil {
		return err
	}
	if err := watermark.SaveImage(img, name, cfg.jpegQuality); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	fmt.Fprintf(out, "The watermarked image %s has been created.\n", name)
	return nil
}

func parseColor(s string) (color.RGBA, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return color.RGBA{}, watermark.NewTransparencyColorError()
	}
	var ch [3]uint8
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, watermark.NewTransparencyColorError()
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}

func parsePercentage(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, watermark.NewPercentageNotIntegerError()
	}
	if v < 0 || v > 100 {
		return 0, watermark.NewPercentageRangeError()
	}
	return v, nil
}

func parsePosition(s string) (watermark.Single, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return watermark.Single{}, watermark.NewPositionError()
	}
	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errX != nil || errY != nil {
		return watermark.Single{}, watermark.NewPositionError()
	}
	return watermark.Single{X: x, Y: y}, nil
}
