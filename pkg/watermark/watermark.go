package watermark

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is used for JPEG output unless the caller overrides it.
const DefaultJPEGQuality = 100

// Info describes a decoded image in terms of color components, bits per
// pixel and whether it carries an alpha channel.
type Info struct {
	Components   int
	BitsPerPixel int
	Alpha        bool
}

// Inspect reports the pixel layout of a decoded image.
func Inspect(img image.Image) Info {
	switch m := img.(type) {
	case *image.YCbCr:
		return Info{Components: 3, BitsPerPixel: 24}
	case *image.NYCbCrA:
		return Info{Components: 3, BitsPerPixel: 32, Alpha: true}
	case *image.RGBA:
		if m.Opaque() {
			return Info{Components: 3, BitsPerPixel: 24}
		}
		return Info{Components: 3, BitsPerPixel: 32, Alpha: true}
	case *image.NRGBA:
		return Info{Components: 3, BitsPerPixel: 32, Alpha: true}
	case *image.RGBA64:
		if m.Opaque() {
			return Info{Components: 3, BitsPerPixel: 48}
		}
		return Info{Components: 3, BitsPerPixel: 64, Alpha: true}
	case *image.NRGBA64:
		return Info{Components: 3, BitsPerPixel: 64, Alpha: true}
	case *image.Paletted:
		return Info{Components: 3, BitsPerPixel: 8, Alpha: !m.Opaque()}
	case *image.Gray:
		return Info{Components: 1, BitsPerPixel: 8}
	case *image.Gray16:
		return Info{Components: 1, BitsPerPixel: 16}
	case *image.CMYK:
		return Info{Components: 4, BitsPerPixel: 32}
	case *image.Alpha:
		return Info{BitsPerPixel: 8, Alpha: true}
	case *image.Alpha16:
		return Info{BitsPerPixel: 16, Alpha: true}
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return Info{Components: 3, BitsPerPixel: 24}
	}
	return Info{Components: 3, BitsPerPixel: 32, Alpha: true}
}

// OpenImage decodes path and checks that it is a 24 or 32-bit RGB(A) image.
// role names the file in diagnostics ("image" or "watermark").
func OpenImage(path, role string) (image.Image, Info, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, Info{}, errFileNotFound(path)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(false))
	if err != nil {
		Logger().Debug("decode failed", slog.String("path", path), slog.Any("err", err))
		return nil, Info{}, errUnsupportedImage(path)
	}
	info := Inspect(img)
	if hdr, ok, err := readPNGHeader(path); err != nil {
		return nil, Info{}, errUnsupportedImage(path)
	} else if ok {
		info = hdr.info(info)
	}
	Logger().Debug("decoded image",
		slog.String("role", role),
		slog.String("path", path),
		slog.String("size", img.Bounds().Size().String()),
		slog.String("type", fmt.Sprintf("%T", img)),
		slog.Int("components", info.Components),
		slog.Int("bpp", info.BitsPerPixel),
		slog.Bool("alpha", info.Alpha),
	)
	if info.Components != 3 {
		return nil, Info{}, errColorComponents(role)
	}
	if info.BitsPerPixel != 24 && info.BitsPerPixel != 32 {
		return nil, Info{}, errBitDepth(role)
	}
	return img, info, nil
}

const (
	pngGray      = 0
	pngRGB       = 2
	pngPaletted  = 3
	pngGrayAlpha = 4
	pngRGBA      = 6
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngHeader holds the IHDR fields the decoder does not expose: the PNG
// decoder widens gray+alpha and gray with tRNS to *image.NRGBA.
type pngHeader struct {
	bitDepth  int
	colorType int
}

// readPNGHeader reports ok=false for files that aren't PNG.
func readPNGHeader(path string) (pngHeader, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return pngHeader{}, false, err
	}
	defer f.Close()

	// signature, IHDR length and type, width, height, depth, color type
	var buf [26]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return pngHeader{}, false, nil
	}
	if !bytes.Equal(buf[:8], pngSignature) {
		return pngHeader{}, false, nil
	}
	if string(buf[12:16]) != "IHDR" || binary.BigEndian.Uint32(buf[8:12]) != 13 {
		return pngHeader{}, false, errors.New("png: missing IHDR")
	}
	return pngHeader{bitDepth: int(buf[24]), colorType: int(buf[25])}, true, nil
}

// info refines decoded, which came from the same file.
func (h pngHeader) info(decoded Info) Info {
	switch h.colorType {
	case pngGray:
		if decoded.Alpha {
			return Info{Components: 1, BitsPerPixel: 2 * h.bitDepth, Alpha: true}
		}
		return Info{Components: 1, BitsPerPixel: h.bitDepth}
	case pngGrayAlpha:
		return Info{Components: 1, BitsPerPixel: 2 * h.bitDepth, Alpha: true}
	case pngPaletted:
		return Info{Components: 3, BitsPerPixel: 8, Alpha: decoded.Alpha}
	case pngRGB:
		// a tRNS chunk adds a transparent color, decoded as an alpha channel
		if decoded.Alpha {
			return Info{Components: 3, BitsPerPixel: 4 * h.bitDepth, Alpha: true}
		}
		return Info{Components: 3, BitsPerPixel: 3 * h.bitDepth}
	case pngRGBA:
		return Info{Components: 3, BitsPerPixel: 4 * h.bitDepth, Alpha: true}
	}
	return decoded
}

// CheckDimensions fails when mark is wider or taller than base.
func CheckDimensions(base, mark image.Image) error {
	b, m := base.Bounds(), mark.Bounds()
	if m.Dx() > b.Dx() || m.Dy() > b.Dy() {
		return errWatermarkTooLarge()
	}
	return nil
}

// OutputFormat accepts names with a non-empty stem and a "jpg" or "png"
// extension, in any letter case.
func OutputFormat(name string) (imaging.Format, error) {
	ext := filepath.Ext(name)
	if strings.TrimSuffix(filepath.Base(name), ext) == "" {
		return 0, errOutputExtension()
	}
	switch strings.ToLower(ext) {
	case ".jpg":
		return imaging.JPEG, nil
	case ".png":
		return imaging.PNG, nil
	}
	return 0, errOutputExtension()
}

// SaveImage encodes img to path in the format named by its extension.
func SaveImage(img image.Image, path string, jpegQuality int) (err error) {
	format, err := OutputFormat(path)
	if err != nil {
		return err
	}
	if jpegQuality < 1 || jpegQuality > 100 {
		return fmt.Errorf("jpeg quality must be in 1..100, got %d", jpegQuality)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
		if err != nil {
			os.Remove(path)
		}
	}()
	Logger().Debug("encoding output", slog.String("path", path), slog.String("format", format.String()))
	return imaging.Encode(out, img, format,
		imaging.JPEGQuality(jpegQuality),
		imaging.PNGCompressionLevel(png.DefaultCompression),
	)
}
