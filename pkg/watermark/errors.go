package watermark

import (
	"errors"
	"fmt"
)

// Validation failure kinds. Every *ValidationError unwraps to one of these.
var (
	ErrFileNotFound         = errors.New("file not found")
	ErrUnsupportedImage     = errors.New("unsupported image")
	ErrColorComponents      = errors.New("color components isn't 3")
	ErrBitDepth             = errors.New("bit depth isn't 24 or 32")
	ErrWatermarkTooLarge    = errors.New("watermark larger than image")
	ErrTransparencyColor    = errors.New("invalid transparency color")
	ErrPercentageRange      = errors.New("transparency percentage out of range")
	ErrPercentageNotInteger = errors.New("transparency percentage not an integer")
	ErrPositionMethod       = errors.New("invalid position method")
	ErrPositionInvalid      = errors.New("invalid position")
	ErrPositionRange        = errors.New("position out of range")
	ErrOutputExtension      = errors.New("invalid output extension")
)

// ValidationError is a user input failure with the one-line diagnostic
// shown to the user.
type ValidationError struct {
	Kind error
	Msg  string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalid(kind error, format string, args ...any) error {
	return &ValidationError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Diagnostics shared by the library and the CLI dialog.
func errFileNotFound(name string) error {
	return invalid(ErrFileNotFound, "The file %s doesn't exist.", name)
}

func errUnsupportedImage(name string) error {
	return invalid(ErrUnsupportedImage, "The file %s isn't a supported image.", name)
}

func errColorComponents(role string) error {
	return invalid(ErrColorComponents, "The number of %s color components isn't 3.", role)
}

func errBitDepth(role string) error {
	return invalid(ErrBitDepth, "The %s isn't 24 or 32-bit.", role)
}

// NewTransparencyColorError reports a malformed transparency color answer.
func NewTransparencyColorError() error {
	return invalid(ErrTransparencyColor, "The transparency color input is invalid.")
}

// NewPercentageNotIntegerError reports a percentage answer that isn't an integer.
func NewPercentageNotIntegerError() error {
	return invalid(ErrPercentageNotInteger, "The transparency percentage isn't an integer number.")
}

// NewPercentageRangeError reports a percentage outside 0..100.
func NewPercentageRangeError() error {
	return invalid(ErrPercentageRange, "The transparency percentage is out of range.")
}

// NewPositionMethodError reports an answer other than "single" or "grid".
func NewPositionMethodError() error {
	return invalid(ErrPositionMethod, "The position method input is invalid.")
}

// NewPositionError reports a malformed position answer.
func NewPositionError() error {
	return invalid(ErrPositionInvalid, "The position input is invalid.")
}

func errPositionRange() error {
	return invalid(ErrPositionRange, "The position input is out of range.")
}

func errWatermarkTooLarge() error {
	return invalid(ErrWatermarkTooLarge, "The watermark's dimensions are larger.")
}

func errOutputExtension() error {
	return invalid(ErrOutputExtension, `The output file extension isn't "jpg" or "png".`)
}
