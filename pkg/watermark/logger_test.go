package watermark

import (
	"bytes"
	"context"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelError} {
		assert.False(t, l.Enabled(context.Background(), level), "level %v", level)
	}
}

func TestSetLoggerCapturesComposite(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	c, err := NewCompositor(uniformRGBA(3, 3, color.RGBA{}), uniformRGBA(1, 1, color.RGBA{}), AlphaChannel(), 10)
	require.NoError(t, err)
	_, err = c.Composite(Single{X: 2, Y: 0})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "composited watermark")
	assert.Contains(t, buf.String(), "placement=single(2,0)")
	assert.Contains(t, buf.String(), "mode=alpha")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestCompositeWarnsWhenInvisible(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	base := uniformRGBA(3, 3, color.RGBA{10, 20, 30, 255})
	mark := uniformRGBA(2, 2, color.RGBA{200, 100, 50, 255})

	c, err := NewCompositor(base, mark, NoTransparency(), 0)
	require.NoError(t, err)
	_, err = c.Composite(Grid{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "result identical to source")

	buf.Reset()
	c, err = NewCompositor(base, mark, NoTransparency(), 50)
	require.NoError(t, err)
	_, err = c.Composite(Grid{})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
