package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcess_DownscalesKeepingRatio(t *testing.T) {
	p := NewProcessor(80, 100)

	res, err := p.Process(encodePNG(t, 400, 200))
	require.NoError(t, err)
	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 50, res.Height)
	assert.Equal(t, "image/png", res.ContentType)

	decoded, err := png.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
}

func TestProcess_SmallImageUntouchedAndJPEG(t *testing.T) {
	p := NewProcessor(0, 0)

	img := image.NewRGBA(image.Rect(0, 0, 30, 60))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	res, err := p.Process(&buf)
	require.NoError(t, err)
	assert.Equal(t, 30, res.Width)
	assert.Equal(t, 60, res.Height)
	assert.Equal(t, ".jpg", res.Ext)
}

func TestProcess_RejectsNonImage(t *testing.T) {
	_, err := NewProcessor(85, 100).Process(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
