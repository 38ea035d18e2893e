package imageprep

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 200, A: 255})
		}
	}
	return img
}

func encodedPNG(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	assert.Equal(t, "image/png", Detect(encodedPNG(t)))
	assert.True(t, IsPNG(encodedPNG(t)))

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage()))
	assert.Equal(t, "image/bmp", Detect(buf.Bytes()))
	assert.False(t, IsPNG(buf.Bytes()))
}

func TestToPNGKeepsPNG(t *testing.T) {
	data := encodedPNG(t)
	out, err := ToPNG(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestToPNGTranscodes(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer, image.Image) error{
		"bmp": func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) },
		"tiff": func(b *bytes.Buffer, img image.Image) error {
			return tiff.Encode(b, img, nil)
		},
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf, testImage()))

			out, err := ToPNG(buf.Bytes())
			require.NoError(t, err)
			require.True(t, IsPNG(out))

			decoded, err := png.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, testImage().Bounds(), decoded.Bounds())
		})
	}
}

func TestToPNGRejectsGarbage(t *testing.T) {
	_, err := ToPNG([]byte("definitely not an image"))
	require.ErrorIs(t, err, ErrBadImage)
}

func TestDetectDropsParameters(t *testing.T) {
	assert.Equal(t, "text/plain", Detect([]byte("plain text")))
}
