// Package imageprep detects image formats and converts images into PNG
// so they can be handed to OCR engines with limited format support.
package imageprep

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"

	// Decoders registered for image.Decode
	_ "image/gif"
	_ "image/jpeg"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrBadImage = errors.New("bad image or corrupted")

const MimeTypePNG = "image/png"

// Detect returns mime type of the data without parameters, for example `image/png`.
func Detect(data []byte) string {
	mimeType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return mimeType
}

// IsPNG reports whether data looks like PNG image
func IsPNG(data []byte) bool {
	return mimetype.Detect(data).Is(MimeTypePNG)
}

// ToPNG decodes image in any of the supported formats and encodes it as PNG.
// PNG input is returned unchanged.
func ToPNG(data []byte) ([]byte, error) {
	if IsPNG(data) {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Join(ErrBadImage, errors.New("failed to decode image for transcoding"), err)
	}

	var outBuf bytes.Buffer
	if err := png.Encode(&outBuf, img); err != nil {
		return nil, errors.Join(errors.New("failed to transcode image to PNG"), err)
	}
	return outBuf.Bytes(), nil
}
