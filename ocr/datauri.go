package ocr

import (
	"errors"

	"github.com/vincent-petithory/dataurl"
)

// Decodes `data:<mime>;base64,<payload>` into raw bytes and declared mime type
func decodeDataURI(dataURI string) ([]byte, string, error) {
	parsed, err := dataurl.DecodeString(dataURI)
	if err != nil {
		return nil, "", errors.Join(ErrDecode, errors.New("failed to decode image data URI"), err)
	}
	if len(parsed.Data) == 0 {
		return nil, "", errors.Join(ErrDecode, errors.New("image data URI has empty payload"))
	}

	return parsed.Data, parsed.MediaType.ContentType(), nil
}
