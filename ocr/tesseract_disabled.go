//go:build !localocr_tesseract && !test

package ocr

import (
	"context"
	"errors"
)

var errTesseractNotCompiled = errors.New("OCR is not possible because binary wasnt compiled with internal tesseract OCR provider")

const FeatureTesseractEnabled = false

type TesseractFactory struct {
}

func NewTesseractFactory(config TesseractConfig) *TesseractFactory {
	return &TesseractFactory{}
}

func (f *TesseractFactory) CreateWorker(ctx context.Context, lang string) (Worker, error) {
	return nil, errors.Join(ErrRuntimeUnavailable, errTesseractNotCompiled)
}
