//go:build localocr_tesseract || test

package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/guardvision/localocr/imageprep"
	"github.com/otiai10/gosseract/v2"
)

const FeatureTesseractEnabled = true

// Creates Tesseract workers backed by the locally linked tesseract library
type TesseractFactory struct {
	config TesseractConfig
}

func NewTesseractFactory(config TesseractConfig) *TesseractFactory {
	return &TesseractFactory{
		config: config,
	}
}

func (f *TesseractFactory) CreateWorker(ctx context.Context, lang string) (Worker, error) {
	worker := NewTesseract(lang, f.config)
	if err := worker.Init(); err != nil {
		return nil, err
	}
	return worker, nil
}

// Single tesseract engine instance. Not thread safe, callers have to serialize access.
type Tesseract struct {
	client    *gosseract.Client
	languages []string
	config    TesseractConfig
	logger    *slog.Logger
}

func NewTesseract(lang string, config TesseractConfig) *Tesseract {
	return &Tesseract{
		languages: SplitLanguages(lang),
		config:    config,
		logger:    config.logger().With("engine", "tesseract", "lang", lang),
	}
}

func (p *Tesseract) Init() error {
	if len(p.languages) == 0 {
		return errors.New("language tag is empty")
	}
	if p.config.UseModelsFolder {
		if err := CheckModels(os.DirFS(p.config.modelsFolder()), p.languages); err != nil {
			return errors.Join(errors.New("failed to load language models"), err)
		}
	} else if err := checkInstalledLanguages(p.languages); err != nil {
		return err
	}

	p.client = gosseract.NewClient()
	// text is returned exactly as produced by the engine
	p.client.Trim = false
	if err := p.client.DisableOutput(); err != nil {
		p.client.Close()
		return errors.Join(errors.New("failed to disable logs"), err)
	}
	if err := p.client.SetLanguage(p.languages...); err != nil {
		p.client.Close()
		return errors.Join(errors.New("failed to set languages"), err)
	}
	for key, val := range p.config.Variables {
		if err := p.client.SetVariable(gosseract.SettableVariable(key), val); err != nil {
			p.client.Close()
			return errors.Join(fmt.Errorf("failed to set variable [%s]", key), err)
		}
	}
	if p.config.UseModelsFolder {
		if err := p.client.SetTessdataPrefix(p.config.modelsFolder()); err != nil {
			p.client.Close()
			return errors.Join(errors.New("failed to set custom models folder"), err)
		}
	}

	p.logger.Debug("tesseract worker created", "version", gosseract.Version())
	return nil
}

// Engine loads models lazily on the first recognition, so missing system models are detected upfront
func checkInstalledLanguages(languages []string) error {
	installed, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return errors.Join(ErrRuntimeUnavailable, errors.New("failed to list installed language models"), err)
	}
	for _, language := range languages {
		if !slices.Contains(installed, language) {
			return errors.Join(ErrRuntimeUnavailable, fmt.Errorf("language model [%s] is not installed", language))
		}
	}
	return nil
}

func (p *Tesseract) Recognize(ctx context.Context, dataURI string) (Result, error) {
	image, declaredType, err := decodeDataURI(dataURI)
	if err != nil {
		return Result{}, err
	}

	image, err = p.prepareImage(image, declaredType)
	if err != nil {
		return Result{}, err
	}

	if err := p.client.SetImageFromBytes(image); err != nil {
		return Result{}, errors.Join(ErrDecode, errors.New("failed to prepare image for OCR"), err)
	}
	text, err := p.client.Text()
	if err != nil {
		return Result{}, errors.Join(errors.New("OCR process failed"), err)
	}

	return Result{Text: text}, nil
}

func (p *Tesseract) prepareImage(image []byte, declaredType string) ([]byte, error) {
	actualType := imageprep.Detect(image)
	if actualType != declaredType {
		p.logger.Debug("image format differs from declared type", "declared", declaredType, "actual", actualType)
	}

	if slices.Contains(p.config.SupportedImageFormats, actualType) || !p.config.TranscodeUnsupported {
		return image, nil
	}

	converted, err := imageprep.ToPNG(image)
	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	return converted, nil
}

func (p *Tesseract) Terminate() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
