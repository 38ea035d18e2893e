package ocr

import (
	"log/slog"
	"path"
)

// Model type used by Tesseract
type TesseractModelType string

// The fastest available model with low accuracy
const TesseractModelFast TesseractModelType = "FAST"

// Model that runs by default in tesseract instances
const TesseractModelNormal TesseractModelType = "NORMAL"

// Model with best quality. Requires more processing power
const TesseractModelBestQuality TesseractModelType = "BEST_QUALITY"

// Returns true if model type is one of the known values
func (t TesseractModelType) Valid() bool {
	switch t {
	case TesseractModelFast, TesseractModelNormal, TesseractModelBestQuality:
		return true
	}
	return false
}

// Configuration for creating Tesseract workers
type TesseractConfig struct {
	// Model to use while running tesseract. Default is `TesseractModelNormal`. Works only if `UseModelsFolder` option is set to True.
	ModelType TesseractModelType `json:"modelType"`
	// Read language models from `ModelsFolder` instead of the system tessdata. Models have to be fetched in advance with `FetchModels`.
	UseModelsFolder bool `json:"useModelsFolder"`
	// Location of models fetched by `FetchModels`. Default is `./data/ocr/tesseract`
	ModelsFolder string `json:"modelsFolder"`
	// Base URL `FetchModels` downloads `<lang>.traineddata` files from. Empty means the pinned tessdata release for `ModelType`.
	ModelsRepository string `json:"modelsRepository"`
	// Variable to pass on tesseract initialization. For example you can pass {"load_system_dawg":"0"} to disable loading words list from the system
	//
	// Default is {"load_system_dawg": "0", "load_freq_dawg": "0", "load_punc_dawg": "0", "load_number_dawg": "0", "load_unambig_dawg": "0", "load_bigram_dawg": "0"}
	Variables map[string]string `json:"variables"`
	// Image formats passed to tesseract without conversion. Tesseract requires third party libraries on the target machine to support all the image formats.
	// Check supported formats here `https://tesseract-ocr.github.io/tessdoc/InputFormats.html`
	//
	// Default value is ["image/png", "image/jpeg", "image/tiff", "image/pnm", "image/gif", "image/webp"].
	SupportedImageFormats []string `json:"supportedImageFormats"`
	// Transcode images with formats outside of `SupportedImageFormats` into PNG before recognition.
	TranscodeUnsupported bool `json:"transcodeUnsupported"`
	// Logger for worker diagnostics. Uses slog.Default() when nil.
	Logger *slog.Logger `json:"-"`
}

func DefaultTesseractConfig() TesseractConfig {
	return TesseractConfig{
		ModelType:       TesseractModelNormal,
		UseModelsFolder: false,
		ModelsFolder:    path.Join("data", "ocr", "tesseract"),
		Variables: map[string]string{
			"load_system_dawg":  "0",
			"load_freq_dawg":    "0",
			"load_punc_dawg":    "0",
			"load_number_dawg":  "0",
			"load_unambig_dawg": "0",
			"load_bigram_dawg":  "0",
		},
		SupportedImageFormats: []string{"image/png", "image/jpeg", "image/tiff", "image/pnm", "image/gif", "image/webp"},
		TranscodeUnsupported:  true,
	}
}

func (c *TesseractConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Folder with models for the configured model type
func (c *TesseractConfig) modelsFolder() string {
	return path.Join(c.ModelsFolder, string(c.ModelType))
}
