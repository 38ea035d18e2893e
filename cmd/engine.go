package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/guardvision/localocr"
	"github.com/guardvision/localocr/ocr"
	"github.com/spf13/cobra"
)

func registerEngineFlags(cmd *cobra.Command) {
	defaults := ocr.DefaultTesseractConfig()

	cmd.PersistentFlags().String("engine", "TESSERACT", "OCR engine to use. Possible values are TESSERACT, TESSERACT_SERVER, PADDLE")
	cmd.PersistentFlags().String("ocr-tesseract-model", string(defaults.ModelType), "Model type to use. Supported values are FAST, NORMAL, BEST_QUALITY. Only works together with --ocr-tesseract-use-models-folder")
	cmd.PersistentFlags().Bool("ocr-tesseract-use-models-folder", defaults.UseModelsFolder, "Load tesseract models from the models folder instead of system tessdata")
	cmd.PersistentFlags().String("ocr-tesseract-models-folder", defaults.ModelsFolder, "Location on the disk where tesseract models are stored")
	cmd.PersistentFlags().StringSlice("ocr-tesseract-supported-mime-types", defaults.SupportedImageFormats, "List of mime types passed to tesseract without conversion")
	cmd.PersistentFlags().Bool("ocr-tesseract-transcode", defaults.TranscodeUnsupported, "Convert images of unsupported mime types into PNG before recognition")
	cmd.PersistentFlags().String("ocr-server-url", ocr.DefaultTesseractServerConfig().BaseURL, "Base URL of the tesseract server. Used with TESSERACT_SERVER engine")
	cmd.PersistentFlags().String("ocr-paddle-url", ocr.DefaultPaddleConfig().BaseURL, "Base URL of the PaddleOCR server. Used with PADDLE engine")
}

func tesseractConfigFromSettings(logger *slog.Logger) (ocr.TesseractConfig, error) {
	config := ocr.DefaultTesseractConfig()
	config.ModelType = ocr.TesseractModelType(strings.ToUpper(settings.GetString("ocr-tesseract-model")))
	if !config.ModelType.Valid() {
		return config, errors.New("tesseract model type is not supported")
	}
	config.UseModelsFolder = settings.GetBool("ocr-tesseract-use-models-folder")
	config.ModelsFolder = settings.GetString("ocr-tesseract-models-folder")
	config.SupportedImageFormats = settings.GetStringSlice("ocr-tesseract-supported-mime-types")
	config.TranscodeUnsupported = settings.GetBool("ocr-tesseract-transcode")
	config.Logger = logger
	return config, nil
}

func newWorkerFactory(logger *slog.Logger) (ocr.WorkerFactory, error) {
	switch strings.ToUpper(settings.GetString("engine")) {
	case "TESSERACT":
		if !ocr.FeatureTesseractEnabled {
			logger.Warn("binary was built without tesseract, recognition will fail. Rebuild with -tags localocr_tesseract")
		}
		config, err := tesseractConfigFromSettings(logger)
		if err != nil {
			return nil, err
		}
		return ocr.NewTesseractFactory(config), nil
	case "TESSERACT_SERVER":
		config := ocr.DefaultTesseractServerConfig()
		config.BaseURL = settings.GetString("ocr-server-url")
		return ocr.NewTesseractServerFactory(config), nil
	case "PADDLE":
		config := ocr.DefaultPaddleConfig()
		config.BaseURL = settings.GetString("ocr-paddle-url")
		return ocr.NewPaddleFactory(config), nil
	}

	return nil, errors.New("unsupported ocr engine")
}

func newAdapter() (*localocr.Adapter, error) {
	logger := slog.Default()
	factory, err := newWorkerFactory(logger)
	if err != nil {
		return nil, err
	}

	config := localocr.DefaultConfig()
	config.DefaultLanguage = settings.GetString("lang")
	config.Logger = logger
	return localocr.New(factory, config), nil
}
