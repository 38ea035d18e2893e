package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Pinned tessdata releases per model type
var modelRepositoryByType = map[TesseractModelType]string{
	TesseractModelFast:        "https://github.com/tesseract-ocr/tessdata_fast/raw/4.1.0/",
	TesseractModelNormal:      "https://github.com/tesseract-ocr/tessdata/raw/4.1.0/",
	TesseractModelBestQuality: "https://github.com/tesseract-ocr/tessdata_best/raw/4.1.0/",
}

func modelFileName(language string) string {
	return language + ".traineddata"
}

func modelDownloadLink(config *TesseractConfig, language string) string {
	base := config.ModelsRepository
	if base == "" {
		base = modelRepositoryByType[config.ModelType]
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + modelFileName(language)
}

// CheckModels verifies that models for every language are present in fsys.
// Missing model is reported as ErrRuntimeUnavailable.
func CheckModels(fsys fs.FS, languages []string) error {
	for _, language := range languages {
		info, err := fs.Stat(fsys, modelFileName(language))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return errors.Join(ErrRuntimeUnavailable, fmt.Errorf("language model [%s] is not installed", language))
			}
			return errors.Join(errors.New("unexpected error while checking if model exists"), err)
		}
		if info.IsDir() || info.Size() == 0 {
			return errors.Join(ErrRuntimeUnavailable, fmt.Errorf("language model [%s] is broken", language))
		}
	}

	return nil
}

// FetchModels downloads models that are missing in the configured models folder.
// Already present models are left untouched.
func FetchModels(ctx context.Context, client *http.Client, config TesseractConfig, languages []string) error {
	if !config.ModelType.Valid() {
		return fmt.Errorf("tesseract model type [%s] is not supported", config.ModelType)
	}
	if client == nil {
		client = http.DefaultClient
	}

	folder := config.modelsFolder()
	if err := os.MkdirAll(folder, 0700); err != nil {
		return errors.Join(errors.New("failed to create folder for models"), err)
	}

	logger := config.logger()
	for _, language := range languages {
		if err := CheckModels(os.DirFS(folder), []string{language}); err == nil {
			logger.Debug("language model already present", "language", language, "folder", folder)
			continue
		} else if !errors.Is(err, ErrRuntimeUnavailable) {
			return err
		}

		logger.Info("downloading language model", "language", language, "folder", folder)
		if err := downloadModel(ctx, client, modelDownloadLink(&config, language), path.Join(folder, modelFileName(language))); err != nil {
			return errors.Join(errors.New("failed to download language model "+language), err)
		}
	}

	return nil
}

func downloadModel(ctx context.Context, client *http.Client, link string, destination string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return errors.Join(errors.New("failed to prepare HTTP request"), err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Join(ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Join(ErrNetwork, fmt.Errorf("bad status: %s", resp.Status))
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destination), "*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return errors.Join(ErrNetwork, err)
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFile.Name(), destination)
}
