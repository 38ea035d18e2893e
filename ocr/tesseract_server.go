package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type TesseractServerConfig struct {
	// HTTP client used to make requests to the server
	Client *http.Client `json:"-"`
	// Server base URL. For example http://127.0.0.1:8080
	BaseURL string `json:"baseURL"`
}

func DefaultTesseractServerConfig() TesseractServerConfig {
	return TesseractServerConfig{
		BaseURL: "http://127.0.0.1:8080",
		Client:  http.DefaultClient,
	}
}

// Creates workers that use tesseract server as OCR backend. https://github.com/otiai10/ocrserver
//
// Make sure languages are installed on the server because default OCR server has only several languages enabled by default.
type TesseractServerFactory struct {
	config TesseractServerConfig
}

func NewTesseractServerFactory(config TesseractServerConfig) *TesseractServerFactory {
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	return &TesseractServerFactory{
		config: config,
	}
}

func (f *TesseractServerFactory) CreateWorker(ctx context.Context, lang string) (Worker, error) {
	if f.config.BaseURL == "" {
		return nil, errors.Join(ErrRuntimeUnavailable, errors.New("tesseract server base URL is not configured"))
	}
	languages := SplitLanguages(lang)
	if len(languages) == 0 {
		return nil, errors.New("language tag is empty")
	}

	return &TesseractServer{config: f.config, languages: languages}, nil
}

// Worker bound to the tesseract server and to one set of languages
type TesseractServer struct {
	config    TesseractServerConfig
	languages []string
}

func (p *TesseractServer) Recognize(ctx context.Context, dataURI string) (Result, error) {
	image, _, err := decodeDataURI(dataURI)
	if err != nil {
		return Result{}, err
	}

	options, err := json.Marshal(map[string][]string{"languages": p.languages})
	if err != nil {
		return Result{}, errors.Join(errors.New("failed to marshall OCR options"), err)
	}

	var response struct {
		Data struct {
			Exit struct {
				Code uint `json:"code"`
			} `json:"exit"`
			StdErr string `json:"stderr"`
			StdOut string `json:"stdout"`
		} `json:"data"`
	}
	if err := postImage(ctx, p.config.Client, p.config.BaseURL+"/tesseract", image, map[string]string{"options": string(options)}, &response); err != nil {
		return Result{}, err
	}

	if response.Data.Exit.Code != 0 {
		return Result{}, errors.Join(exitCodeCategory(response.Data.StdErr), fmt.Errorf("bad OCR execution status code: status code %d: %s", response.Data.Exit.Code, response.Data.StdErr))
	}

	return Result{Text: response.Data.StdOut}, nil
}

// Tesseract reports missing models while loading languages, everything else is a problem with the input image
func exitCodeCategory(stderr string) error {
	lower := strings.ToLower(stderr)
	if strings.Contains(lower, "loading language") || strings.Contains(lower, "opening data file") {
		return ErrRuntimeUnavailable
	}
	return ErrDecode
}

// Server keeps no per-worker state
func (p *TesseractServer) Terminate() error {
	return nil
}
