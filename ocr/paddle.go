package ocr

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type PaddleConfig struct {
	// HTTP client used to make requests to the server
	Client *http.Client `json:"-"`
	// Server base URL. For example http://127.0.0.1:8866
	BaseURL string `json:"baseURL"`
}

func DefaultPaddleConfig() PaddleConfig {
	return PaddleConfig{
		BaseURL: "http://127.0.0.1:8866",
		Client:  http.DefaultClient,
	}
}

// Creates workers backed by PaddleOCR server.
//
// Language codes from the tag are sent to the server unchanged. Make sure they are enabled on the server,
// default OCR server has only several languages enabled.
type PaddleFactory struct {
	config PaddleConfig
}

func NewPaddleFactory(config PaddleConfig) *PaddleFactory {
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	return &PaddleFactory{
		config: config,
	}
}

func (f *PaddleFactory) CreateWorker(ctx context.Context, lang string) (Worker, error) {
	if f.config.BaseURL == "" {
		return nil, errors.Join(ErrRuntimeUnavailable, errors.New("paddle server base URL is not configured"))
	}
	languages := SplitLanguages(lang)
	if len(languages) == 0 {
		return nil, errors.New("language tag is empty")
	}

	return &Paddle{config: f.config, languages: languages}, nil
}

type Paddle struct {
	config    PaddleConfig
	languages []string
}

func (p *Paddle) Recognize(ctx context.Context, dataURI string) (Result, error) {
	image, _, err := decodeDataURI(dataURI)
	if err != nil {
		return Result{}, err
	}

	var response struct {
		Text string `json:"text"`
	}
	if err := postImage(ctx, p.config.Client, p.config.BaseURL+"/ocr", image, map[string]string{"languages": strings.Join(p.languages, ",")}, &response); err != nil {
		return Result{}, err
	}

	return Result{Text: response.Text}, nil
}

func (p *Paddle) Terminate() error {
	return nil
}
