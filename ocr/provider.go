package ocr

import (
	"context"
	"errors"
	"strings"
)

// Failure categories carried by worker errors. Workers wrap their errors with one of these
// so callers can tell failure kinds apart without parsing messages.
var (
	// Engine or its models cannot be used on this machine
	ErrRuntimeUnavailable = errors.New("OCR runtime unavailable")
	// Remote endpoint or model repository could not be reached
	ErrNetwork = errors.New("OCR network failure")
	// Image payload could not be decoded
	ErrDecode = errors.New("OCR image decode failure")
)

// Output of a single recognition call
type Result struct {
	// Recognized text exactly as produced by the engine
	Text string `json:"text"`
}

// Running OCR engine instance configured for one language tag
type Worker interface {
	// Recognize text on the image passed as data URI, for example `data:image/png;base64,...`.
	Recognize(ctx context.Context, dataURI string) (Result, error)
	// Release engine resources. Worker must not be used afterwards.
	Terminate() error
}

// Creates workers for a language tag like `eng` or `eng+chi_sim`
type WorkerFactory interface {
	CreateWorker(ctx context.Context, lang string) (Worker, error)
}

// Adapts plain function to the WorkerFactory interface
type WorkerFactoryFunc func(ctx context.Context, lang string) (Worker, error)

func (f WorkerFactoryFunc) CreateWorker(ctx context.Context, lang string) (Worker, error) {
	return f(ctx, lang)
}

// SplitLanguages splits `+` joined language tag into separate language codes.
func SplitLanguages(lang string) []string {
	parts := strings.Split(lang, "+")
	languages := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			languages = append(languages, part)
		}
	}
	return languages
}
