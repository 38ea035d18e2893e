// Package localocr wraps an OCR engine worker with a reuse-or-recreate lifecycle keyed by language tag.
package localocr

import (
	"context"
	"log/slog"
	"sync"

	"github.com/guardvision/localocr/ocr"
	"golang.org/x/sync/semaphore"
)

// Language tag used when Recognize is called without one
const DefaultLanguage = "eng+chi_sim"

// Prefix of the data URI passed to workers. Images are always declared as PNG.
const dataURIPrefix = "data:image/png;base64,"

type Config struct {
	// Language used when Recognize receives empty language tag. Default is `eng+chi_sim`
	DefaultLanguage string
	// Logger for swallowed and hidden errors. Uses slog.Default() when nil.
	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		DefaultLanguage: DefaultLanguage,
	}
}

// Adapter keeps at most one OCR worker alive and recreates it when requested language changes.
// All operations are serialized, so Adapter is safe for concurrent use.
type Adapter struct {
	factory ocr.WorkerFactory
	config  Config
	logger  *slog.Logger

	workLock *semaphore.Weighted

	stateLock sync.Mutex
	worker    ocr.Worker
	language  string
}

func New(factory ocr.WorkerFactory, config Config) *Adapter {
	if config.DefaultLanguage == "" {
		config.DefaultLanguage = DefaultLanguage
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter{
		factory:  factory,
		config:   config,
		logger:   logger.With("component", "localocr"),
		workLock: semaphore.NewWeighted(1),
	}
}

// Recognize runs OCR on the base64 encoded image and returns recognized text as is.
//
// Worker is reused while lang stays the same. Any failure discards the worker and is reported
// as *StartupError. ctx only limits waiting for other calls to finish, the engine itself is not interrupted.
func (a *Adapter) Recognize(ctx context.Context, image string, lang string) (string, error) {
	if lang == "" {
		lang = a.config.DefaultLanguage
	}

	if err := a.workLock.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer a.workLock.Release(1)

	text, err := a.recognize(ctx, image, lang)
	if err != nil {
		a.logger.Error("local OCR runtime error", "lang", lang, "error", err)
		a.terminate()
		return "", newStartupError(err)
	}

	return text, nil
}

func (a *Adapter) recognize(ctx context.Context, image string, lang string) (string, error) {
	worker, currentLanguage := a.current()
	if worker == nil || currentLanguage != lang {
		a.terminate()

		created, err := a.factory.CreateWorker(ctx, lang)
		if err != nil {
			return "", err
		}
		a.setCurrent(created, lang)
		worker = created
	}

	result, err := worker.Recognize(ctx, dataURIPrefix+image)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// Terminate stops active worker. Stop failures are only logged. Waits for in-flight recognition.
func (a *Adapter) Terminate() {
	a.workLock.Acquire(context.Background(), 1)
	defer a.workLock.Release(1)

	a.terminate()
}

func (a *Adapter) terminate() {
	worker, lang := a.current()
	if worker != nil {
		if err := worker.Terminate(); err != nil {
			a.logger.Warn("worker termination failed", "lang", lang, "error", err)
		}
	}
	a.setCurrent(nil, "")
}

// Language returns language tag of the active worker or empty string if there is no worker.
func (a *Adapter) Language() string {
	_, lang := a.current()
	return lang
}

func (a *Adapter) current() (ocr.Worker, string) {
	a.stateLock.Lock()
	defer a.stateLock.Unlock()
	return a.worker, a.language
}

func (a *Adapter) setCurrent(worker ocr.Worker, lang string) {
	a.stateLock.Lock()
	a.worker = worker
	a.language = lang
	a.stateLock.Unlock()
}
