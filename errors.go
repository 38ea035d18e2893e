package localocr

import (
	"errors"
	"net"

	"github.com/guardvision/localocr/imageprep"
	"github.com/guardvision/localocr/ocr"
)

// Message of every error returned by a failed recognition
const StartupFailureMessage = "OCR engine failed to start, check whether WebAssembly is disabled or restricted by corporate network policy"

// Matches every *StartupError with errors.Is
var ErrStartupFailed = errors.New(StartupFailureMessage)

// Category of the failure hidden behind StartupError
type FailureKind string

const (
	FailureUnknown            FailureKind = "UNKNOWN"
	FailureNetwork            FailureKind = "NETWORK"
	FailureRuntimeUnavailable FailureKind = "RUNTIME_UNAVAILABLE"
	FailureDecode             FailureKind = "DECODE"
)

// Returned when worker creation or recognition fails. Error() is always StartupFailureMessage,
// the original error is available through errors.Unwrap and its category through Kind.
type StartupError struct {
	Kind FailureKind
	Err  error
}

func newStartupError(err error) *StartupError {
	return &StartupError{Kind: classifyFailure(err), Err: err}
}

func (e *StartupError) Error() string {
	return StartupFailureMessage
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

func (e *StartupError) Is(target error) bool {
	return target == ErrStartupFailed
}

func classifyFailure(err error) FailureKind {
	switch {
	case errors.Is(err, ocr.ErrRuntimeUnavailable):
		return FailureRuntimeUnavailable
	case errors.Is(err, ocr.ErrNetwork):
		return FailureNetwork
	case errors.Is(err, ocr.ErrDecode), errors.Is(err, imageprep.ErrBadImage):
		return FailureDecode
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return FailureNetwork
	}
	return FailureUnknown
}
