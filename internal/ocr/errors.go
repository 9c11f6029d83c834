package ocr

import (
	"errors"
	"fmt"
)

// ErrEngineUnavailable reports that the Tesseract installation could not be
// reached or initialized. This is fatal for the current request; hosts
// should surface installation guidance rather than retrying immediately.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// ErrInvalidImage reports a nil or unusable input image passed to the
// recognizer.
var ErrInvalidImage = errors.New("invalid image")

// RecognitionError reports that the engine ran but failed to produce output.
// It is distinct from an empty result: a page with no recognizable text
// yields an empty string and no error.
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition failed: %v", e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }
