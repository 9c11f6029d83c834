package imaging

import (
	"errors"
	"fmt"
)

// ErrInvalidImage reports a nil, zero-size, or under-resolution input image.
// It is never substituted with a silently degraded result.
var ErrInvalidImage = errors.New("invalid image")

// PreprocessError reports a failure inside a named preprocessing sub-step.
//
// Step identifies which sub-operation failed ("grayscale", "denoise",
// "threshold", "deskew"), so callers can report or retry per step.
type PreprocessError struct {
	Step string
	Err  error
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("preprocessing step %q failed: %v", e.Step, e.Err)
}

func (e *PreprocessError) Unwrap() error { return e.Err }
