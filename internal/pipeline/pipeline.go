package pipeline

import (
	"fmt"
	"image"

	"github.com/snapscribe/ocrkit/internal/imaging"
	"github.com/snapscribe/ocrkit/internal/ocr"
	"github.com/snapscribe/ocrkit/internal/text"
)

// Recognizer is the external OCR capability the pipeline invokes. It is
// satisfied by *ocr.Engine; tests substitute a fake to exercise the pipeline
// without a Tesseract installation.
type Recognizer interface {
	Recognize(img image.Image, opts ocr.Options) (*ocr.Result, error)
}

// Config bundles the per-stage configuration for one pipeline invocation.
// It is never mutated mid-run.
type Config struct {
	Preprocess imaging.Config
	Recognize  ocr.Options
	Clean      text.Options
}

// DefaultConfig returns the per-stage defaults.
func DefaultConfig() Config {
	return Config{
		Preprocess: imaging.DefaultConfig(),
		Recognize:  ocr.DefaultOptions(),
		Clean:      text.DefaultOptions(),
	}
}

// Output is the pipeline result for one image: the cleaned text and its
// statistics.
type Output struct {
	Text  string     `json:"text"`
	Stats text.Stats `json:"stats"`
}

// Run processes one image through the full pipeline and returns the cleaned
// text with statistics.
//
// Stages run synchronously in order: preprocessing, a recognizability check
// that fails fast before the expensive engine call, recognition, and text
// cleanup. The input image is never mutated.
//
// Errors keep their stage identity: imaging.ErrInvalidImage or a
// *imaging.PreprocessError from preprocessing, ocr.ErrInvalidImage when the
// preprocessed image fails the recognizability check, and
// ocr.ErrEngineUnavailable or a *ocr.RecognitionError from the engine. An
// empty page is not an error; it yields an Output with empty Text and zero
// word count.
func Run(rec Recognizer, img image.Image, cfg Config) (*Output, error) {
	processed, err := imaging.Preprocess(img, cfg.Preprocess)
	if err != nil {
		return nil, err
	}

	if ok, reason := ocr.ValidateForRecognition(processed); !ok {
		return nil, fmt.Errorf("%w: %s", ocr.ErrInvalidImage, reason)
	}

	result, err := rec.Recognize(processed, cfg.Recognize)
	if err != nil {
		return nil, err
	}

	cleaned, stats := text.Clean(result.Text, cfg.Clean)
	return &Output{Text: cleaned, Stats: stats}, nil
}
