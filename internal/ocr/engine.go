package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// PageSegMode tells the engine how to assume text is laid out on the page.
//
// This materially changes output quality (a single line recognized in
// automatic mode is often mangled), so Recognize passes it through to the
// engine verbatim instead of silently defaulting.
type PageSegMode int

const (
	// PSMAuto performs fully automatic page segmentation (engine default).
	PSMAuto PageSegMode = iota
	// PSMSingleBlock assumes a single uniform block of text.
	PSMSingleBlock
	// PSMSingleLine assumes a single line of text.
	PSMSingleLine
	// PSMSingleWord assumes a single word.
	PSMSingleWord
	// PSMSparseText finds as much text as possible in no particular order.
	PSMSparseText
)

func (m PageSegMode) gosseract() gosseract.PageSegMode {
	switch m {
	case PSMSingleBlock:
		return gosseract.PSM_SINGLE_BLOCK
	case PSMSingleLine:
		return gosseract.PSM_SINGLE_LINE
	case PSMSingleWord:
		return gosseract.PSM_SINGLE_WORD
	case PSMSparseText:
		return gosseract.PSM_SPARSE_TEXT
	default:
		return gosseract.PSM_AUTO
	}
}

// String returns the mode name as accepted by the CLI.
func (m PageSegMode) String() string {
	switch m {
	case PSMSingleBlock:
		return "block"
	case PSMSingleLine:
		return "line"
	case PSMSingleWord:
		return "word"
	case PSMSparseText:
		return "sparse"
	default:
		return "auto"
	}
}

// ParsePageSegMode converts a mode name ("auto", "block", "line", "word",
// "sparse") into a PageSegMode.
func ParsePageSegMode(s string) (PageSegMode, error) {
	switch s {
	case "auto", "":
		return PSMAuto, nil
	case "block":
		return PSMSingleBlock, nil
	case "line":
		return PSMSingleLine, nil
	case "word":
		return PSMSingleWord, nil
	case "sparse":
		return PSMSparseText, nil
	}
	return PSMAuto, fmt.Errorf("unknown page segmentation mode %q", s)
}

// Options are the per-call recognition parameters.
type Options struct {
	// Language is the Tesseract language code, or several codes joined with
	// "+" for multi-language recognition (e.g. "eng+deu"). The recognizer
	// never infers language; it is always caller-supplied.
	Language string

	// PageSegMode is the page layout assumption passed to the engine.
	PageSegMode PageSegMode

	// Whitelist, when non-empty, restricts recognition to these characters.
	Whitelist string
}

// DefaultOptions returns English recognition with automatic page
// segmentation.
func DefaultOptions() Options {
	return Options{Language: "eng", PageSegMode: PSMAuto}
}

// Result is the raw recognizer output: the recognized text (possibly empty,
// never absent) and the language code used to produce it.
type Result struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Word is a single recognized word with its location and engine confidence.
type Word struct {
	// Text is the recognized word.
	Text string `json:"text"`

	// Confidence is the engine confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around the word in image coordinates.
	Bounds image.Rectangle `json:"bounds"`
}

// ConfidenceResult extends Result with word-level confidence data.
type ConfidenceResult struct {
	Result

	// MeanConfidence is the average word confidence (0.0 to 1.0), or 0 when
	// no words were recognized.
	MeanConfidence float64 `json:"mean_confidence"`

	// Words lists individual words with bounding boxes. May be empty if
	// box extraction fails; Text is still populated in that case.
	Words []Word `json:"words"`
}

// Config holds engine construction options.
type Config struct {
	// TessdataPrefix overrides the directory Tesseract loads language data
	// from. Empty uses the system default.
	TessdataPrefix string
}

// Engine is an explicit handle on the external Tesseract capability.
//
// Construction probes availability once; the handle is then reused across
// calls. Engine carries no per-call state, so concurrent Recognize calls
// are safe.
type Engine struct {
	tessdataPrefix string
	languages      []string
}

// NewEngine initializes the OCR engine handle.
//
// The constructor probes the Tesseract installation by listing its available
// languages. Initialization is idempotent and cheap enough to repeat before
// each batch.
//
// Returns ErrEngineUnavailable (wrapped) if Tesseract cannot be reached.
func NewEngine(cfg Config) (*Engine, error) {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	return &Engine{
		tessdataPrefix: cfg.TessdataPrefix,
		languages:      langs,
	}, nil
}

// Close releases the engine handle. The current backend holds no process-
// wide resources, but hosts should still pair NewEngine with Close so a
// backend that does (e.g. a long-lived native client) can be dropped in.
func (e *Engine) Close() error { return nil }

// AvailableLanguages returns the language codes the installation can
// recognize, as discovered at initialization.
func (e *Engine) AvailableLanguages() []string {
	out := make([]string, len(e.languages))
	copy(out, e.languages)
	return out
}

// Recognize runs OCR on an image and returns the raw recognized text.
//
// The image should already satisfy ValidateForRecognition; callers wanting
// to avoid a wasted engine invocation check that first. The image is
// PNG-encoded in memory and handed to a fresh Tesseract client, so the
// caller's image is not touched and concurrent calls need no locking.
//
// Returns:
//   - *Result: Recognized text (empty when the engine ran but found
//     nothing, which is a valid outcome, not an error) and the language
//     code used.
//   - error: ErrInvalidImage for nil input, or a *RecognitionError when the
//     engine fails to process the image.
func (e *Engine) Recognize(img image.Image, opts Options) (*Result, error) {
	client, err := e.newClient(img, opts)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return nil, &RecognitionError{Err: err}
	}

	return &Result{Text: text, Language: opts.Language}, nil
}

// RecognizeWithConfidence runs OCR and additionally reports word-level
// confidence scores and bounding boxes.
//
// If box extraction fails (which can happen with some Tesseract
// configurations), the full text is still returned with an empty Words
// slice and zero MeanConfidence.
func (e *Engine) RecognizeWithConfidence(img image.Image, opts Options) (*ConfidenceResult, error) {
	client, err := e.newClient(img, opts)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return nil, &RecognitionError{Err: err}
	}

	result := &ConfidenceResult{Result: Result{Text: text, Language: opts.Language}}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}

	var sum float64
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		conf := float64(box.Confidence) / 100.0
		sum += conf
		result.Words = append(result.Words, Word{
			Text:       box.Word,
			Confidence: conf,
			Bounds:     box.Box,
		})
	}
	if len(result.Words) > 0 {
		result.MeanConfidence = sum / float64(len(result.Words))
	}

	return result, nil
}

// newClient builds a configured single-use gosseract client with the image
// loaded. The caller must Close it.
func (e *Engine) newClient(img image.Image, opts Options) (*gosseract.Client, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", ErrInvalidImage)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	client := gosseract.NewClient()

	if e.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
		}
	}

	language := opts.Language
	if language == "" {
		language = DefaultOptions().Language
	}
	if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
		client.Close()
		return nil, &RecognitionError{Err: fmt.Errorf("failed to set language %q: %w", language, err)}
	}

	if err := client.SetPageSegMode(opts.PageSegMode.gosseract()); err != nil {
		client.Close()
		return nil, &RecognitionError{Err: fmt.Errorf("failed to set page segmentation mode: %w", err)}
	}

	if opts.Whitelist != "" {
		if err := client.SetWhitelist(opts.Whitelist); err != nil {
			client.Close()
			return nil, &RecognitionError{Err: fmt.Errorf("failed to set whitelist: %w", err)}
		}
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		client.Close()
		return nil, &RecognitionError{Err: fmt.Errorf("failed to set image: %w", err)}
	}

	return client, nil
}
