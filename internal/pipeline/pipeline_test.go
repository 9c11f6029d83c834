package pipeline

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/snapscribe/ocrkit/internal/imaging"
	"github.com/snapscribe/ocrkit/internal/ocr"
)

// fakeRecognizer returns a canned result and records invocations, so
// pipeline behavior can be tested without a Tesseract installation.
// Safe for concurrent use, as batch workers call it in parallel.
type fakeRecognizer struct {
	text string
	err  error

	mu    sync.Mutex
	calls int
}

func (f *fakeRecognizer) Recognize(img image.Image, opts ocr.Options) (*ocr.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &ocr.Result{Text: f.text, Language: opts.Language}, nil
}

func (f *fakeRecognizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// pageImage renders black text-like bars on a white canvas.
func pageImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for line := 0; line < 3; line++ {
		top := 40 + line*60
		for y := top; y < top+6 && y < height; y++ {
			for x := 30; x < width-30; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

func TestRun_CleansRecognizedText(t *testing.T) {
	rec := &fakeRecognizer{text: "Hello   world\r\nFoo\rBar"}
	cfg := DefaultConfig()

	out, err := Run(rec, pageImage(300, 300), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Text != "Hello world\nFoo\nBar" {
		t.Errorf("Text = %q, want %q", out.Text, "Hello world\nFoo\nBar")
	}
	if out.Stats.Lines != 3 || out.Stats.Words != 4 {
		t.Errorf("stats = %+v, want 3 lines / 4 words", out.Stats)
	}
	if rec.callCount() != 1 {
		t.Errorf("recognizer invoked %d times, want 1", rec.callCount())
	}
}

func TestRun_PreprocessingDisabled(t *testing.T) {
	rec := &fakeRecognizer{text: "plain"}
	cfg := DefaultConfig()
	cfg.Preprocess = imaging.Config{MinWidth: 50, MinHeight: 50}

	out, err := Run(rec, pageImage(300, 300), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Text != "plain" {
		t.Errorf("Text = %q, want %q", out.Text, "plain")
	}
}

func TestRun_UndersizedImageSkipsRecognizer(t *testing.T) {
	rec := &fakeRecognizer{text: "should never be produced"}

	_, err := Run(rec, pageImage(30, 30), DefaultConfig())
	if !errors.Is(err, imaging.ErrInvalidImage) {
		t.Fatalf("Run error = %v, want imaging.ErrInvalidImage", err)
	}
	if rec.callCount() != 0 {
		t.Errorf("recognizer invoked %d times on an invalid image, want 0", rec.callCount())
	}
}

func TestRun_BlankImageFailsValidation(t *testing.T) {
	rec := &fakeRecognizer{text: "should never be produced"}

	// Uniform white page passes the size floor but fails the contrast
	// check; the engine must not be called.
	blank := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			blank.Set(x, y, color.White)
		}
	}

	cfg := DefaultConfig()
	cfg.Preprocess.DenoiseEnabled = false
	cfg.Preprocess.ThresholdEnabled = false

	_, err := Run(rec, blank, cfg)
	if !errors.Is(err, ocr.ErrInvalidImage) {
		t.Fatalf("Run error = %v, want ocr.ErrInvalidImage", err)
	}
	if rec.callCount() != 0 {
		t.Errorf("recognizer invoked %d times on a blank image, want 0", rec.callCount())
	}
}

func TestRun_EmptyResultIsNotAnError(t *testing.T) {
	rec := &fakeRecognizer{text: ""}

	out, err := Run(rec, pageImage(300, 300), DefaultConfig())
	if err != nil {
		t.Fatalf("empty recognition result returned error %v", err)
	}
	if out.Text != "" {
		t.Errorf("Text = %q, want empty", out.Text)
	}
	if out.Stats.Words != 0 {
		t.Errorf("Words = %d, want 0", out.Stats.Words)
	}
}

func TestRun_EngineErrorsPropagateIntact(t *testing.T) {
	wantErr := &ocr.RecognitionError{Err: errors.New("engine crashed")}
	rec := &fakeRecognizer{err: wantErr}

	_, err := Run(rec, pageImage(300, 300), DefaultConfig())
	var recErr *ocr.RecognitionError
	if !errors.As(err, &recErr) {
		t.Fatalf("Run error = %v, want *ocr.RecognitionError", err)
	}
}

func TestRun_UnavailableEnginePropagates(t *testing.T) {
	rec := &fakeRecognizer{err: ocr.ErrEngineUnavailable}

	_, err := Run(rec, pageImage(300, 300), DefaultConfig())
	if !errors.Is(err, ocr.ErrEngineUnavailable) {
		t.Fatalf("Run error = %v, want ErrEngineUnavailable", err)
	}
}
