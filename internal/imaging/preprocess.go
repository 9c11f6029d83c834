package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Preprocess applies the configured sub-operations to an image and returns
// the result as a new image.
//
// The sub-operations run in a fixed order: grayscale conversion, denoising,
// thresholding, deskewing. Each is skipped unless enabled in cfg. The input
// image is never mutated, even when every sub-operation is disabled.
//
// Parameters:
//   - img: Source image. Must be non-nil and at least cfg.MinWidth x
//     cfg.MinHeight pixels.
//   - cfg: Preprocessing options. See Config for the individual toggles.
//
// Returns:
//   - image.Image: The preprocessed image. Grayscale and threshold output
//     is *image.Gray; deskewing may enlarge the canvas to avoid cropping.
//   - error: ErrInvalidImage for nil/zero-size/under-floor input, or a
//     *PreprocessError naming the sub-step that failed. A partially
//     processed image is never returned alongside an error.
func Preprocess(img image.Image, cfg Config) (image.Image, error) {
	if err := validateInput(img, cfg.MinWidth, cfg.MinHeight); err != nil {
		return nil, err
	}

	var out image.Image = imaging.Clone(img)

	if cfg.Grayscale {
		out = Grayscale(out)
	}

	if cfg.DenoiseEnabled {
		out = Denoise(out, cfg.DenoiseStrength)
	}

	if cfg.ThresholdEnabled {
		level := cfg.ThresholdValue
		if cfg.ThresholdAdaptive {
			level = OtsuLevel(out)
		}
		out = Threshold(out, level)
	}

	if cfg.DeskewEnabled {
		deskewed, err := Deskew(out, cfg.MaxSkewAngle)
		if err != nil {
			return nil, &PreprocessError{Step: "deskew", Err: err}
		}
		out = deskewed
	}

	return out, nil
}

// validateInput rejects images the pipeline cannot meaningfully process.
// A floor dimension of zero disables that bound.
func validateInput(img image.Image, minW, minH int) error {
	if img == nil {
		return fmt.Errorf("%w: image is nil", ErrInvalidImage)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: image has no pixels", ErrInvalidImage)
	}
	if (minW > 0 && w < minW) || (minH > 0 && h < minH) {
		return fmt.Errorf("%w: image too small (%dx%d, minimum %dx%d)",
			ErrInvalidImage, w, h, minW, minH)
	}
	return nil
}

// Grayscale converts an image to single-channel luminance.
//
// The conversion uses ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
// Grayscale is idempotent: applying it to an already-gray image returns an
// equal image. The result is always a new *image.Gray.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		out := image.NewGray(g.Bounds())
		copy(out.Pix, g.Pix)
		return out
	}

	// imaging.Grayscale computes the luminance into all three channels;
	// repack the red channel into a single-channel image.
	lum := imaging.Grayscale(img)
	bounds := lum.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetGray(x, y, color.Gray{Y: lum.NRGBAAt(x, y).R})
		}
	}
	return out
}

// Summary describes what preprocessing changed about an image. It is a
// diagnostic aid for callers that keep the original for comparison.
type Summary struct {
	OriginalMode    string `json:"original_mode"`
	OriginalWidth   int    `json:"original_width"`
	OriginalHeight  int    `json:"original_height"`
	ProcessedMode   string `json:"processed_mode"`
	ProcessedWidth  int    `json:"processed_width"`
	ProcessedHeight int    `json:"processed_height"`
}

// Describe reports the mode and dimension changes between the original and
// the preprocessed image.
func Describe(original, processed image.Image) Summary {
	return Summary{
		OriginalMode:    imageMode(original),
		OriginalWidth:   original.Bounds().Dx(),
		OriginalHeight:  original.Bounds().Dy(),
		ProcessedMode:   imageMode(processed),
		ProcessedWidth:  processed.Bounds().Dx(),
		ProcessedHeight: processed.Bounds().Dy(),
	}
}

// imageMode names the color mode of an image by its concrete type.
func imageMode(img image.Image) string {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return "gray"
	case *image.CMYK:
		return "cmyk"
	case nil:
		return "none"
	default:
		return "rgb"
	}
}
