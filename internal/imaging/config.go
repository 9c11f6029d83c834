package imaging

// Config holds the preprocessing options for one pipeline invocation.
//
// A Config is treated as immutable once passed to Preprocess: the pipeline
// never modifies it, and the same Config may be reused across concurrent
// invocations. The zero value disables every sub-operation; use
// DefaultConfig for sensible OCR-oriented defaults.
type Config struct {
	// Grayscale converts multi-channel color to single-channel luminance
	// before any other operation.
	Grayscale bool

	// DenoiseEnabled applies edge-preserving smoothing to suppress sensor
	// and scan noise.
	DenoiseEnabled bool

	// DenoiseStrength controls how aggressively noise is removed (1-30).
	// Higher values suppress more noise at the cost of fine detail; values
	// outside the range are clamped. See Denoise for the trade-off.
	DenoiseStrength int

	// ThresholdEnabled converts the image to strictly two intensity levels.
	ThresholdEnabled bool

	// ThresholdAdaptive selects Otsu's method to compute the cutoff from
	// the image histogram instead of using ThresholdValue.
	ThresholdAdaptive bool

	// ThresholdValue is the fixed binarization cutoff (0-255). Ignored when
	// ThresholdAdaptive is true.
	ThresholdValue uint8

	// DeskewEnabled estimates the dominant text-line rotation and corrects
	// it. Deskewing is best-effort: when no dominant orientation is found
	// with sufficient confidence the image is returned unrotated.
	DeskewEnabled bool

	// MaxSkewAngle bounds the rotation correction in degrees. Estimated
	// angles beyond this bound are treated as misdetections and skipped.
	MaxSkewAngle float64

	// MinWidth and MinHeight are the resolution floor below which an input
	// image is rejected as not meaningfully processable.
	MinWidth  int
	MinHeight int
}

// DefaultConfig returns the preprocessing defaults: grayscale, denoising at
// strength 10 and fixed thresholding at 127 enabled, deskewing disabled with
// a 10 degree bound, and a 50x50 resolution floor.
func DefaultConfig() Config {
	return Config{
		Grayscale:         true,
		DenoiseEnabled:    true,
		DenoiseStrength:   10,
		ThresholdEnabled:  true,
		ThresholdAdaptive: false,
		ThresholdValue:    127,
		DeskewEnabled:     false,
		MaxSkewAngle:      10,
		MinWidth:          50,
		MinHeight:         50,
	}
}
