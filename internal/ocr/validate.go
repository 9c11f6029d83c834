package ocr

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// Recognition preconditions. Images below the dimension floor or without
// meaningful contrast are rejected before the expensive engine call.
const (
	minRecognizeWidth  = 50
	minRecognizeHeight = 50

	// minLightnessRange is the minimum spread of perceptual lightness
	// (CIE Lab L*, 0-100) an image must have to plausibly contain ink on
	// paper. Below this the page is blank or nearly uniform.
	minLightnessRange = 5.0

	// contrastSampleTarget caps how many pixels the contrast check reads on
	// large images.
	contrastSampleTarget = 256 * 256
)

// ValidateForRecognition checks whether an image satisfies the recognizer's
// minimum-quality contract.
//
// This is exposed separately from Recognize so callers can short-circuit
// before invoking the slow external engine. Checks performed:
//   - the image is non-nil with non-zero dimensions
//   - dimensions meet the 50x50 floor
//   - the image has some contrast (not a blank or uniform page), measured
//     as the spread of perceptual lightness across sampled pixels
//
// Grayscale, binary and color images are all acceptable to the engine, so
// color mode is not restricted.
//
// Returns ok=true with an empty reason when the image is usable, otherwise
// ok=false and a human-readable reason.
func ValidateForRecognition(img image.Image) (bool, string) {
	if img == nil {
		return false, "image is nil"
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return false, "image has no pixels"
	}
	if w < minRecognizeWidth || h < minRecognizeHeight {
		return false, fmt.Sprintf("image too small (%dx%d, minimum %dx%d)",
			w, h, minRecognizeWidth, minRecognizeHeight)
	}

	// Sample on a stride so validation stays cheap for large pages.
	stride := 1
	for (w/stride)*(h/stride) > contrastSampleTarget {
		stride++
	}

	minL, maxL := 101.0, -1.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += stride {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent pixel carries no lightness information.
				continue
			}
			l, _, _ := c.Lab()
			l *= 100
			if l < minL {
				minL = l
			}
			if l > maxL {
				maxL = l
			}
		}
	}

	if maxL < minL || maxL-minL < minLightnessRange {
		return false, "image appears blank or nearly uniform (insufficient contrast)"
	}

	return true, ""
}
