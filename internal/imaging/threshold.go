package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
)

// Threshold converts an image to strictly two intensity levels.
//
// Pixels with luminance at or above level become white (255), the rest
// black (0).
// Non-grayscale input is converted to grayscale first. Dimensions are
// preserved.
//
// Parameters:
//   - img: Source image (any color mode).
//   - level: Binarization cutoff (0-255).
//
// Returns a new *image.Gray whose pixels are all either 0 or 255.
func Threshold(img image.Image, level uint8) *image.Gray {
	gray, ok := img.(*image.Gray)
	if !ok {
		gray = Grayscale(img)
	}
	return segment.Threshold(gray, level)
}

// OtsuLevel computes an adaptive binarization cutoff using Otsu's method.
//
// The method picks the level that maximizes the between-class variance of
// the grayscale histogram, separating foreground ink from background paper
// without a hand-tuned constant. Use the result as the level argument to
// Threshold.
//
// For a degenerate histogram (uniform image) the returned level is 0, so
// thresholding yields an all-white image rather than noise.
func OtsuLevel(img image.Image) uint8 {
	gray, ok := img.(*image.Gray)
	if !ok {
		gray = Grayscale(img)
	}

	var hist [256]int
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumBack, weightBack float64
	var bestLevel uint8
	var bestVariance float64

	for level := 0; level < 256; level++ {
		weightBack += float64(hist[level])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}

		sumBack += float64(level) * float64(hist[level])
		meanBack := sumBack / weightBack
		meanFore := (sum - sumBack) / weightFore

		diff := meanBack - meanFore
		variance := weightBack * weightFore * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			bestLevel = uint8(level)
		}
	}

	// bestLevel is the last background intensity; Threshold paints pixels at
	// or above its cutoff white, so the cutoff is one level higher.
	if bestVariance > 0 && bestLevel < 255 {
		bestLevel++
	}
	return bestLevel
}
