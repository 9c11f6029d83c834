package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Skew estimation parameters. The search window is wider than any sensible
// correction bound so an out-of-bound estimate can be recognized and skipped
// instead of clamped into a wrong rotation.
const (
	skewSearchLimit = 20.0 // degrees either side of horizontal
	skewAngleStep   = 0.25 // degrees per accumulator column

	// minSkewEdges is the minimum number of edge pixels required before an
	// estimate is attempted at all.
	minSkewEdges = 50

	// skewConfidenceRatio is how much stronger the winning orientation must
	// be than the average orientation to count as dominant.
	skewConfidenceRatio = 1.5
)

// EstimateSkewAngle estimates the dominant text-line rotation of an image.
//
// The estimate uses a Hough-style voting scheme: edge pixels vote for
// candidate line orientations near horizontal, and the orientation whose
// votes are most concentrated wins. The returned angle is in degrees,
// positive for a counter-clockwise tilt, and lies within ±20°.
//
// When no dominant orientation stands out with sufficient confidence (for
// example on uniform noise or a blank page) the estimate is 0, so deskewing
// degrades to a no-op rather than guessing.
func EstimateSkewAngle(img image.Image) float64 {
	gray, ok := img.(*image.Gray)
	if !ok {
		gray = Grayscale(img)
	}

	edges, count := edgeMap(gray)
	if count < minSkewEdges {
		return 0
	}

	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	numAngles := int(2*skewSearchLimit/skewAngleStep) + 1
	maxRho := int(math.Hypot(float64(width), float64(height))) + 1

	// Precompute the line normal for each candidate tilt a. A text line
	// tilted counter-clockwise by a has normal direction theta = 90° - a in
	// the x*cos(theta) + y*sin(theta) = rho parameterization.
	cosT := make([]float64, numAngles)
	sinT := make([]float64, numAngles)
	for ai := 0; ai < numAngles; ai++ {
		a := -skewSearchLimit + float64(ai)*skewAngleStep
		theta := (90 - a) * math.Pi / 180
		cosT[ai] = math.Cos(theta)
		sinT[ai] = math.Sin(theta)
	}

	acc := make([][]int, numAngles)
	for ai := range acc {
		acc[ai] = make([]int, 2*maxRho)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for ai := 0; ai < numAngles; ai++ {
				rho := float64(x)*cosT[ai] + float64(y)*sinT[ai]
				idx := int(rho) + maxRho
				if idx >= 0 && idx < 2*maxRho {
					acc[ai][idx]++
				}
			}
		}
	}

	// Every angle receives the same total number of votes; what
	// distinguishes the true text orientation is how concentrated its votes
	// are into few rho bins. Sum of squares rewards concentration.
	var bestScore, totalScore float64
	bestAngle := 0.0
	for ai := 0; ai < numAngles; ai++ {
		var score float64
		for _, votes := range acc[ai] {
			score += float64(votes) * float64(votes)
		}
		totalScore += score
		if score > bestScore {
			bestScore = score
			bestAngle = -skewSearchLimit + float64(ai)*skewAngleStep
		}
	}

	meanScore := totalScore / float64(numAngles)
	if bestScore < skewConfidenceRatio*meanScore {
		return 0
	}
	return bestAngle
}

// Deskew corrects the dominant text-line rotation of an image.
//
// The skew angle is estimated with EstimateSkewAngle. When the estimate is
// zero, or its magnitude exceeds maxAngle (treated as a misdetection), the
// image is returned unrotated. Otherwise the image is rotated by the
// opposite angle on an enlarged white-filled canvas, so no original content
// is cropped.
//
// Parameters:
//   - img: Source image. Must be non-nil.
//   - maxAngle: Correction bound in degrees. Non-positive disables
//     correction entirely.
//
// The returned image is always a new object, rotated or not.
func Deskew(img image.Image, maxAngle float64) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", ErrInvalidImage)
	}

	angle := EstimateSkewAngle(img)
	if angle == 0 || maxAngle <= 0 || math.Abs(angle) > maxAngle {
		return imaging.Clone(img), nil
	}

	return imaging.Rotate(img, -angle, color.White), nil
}

// edgeMap marks pixels whose immediate horizontal or vertical gradient
// exceeds a fixed threshold. Returns the map and the number of edge pixels.
func edgeMap(gray *image.Gray) ([][]bool, int) {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	const threshold = 30.0

	edges := make([][]bool, height)
	count := 0
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			if x == width-1 || y == height-1 {
				continue
			}

			c := float64(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			cx := float64(gray.GrayAt(x+1+bounds.Min.X, y+bounds.Min.Y).Y)
			cy := float64(gray.GrayAt(x+bounds.Min.X, y+1+bounds.Min.Y).Y)

			if math.Abs(c-cx) > threshold || math.Abs(c-cy) > threshold {
				edges[y][x] = true
				count++
			}
		}
	}
	return edges, count
}
