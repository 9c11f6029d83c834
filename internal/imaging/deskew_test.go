package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/disintegration/imaging"
)

func TestEstimateSkewAngle_HorizontalText(t *testing.T) {
	img := textLikeImage(300, 300)

	angle := EstimateSkewAngle(img)
	if math.Abs(angle) > 0.5 {
		t.Errorf("estimated skew for straight text = %.2f deg, want ~0", angle)
	}
}

func TestEstimateSkewAngle_UniformNoise(t *testing.T) {
	// No dominant line orientation: the estimator must refuse to guess.
	angle := EstimateSkewAngle(noiseImage(200, 200))
	if angle != 0 {
		t.Errorf("estimated skew for uniform noise = %.2f deg, want 0", angle)
	}
}

func TestEstimateSkewAngle_BlankImage(t *testing.T) {
	angle := EstimateSkewAngle(uniformImage(200, 200, color.White))
	if angle != 0 {
		t.Errorf("estimated skew for blank image = %.2f deg, want 0", angle)
	}
}

func TestEstimateSkewAngle_RotatedText(t *testing.T) {
	for _, want := range []float64{-7, 5, 10} {
		base := textLikeImage(300, 300)
		rotated := imaging.Rotate(base, want, color.White)

		got := EstimateSkewAngle(rotated)
		if math.Abs(got-want) > 1.0 {
			t.Errorf("estimated skew = %.2f deg, want %.2f +/- 1", got, want)
		}
	}
}

func TestDeskew_CorrectsRotation(t *testing.T) {
	base := textLikeImage(300, 300)
	rotated := imaging.Rotate(base, 10, color.White)

	out, err := Deskew(rotated, 15)
	if err != nil {
		t.Fatalf("Deskew failed: %v", err)
	}

	residual := EstimateSkewAngle(out)
	if math.Abs(residual) > 2 {
		t.Errorf("residual skew after deskew = %.2f deg, want <=2", residual)
	}
}

func TestDeskew_NoCropping(t *testing.T) {
	base := textLikeImage(300, 300)
	rotated := imaging.Rotate(base, 10, color.White)

	out, err := Deskew(rotated, 15)
	if err != nil {
		t.Fatalf("Deskew failed: %v", err)
	}

	// Count ink before and after: rotating on an expanded canvas must not
	// lose stroke content (small interpolation drift aside).
	before := inkPixels(Threshold(rotated, 127))
	after := inkPixels(Threshold(out, 127))
	if after < before*9/10 {
		t.Errorf("deskew lost content: %d ink pixels before, %d after", before, after)
	}
}

func TestDeskew_SkipsOutOfBoundAngle(t *testing.T) {
	base := textLikeImage(300, 300)
	rotated := imaging.Rotate(base, 12, color.White)

	// Estimated 12 deg exceeds the 5 deg bound: treated as a misdetection
	// and skipped rather than applied.
	out, err := Deskew(rotated, 5)
	if err != nil {
		t.Fatalf("Deskew failed: %v", err)
	}
	if out.Bounds().Dx() != rotated.Bounds().Dx() || out.Bounds().Dy() != rotated.Bounds().Dy() {
		t.Error("out-of-bound angle should leave the image unrotated")
	}
	got := EstimateSkewAngle(out)
	if math.Abs(got-12) > 1.0 {
		t.Errorf("image should still be skewed ~12 deg, estimated %.2f", got)
	}
}

func TestDeskew_NilImage(t *testing.T) {
	if _, err := Deskew(nil, 10); err == nil {
		t.Fatal("Deskew(nil) should fail")
	}
}

// inkPixels counts black pixels in a binary image.
func inkPixels(img *image.Gray) int {
	count := 0
	for _, v := range img.Pix {
		if v == 0 {
			count++
		}
	}
	return count
}
