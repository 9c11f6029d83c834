package imaging

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"
)

// speckledImage creates a mid-gray image with salt-and-pepper speckles.
func speckledImage(width, height int) *image.Gray {
	rng := rand.New(rand.NewSource(7))
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(128)
			if rng.Intn(10) == 0 {
				if rng.Intn(2) == 0 {
					v = 0
				} else {
					v = 255
				}
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// grayStdDev computes the standard deviation of pixel intensities.
func grayStdDev(img *image.Gray) float64 {
	var sum float64
	for _, v := range img.Pix {
		sum += float64(v)
	}
	mean := sum / float64(len(img.Pix))

	var variance float64
	for _, v := range img.Pix {
		d := float64(v) - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(img.Pix)))
}

func TestDenoise_PreservesDimensions(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"gray", speckledImage(80, 60)},
		{"color", textLikeImage(80, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Denoise(tt.img, 10)
			if out.Bounds().Dx() != 80 || out.Bounds().Dy() != 60 {
				t.Errorf("dimensions: got %dx%d, want 80x60",
					out.Bounds().Dx(), out.Bounds().Dy())
			}
		})
	}
}

func TestDenoise_ReducesNoise(t *testing.T) {
	noisy := speckledImage(100, 100)

	out := Denoise(noisy, 20)
	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("gray input produced %T, want *image.Gray", out)
	}

	if after, before := grayStdDev(gray), grayStdDev(noisy); after >= before {
		t.Errorf("intensity spread did not shrink: %.2f before, %.2f after", before, after)
	}
}

func TestDenoise_PreservesLargeEdges(t *testing.T) {
	// Black/white half-split: a strong feature edge the filter must keep.
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			v := uint8(255)
			if x < 50 {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	out := Denoise(img, 10).(*image.Gray)

	// Pixels well away from the boundary must stay near their side's level.
	if v := out.GrayAt(20, 50).Y; v > 30 {
		t.Errorf("dark side brightened to %d, edge not preserved", v)
	}
	if v := out.GrayAt(80, 50).Y; v < 225 {
		t.Errorf("bright side darkened to %d, edge not preserved", v)
	}
}

func TestDenoise_ClampsStrength(t *testing.T) {
	img := speckledImage(40, 40)
	for _, strength := range []int{-5, 0, 100} {
		out := Denoise(img, strength)
		if out.Bounds() != img.Bounds() {
			t.Errorf("strength %d: bounds changed", strength)
		}
	}
}
