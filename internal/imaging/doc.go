// Package imaging implements the image preprocessing stage of the OCR pipeline.
//
// This package normalizes an input image into a form favorable for text
// recognition. Four sub-operations are provided, each independently
// toggleable through Config and applied in a fixed order by Preprocess:
//
//  1. Grayscale conversion (luminance reduction, idempotent)
//  2. Denoising (edge-preserving bilateral-style smoothing)
//  3. Binarization (fixed or Otsu adaptive thresholding)
//  4. Deskewing (Hough-based rotation estimation and correction)
//
// # Ownership
//
// Every operation returns a new image; the caller's image is never mutated.
// This allows the original to be kept for side-by-side comparison after
// preprocessing.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Error Handling
//
// Preprocess rejects nil or undersized input with ErrInvalidImage. A failure
// inside a sub-operation is reported as a *PreprocessError naming the
// sub-step; a partially processed image is never returned.
//
// # Thread Safety
//
// All operations are stateless pure functions and safe for concurrent use
// on distinct images.
package imaging
