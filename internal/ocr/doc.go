// Package ocr invokes the external Tesseract engine (via gosseract/v2) to
// recognize text in a preprocessed image.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Engine Lifecycle
//
// Availability is an explicit contract, not an ambient assumption: construct
// an Engine once with NewEngine, which probes the Tesseract installation and
// fails with ErrEngineUnavailable when it cannot be reached, reuse the
// Engine across calls, and Close it when the host shuts down.
//
// # Concurrency
//
// The underlying Tesseract client is not reentrant, so the Engine creates a
// fresh client for every Recognize call. Concurrent Recognize calls on the
// same Engine are therefore safe without external locking; each call pays
// the (small) client setup cost in exchange.
//
// # Errors vs Empty Results
//
// "Engine errored" and "engine ran and found nothing" are distinct outcomes.
// A page with no recognizable text yields an empty string and a nil error;
// only an actual engine failure yields a *RecognitionError. Availability
// failures are reported as ErrEngineUnavailable so a host can suggest
// installing or configuring Tesseract instead of showing a generic failure.
//
// # Performance
//
// OCR is CPU-intensive and a single call can take hundreds of milliseconds
// to seconds. Call ValidateForRecognition first to fail fast on images the
// engine cannot make use of.
package ocr
