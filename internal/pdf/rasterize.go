// Package pdf rasterizes PDF pages into images for the OCR pipeline.
//
// Rasterization is a collaborator of the core pipeline, not part of it: it
// supplies one decoded image per page at a caller-chosen resolution, and the
// pipeline consumes those images like any other input. The default backend
// shells out to Poppler's pdftoppm, which must be installed separately
// (poppler-utils on Debian/Ubuntu, poppler via Homebrew).
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
)

// DefaultDPI is the rasterization resolution used when the caller passes a
// non-positive value. Higher DPI improves OCR accuracy but costs time and
// memory.
const DefaultDPI = 200

// ErrUnavailable reports that the rasterization backend is not installed or
// cannot be executed. Hosts should surface installation guidance, mirroring
// how an unavailable OCR engine is handled.
var ErrUnavailable = errors.New("pdf rasterizer unavailable")

// Rasterizer converts a PDF file into one image per page.
type Rasterizer interface {
	Pages(ctx context.Context, path string, dpi int) ([]image.Image, error)
}

// Poppler rasterizes PDFs by shelling out to the pdftoppm tool.
type Poppler struct {
	binPath string
}

// NewPoppler creates a Poppler rasterizer. If binPath is empty, "pdftoppm"
// is resolved from PATH.
func NewPoppler(binPath string) *Poppler {
	if binPath == "" {
		binPath = "pdftoppm"
	}
	return &Poppler{binPath: binPath}
}

// Pages renders every page of the PDF at the given DPI and returns the
// decoded images in page order.
//
// Returns ErrUnavailable (wrapped) when pdftoppm is not installed, or a
// descriptive error when rendering or decoding fails. Page images are
// rendered into a temporary directory that is removed before returning.
func (p *Poppler) Pages(ctx context.Context, path string, dpi int) ([]image.Image, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	bin, err := exec.LookPath(p.binPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	tmpDir, err := os.MkdirTemp("", "ocrkit-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	cmd := exec.CommandContext(ctx, bin, "-png", "-r", strconv.Itoa(dpi), path, filepath.Join(tmpDir, "page"))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed for %s: %v: %s", path, err, stderr.String())
	}

	// pdftoppm zero-pads page numbers uniformly, so lexical order is page
	// order.
	names, err := filepath.Glob(filepath.Join(tmpDir, "page-*.png"))
	if err != nil {
		return nil, fmt.Errorf("failed to list rendered pages: %w", err)
	}
	sort.Strings(names)

	pages := make([]image.Image, 0, len(names))
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open rendered page: %w", err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode rendered page %s: %w", name, err)
		}
		pages = append(pages, img)
	}

	return pages, nil
}
