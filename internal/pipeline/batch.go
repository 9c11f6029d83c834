package pipeline

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// DefaultWorkers is the batch worker count used when the caller passes a
// non-positive value.
const DefaultWorkers = 2

// RunBatch processes several image files through the pipeline concurrently.
//
// Each file is one unit of work: loaded from disk, run through the full
// pipeline, and recorded under its path. Worker count is bounded by
// workers (DefaultWorkers when non-positive). A failure on one file never
// aborts the rest of the batch.
//
// Returns the successful outputs and the per-file failures, keyed by path.
// Context cancellation stops picking up new files; paths never attempted
// are reported with the context's error.
func RunBatch(ctx context.Context, rec Recognizer, paths []string, cfg Config, workers int) (map[string]*Output, map[string]error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	outputs := make(map[string]*Output)
	failures := make(map[string]error)
	var mu sync.Mutex

	jobs := make(chan string)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				out, err := processFile(rec, path, cfg)
				mu.Lock()
				if err != nil {
					failures[path] = err
				} else {
					outputs[path] = out
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		select {
		case jobs <- path:
		case <-ctx.Done():
			mu.Lock()
			failures[path] = ctx.Err()
			mu.Unlock()
		}
	}
	close(jobs)
	wg.Wait()

	return outputs, failures
}

func processFile(rec Recognizer, path string, cfg Config) (*Output, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return Run(rec, img, cfg)
}

// LoadImage decodes an image file from disk. PNG, JPEG, GIF, BMP and TIFF
// are supported.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
