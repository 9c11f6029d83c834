package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/snapscribe/ocrkit/internal/imaging"
	"github.com/snapscribe/ocrkit/internal/ocr"
	"github.com/snapscribe/ocrkit/internal/pdf"
	"github.com/snapscribe/ocrkit/internal/pipeline"
	"github.com/snapscribe/ocrkit/internal/text"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// CLI holds the command-line configuration for a batch run.
type CLI struct {
	outDir   string
	language string
	psm      string
	workers  int
	dpi      int

	grayscale         bool
	denoise           bool
	denoiseStrength   int
	threshold         bool
	adaptiveThreshold bool
	thresholdValue    int
	deskew            bool
	maxSkewAngle      float64

	removeEmptyLines bool
	dictPath         string
}

// NewCLI returns a CLI with the pipeline defaults.
func NewCLI() *CLI {
	pre := imaging.DefaultConfig()
	return &CLI{
		language:        "eng",
		psm:             "auto",
		workers:         pipeline.DefaultWorkers,
		dpi:             pdf.DefaultDPI,
		grayscale:       pre.Grayscale,
		denoise:         pre.DenoiseEnabled,
		denoiseStrength: pre.DenoiseStrength,
		threshold:       pre.ThresholdEnabled,
		thresholdValue:  int(pre.ThresholdValue),
		deskew:          pre.DeskewEnabled,
		maxSkewAngle:    pre.MaxSkewAngle,
	}
}

// Run parses flags and processes every input file or directory.
func (c *CLI) Run(args []string) error {
	fs := flag.NewFlagSet("ocrkit", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: ocrkit [options] <image|pdf|dir> ...")
		fmt.Fprintln(fs.Output(), "\nExtracts text from images and PDFs into .txt files.")
		fmt.Fprintln(fs.Output(), "\nOptions:")
		fs.PrintDefaults()
	}

	fs.StringVar(&c.outDir, "out", c.outDir, "Output directory for .txt files (default: alongside each input)")
	fs.StringVar(&c.language, "lang", c.language, `OCR language code(s), "+"-joined for multi-language (e.g. "eng+deu")`)
	fs.StringVar(&c.psm, "psm", c.psm, "Page layout assumption: auto, block, line, word, sparse")
	fs.IntVar(&c.workers, "workers", c.workers, "Concurrent pipeline workers for batch processing")
	fs.IntVar(&c.dpi, "dpi", c.dpi, "PDF page rasterization resolution")

	fs.BoolVar(&c.grayscale, "grayscale", c.grayscale, "Convert to grayscale before recognition")
	fs.BoolVar(&c.denoise, "denoise", c.denoise, "Apply edge-preserving denoising")
	fs.IntVar(&c.denoiseStrength, "denoise-strength", c.denoiseStrength, "Denoising strength (1-30)")
	fs.BoolVar(&c.threshold, "threshold", c.threshold, "Binarize the image before recognition")
	fs.BoolVar(&c.adaptiveThreshold, "adaptive-threshold", c.adaptiveThreshold, "Compute the binarization cutoff from the image (Otsu)")
	fs.IntVar(&c.thresholdValue, "threshold-value", c.thresholdValue, "Fixed binarization cutoff (0-255)")
	fs.BoolVar(&c.deskew, "deskew", c.deskew, "Estimate and correct text rotation")
	fs.Float64Var(&c.maxSkewAngle, "max-skew", c.maxSkewAngle, "Maximum rotation correction in degrees")

	fs.BoolVar(&c.removeEmptyLines, "strip-empty-lines", c.removeEmptyLines, "Drop blank lines from the output")
	fs.StringVar(&c.dictPath, "dict", c.dictPath, "Word list for dictionary-based spell correction (off when empty)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no inputs given")
	}

	cfg, err := c.config()
	if err != nil {
		return err
	}

	engine, err := ocr.NewEngine(ocr.Config{})
	if err != nil {
		return err
	}
	defer engine.Close()

	images, pdfs, err := expandInputs(fs.Args())
	if err != nil {
		return err
	}
	if len(images) == 0 && len(pdfs) == 0 {
		return fmt.Errorf("no supported files found in the given inputs")
	}

	ctx := context.Background()
	failed := 0

	outputs, failures := pipeline.RunBatch(ctx, engine, images, cfg, c.workers)
	for path, err := range failures {
		log.Printf("FAILED %s: %v", path, err)
		failed++
	}
	for path, out := range outputs {
		if err := c.writeOutput(path, out); err != nil {
			log.Printf("FAILED %s: %v", path, err)
			failed++
		}
	}

	rasterizer := pdf.NewPoppler("")
	for _, path := range pdfs {
		out, err := c.processPDF(ctx, rasterizer, engine, path, cfg)
		if err != nil {
			log.Printf("FAILED %s: %v", path, err)
			failed++
			continue
		}
		if err := c.writeOutput(path, out); err != nil {
			log.Printf("FAILED %s: %v", path, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(images)+len(pdfs))
	}
	return nil
}

// config assembles the per-stage pipeline configuration from the flags.
func (c *CLI) config() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	cfg.Preprocess.Grayscale = c.grayscale
	cfg.Preprocess.DenoiseEnabled = c.denoise
	cfg.Preprocess.DenoiseStrength = c.denoiseStrength
	cfg.Preprocess.ThresholdEnabled = c.threshold
	cfg.Preprocess.ThresholdAdaptive = c.adaptiveThreshold
	cfg.Preprocess.ThresholdValue = uint8(c.thresholdValue)
	cfg.Preprocess.DeskewEnabled = c.deskew
	cfg.Preprocess.MaxSkewAngle = c.maxSkewAngle

	psm, err := ocr.ParsePageSegMode(c.psm)
	if err != nil {
		return cfg, err
	}
	cfg.Recognize.Language = c.language
	cfg.Recognize.PageSegMode = psm

	cfg.Clean.RemoveEmptyLines = c.removeEmptyLines
	if c.dictPath != "" {
		corrector, err := loadCorrector(c.dictPath)
		if err != nil {
			return cfg, err
		}
		cfg.Clean.Corrector = corrector
	}

	return cfg, nil
}

// processPDF rasterizes a PDF and runs every page through the pipeline,
// joining pages with a blank line.
func (c *CLI) processPDF(ctx context.Context, r pdf.Rasterizer, rec pipeline.Recognizer, path string, cfg pipeline.Config) (*pipeline.Output, error) {
	pages, err := r.Pages(ctx, path, c.dpi)
	if err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(pages))
	for i, page := range pages {
		out, err := pipeline.Run(rec, page, cfg)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		parts = append(parts, out.Text)
	}

	combined := strings.Join(parts, "\n\n")
	return &pipeline.Output{Text: combined, Stats: text.ComputeStats(combined)}, nil
}

// writeOutput writes the extracted text next to the input (or under -out)
// and logs the statistics.
func (c *CLI) writeOutput(inputPath string, out *pipeline.Output) error {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".txt"
	dir := filepath.Dir(inputPath)
	if c.outDir != "" {
		if err := os.MkdirAll(c.outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		dir = c.outDir
	}
	dest := filepath.Join(dir, base)

	if err := os.WriteFile(dest, []byte(out.Text), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Printf("%s -> %s (%d chars, %d words, %d lines, %d non-blank)",
		inputPath, dest, out.Stats.Chars, out.Stats.Words, out.Stats.Lines, out.Stats.NonBlankLines)
	return nil
}

// expandInputs resolves files and directories into supported image and PDF
// paths. Directories are walked recursively.
func expandInputs(inputs []string) (images, pdfs []string, err error) {
	add := func(path string) {
		switch ext := strings.ToLower(filepath.Ext(path)); {
		case ext == ".pdf":
			pdfs = append(pdfs, path)
		case imageExtensions[ext]:
			images = append(images, path)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot read input %s: %w", input, err)
		}
		if !info.IsDir() {
			add(input)
			continue
		}
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to walk %s: %w", input, err)
		}
	}
	return images, pdfs, nil
}

// loadCorrector reads a newline-delimited word list into a spell corrector.
func loadCorrector(path string) (*text.Corrector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	return text.NewCorrector(words, 2), nil
}
