package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Options holds the cleanup toggles for one Clean call. The zero value
// disables everything (full passthrough); DefaultOptions matches what OCR
// output usually needs.
type Options struct {
	// CollapseWhitespace collapses runs of spaces and tabs to a single
	// space and trims whitespace at line edges. Lines are never merged.
	CollapseWhitespace bool

	// NormalizeLineBreaks unifies CR and CRLF line endings to LF.
	NormalizeLineBreaks bool

	// RemoveEmptyLines drops lines that are empty after trimming.
	RemoveEmptyLines bool

	// NormalizeQuotes maps typographic quotes and dashes to plain ASCII.
	NormalizeQuotes bool

	// FixCommonErrors repairs frequent OCR confusions (e.g. "0f" for "Of").
	FixCommonErrors bool

	// Corrector, when non-nil, applies dictionary-based spell correction to
	// each whitespace-delimited token. May be slow: one dictionary lookup
	// per token.
	Corrector *Corrector
}

// DefaultOptions enables whitespace, line-break, quote and common-error
// normalization; empty-line removal and spell correction stay off.
func DefaultOptions() Options {
	return Options{
		CollapseWhitespace:  true,
		NormalizeLineBreaks: true,
		RemoveEmptyLines:    false,
		NormalizeQuotes:     true,
		FixCommonErrors:     true,
	}
}

// Stats is a derived, read-only summary of a text value. It has no
// lifecycle of its own; recompute it on demand with ComputeStats.
type Stats struct {
	// Chars is the character (rune) count, whitespace included.
	Chars int `json:"character_count"`

	// Words is the number of whitespace-delimited tokens. Empty or
	// whitespace-only text has zero words.
	Words int `json:"word_count"`

	// Lines is the total line count. Empty text has zero lines.
	Lines int `json:"line_count"`

	// NonBlankLines counts lines that are non-empty after trimming.
	NonBlankLines int `json:"non_blank_line_count"`
}

// ComputeStats derives statistics from a text value.
func ComputeStats(text string) Stats {
	stats := Stats{
		Chars: utf8.RuneCountInString(text),
		Words: len(strings.Fields(text)),
	}
	if text == "" {
		return stats
	}
	for _, line := range strings.Split(text, "\n") {
		stats.Lines++
		if strings.TrimSpace(line) != "" {
			stats.NonBlankLines++
		}
	}
	return stats
}

// Clean applies the enabled cleanup operations to raw OCR output and
// returns the cleaned text together with statistics computed on the output.
//
// Clean is total: it never fails, and with all options disabled it returns
// the input unchanged.
func Clean(text string, opts Options) (string, Stats) {
	if opts.CollapseWhitespace {
		text = CollapseWhitespace(text)
	}
	if opts.NormalizeLineBreaks {
		text = NormalizeLineBreaks(text)
	}
	if opts.RemoveEmptyLines {
		text = RemoveEmptyLines(text)
	}
	if opts.NormalizeQuotes {
		text = NormalizeQuotes(text)
	}
	if opts.FixCommonErrors {
		text = FixCommonErrors(text)
	}
	if opts.Corrector != nil {
		text = opts.Corrector.CorrectText(text)
	}
	return text, ComputeStats(text)
}

var reHorizontalWS = regexp.MustCompile(`[ \t]+`)

// CollapseWhitespace collapses runs of horizontal whitespace (spaces, tabs)
// to a single space and trims whitespace from line edges. Line structure is
// preserved: separate lines are never merged.
func CollapseWhitespace(text string) string {
	text = reHorizontalWS.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// NormalizeLineBreaks unifies all line-ending conventions (CR, LF, CRLF) to
// a single LF separator.
func NormalizeLineBreaks(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// RemoveEmptyLines drops lines that contain only whitespace.
func RemoveEmptyLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"`", "'",
	"´", "'", // acute accent
	"–", "-", // en dash
	"—", "-", // em dash
)

// NormalizeQuotes maps typographic quotes and dashes to a canonical
// ASCII-safe set.
func NormalizeQuotes(text string) string {
	return quoteReplacer.Replace(text)
}

// Common OCR misreads fixed at word boundaries only, to avoid touching
// correct text.
var commonErrorPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\b0ne\b`), "One"},
	{regexp.MustCompile(`(?i)\b0f\b`), "Of"},
}

// FixCommonErrors repairs a conservative set of frequent OCR confusions,
// such as a zero read in place of a capital O.
func FixCommonErrors(text string) string {
	for _, p := range commonErrorPatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}
	return text
}

// Truncate limits text to at most maxChars characters and maxLines lines.
// A zero limit disables that bound. Character truncation appends "..." to
// signal the cut. Useful for preview display.
func Truncate(text string, maxChars, maxLines int) string {
	if maxLines > 0 {
		lines := strings.Split(text, "\n")
		if len(lines) > maxLines {
			text = strings.Join(lines[:maxLines], "\n")
		}
	}
	if maxChars > 0 {
		runes := []rune(text)
		if len(runes) > maxChars {
			text = string(runes[:maxChars]) + "..."
		}
	}
	return text
}
