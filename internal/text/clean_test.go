package text

import (
	"regexp"
	"strings"
	"testing"
)

func TestClean_WhitespaceAndLineBreaks(t *testing.T) {
	// Raw OCR output with mixed line endings and run-on spaces.
	in := "Hello   world\r\nFoo\rBar"
	opts := Options{CollapseWhitespace: true, NormalizeLineBreaks: true}

	got, stats := Clean(in, opts)
	want := "Hello world\nFoo\nBar"
	if got != want {
		t.Fatalf("Clean = %q, want %q", got, want)
	}
	if stats.Lines != 3 || stats.NonBlankLines != 3 {
		t.Errorf("lines = %d/%d non-blank, want 3/3", stats.Lines, stats.NonBlankLines)
	}
	if stats.Words != 4 {
		t.Errorf("words = %d, want 4", stats.Words)
	}
}

var reWhitespaceRun = regexp.MustCompile(`[ \t]{2,}`)

func TestClean_NoWhitespaceRunsRemain(t *testing.T) {
	inputs := []string{
		"a  b\t\tc",
		"  leading and trailing  ",
		"tabs\t mixed  with   spaces",
		"line one   \nline\t\ttwo",
		"",
	}

	opts := Options{CollapseWhitespace: true}
	for _, in := range inputs {
		got, _ := Clean(in, opts)
		if reWhitespaceRun.MatchString(got) {
			t.Errorf("Clean(%q) = %q still contains a whitespace run", in, got)
		}
	}
}

func TestClean_DoesNotMergeLines(t *testing.T) {
	in := "one\ntwo\nthree"
	got, _ := Clean(in, Options{CollapseWhitespace: true})
	if got != in {
		t.Errorf("Clean = %q, want line structure preserved", got)
	}
}

func TestClean_RemoveEmptyLines(t *testing.T) {
	in := "first\n\n   \nsecond\n"
	got, stats := Clean(in, Options{RemoveEmptyLines: true})
	if got != "first\nsecond" {
		t.Fatalf("Clean = %q, want %q", got, "first\nsecond")
	}
	if stats.Lines != stats.NonBlankLines {
		t.Errorf("blank lines remain: %d lines, %d non-blank", stats.Lines, stats.NonBlankLines)
	}
}

func TestClean_NormalizeQuotes(t *testing.T) {
	in := "“Hello” ‘there’ `mate´ – dash — dash"
	got, _ := Clean(in, Options{NormalizeQuotes: true})
	want := `"Hello" 'there' 'mate' - dash - dash`
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestClean_FixCommonErrors(t *testing.T) {
	got, _ := Clean("0ne 0f them", Options{FixCommonErrors: true})
	if got != "One Of them" {
		t.Errorf("Clean = %q, want %q", got, "One Of them")
	}
}

func TestClean_PassthroughWhenDisabled(t *testing.T) {
	in := "anything\r\n  at   all “goes”"
	got, _ := Clean(in, Options{})
	if got != in {
		t.Errorf("Clean with zero options = %q, want unchanged input", got)
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Stats
	}{
		{"empty", "", Stats{}},
		{"whitespace only", "   \n\t", Stats{Chars: 5, Words: 0, Lines: 2, NonBlankLines: 0}},
		{"single word", "hi", Stats{Chars: 2, Words: 1, Lines: 1, NonBlankLines: 1}},
		{"multi line", "a b\n\nc d e", Stats{Chars: 10, Words: 5, Lines: 3, NonBlankLines: 2}},
		{"unicode", "héllo wörld", Stats{Chars: 11, Words: 2, Lines: 1, NonBlankLines: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStats(tt.in); got != tt.want {
				t.Errorf("ComputeStats(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStats_WordCountZeroIffBlank(t *testing.T) {
	inputs := []string{"", " ", "\n\t \n", "x", "  x  ", "a\nb"}
	for _, in := range inputs {
		stats := ComputeStats(in)
		blank := strings.TrimSpace(in) == ""
		if (stats.Words == 0) != blank {
			t.Errorf("ComputeStats(%q).Words = %d, blank=%v", in, stats.Words, blank)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxChars int
		maxLines int
		want     string
	}{
		{"no limits", "abc\ndef", 0, 0, "abc\ndef"},
		{"line limit", "a\nb\nc\nd", 0, 2, "a\nb"},
		{"char limit", "abcdefgh", 5, 0, "abcde..."},
		{"under limits", "abc", 10, 10, "abc"},
		{"unicode chars", "héllo", 3, 0, "hél..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.maxChars, tt.maxLines); got != tt.want {
				t.Errorf("Truncate = %q, want %q", got, tt.want)
			}
		})
	}
}
