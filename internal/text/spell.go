package text

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Corrector performs dictionary-based spell correction.
//
// Correction is token-by-token: each whitespace-delimited token is looked up
// in the dictionary and, when judged misspelled, replaced with the nearest
// dictionary word within the edit-distance bound. Tokens containing no
// alphabetic characters (numbers, punctuation) are never corrected.
//
// Correction is best-effort: a token with no close-enough match is left
// unchanged, and one such miss never affects the remaining tokens.
type Corrector struct {
	known       map[string]struct{}
	words       []string
	maxDistance int
}

// NewCorrector builds a Corrector over a dictionary word list.
//
// Dictionary words are matched case-insensitively. maxDistance is the
// maximum Levenshtein edit distance for a replacement; values below 1 fall
// back to the default of 2.
func NewCorrector(dictionary []string, maxDistance int) *Corrector {
	if maxDistance < 1 {
		maxDistance = 2
	}
	c := &Corrector{
		known:       make(map[string]struct{}, len(dictionary)),
		words:       make([]string, 0, len(dictionary)),
		maxDistance: maxDistance,
	}
	for _, w := range dictionary {
		lw := strings.ToLower(w)
		if _, dup := c.known[lw]; dup {
			continue
		}
		c.known[lw] = struct{}{}
		c.words = append(c.words, lw)
	}
	return c
}

var reToken = regexp.MustCompile(`\S+`)

// CorrectText applies Correct to every whitespace-delimited token in text,
// preserving all whitespace exactly.
func (c *Corrector) CorrectText(text string) string {
	return reToken.ReplaceAllStringFunc(text, c.Correct)
}

// Correct returns the corrected form of a single token, or the token
// unchanged when it is already known, carries no letters, or has no
// dictionary word within the edit-distance bound.
//
// Surrounding punctuation and a leading capital are preserved: "Recieve,"
// corrects to "Receive," when "receive" is in the dictionary.
func (c *Corrector) Correct(token string) string {
	core := strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if core == "" || !strings.ContainsFunc(core, unicode.IsLetter) {
		return token
	}

	lower := strings.ToLower(core)
	if _, ok := c.known[lower]; ok {
		return token
	}

	best := ""
	bestDist := c.maxDistance + 1
	for _, w := range c.words {
		d := levenshtein.ComputeDistance(lower, w)
		if d < bestDist {
			bestDist = d
			best = w
			if d == 1 {
				break
			}
		}
	}
	if best == "" {
		return token
	}

	if r := []rune(core); unicode.IsUpper(r[0]) {
		br := []rune(best)
		br[0] = unicode.ToUpper(br[0])
		best = string(br)
	}

	return strings.Replace(token, core, best, 1)
}
