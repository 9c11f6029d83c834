// Package text cleans raw OCR output and computes descriptive statistics.
//
// The cleanup pipeline is a pure function over strings: it has no side
// effects and never fails. Worst case (every toggle disabled, malformed
// input) the input passes through unchanged. Operations run in a fixed
// order when enabled:
//
//  1. Horizontal whitespace collapsing and line-edge trimming
//  2. Line-break normalization (CR, CRLF -> LF)
//  3. Empty-line removal
//  4. Typographic quote and dash normalization
//  5. Common OCR artifact fixes
//  6. Dictionary-based spell correction
//
// Spell correction is token-by-token with no context, a documented accuracy
// limitation inherited from the dictionary approach: proper nouns and
// technical terms can be "corrected" wrongly. Keep it off unless the input
// domain matches the dictionary.
package text
